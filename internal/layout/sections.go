package layout

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-specsheet/internal/images"
)

// Section headings.
const (
	SectionTitle          = "title"
	SectionCertificates   = "certificates"
	SectionDetails        = "PRODUCT DETAILS"
	SectionDrawings       = "DRAWINGS"
	SectionSpecifications = "SPECIFICATIONS"
	SectionAccessories    = "ACCESSORIES"
)

// Notices drawn instead of empty sections.
const (
	NoDescription     = "No description available"
	NoSpecifications  = "No specifications selected"
	NoAccessories     = "No accessories selected"
	MultiValueNote    = "Note: For specifications with multiple values, all selected options are displayed separated by commas."
	accessoryFallback = "Accessory"
)

// Title block.
const (
	titleSize     = 18.0
	titleLineStep = 7.0
	codeOffset    = 8.0
	codeSize      = 10.0
	titleAdvance  = 17.0
)

// Certificate strip.
const (
	badgeTop    = 18.0
	badgeHeight = 5.0
	badgeMaxW   = 25.0
	badgeGap    = 5.0
)

// Product details.
const (
	bodySize      = 10.0
	bodyLine      = 5.0
	detailsImageH = 40.0
	detailsMinH   = 45.0
)

// Drawings grid.
const (
	drawingCols      = 4
	drawingGap       = 5.0
	drawingRowHeight = 30.0
	drawingLabelSize = 7.0
)

// Two-column lists.
const (
	listSize     = 8.0
	listLine     = 4.0
	listPad      = 1.0
	labelWidth   = 40.0
	valueInset   = 55.0
	columnGutter = 5.0
	noteSize     = 7.0
)

// Accessories.
const (
	accessoryRow    = 25.0
	accessoryImgW   = 25.0
	accessoryImgH   = 20.0
	accessoryPad    = 5.0
	accessoryGutter = 10.0
	shortFormSize   = 7.0
	shortFormLine   = 3.0
	shortFormLines  = 3
)

// Badge is one certificate value shown in the strip.
type Badge struct {
	Label    string
	ImageURL string
}

// Entry is one row of a two-column list.
type Entry struct {
	Label string
	Value string
}

// NonEmptyEntries drops entries whose value is blank.
func NonEmptyEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Value) != "" {
			out = append(out, e)
		}
	}
	return out
}

// Accessory is one row of the accessories section.
type Accessory struct {
	Title     string
	ShortForm string
	ImageURL  string
}

// Title draws the product name and code.
func (e *Engine) Title(name, code string) {
	if code == "" {
		code = "N/A"
	}
	x := e.cfg.Margin
	y := e.cur.Y

	e.canvas.SetFont(Bold, titleSize)
	e.canvas.SetTextColor(black)
	lines := Wrap(e.canvas, name, Bold, titleSize, e.cfg.ContentWidth()*0.65)
	for i, line := range lines {
		if i > 0 {
			y += titleLineStep
		}
		e.canvas.Text(x, y, line)
	}

	e.canvas.SetFont(Regular, codeSize)
	e.canvas.Text(x, y+codeOffset, "Product Code: "+code)
	e.record(SectionTitle, KindHeading, x, e.cur.Y, 0, 0)

	e.cur.Y = y + codeOffset + titleAdvance
}

// Certificates draws badges right-aligned next to the title. Badges are
// walked in list order, each one placed left of the previous, so the first
// badge is rightmost and the last one leftmost.
func (e *Engine) Certificates(ctx context.Context, badges []Badge) error {
	right := e.cfg.Margin + e.cfg.ContentWidth()
	for i := range badges {
		if err := ctx.Err(); err != nil {
			return err
		}
		img := e.loader.Load(ctx, badges[i].ImageURL, images.Icon)

		w := badgeHeight
		if img != nil {
			w = min(img.AspectRatio()*badgeHeight, badgeMaxW)
		}
		x := right - w
		if x < e.cfg.Margin {
			break
		}
		e.drawPicture(SectionCertificates, img, x, badgeTop, w, badgeHeight, picture{fill: photoFill, border: photoBorder})
		right = x - badgeGap
	}
	return nil
}

// Details draws the description on the left half and the product image box
// on the right half.
func (e *Engine) Details(ctx context.Context, description, imageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	textW := e.cfg.ContentWidth() * 0.5
	if strings.TrimSpace(description) == "" {
		description = NoDescription
	}
	e.canvas.SetFont(Regular, bodySize)
	lines := Wrap(e.canvas, description, Regular, bodySize, textW)

	e.EnsureSpace(headingAdvance + detailsMinH)
	e.PlaceBlock(SectionDetails)

	top := e.cur.Y
	imagePage := e.cur.Page
	label := "Product Image"
	if imageURL == "" {
		label = "No Image"
	}
	img := e.loader.Load(ctx, imageURL, images.Photo)
	if err := ctx.Err(); err != nil {
		return err
	}
	e.drawPicture(SectionDetails, img, e.cfg.Margin+textW+10, top, textW-10, detailsImageH,
		picture{fill: photoFill, border: photoBorder, label: label, labelSize: bodySize})

	e.canvas.SetFont(Regular, bodySize)
	e.canvas.SetTextColor(black)
	ly := top + 4
	for _, line := range lines {
		if ly > e.cfg.Bottom() {
			e.continueSection(SectionDetails)
			e.canvas.SetFont(Regular, bodySize)
			e.canvas.SetTextColor(black)
			ly = e.cur.Y + 4
		}
		e.canvas.Text(e.cfg.Margin, ly, line)
		ly += bodyLine
	}
	e.record(SectionDetails, KindText, e.cfg.Margin, top, textW, ly-top)

	end := ly + 1
	if e.cur.Page == imagePage {
		end = max(end, top+detailsMinH)
	}
	e.cur.Y = end + sectionGap
	return nil
}

// Drawings lays diagrams out on a 4-column grid. Nothing is drawn, heading
// included, when urls is empty.
func (e *Engine) Drawings(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	e.EnsureSpace(headingAdvance + drawingGap + drawingRowHeight)
	e.PlaceBlock(SectionDrawings)
	e.cur.Y += drawingGap

	grid := Grid{
		Left:      e.cfg.Margin,
		Width:     e.cfg.ContentWidth(),
		Gap:       drawingGap,
		Cols:      drawingCols,
		RowHeight: drawingRowHeight,
	}
	c := e.cur
	c.X, c.RowHeight, c.ColsUsed = e.cfg.Margin, 0, 0

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		img := e.loader.Load(ctx, url, images.Diagram)
		if err := ctx.Err(); err != nil {
			return err
		}

		span := 1
		if img != nil {
			span = ColumnSpan(img.AspectRatio(), grid.CellAspect(), e.cfg.SpanThresholds)
		}

		next, at, tr := grid.Place(c, span, e.cfg.Bottom(), e.continuedTop())
		if tr == NewPage {
			e.continueSection(SectionDrawings)
		}
		e.cur.Y = at.Y

		e.drawPicture(SectionDrawings, img, at.X, at.Y, grid.SpanWidth(span), grid.RowHeight, picture{
			fill:      diagramFill,
			border:    diagramBorder,
			label:     fmt.Sprintf("Drawing %d", i+1),
			labelSize: drawingLabelSize,
		})
		c = next
	}

	e.cur.Y = c.Y + c.RowHeight + drawingGap + sectionGap
	return nil
}

// Specifications draws the selected specifications as a two-column list.
// When every value is blank it draws a notice followed by the multi-value note.
func (e *Engine) Specifications(entries []Entry) {
	entries = NonEmptyEntries(entries)

	e.EnsureSpace(headingAdvance + 2*listLine + sectionGap)
	e.PlaceBlock(SectionSpecifications)

	if len(entries) > 0 {
		e.twoColumnList(SectionSpecifications, entries)
		return
	}

	e.canvas.SetFont(Regular, bodySize)
	e.canvas.SetTextColor(black)
	e.canvas.Text(e.cfg.Margin, e.cur.Y+3, NoSpecifications)
	e.record(SectionSpecifications, KindNotice, e.cfg.Margin, e.cur.Y, 0, 0)
	e.cur.Y += titleAdvance

	e.EnsureSpace(headingAdvance)
	e.canvas.SetFont(Regular, noteSize)
	e.canvas.SetTextColor(noteGrey)
	e.canvas.Text(e.cfg.Margin, e.cur.Y, MultiValueNote)
	e.record(SectionSpecifications, KindNotice, e.cfg.Margin, e.cur.Y, 0, 0)
	e.cur.Y += headingAdvance
}

// Features draws one feature category. Categories without any non-blank
// entry are skipped and Features reports false.
func (e *Engine) Features(category string, entries []Entry) bool {
	entries = NonEmptyEntries(entries)
	if len(entries) == 0 {
		return false
	}

	heading := strings.ToUpper(strings.TrimSpace(category))
	e.EnsureSpace(headingAdvance + 2*listLine)
	e.PlaceBlock(heading)
	e.twoColumnList(heading, entries)
	return true
}

// twoColumnList splits entries at ceil(n/2) and draws both halves as
// independent label/value columns.
func (e *Engine) twoColumnList(section string, entries []Entry) {
	half := e.cfg.ContentWidth() / 2
	valueW := half - valueInset
	xs := [2]float64{e.cfg.Margin, e.cfg.Margin + half + columnGutter}

	left, right := SplitColumns(entries)
	cols := [2][]Entry{left, right}
	type row struct{ label, value []string }
	rows := [2][]row{}
	heights := [2][]float64{}
	for col, list := range cols {
		for _, en := range list {
			r := row{
				label: Wrap(e.canvas, en.Label+":", Bold, listSize, labelWidth-2),
				value: Wrap(e.canvas, en.Value, Regular, listSize, valueW),
			}
			n := max(len(r.label), len(r.value), 1)
			rows[col] = append(rows[col], r)
			heights[col] = append(heights[col], float64(n)*listLine+listPad)
		}
	}

	plan := PlanColumns(heights[0], heights[1], e.cur.Y, e.continuedTop(), e.cfg.Bottom())
	page := 0
	for _, s := range plan.Slots {
		for page < s.Page {
			e.continueSection(section)
			page++
		}
		r := rows[s.Column][s.Index]
		x := xs[s.Column]

		e.canvas.SetFont(Bold, listSize)
		e.canvas.SetTextColor(black)
		for i, line := range r.label {
			e.canvas.Text(x, s.Y+3+float64(i)*listLine, line)
		}
		e.canvas.SetFont(Regular, listSize)
		for i, line := range r.value {
			e.canvas.Text(x+labelWidth, s.Y+3+float64(i)*listLine, line)
		}
		e.record(section, KindRow, x, s.Y, half-columnGutter, heights[s.Column][s.Index])
	}
	for page < plan.Pages {
		e.continueSection(section)
		page++
	}

	e.cur.Y = plan.EndY + columnGutter
}

// Accessories flattens the accessory rows into two columns, each row an
// image box beside a title and short description.
func (e *Engine) Accessories(ctx context.Context, items []Accessory) error {
	e.cur.Y += columnGutter
	e.EnsureSpace(continuedAdvance + accessoryRow)
	e.PlaceBlock(SectionAccessories)
	e.cur.Y += continuedAdvance - headingAdvance

	if len(items) == 0 {
		e.canvas.SetFont(Regular, bodySize)
		e.canvas.SetTextColor(black)
		e.canvas.Text(e.cfg.Margin, e.cur.Y+3, NoAccessories)
		e.record(SectionAccessories, KindNotice, e.cfg.Margin, e.cur.Y, 0, 0)
		e.cur.Y += sectionGap
		return nil
	}

	colW := (e.cfg.ContentWidth() - accessoryGutter) / 2
	xs := [2]float64{e.cfg.Margin, e.cfg.Margin + colW + accessoryGutter}
	left, right := SplitColumns(items)
	cols := [2][]Accessory{left, right}
	heights := [2][]float64{rowHeights(len(left)), rowHeights(len(right))}

	plan := PlanColumns(heights[0], heights[1], e.cur.Y, e.continuedTop(), e.cfg.Bottom())
	page := 0
	for _, s := range plan.Slots {
		if err := ctx.Err(); err != nil {
			return err
		}
		for page < s.Page {
			e.continueSection(SectionAccessories)
			page++
		}
		e.drawAccessory(ctx, cols[s.Column][s.Index], xs[s.Column], s.Y, colW)
	}
	for page < plan.Pages {
		e.continueSection(SectionAccessories)
		page++
	}

	e.cur.Y = plan.EndY + columnGutter
	return ctx.Err()
}

func rowHeights(n int) []float64 {
	hs := make([]float64, n)
	for i := range hs {
		hs[i] = accessoryRow
	}
	return hs
}

func (e *Engine) drawAccessory(ctx context.Context, a Accessory, x, y, colW float64) {
	img := e.loader.Load(ctx, a.ImageURL, images.Photo)
	e.drawPicture(SectionAccessories, img, x, y, accessoryImgW, accessoryImgH,
		picture{fill: photoFill, border: photoBorder, label: "No Image", labelSize: 6})

	tx := x + accessoryImgW + accessoryPad
	textW := colW - accessoryImgW - accessoryPad

	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = accessoryFallback
	}
	e.canvas.SetFont(Bold, bodySize)
	e.canvas.SetTextColor(black)
	if lines := Wrap(e.canvas, title, Bold, bodySize, textW); len(lines) > 0 {
		e.canvas.Text(tx, y+8, lines[0])
	}

	e.canvas.SetFont(Regular, shortFormSize)
	e.canvas.SetTextColor(noteGrey)
	for i, line := range Wrap(e.canvas, a.ShortForm, Regular, shortFormSize, textW) {
		if i == shortFormLines {
			break
		}
		e.canvas.Text(tx, y+14+float64(i)*shortFormLine, line)
	}
	e.record(SectionAccessories, KindRow, x, y, colW, accessoryRow)
}
