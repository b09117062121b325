package specsheet

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-specsheet/internal/images"
	"github.com/alnah/go-specsheet/internal/layout"
)

// fontFamily is a core PDF font; text is translated to cp1252.
const fontFamily = "Helvetica"

// reproducibleDate is written as creation and modification date so that
// identical input yields identical bytes.
var reproducibleDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// documentInfo is the PDF metadata block.
type documentInfo struct {
	Title   string
	Created time.Time
}

// fpdfCanvas implements layout.Canvas on top of fpdf.
type fpdfCanvas struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	style      string
	size       float64
	text       int
	draw       int
	fill       int
	registered map[string]bool
}

// Compile-time interface check.
var _ layout.Canvas = (*fpdfCanvas)(nil)

// newFPDFCanvas creates a canvas with the given final page size in
// millimetres. A page wider than tall is declared landscape.
func newFPDFCanvas(width, height float64, info documentInfo) *fpdfCanvas {
	setup := &fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	}
	if width > height {
		// fpdf swaps the size for landscape documents.
		setup.OrientationStr = "L"
		setup.Size = fpdf.SizeType{Wd: height, Ht: width}
	}

	pdf := fpdf.NewCustom(setup)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)

	created := info.Created
	if created.IsZero() {
		created = reproducibleDate
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCreator("go-specsheet", true)
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}

	c := &fpdfCanvas{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		size:       10,
		registered: make(map[string]bool),
	}
	pdf.SetFont(fontFamily, c.style, c.size)
	return c
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
	c.pdf.SetFont(fontFamily, c.style, c.size)
}

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.style = style
	c.size = size
	c.pdf.SetFont(fontFamily, style, size)
}

// StringWidth measures s in the given font without changing the current one.
func (c *fpdfCanvas) StringWidth(s, style string, size float64) float64 {
	if style == c.style && size == c.size {
		return c.pdf.GetStringWidth(c.tr(s))
	}
	c.pdf.SetFont(fontFamily, style, size)
	w := c.pdf.GetStringWidth(c.tr(s))
	c.pdf.SetFont(fontFamily, c.style, c.size)
	return w
}

func (c *fpdfCanvas) SetTextColor(gray int) {
	c.text = gray
	c.pdf.SetTextColor(gray, gray, gray)
}

func (c *fpdfCanvas) SetDrawColor(gray int) {
	c.draw = gray
	c.pdf.SetDrawColor(gray, gray, gray)
}

func (c *fpdfCanvas) SetFillColor(gray int) {
	c.fill = gray
	c.pdf.SetFillColor(gray, gray, gray)
}

// preserve runs fn and restores the font and colors it changed.
func (c *fpdfCanvas) preserve(fn func()) {
	style, size := c.style, c.size
	text, draw, fill := c.text, c.draw, c.fill
	fn()
	c.SetFont(style, size)
	c.SetTextColor(text)
	c.SetDrawColor(draw)
	c.SetFillColor(fill)
}

func (c *fpdfCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.tr(s))
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *fpdfCanvas) Rect(x, y, w, h float64, style string) {
	c.pdf.Rect(x, y, w, h, style)
}

// Image draws img in the given box. Identical payloads are embedded once.
func (c *fpdfCanvas) Image(img *images.Image, x, y, w, h float64) {
	if img == nil || len(img.Data) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: imageType(img.Format)}

	sum := sha256.Sum256(img.Data)
	name := hex.EncodeToString(sum[:16])
	if !c.registered[name] {
		c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		c.registered[name] = true
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// PageCount returns the number of pages drawn so far.
func (c *fpdfCanvas) PageCount() int {
	return c.pdf.PageCount()
}

// Bytes serialises the document. Any error recorded while drawing is
// returned instead.
func (c *fpdfCanvas) Bytes() ([]byte, error) {
	if err := c.pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	return buf.Bytes(), nil
}

// imageType maps a normalized format to the fpdf image type.
func imageType(format string) string {
	if format == images.FormatPNG {
		return "PNG"
	}
	return "JPG"
}
