package layout

// Transition is the cursor change needed before placing a grid item.
type Transition int

const (
	// Stay places the item in the current row.
	Stay Transition = iota
	// NewRow resets x, advances y past the row and clears column usage.
	NewRow
	// NewPage starts the item at the top of a new page.
	NewPage
)

func (t Transition) String() string {
	switch t {
	case NewRow:
		return "new-row"
	case NewPage:
		return "new-page"
	default:
		return "stay"
	}
}

// Cursor is the layout position.
type Cursor struct {
	Page      int
	X, Y      float64
	RowHeight float64
	ColsUsed  int
}

// ColumnSpan picks how many grid columns an image with the given aspect
// ratio occupies. cellAspect is the width/height ratio of a single cell and
// thresholds are the multiples of it at which the span becomes 2, 3 and 4.
func ColumnSpan(aspect, cellAspect float64, thresholds [3]float64) int {
	if aspect <= 0 || cellAspect <= 0 {
		return 1
	}
	ratio := aspect / cellAspect
	switch {
	case ratio >= thresholds[2]:
		return 4
	case ratio >= thresholds[1]:
		return 3
	case ratio >= thresholds[0]:
		return 2
	default:
		return 1
	}
}

// Grid is a row-flowing grid of equal columns with a fixed row height.
type Grid struct {
	Left      float64
	Width     float64
	Gap       float64
	Cols      int
	RowHeight float64
}

// ColumnWidth is the width of a single cell.
func (g Grid) ColumnWidth() float64 {
	return (g.Width - g.Gap*float64(g.Cols-1)) / float64(g.Cols)
}

// SpanWidth is the width of an item spanning span cells, gaps included.
func (g Grid) SpanWidth(span int) float64 {
	return float64(span)*g.ColumnWidth() + float64(span-1)*g.Gap
}

// CellAspect is the width/height ratio of a single cell.
func (g Grid) CellAspect() float64 {
	return g.ColumnWidth() / g.RowHeight
}

// Place computes where an item of span goes given cursor c. It returns the
// transition taken, the item's top-left position in at, and the cursor after
// the item. A full-width item always starts a fresh row. When the row does
// not fit above bottom the item moves to a new page starting at restartY.
func (g Grid) Place(c Cursor, span int, bottom, restartY float64) (next, at Cursor, tr Transition) {
	span = min(max(span, 1), g.Cols)
	tr = Stay

	if c.ColsUsed > 0 && (c.ColsUsed+span > g.Cols || span == g.Cols) {
		c.Y += c.RowHeight + g.Gap
		c.X = g.Left
		c.RowHeight = 0
		c.ColsUsed = 0
		tr = NewRow
	}

	if c.Y+g.RowHeight > bottom {
		c.Page++
		c.Y = restartY
		c.X = g.Left
		c.RowHeight = 0
		c.ColsUsed = 0
		tr = NewPage
	}
	if c.ColsUsed == 0 {
		c.X = g.Left
	}

	at = c
	next = c
	next.X += g.SpanWidth(span) + g.Gap
	next.ColsUsed += span
	next.RowHeight = max(next.RowHeight, g.RowHeight)
	return next, at, tr
}
