package layout

import "github.com/alnah/go-specsheet/internal/images"

// Font styles understood by Canvas.SetFont.
const (
	Regular = ""
	Bold    = "B"
)

// Rect styles understood by Canvas.Rect.
const (
	RectFill     = "F"
	RectDraw     = "D"
	RectFillDraw = "FD"
)

// Measurer reports rendered text widths in page units.
type Measurer interface {
	StringWidth(s, style string, size float64) float64
}

// Canvas is the drawing surface. Coordinates are page units from the top
// left corner; Text draws on the baseline at y. Colors are grey levels
// (0 black, 255 white).
type Canvas interface {
	Measurer
	AddPage()
	SetFont(style string, size float64)
	SetTextColor(gray int)
	SetDrawColor(gray int)
	SetFillColor(gray int)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, style string)
	Image(img *images.Image, x, y, w, h float64)
}
