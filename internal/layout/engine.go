package layout

import (
	"github.com/alnah/go-specsheet/internal/images"
)

// Vertical rhythm in millimetres.
const (
	titleTop         = 20.0
	headingSize      = 11.0
	headingAdvance   = 7.0
	continuedAdvance = 10.0
	sectionGap       = 10.0
)

// Grey levels used across sections.
const (
	black         = 0
	lineGrey      = 200
	noteGrey      = 100
	labelGrey     = 120
	photoFill     = 240
	photoBorder   = 200
	diagramFill   = 230
	diagramBorder = 180
)

// Block kinds recorded in the placement log.
const (
	KindHeading     = "heading"
	KindContinued   = "continued"
	KindText        = "text"
	KindNotice      = "notice"
	KindRow         = "row"
	KindImage       = "image"
	KindPlaceholder = "placeholder"
)

// Placement records one drawn block. Image and placeholder placements carry
// the box reserved for the picture.
type Placement struct {
	Section string
	Kind    string
	Page    int
	X, Y    float64
	W, H    float64
}

// PageHook runs after every page is added, including the first.
type PageHook func(page int)

// Engine lays out sections on a Canvas. Not safe for concurrent use; one
// Engine draws one document.
type Engine struct {
	canvas Canvas
	loader images.Loader
	cfg    Config
	hook   PageHook
	cur    Cursor
	log    []Placement
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the page geometry.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithPageHook registers the hook run on every new page.
func WithPageHook(h PageHook) Option {
	return func(e *Engine) {
		e.hook = h
	}
}

// New creates an Engine drawing on canvas and loading images with loader.
func New(canvas Canvas, loader images.Loader, opts ...Option) *Engine {
	e := &Engine{
		canvas: canvas,
		loader: loader,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine geometry.
func (e *Engine) Config() Config { return e.cfg }

// Cursor returns the current layout position.
func (e *Engine) Cursor() Cursor { return e.cur }

// Placements returns the blocks drawn so far, in drawing order.
func (e *Engine) Placements() []Placement {
	return append([]Placement(nil), e.log...)
}

// Begin adds the first page and positions the cursor at the title line.
func (e *Engine) Begin() {
	e.addPage()
	e.cur.Y = titleTop
}

// NewPage appends a page and resets the cursor to the top margin.
func (e *Engine) NewPage() {
	e.addPage()
}

func (e *Engine) addPage() {
	e.canvas.AddPage()
	e.cur = Cursor{Page: e.cur.Page + 1, X: e.cfg.Margin, Y: e.cfg.Margin}
	if e.hook != nil {
		e.hook(e.cur.Page)
	}
}

// EnsureSpace starts a new page when a block of height h does not fit.
// It reports whether a page was added.
func (e *Engine) EnsureSpace(h float64) bool {
	if e.cur.Y+h <= e.cfg.Bottom() {
		return false
	}
	e.NewPage()
	return true
}

// SectionBreak is the safety margin between major sections: when the cursor
// is within SafetyMargin of the page edge a new page is started.
func (e *Engine) SectionBreak() bool {
	if e.cur.Y <= e.cfg.PageHeight-e.cfg.SafetyMargin {
		return false
	}
	e.NewPage()
	e.cur.Y = e.cfg.Margin + sectionGap
	return true
}

// SectionGap advances the cursor by the space between major sections.
func (e *Engine) SectionGap() {
	e.cur.Y += sectionGap
}

// PlaceBlock draws a section heading with a grey underline and advances y.
func (e *Engine) PlaceBlock(heading string) {
	e.drawHeading(heading)
	e.record(heading, KindHeading, 0, 0, 0, 0)
}

func (e *Engine) drawHeading(heading string) {
	y := e.cur.Y
	e.canvas.SetFont(Bold, headingSize)
	e.canvas.SetTextColor(black)
	e.canvas.Text(e.cfg.Margin, y, heading)
	e.canvas.SetDrawColor(lineGrey)
	e.canvas.Line(e.cfg.Margin, y+2, e.cfg.PageWidth-e.cfg.Margin, y+2)
	e.cur.Y += headingAdvance
}

// continueSection breaks the page inside a section and redraws its heading.
func (e *Engine) continueSection(section string) {
	e.NewPage()
	e.drawHeading(section + " (continued)")
	e.cur.Y = e.continuedTop()
	e.record(section, KindContinued, 0, 0, 0, 0)
}

// continuedTop is where content resumes below a continued heading.
func (e *Engine) continuedTop() float64 {
	return e.cfg.Margin + continuedAdvance
}

func (e *Engine) record(section, kind string, x, y, w, h float64) {
	e.log = append(e.log, Placement{
		Section: section,
		Kind:    kind,
		Page:    e.cur.Page,
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
	})
}

// picture describes the fallback look of an image box.
type picture struct {
	fill, border int
	label        string
	labelSize    float64
}

// drawPicture draws img fitted and centered in the box, or a placeholder
// filling the exact same box when img is nil.
func (e *Engine) drawPicture(section string, img *images.Image, x, y, w, h float64, p picture) {
	if img != nil {
		fw, fh := images.Fit(float64(img.Width), float64(img.Height), w, h)
		e.canvas.Image(img, x+(w-fw)/2, y+(h-fh)/2, fw, fh)
		e.record(section, KindImage, x, y, w, h)
		return
	}

	e.canvas.SetFillColor(p.fill)
	e.canvas.SetDrawColor(p.border)
	e.canvas.Rect(x, y, w, h, RectFillDraw)
	if p.label != "" {
		e.canvas.SetFont(Regular, p.labelSize)
		e.canvas.SetTextColor(labelGrey)
		tw := e.canvas.StringWidth(p.label, Regular, p.labelSize)
		e.canvas.Text(x+(w-tw)/2, y+h/2+1, p.label)
	}
	e.record(section, KindPlaceholder, x, y, w, h)
}
