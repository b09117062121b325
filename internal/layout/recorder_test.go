package layout

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/alnah/go-specsheet/internal/images"
)

// ---------------------------------------------------------------------------
// Recording canvas
// ---------------------------------------------------------------------------

// op is one recorded draw call.
type op struct {
	Name string
	Page int
	Text string
	X, Y float64
	W, H float64
}

// recorder implements Canvas by recording every call. Text width is
// monospaced: 0.2 * size per rune.
type recorder struct {
	page int
	ops  []op
}

var _ Canvas = (*recorder)(nil)

func (r *recorder) StringWidth(s, _ string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.2
}

func (r *recorder) AddPage() {
	r.page++
	r.ops = append(r.ops, op{Name: "page", Page: r.page})
}

func (r *recorder) SetFont(string, float64) {}
func (r *recorder) SetTextColor(int)        {}
func (r *recorder) SetDrawColor(int)        {}
func (r *recorder) SetFillColor(int)        {}

func (r *recorder) Text(x, y float64, s string) {
	r.ops = append(r.ops, op{Name: "text", Page: r.page, Text: s, X: x, Y: y})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, op{Name: "line", Page: r.page, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *recorder) Rect(x, y, w, h float64, _ string) {
	r.ops = append(r.ops, op{Name: "rect", Page: r.page, X: x, Y: y, W: w, H: h})
}

func (r *recorder) Image(_ *images.Image, x, y, w, h float64) {
	r.ops = append(r.ops, op{Name: "image", Page: r.page, X: x, Y: y, W: w, H: h})
}

// texts returns every drawn string in order.
func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.Name == "text" {
			out = append(out, o.Text)
		}
	}
	return out
}

// hasText reports whether s was drawn.
func (r *recorder) hasText(s string) bool {
	for _, t := range r.texts() {
		if t == s {
			return true
		}
	}
	return false
}

// maxY returns the lowest drawn coordinate, boxes included.
func (r *recorder) maxY() float64 {
	m := 0.0
	for _, o := range r.ops {
		m = max(m, o.Y+max(o.H, 0))
	}
	return m
}

// ---------------------------------------------------------------------------
// Stub image loader
// ---------------------------------------------------------------------------

// stubLoader returns images from a fixed table; unknown URLs fail (nil).
type stubLoader struct {
	mu     sync.Mutex
	table  map[string]*images.Image
	calls  []string
	cancel context.CancelFunc // when set, called on first Load
}

var _ images.Loader = (*stubLoader)(nil)

func (s *stubLoader) Load(_ context.Context, url string, _ images.Purpose) *images.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, url)
	if s.cancel != nil {
		s.cancel()
	}
	return s.table[url]
}

// img returns a stub image of the given pixel size.
func img(w, h int) *images.Image {
	return &images.Image{Data: []byte{1}, Format: images.FormatPNG, Width: w, Height: h}
}

// newTestEngine returns an engine on a fresh recorder with the first page begun.
func newTestEngine(table map[string]*images.Image, opts ...Option) (*Engine, *recorder, *stubLoader) {
	rec := &recorder{}
	loader := &stubLoader{table: table}
	e := New(rec, loader, opts...)
	e.Begin()
	return e, rec, loader
}

// entries builds n entries with short values.
func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{Label: fmt.Sprintf("Spec %d", i+1), Value: fmt.Sprintf("Value %d", i+1)}
	}
	return out
}
