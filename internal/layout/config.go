package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid layout config")

// A4 portrait dimensions in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// DefaultSpanThresholds are the aspect ratio multiples (relative to one grid
// cell) at which a diagram spans 2, 3 and 4 columns.
var DefaultSpanThresholds = [3]float64{2, 3, 4}

// Config holds page geometry in millimetres.
type Config struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// FooterHeight is reserved above the bottom margin for the running footer.
	FooterHeight float64

	// SafetyMargin triggers a page break between major sections when less
	// than this distance remains to the page edge.
	SafetyMargin float64

	SpanThresholds [3]float64
}

// DefaultConfig returns A4 portrait with 15mm margins.
func DefaultConfig() Config {
	return Config{
		PageWidth:      A4Width,
		PageHeight:     A4Height,
		Margin:         15,
		FooterHeight:   8,
		SafetyMargin:   50,
		SpanThresholds: DefaultSpanThresholds,
	}
}

// ContentWidth is the page width between margins.
func (c Config) ContentWidth() float64 {
	return c.PageWidth - 2*c.Margin
}

// Bottom is the lowest y a block may reach.
func (c Config) Bottom() float64 {
	return c.PageHeight - c.Margin - c.FooterHeight
}

// Validate checks the geometry leaves room for content and that span
// thresholds are positive and ascending.
func (c Config) Validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("%w: page size %vx%v", ErrInvalidConfig, c.PageWidth, c.PageHeight)
	}
	if c.Margin < 0 || c.ContentWidth() < 80 {
		return fmt.Errorf("%w: margin %v leaves no content width", ErrInvalidConfig, c.Margin)
	}
	if c.Bottom()-c.Margin < 100 {
		return fmt.Errorf("%w: margin %v leaves no content height", ErrInvalidConfig, c.Margin)
	}
	prev := 0.0
	for i, t := range c.SpanThresholds {
		if t <= prev {
			return fmt.Errorf("%w: span threshold %d (%v) must be greater than %v", ErrInvalidConfig, i+2, t, prev)
		}
		prev = t
	}
	return nil
}
