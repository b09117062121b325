package specsheet

import (
	"fmt"
	"strings"
)

// Product is a catalog product as supplied by the backend. The generator
// only reads it.
type Product struct {
	ID           string
	Name         string
	Code         string
	Description  string // plain text, Markdown or HTML
	ImageURL     string
	Diagrams     []string // technical drawing URLs, in display order
	Certificates []Certificate
	Accessories  []AccessoryGroup
	Features     []FeatureCategory
}

// Certificate is a certification group; its values are the badges shown
// next to the title.
type Certificate struct {
	Name   string
	Values []CertificateValue
}

// CertificateValue is one certification badge.
type CertificateValue struct {
	Value    string
	ImageURL string
}

// AccessoryGroup groups optional add-on products.
type AccessoryGroup struct {
	ID     string
	Name   string
	Values []Accessory
}

// Accessory is one add-on product.
type Accessory struct {
	ID        string
	Value     string
	ShortForm string
	ImageURL  string
}

// FeatureCategory is a titled group of product features.
type FeatureCategory struct {
	Name  string
	Items []Feature
}

// Feature is a named feature with one or more selected values.
type Feature struct {
	Name   string
	Values []string
}

// Specification is one selected specification.
type Specification struct {
	Name  string
	Value string
}

// SelectedSpecifications is the ordered list of specifications chosen for
// the product variant. Order is display order.
type SelectedSpecifications []Specification

// NonEmpty returns the specifications whose value is not blank.
func (s SelectedSpecifications) NonEmpty() SelectedSpecifications {
	out := make(SelectedSpecifications, 0, len(s))
	for _, spec := range s {
		if strings.TrimSpace(spec.Value) != "" {
			out = append(out, spec)
		}
	}
	return out
}

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in millimetres.
const (
	MinMargin     = 5.0
	MaxMargin     = 40.0
	DefaultMargin = 15.0
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // millimetres, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 15mm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, _, ok := pageDimensions(p.Size); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.1f (must be between %.0f and %.0f mm)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// pageDimensions returns portrait width and height in millimetres.
func pageDimensions(size string) (w, h float64, ok bool) {
	switch strings.ToLower(size) {
	case PageSizeA4:
		return 210, 297, true
	case PageSizeLetter:
		return 215.9, 279.4, true
	case PageSizeLegal:
		return 215.9, 355.6, true
	default:
		return 0, 0, false
	}
}

// MaxFooterTextLength caps the footer text.
const MaxFooterTextLength = 200

// Footer configures the running footer drawn on every page.
type Footer struct {
	Text     string // identifying text, e.g. company name and website
	Date     string // literal date, "auto" or "auto:FORMAT"; empty hides it
	HideLogo bool
}

// Validate checks footer fields.
// Returns nil if f is nil.
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	if len(f.Text) > MaxFooterTextLength {
		return fmt.Errorf("%w: text exceeds %d characters", ErrInvalidFooter, MaxFooterTextLength)
	}
	return nil
}

// Input is one spec sheet request.
type Input struct {
	Product  *Product
	Selected SelectedSpecifications

	// ProductCode overrides the code printed under the title, typically the
	// base code followed by the selected specification codes. Defaults to
	// Product.Code.
	ProductCode string

	Page   *PageSettings // nil = A4 portrait
	Footer *Footer       // nil = default footer text, logo, no date
}

// Block is one entry of a document's block order.
type Block struct {
	Section string
	Kind    string
	Page    int
}

// Result is a generated spec sheet.
type Result struct {
	FileName  string
	PDF       []byte
	PageCount int
	Blocks    []Block
}
