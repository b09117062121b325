package images

import "fmt"

// Encoded formats produced by the normalizer.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// Image is a normalized, embeddable raster payload.
type Image struct {
	Data   []byte
	Format string // FormatJPEG or FormatPNG
	Width  int    // pixels
	Height int    // pixels
}

// AspectRatio returns width/height, or 1 for a degenerate image.
func (i *Image) AspectRatio() float64 {
	if i == nil || i.Width <= 0 || i.Height <= 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// Purpose selects the resolution and encoding profile for a load.
type Purpose int

const (
	// Photo is a product photograph: JPEG, moderate resolution.
	Photo Purpose = iota
	// Diagram is technical line art: PNG, oversampled for print fidelity.
	Diagram
	// Icon is a small badge or logo: PNG, low resolution.
	Icon
)

// String returns the purpose name used in cache keys and logs.
func (p Purpose) String() string {
	switch p {
	case Photo:
		return "photo"
	case Diagram:
		return "diagram"
	case Icon:
		return "icon"
	default:
		return fmt.Sprintf("purpose(%d)", int(p))
	}
}

// profile describes how an image of a given purpose is resized and encoded.
type profile struct {
	maxW, maxH int
	oversample float64
	format     string
}

// profiles maps purposes to their pixel boxes. Diagrams are oversampled 2x
// so thin lines survive printing.
var profiles = map[Purpose]profile{
	Photo:   {maxW: 800, maxH: 800, oversample: 1, format: FormatJPEG},
	Diagram: {maxW: 600, maxH: 600, oversample: 2, format: FormatPNG},
	Icon:    {maxW: 200, maxH: 200, oversample: 1, format: FormatPNG},
}

func profileFor(p Purpose) profile {
	if pr, ok := profiles[p]; ok {
		return pr
	}
	return profiles[Photo]
}
