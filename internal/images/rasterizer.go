package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"net/http"

	"github.com/disintegration/imaging"
)

// Rasterizer is the fallback path: it loads url by other means and returns
// the picture drawn on an opaque white surface.
type Rasterizer interface {
	Rasterize(ctx context.Context, url string) (image.Image, error)
}

// Compile-time interface check.
var _ Rasterizer = (*HTTPRasterizer)(nil)

// HTTPRasterizer re-downloads the (cache-busted) URL and redraws it onto a
// white surface at its natural size. It recovers from stale or truncated
// cached responses, not from cross-origin restrictions; use a browser
// rasterizer for those.
type HTTPRasterizer struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPRasterizer creates an HTTPRasterizer using client.
func NewHTTPRasterizer(client *http.Client) *HTTPRasterizer {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPRasterizer{client: client, maxBytes: DefaultMaxBytes}
}

// Rasterize downloads url and draws it centered on a white surface.
func (r *HTTPRasterizer) Rasterize(ctx context.Context, url string) (image.Image, error) {
	data, err := download(ctx, r.client, url, r.maxBytes)
	if err != nil {
		return nil, err
	}

	cfg, _, cfgErr := image.DecodeConfig(bytes.NewReader(data))
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	natW, natH := 0, 0
	if cfgErr == nil {
		natW, natH = cfg.Width, cfg.Height
	}
	w, h := SurfaceSize(natW, natH)

	surface := imaging.New(w, h, color.White)
	if b := src.Bounds(); b.Dx() != w || b.Dy() != h {
		src = imaging.Fit(src, w, h, imaging.Lanczos)
	}
	return imaging.OverlayCenter(surface, src, 1.0), nil
}
