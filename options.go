package specsheet

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-specsheet/internal/images"
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout         time.Duration
	fetchTimeout    time.Duration
	httpClient      *http.Client
	browserFallback bool
	assetPath       string
	logo            string
	thresholds      *[3]float64
	observer        images.Observer
	creationDate    time.Time
	footerText      string
	now             func() time.Time
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 2 * time.Minute

// WithTimeout bounds one whole generation.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("specsheet: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithFetchTimeout bounds a single image fetch.
// Panics if d <= 0.
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("specsheet: WithFetchTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.fetchTimeout = d
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithHTTPClient sets the client used for image and logo downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) {
		g.cfg.httpClient = c
	}
}

// WithBrowserFallback rasterizes images the Go decoders reject in headless
// Chrome instead of refetching them over plain HTTP.
func WithBrowserFallback(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.browserFallback = enabled
	}
}

// WithImageLoader replaces the image normalizer entirely. The other image
// options are then ignored.
func WithImageLoader(l images.Loader) Option {
	return func(g *Generator) {
		g.loader = l
	}
}

// WithAssetPath sets a directory whose logos/ folder overrides the embedded
// logos.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithLogo selects the footer logo: a logo name, a file path or an
// http(s) URL.
func WithLogo(logo string) Option {
	return func(g *Generator) {
		g.cfg.logo = logo
	}
}

// WithFooterText sets the default footer text used when Input.Footer has none.
func WithFooterText(text string) Option {
	return func(g *Generator) {
		g.cfg.footerText = text
	}
}

// WithSpanThresholds sets the aspect-ratio thresholds at which a drawing
// spans 2, 3 or 4 grid columns.
func WithSpanThresholds(thresholds [3]float64) Option {
	return func(g *Generator) {
		g.cfg.thresholds = &thresholds
	}
}

// WithObserver receives the outcome of every image load.
func WithObserver(o images.Observer) Option {
	return func(g *Generator) {
		g.cfg.observer = o
	}
}

// WithCreationDate stamps the PDF metadata with t. By default a fixed date
// is used so identical input produces identical bytes.
func WithCreationDate(t time.Time) Option {
	return func(g *Generator) {
		g.cfg.creationDate = t
	}
}

// withClock overrides the clock used for "auto" footer dates in tests.
func withClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.cfg.now = now
	}
}
