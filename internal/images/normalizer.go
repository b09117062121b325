package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-specsheet/internal/cache"
)

// Load outcomes reported to the Observer.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// Defaults for the normalizer.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBytes     = 20 << 20
	DefaultCacheTTL     = 10 * time.Minute
	DefaultCacheSize    = 256
	jpegQuality         = 90
)

// Loader is the nullable image contract consumed by the layout engine.
type Loader interface {
	Load(ctx context.Context, url string, purpose Purpose) *Image
}

// Observer receives the outcome of every Load call.
type Observer func(purpose Purpose, outcome string)

// Compile-time interface check.
var _ Loader = (*Normalizer)(nil)

// Normalizer fetches, decodes and re-encodes remote images.
// Safe for concurrent use.
type Normalizer struct {
	client       *http.Client
	rasterizer   Rasterizer
	customRaster bool
	cache        cache.Cache[string, *Image]
	cacheTTL     time.Duration
	group        singleflight.Group
	logger       *zap.Logger
	observer     Observer
	now          func() time.Time
	fetchTimeout time.Duration
	maxBytes     int64
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithHTTPClient sets the client used for direct fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Normalizer) {
		if c != nil {
			n.client = c
		}
	}
}

// WithRasterizer sets the fallback rasterizer. nil disables the fallback.
func WithRasterizer(r Rasterizer) Option {
	return func(n *Normalizer) {
		n.rasterizer = r
		n.customRaster = true
	}
}

// WithCache replaces the image cache and its entry TTL.
func WithCache(c cache.Cache[string, *Image], ttl time.Duration) Option {
	return func(n *Normalizer) {
		if c != nil {
			n.cache = c
		}
		n.cacheTTL = ttl
	}
}

// WithLogger sets the logger. Failures are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithObserver registers a callback for load outcomes.
func WithObserver(o Observer) Option {
	return func(n *Normalizer) {
		n.observer = o
	}
}

// WithFetchTimeout bounds a single direct fetch. <= 0 disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(n *Normalizer) {
		n.fetchTimeout = d
	}
}

// WithMaxBytes caps the downloaded payload size.
func WithMaxBytes(limit int64) Option {
	return func(n *Normalizer) {
		if limit > 0 {
			n.maxBytes = limit
		}
	}
}

// withClock overrides the clock used for cache busting (tests).
func withClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// NewNormalizer creates a Normalizer. By default it falls back to the HTTP
// rasterizer sharing the fetch client, and caches in memory with a TTL.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		client:       &http.Client{},
		cache:        cache.NewTTLCache[string, *Image](DefaultCacheSize),
		cacheTTL:     DefaultCacheTTL,
		logger:       zap.NewNop(),
		now:          time.Now,
		fetchTimeout: DefaultFetchTimeout,
		maxBytes:     DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(n)
	}
	if !n.customRaster {
		n.rasterizer = NewHTTPRasterizer(n.client)
	}
	return n
}

// Load returns a normalized image for url, or nil on any failure.
// It never panics outward; a cancelled ctx yields nil.
func (n *Normalizer) Load(ctx context.Context, url string, purpose Purpose) (img *Image) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("image load panicked", zap.String("url", url), zap.Any("panic", r))
			n.observe(purpose, OutcomeFailed)
			img = nil
		}
	}()

	if url == "" {
		return nil
	}

	key := purpose.String() + "|" + url
	if cached, ok := n.cache.Get(key); ok {
		n.observe(purpose, OutcomeCached)
		return cached
	}

	if ctx.Err() != nil {
		return nil
	}

	// The load is shared by every caller of the same key, so it must not
	// stop when the first caller goes away. Each caller leaves through its
	// own ctx below.
	ch := n.group.DoChan(key, func() (any, error) {
		shared, cancel := n.sharedContext(ctx)
		defer cancel()

		img, outcome, err := n.load(shared, url, purpose)
		n.observe(purpose, outcome)
		if err != nil {
			return nil, err
		}
		n.cache.Set(key, img, n.cacheTTL)
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		if res.Err != nil {
			n.logger.Debug("image unavailable, using placeholder",
				zap.String("url", url),
				zap.Stringer("purpose", purpose),
				zap.Error(res.Err))
			return nil
		}
		return res.Val.(*Image)
	}
}

// sharedContext detaches ctx from its caller's cancellation. With a fetch
// timeout set, the whole load (direct fetch plus fallback) is bounded by
// twice that timeout.
func (n *Normalizer) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if n.fetchTimeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, 2*n.fetchTimeout)
}

// load runs the direct path, then the fallback path.
func (n *Normalizer) load(ctx context.Context, url string, purpose Purpose) (*Image, string, error) {
	src, err := n.fetch(ctx, url)
	if err == nil {
		img, encErr := encode(src, purpose)
		if encErr == nil {
			return img, OutcomeOK, nil
		}
		err = encErr
	}
	if ctx.Err() != nil {
		return nil, OutcomeFailed, ctx.Err()
	}

	n.logger.Debug("direct image fetch failed, trying fallback",
		zap.String("url", url), zap.Error(err))

	if n.rasterizer == nil {
		return nil, OutcomeFailed, errors.Join(err, ErrNoRasterizer)
	}
	src, rerr := n.rasterizer.Rasterize(ctx, CacheBust(url, n.now()))
	if rerr != nil {
		return nil, OutcomeFailed, errors.Join(err, rerr)
	}
	img, encErr := encode(src, purpose)
	if encErr != nil {
		return nil, OutcomeFailed, encErr
	}
	return img, OutcomeFallback, nil
}

// fetch downloads and decodes url with cache-defeating headers.
func (n *Normalizer) fetch(ctx context.Context, url string) (image.Image, error) {
	if n.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.fetchTimeout)
		defer cancel()
	}

	data, err := download(ctx, n.client, url, n.maxBytes)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return src, nil
}

// download performs a no-cache GET and reads at most maxBytes.
func download(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := client.Do(req) // #nosec G107 -- URL comes from the product catalog
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// encode flattens src onto white, downscales it for purpose and encodes it.
func encode(src image.Image, purpose Purpose) (*Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty bounds", ErrDecode)
	}

	pr := profileFor(purpose)
	flat := Flatten(src)

	w, h := TargetSize(b.Dx(), b.Dy(), pr.maxW, pr.maxH, pr.oversample)
	var out image.Image = flat
	if w != b.Dx() || h != b.Dy() {
		out = imaging.Resize(flat, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	var err error
	switch pr.format {
	case FormatPNG:
		err = imaging.Encode(&buf, out, imaging.PNG)
	default:
		err = imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return &Image{
		Data:   buf.Bytes(),
		Format: pr.format,
		Width:  w,
		Height: h,
	}, nil
}

// Flatten draws src onto an opaque white surface of the same size.
func Flatten(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(dst, src, image.Pt(0, 0), 1.0)
}

func (n *Normalizer) observe(purpose Purpose, outcome string) {
	if n.observer != nil {
		n.observer(purpose, outcome)
	}
}

// Decode normalizes an in-memory image payload for purpose, for assets that
// do not come from a URL such as the embedded footer logo.
func Decode(data []byte, purpose Purpose) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return encode(src, purpose)
}
