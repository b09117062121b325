package specsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-specsheet/internal/assets"
	"github.com/alnah/go-specsheet/internal/dateutil"
	"github.com/alnah/go-specsheet/internal/fileutil"
	"github.com/alnah/go-specsheet/internal/images"
	"github.com/alnah/go-specsheet/internal/layout"
	"github.com/alnah/go-specsheet/internal/pipeline"
)

// Fallbacks used when product fields are blank.
const (
	fallbackName     = "Product Name"
	fallbackFileCode = "product"
	fileNameSuffix   = "-specifications.pdf"
)

// Generator assembles spec sheet PDFs. Create with NewGenerator, call
// Generate per product and Close when done. Safe for concurrent use; each
// Generate call draws its own document.
type Generator struct {
	cfg        generatorConfig
	logger     *zap.Logger
	loader     images.Loader
	rasterizer *rodRasterizer
	logos      assets.LogoLoader
	flattener  *pipeline.Flattener

	logoMu     sync.Mutex
	logo       *images.Image
	logoLoaded bool
}

// NewGenerator creates a Generator with default configuration.
// Returns an error if the asset path is invalid or a local logo cannot be
// loaded.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:      defaultTimeout,
			fetchTimeout: images.DefaultFetchTimeout,
			now:          time.Now,
		},
		logger:    zap.NewNop(),
		logos:     assets.NewEmbeddedLoader(),
		flattener: pipeline.NewFlattener(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.logos = resolver
	}

	if g.loader == nil {
		g.loader = g.newNormalizer()
	}

	// Local logos fail fast; remote ones load on first use.
	if !fileutil.IsURL(g.cfg.logo) {
		img, err := g.loadLocalLogo()
		if err != nil {
			_ = g.Close()
			return nil, err
		}
		g.logo = img
		g.logoLoaded = true
	}

	return g, nil
}

// newNormalizer builds the default image loader from the generator options.
func (g *Generator) newNormalizer() *images.Normalizer {
	opts := []images.Option{
		images.WithLogger(g.logger.Named("images")),
		images.WithFetchTimeout(g.cfg.fetchTimeout),
		images.WithObserver(g.cfg.observer),
	}
	if g.cfg.httpClient != nil {
		opts = append(opts, images.WithHTTPClient(g.cfg.httpClient))
	}
	if g.cfg.browserFallback {
		g.rasterizer = newRodRasterizer(g.cfg.fetchTimeout)
		opts = append(opts, images.WithRasterizer(g.rasterizer))
	}
	return images.NewNormalizer(opts...)
}

// Generate builds the spec sheet for input.
// The context bounds the whole generation, including every image load.
// Image failures never abort generation; they become placeholders.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("generation panicked", zap.Any("panic", r))
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrDocumentAssembly, r)
		}
	}()

	if err := g.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	cfg, err := g.layoutConfig(page)
	if err != nil {
		return nil, err
	}

	footer, err := g.footer(ctx, input.Footer)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	p := input.Product
	canvas := newFPDFCanvas(cfg.PageWidth, cfg.PageHeight, documentInfo{
		Title:   p.Name,
		Created: g.cfg.creationDate,
	})
	engine := layout.New(canvas, g.loader,
		layout.WithConfig(cfg),
		layout.WithPageHook(func(int) {
			canvas.preserve(func() { footer.draw(canvas, cfg) })
		}),
	)

	if err := g.assemble(ctx, engine, input); err != nil {
		return nil, err
	}

	data, err := canvas.Bytes()
	if err != nil {
		return nil, err
	}

	res := &Result{
		FileName:  FileName(p.Code),
		PDF:       data,
		PageCount: canvas.PageCount(),
		Blocks:    toBlocks(engine.Placements()),
	}
	g.logger.Debug("spec sheet generated",
		zap.String("product", p.ID),
		zap.String("file", res.FileName),
		zap.Int("pages", res.PageCount),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// assemble draws every section in document order, checking ctx between
// sections and applying the safety margin between major ones.
func (g *Generator) assemble(ctx context.Context, e *layout.Engine, input Input) error {
	p := input.Product

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = fallbackName
	}
	code := input.ProductCode
	if strings.TrimSpace(code) == "" {
		code = p.Code
	}

	e.Begin()
	e.Title(name, code)
	if err := e.Certificates(ctx, badges(p.Certificates)); err != nil {
		return err
	}

	description, err := g.flattener.Flatten(ctx, p.Description)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		g.logger.Debug("description not flattened, using raw text", zap.Error(err))
		description = p.Description
	}
	if err := e.Details(ctx, description, p.ImageURL); err != nil {
		return err
	}
	if err := e.Drawings(ctx, p.Diagrams); err != nil {
		return err
	}

	e.SectionBreak()
	e.Specifications(specEntries(input.Selected))
	e.SectionBreak()
	e.SectionGap()

	for _, category := range p.Features {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Features(category.Name, featureEntries(category))
	}
	e.SectionBreak()

	if len(p.Accessories) > 0 {
		if err := e.Accessories(ctx, accessoryItems(p.Accessories)); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Close releases resources (headless Chrome browser, when enabled).
func (g *Generator) Close() error {
	if g.rasterizer != nil {
		return g.rasterizer.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI and server input is validated earlier by the catalog selection, and
// both paths converge here.
func (g *Generator) validateInput(input Input) error {
	if input.Product == nil {
		return ErrMissingProduct
	}
	if strings.TrimSpace(input.Product.Name) == "" && strings.TrimSpace(input.Product.Code) == "" {
		return fmt.Errorf("%w: name or code required", ErrMissingProduct)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	return nil
}

// layoutConfig derives the page geometry from page settings.
func (g *Generator) layoutConfig(page *PageSettings) (layout.Config, error) {
	cfg := layout.DefaultConfig()

	w, h, _ := pageDimensions(page.Size)
	if strings.EqualFold(page.Orientation, OrientationLandscape) {
		w, h = h, w
	}
	cfg.PageWidth = w
	cfg.PageHeight = h
	cfg.Margin = page.Margin
	if g.cfg.thresholds != nil {
		cfg.SpanThresholds = *g.cfg.thresholds
	}

	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// footer resolves the footer of one document.
func (g *Generator) footer(ctx context.Context, f *Footer) (footerRenderer, error) {
	text := g.cfg.footerText
	var date string
	hideLogo := false

	if f != nil {
		if f.Text != "" {
			text = f.Text
		}
		resolved, err := dateutil.ResolveDate(f.Date, g.cfg.now())
		if err != nil {
			return footerRenderer{}, fmt.Errorf("%w: %v", ErrInvalidFooter, err)
		}
		date = resolved
		hideLogo = f.HideLogo
	}

	var logo *images.Image
	if !hideLogo {
		logo = g.footerLogo(ctx)
	}
	return newFooterRenderer(logo, date, text), nil
}

// footerLogo returns the footer logo, loading a remote one at most once
// successfully per Generator.
func (g *Generator) footerLogo(ctx context.Context) *images.Image {
	g.logoMu.Lock()
	defer g.logoMu.Unlock()

	if g.logoLoaded {
		return g.logo
	}
	img := g.loader.Load(ctx, g.cfg.logo, images.Icon)
	if img == nil && ctx.Err() != nil {
		return nil
	}
	if img == nil {
		g.logger.Warn("footer logo unavailable", zap.String("logo", g.cfg.logo))
	}
	g.logo = img
	g.logoLoaded = true
	return img
}

// loadLocalLogo loads a named or file logo.
func (g *Generator) loadLocalLogo() (*images.Image, error) {
	ref := g.cfg.logo

	var data []byte
	var err error
	switch {
	case fileutil.IsFilePath(ref):
		data, err = os.ReadFile(ref) // #nosec G304 -- user-provided path
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLogoNotFound, ref)
		}
	default:
		if ref == "" {
			ref = assets.DefaultLogoName
		}
		data, err = g.logos.LoadLogo(ref)
		if errors.Is(err, assets.ErrLogoNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLogoNotFound, ref)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading logo %q: %w", ref, err)
	}

	img, err := images.Decode(data, images.Icon)
	if err != nil {
		return nil, fmt.Errorf("decoding logo %q: %w", ref, err)
	}
	return img, nil
}

// FileName returns the download name for a product code:
// "{code}-specifications.pdf", or "product-specifications.pdf" when the
// code is blank or has no safe characters.
func FileName(code string) string {
	name := fileutil.SanitizeName(code)
	if name == "" {
		name = fallbackFileCode
	}
	return name + fileNameSuffix
}

// badges maps the first certificate group to strip badges.
func badges(certs []Certificate) []layout.Badge {
	if len(certs) == 0 {
		return nil
	}
	out := make([]layout.Badge, 0, len(certs[0].Values))
	for _, v := range certs[0].Values {
		out = append(out, layout.Badge{Label: v.Value, ImageURL: v.ImageURL})
	}
	return out
}

// specEntries maps selected specifications to list entries.
func specEntries(selected SelectedSpecifications) []layout.Entry {
	out := make([]layout.Entry, 0, len(selected))
	for _, s := range selected {
		out = append(out, layout.Entry{Label: s.Name, Value: s.Value})
	}
	return out
}

// featureEntries joins each feature's non-blank values with ", ".
func featureEntries(category FeatureCategory) []layout.Entry {
	out := make([]layout.Entry, 0, len(category.Items))
	for _, item := range category.Items {
		var values []string
		for _, v := range item.Values {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		out = append(out, layout.Entry{Label: item.Name, Value: strings.Join(values, ", ")})
	}
	return out
}

// accessoryItems flattens every accessory group in order.
func accessoryItems(groups []AccessoryGroup) []layout.Accessory {
	var out []layout.Accessory
	for _, group := range groups {
		for _, v := range group.Values {
			out = append(out, layout.Accessory{
				Title:     v.Value,
				ShortForm: v.ShortForm,
				ImageURL:  v.ImageURL,
			})
		}
	}
	return out
}

// toBlocks converts the layout placement log to public blocks.
func toBlocks(placements []layout.Placement) []Block {
	out := make([]Block, len(placements))
	for i, p := range placements {
		out[i] = Block{Section: p.Section, Kind: p.Kind, Page: p.Page}
	}
	return out
}
