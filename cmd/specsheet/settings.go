package main

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/fileutil"
	"github.com/alnah/go-specsheet/internal/hints"
	"github.com/alnah/go-specsheet/internal/images"
	"github.com/alnah/go-specsheet/internal/logging"
	"github.com/alnah/go-specsheet/internal/server"
)

// loadSettings layers the configuration sources below the command line:
// dotenv file, SPECSHEET_* variables, then the config file over defaults.
func loadSettings(c *commonFlags, env *Environment) (*config.Config, error) {
	if err := loadDotEnv(c.envFile, c.set["env-file"]); err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr)

	ec, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	path := c.config
	if path == "" {
		path = ec.ConfigPath
	}
	if path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(path) {
				return nil, withHint(err, hints.ForConfigNotFound(config.SearchPaths(path)))
			}
			return nil, err
		}
	}

	applyEnvConfig(ec, cfg)
	applyCommonFlags(c, cfg)
	return cfg, nil
}

func applyCommonFlags(c *commonFlags, cfg *config.Config) {
	if c.set["log-level"] {
		cfg.Log.Level = c.logLevel
	}
	if c.set["log-format"] {
		cfg.Log.Format = c.logFormat
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
}

func applyAPIFlags(c *commonFlags, f *apiFlags, cfg *config.Config) {
	if c.set["api"] {
		cfg.API.BaseURL = f.baseURL
	}
	if c.set["token"] {
		cfg.API.Token = f.token
	}
	if c.set["asset-base"] {
		cfg.API.AssetBaseURL = f.assetBase
	}
}

func applyPageFlags(c *commonFlags, f *pageFlags, cfg *config.Config) {
	if c.set["page-size"] {
		cfg.Page.Size = f.size
	}
	if c.set["orientation"] {
		cfg.Page.Orientation = f.orientation
	}
	if c.set["margin"] {
		cfg.Page.Margin = f.margin
	}
}

func applyFooterFlags(c *commonFlags, f *footerFlags, cfg *config.Config) {
	if c.set["footer-text"] {
		cfg.Footer.Text = f.text
	}
	if c.set["footer-date"] {
		cfg.Footer.Date = f.date
	}
	if c.set["logo"] {
		cfg.Footer.Logo = f.logo
	}
	if c.set["no-logo"] {
		cfg.Footer.HideLogo = f.noLogo
	}
}

func applyRenderFlags(c *commonFlags, f *renderFlags, cfg *config.Config) {
	if c.set["timeout"] {
		cfg.Layout.Timeout = f.timeout
	}
	if c.set["fetch-timeout"] {
		cfg.Images.FetchTimeout = f.fetchTimeout
	}
	if c.set["browser-fallback"] {
		cfg.Images.BrowserFallback = f.browserFallback
	}
	if c.set["asset-path"] {
		cfg.Assets.BasePath = f.assetPath
	}
}

// newLogger builds the zap logger from the resolved log settings.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	return logger, nil
}

// generatorOptions maps the configuration onto generator options.
func generatorOptions(cfg *config.Config, logger *zap.Logger, observer images.Observer) []specsheet.Option {
	opts := []specsheet.Option{
		specsheet.WithLogger(logger.Named("generator")),
		specsheet.WithTimeout(cfg.GenerationTimeout()),
		specsheet.WithFetchTimeout(cfg.FetchTimeout()),
		specsheet.WithBrowserFallback(cfg.Images.BrowserFallback),
		specsheet.WithFooterText(cfg.Footer.Text),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, specsheet.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Footer.Logo != "" {
		opts = append(opts, specsheet.WithLogo(cfg.Footer.Logo))
	}
	if t := cfg.Layout.SpanThresholds; len(t) == 3 {
		opts = append(opts, specsheet.WithSpanThresholds([3]float64{t[0], t[1], t[2]}))
	}
	if observer != nil {
		opts = append(opts, specsheet.WithObserver(observer))
	}
	return opts
}

func pageSettings(cfg *config.Config) *specsheet.PageSettings {
	margin := cfg.Page.Margin
	if margin == 0 {
		margin = specsheet.DefaultMargin
	}
	return &specsheet.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      margin,
	}
}

func footerSettings(cfg *config.Config) *specsheet.Footer {
	return &specsheet.Footer{
		Text:     cfg.Footer.Text,
		Date:     cfg.Footer.Date,
		HideLogo: cfg.Footer.HideLogo,
	}
}

// newCatalog builds the product API client.
func newCatalog(cfg *config.Config, logger *zap.Logger) (server.Catalog, error) {
	if cfg.API.BaseURL == "" {
		return nil, withHint(ErrMissingAPI, hints.ForAPI(""))
	}
	client, err := catalog.NewClient(cfg.API.BaseURL,
		catalog.WithToken(cfg.API.Token),
		catalog.WithLogger(logger.Named("catalog")),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout()}),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
