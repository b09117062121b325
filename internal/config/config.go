package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-specsheet/internal/dateutil"
	"github.com/alnah/go-specsheet/internal/logging"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxTokenLength       = 4096 // JWTs can be long
	MaxPathLength        = 4096
	MaxDateLength        = 30  // "2025-12-31" or "auto:MMMM D, YYYY"
	MaxTextLength        = 200 // Footer text
	MaxPageSizeLength    = 10  // "letter", "a4", "legal"
	MaxOrientationLength = 10  // "portrait", "landscape"
	MaxAddrLength        = 255
)

// Defaults applied by DefaultConfig.
const (
	DefaultServerAddr   = ":8080"
	DefaultOutputDir    = "."
	DefaultPageSize     = "a4"
	DefaultOrientation  = "portrait"
	DefaultMargin       = 15.0
	DefaultAPITimeout   = "30s"
	DefaultFetchTimeout = "15s"
	DefaultGenTimeout   = "2m"
)

// Config holds all configuration for spec sheet generation.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
	Footer FooterConfig `yaml:"footer"`
	Images ImagesConfig `yaml:"images"`
	Layout LayoutConfig `yaml:"layout"`
	Assets AssetsConfig `yaml:"assets"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig points at the product backend.
type APIConfig struct {
	BaseURL      string `yaml:"baseURL"`      // e.g. https://api.example.com
	Token        string `yaml:"token"`        // Optional bearer token
	AssetBaseURL string `yaml:"assetBaseURL"` // Base for relative image URLs (default: baseURL)
	Timeout      string `yaml:"timeout"`      // Per request (default: 30s)
}

// OutputConfig defines where generated files go.
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // Default: current directory
	Workers int    `yaml:"workers"` // 0 = auto
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // millimetres (default: 15)
}

// FooterConfig defines the running footer.
type FooterConfig struct {
	Text     string `yaml:"text"`     // Company line, e.g. "Acme Lighting - acme.example"
	Date     string `yaml:"date"`     // Literal, "auto" or "auto:FORMAT"; empty hides it
	Logo     string `yaml:"logo"`     // Logo name, file path or URL (default: embedded)
	HideLogo bool   `yaml:"hideLogo"` // Drop the logo entirely
}

// ImagesConfig tunes image acquisition.
type ImagesConfig struct {
	FetchTimeout    string `yaml:"fetchTimeout"`    // Per image (default: 15s)
	BrowserFallback bool   `yaml:"browserFallback"` // Rasterize in headless Chrome when a fetch fails
}

// LayoutConfig tunes the page layout.
type LayoutConfig struct {
	Timeout        string    `yaml:"timeout"`        // Whole document (default: 2m)
	SpanThresholds []float64 `yaml:"spanThresholds"` // Three ascending ratios, empty = built-in
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr    string `yaml:"addr"`    // Listen address (default: ":8080")
	Workers int    `yaml:"workers"` // Concurrent generations, 0 = auto
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // json or console (default: console)
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"api.baseURL", c.API.BaseURL, MaxURLLength},
		{"api.token", c.API.Token, MaxTokenLength},
		{"api.assetBaseURL", c.API.AssetBaseURL, MaxURLLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"footer.logo", c.Footer.Logo, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateURL("api.baseURL", c.API.BaseURL); err != nil {
		return err
	}
	if err := validateURL("api.assetBaseURL", c.API.AssetBaseURL); err != nil {
		return err
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "a4", "letter", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < 5 || c.Page.Margin > 40) {
		return fmt.Errorf("%w: page.margin %.1f (must be between 5 and 40 mm)", ErrInvalidValue, c.Page.Margin)
	}

	if err := dateutil.Validate(c.Footer.Date); err != nil {
		return fmt.Errorf("%w: footer.date: %v", ErrInvalidValue, err)
	}

	for field, value := range map[string]string{
		"api.timeout":         c.API.Timeout,
		"images.fetchTimeout": c.Images.FetchTimeout,
		"layout.timeout":      c.Layout.Timeout,
	} {
		if _, err := parseDuration(field, value); err != nil {
			return err
		}
	}

	if n := len(c.Layout.SpanThresholds); n != 0 {
		if n != 3 {
			return fmt.Errorf("%w: layout.spanThresholds needs 3 values, got %d", ErrInvalidValue, n)
		}
		t := c.Layout.SpanThresholds
		if t[0] <= 0 || t[0] >= t[1] || t[1] >= t[2] {
			return fmt.Errorf("%w: layout.spanThresholds must be positive and ascending, got %v", ErrInvalidValue, t)
		}
	}

	if c.Output.Workers < 0 {
		return fmt.Errorf("%w: output.workers must be >= 0, got %d", ErrInvalidValue, c.Output.Workers)
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("%w: server.workers must be >= 0, got %d", ErrInvalidValue, c.Server.Workers)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: log.format %q (must be json or console)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// APITimeout returns the parsed API timeout.
func (c *Config) APITimeout() time.Duration {
	return mustDuration(c.API.Timeout, DefaultAPITimeout)
}

// FetchTimeout returns the parsed per-image timeout.
func (c *Config) FetchTimeout() time.Duration {
	return mustDuration(c.Images.FetchTimeout, DefaultFetchTimeout)
}

// GenerationTimeout returns the parsed whole-document timeout.
func (c *Config) GenerationTimeout() time.Duration {
	return mustDuration(c.Layout.Timeout, DefaultGenTimeout)
}

// AssetBase returns the base for relative asset URLs.
func (c *Config) AssetBase() string {
	if c.API.AssetBaseURL != "" {
		return c.API.AssetBaseURL
	}
	return c.API.BaseURL
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return nil
	}
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return fmt.Errorf("%w: %s %q (must start with http:// or https://)", ErrInvalidValue, field, value)
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q (use a positive duration like 30s or 2m)", ErrInvalidValue, field, value)
	}
	return d, nil
}

// mustDuration parses value, falling back to def. Values are checked by
// Validate first.
func mustDuration(value, def string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(def)
	return d
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		API:    APIConfig{Timeout: DefaultAPITimeout},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Page: PageConfig{
			Size:        DefaultPageSize,
			Orientation: DefaultOrientation,
			Margin:      DefaultMargin,
		},
		Images: ImagesConfig{FetchTimeout: DefaultFetchTimeout},
		Layout: LayoutConfig{Timeout: DefaultGenTimeout},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Level: "info", Format: logging.FormatConsole},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order: the
// current directory, then the user config directory (~/.config/go-specsheet
// on Linux), each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-specsheet", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
