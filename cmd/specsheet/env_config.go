package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-specsheet/internal/config"
)

const (
	envPrefix      = "SPECSHEET_"
	defaultEnvFile = ".env"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // SPECSHEET_CONFIG

	APIBaseURL   string // SPECSHEET_API_BASE_URL
	APIToken     string // SPECSHEET_API_TOKEN
	AssetBaseURL string // SPECSHEET_ASSET_BASE_URL

	OutputDir string // SPECSHEET_OUTPUT_DIR
	Workers   int    // SPECSHEET_WORKERS
	Timeout   string // SPECSHEET_TIMEOUT

	PageSize    string // SPECSHEET_PAGE_SIZE
	Orientation string // SPECSHEET_ORIENTATION

	FooterText string // SPECSHEET_FOOTER_TEXT
	FooterDate string // SPECSHEET_FOOTER_DATE
	Logo       string // SPECSHEET_LOGO

	BrowserFallback *bool // SPECSHEET_BROWSER_FALLBACK

	Addr      string // SPECSHEET_ADDR
	LogLevel  string // SPECSHEET_LOG_LEVEL
	LogFormat string // SPECSHEET_LOG_FORMAT
}

// knownEnvVars lists valid SPECSHEET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SPECSHEET_CONFIG":           true,
	"SPECSHEET_API_BASE_URL":     true,
	"SPECSHEET_API_TOKEN":        true,
	"SPECSHEET_ASSET_BASE_URL":   true,
	"SPECSHEET_OUTPUT_DIR":       true,
	"SPECSHEET_WORKERS":          true,
	"SPECSHEET_TIMEOUT":          true,
	"SPECSHEET_PAGE_SIZE":        true,
	"SPECSHEET_ORIENTATION":      true,
	"SPECSHEET_FOOTER_TEXT":      true,
	"SPECSHEET_FOOTER_DATE":      true,
	"SPECSHEET_LOGO":             true,
	"SPECSHEET_BROWSER_FALLBACK": true,
	"SPECSHEET_ADDR":             true,
	"SPECSHEET_LOG_LEVEL":        true,
	"SPECSHEET_LOG_FORMAT":       true,
}

// loadDotEnv loads path into the process environment without overriding
// variables already set. A missing default file is not an error.
func loadDotEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidEnv, path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are reported rather than ignored.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("SPECSHEET_CONFIG"),
		APIBaseURL:   os.Getenv("SPECSHEET_API_BASE_URL"),
		APIToken:     os.Getenv("SPECSHEET_API_TOKEN"),
		AssetBaseURL: os.Getenv("SPECSHEET_ASSET_BASE_URL"),
		OutputDir:    os.Getenv("SPECSHEET_OUTPUT_DIR"),
		Timeout:      os.Getenv("SPECSHEET_TIMEOUT"),
		PageSize:     os.Getenv("SPECSHEET_PAGE_SIZE"),
		Orientation:  os.Getenv("SPECSHEET_ORIENTATION"),
		FooterText:   os.Getenv("SPECSHEET_FOOTER_TEXT"),
		FooterDate:   os.Getenv("SPECSHEET_FOOTER_DATE"),
		Logo:         os.Getenv("SPECSHEET_LOGO"),
		Addr:         os.Getenv("SPECSHEET_ADDR"),
		LogLevel:     os.Getenv("SPECSHEET_LOG_LEVEL"),
		LogFormat:    os.Getenv("SPECSHEET_LOG_FORMAT"),
	}

	if workers := os.Getenv("SPECSHEET_WORKERS"); workers != "" {
		w, err := strconv.Atoi(workers)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: SPECSHEET_WORKERS=%q", ErrInvalidEnv, workers)
		}
		cfg.Workers = w
	}

	if fallback := os.Getenv("SPECSHEET_BROWSER_FALLBACK"); fallback != "" {
		b, err := strconv.ParseBool(fallback)
		if err != nil {
			return nil, fmt.Errorf("%w: SPECSHEET_BROWSER_FALLBACK=%q", ErrInvalidEnv, fallback)
		}
		cfg.BrowserFallback = &b
	}

	return cfg, nil
}

// warnUnknownEnvVars warns about unrecognized SPECSHEET_* variables.
// Helps catch typos like SPECSHEET_API_URL instead of SPECSHEET_API_BASE_URL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.API.BaseURL, env.APIBaseURL)
	setString(&cfg.API.Token, env.APIToken)
	setString(&cfg.API.AssetBaseURL, env.AssetBaseURL)
	setString(&cfg.Output.Dir, env.OutputDir)
	setString(&cfg.Layout.Timeout, env.Timeout)
	setString(&cfg.Page.Size, env.PageSize)
	setString(&cfg.Page.Orientation, env.Orientation)
	setString(&cfg.Footer.Text, env.FooterText)
	setString(&cfg.Footer.Date, env.FooterDate)
	setString(&cfg.Footer.Logo, env.Logo)
	setString(&cfg.Server.Addr, env.Addr)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Log.Format, env.LogFormat)

	if env.Workers > 0 {
		cfg.Output.Workers = env.Workers
		cfg.Server.Workers = env.Workers
	}
	if env.BrowserFallback != nil {
		cfg.Images.BrowserFallback = *env.BrowserFallback
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
