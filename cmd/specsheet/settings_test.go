package main

import (
	"errors"
	"io"
	"testing"

	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/images"
)

// ---------------------------------------------------------------------------
// TestFlagAppliers - Only flags given on the command line override config
// ---------------------------------------------------------------------------

func TestFlagAppliers(t *testing.T) {
	t.Parallel()

	f, _, err := parseGenerateFlags([]string{"-p", "legal", "--no-logo", "--browser-fallback", "--token", "t0k"}, io.Discard)
	if err != nil {
		t.Fatalf("parseGenerateFlags() error = %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Page.Orientation = "landscape"
	cfg.API.BaseURL = "https://from-config.example.com"

	applyAPIFlags(&f.common, &f.api, cfg)
	applyPageFlags(&f.common, &f.page, cfg)
	applyFooterFlags(&f.common, &f.footer, cfg)
	applyRenderFlags(&f.common, &f.render, cfg)

	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q, want legal", cfg.Page.Size)
	}
	if cfg.Page.Orientation != "landscape" {
		t.Errorf("unset flag overrode Page.Orientation: %q", cfg.Page.Orientation)
	}
	if cfg.Page.Margin != config.DefaultMargin {
		t.Errorf("unset flag overrode Page.Margin: %v", cfg.Page.Margin)
	}
	if cfg.API.BaseURL != "https://from-config.example.com" || cfg.API.Token != "t0k" {
		t.Errorf("API = %+v", cfg.API)
	}
	if !cfg.Footer.HideLogo || !cfg.Images.BrowserFallback {
		t.Errorf("bool flags not applied: HideLogo=%v BrowserFallback=%v", cfg.Footer.HideLogo, cfg.Images.BrowserFallback)
	}
}

func TestApplyCommonFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantLevel string
	}{
		{"default", nil, "info"},
		{"log level", []string{"--log-level", "warn"}, "warn"},
		{"verbose wins", []string{"--log-level", "warn", "-v"}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := parseDoctorFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			cfg := config.DefaultConfig()
			applyCommonFlags(&f.common, cfg)
			if cfg.Log.Level != tt.wantLevel {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, tt.wantLevel)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageAndFooterSettings
// ---------------------------------------------------------------------------

func TestPageSettings(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Page.Size = "letter"
	cfg.Page.Margin = 0

	ps := pageSettings(cfg)
	if ps.Size != "letter" || ps.Orientation != config.DefaultOrientation {
		t.Errorf("pageSettings() = %+v", ps)
	}
	if ps.Margin != specsheet.DefaultMargin {
		t.Errorf("Margin = %v, want default %v", ps.Margin, specsheet.DefaultMargin)
	}
}

func TestFooterSettings(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Footer = config.FooterConfig{Text: "Acme", Date: "auto:iso", HideLogo: true}

	got := footerSettings(cfg)
	want := &specsheet.Footer{Text: "Acme", Date: "auto:iso", HideLogo: true}
	if *got != *want {
		t.Errorf("footerSettings() = %+v, want %+v", got, want)
	}
}

func TestGeneratorOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	base := len(generatorOptions(cfg, zap.NewNop(), nil))

	cfg.Assets.BasePath = "/srv/assets"
	cfg.Footer.Logo = "acme"
	cfg.Layout.SpanThresholds = []float64{0.3, 0.6, 0.9}
	observer := images.Observer(func(images.Purpose, string) {})
	full := len(generatorOptions(cfg, zap.NewNop(), observer))

	if full != base+4 {
		t.Errorf("options = %d, want %d", full, base+4)
	}

	cfg.Layout.SpanThresholds = []float64{0.3}
	if n := len(generatorOptions(cfg, zap.NewNop(), observer)); n != base+3 {
		t.Errorf("partial thresholds: options = %d, want %d", n, base+3)
	}
}

// ---------------------------------------------------------------------------
// TestNewCatalog
// ---------------------------------------------------------------------------

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		wantErr error
	}{
		{"missing", "", ErrMissingAPI},
		{"invalid", "ftp://example.com", catalog.ErrInvalidBaseURL},
		{"valid", "https://api.example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.API.BaseURL = tt.baseURL

			cat, err := newCatalog(cfg, zap.NewNop())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || cat == nil {
				t.Errorf("newCatalog() = %v, %v", cat, err)
			}
		})
	}
}
