package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"missing api", ErrMissingAPI, ExitUsage},
		{"bad env", ErrInvalidEnv, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config invalid", config.ErrInvalidValue, ExitUsage},
		{"product not found", catalog.ErrNotFound, ExitUsage},
		{"bad choice", catalog.ErrInvalidChoice, ExitUsage},
		{"unavailable spec", catalog.ErrUnavailableSpec, ExitUsage},
		{"page size", specsheet.ErrInvalidPageSize, ExitUsage},
		{"logo", specsheet.ErrLogoNotFound, ExitUsage},
		{"read product", ErrReadProduct, ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"upstream", catalog.ErrUpstream, ExitUpstream},
		{"decode", catalog.ErrDecode, ExitUpstream},
		{"browser", specsheet.ErrBrowserConnect, ExitUpstream},
		{"rasterize", specsheet.ErrRasterize, ExitUpstream},
		{"wrapped", fmt.Errorf("fetching: %w", catalog.ErrUpstream), ExitUpstream},
		{"batch keeps first cause", fmt.Errorf("%w: 1 of 2: %w", ErrBatchFailed, ErrWritePDF), ExitIO},
		{"hinted", withHint(ErrMissingAPI, "\n  hint: x"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWithHint
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	t.Run("nil error stays nil", func(t *testing.T) {
		t.Parallel()
		if err := withHint(nil, "hint"); err != nil {
			t.Errorf("withHint(nil) = %v", err)
		}
	})

	t.Run("empty hint returns err unchanged", func(t *testing.T) {
		t.Parallel()
		if err := withHint(ErrUsage, ""); err != ErrUsage {
			t.Errorf("withHint() = %v, want ErrUsage", err)
		}
	})

	t.Run("appends hint and unwraps", func(t *testing.T) {
		t.Parallel()
		err := withHint(ErrMissingAPI, "\n  hint: set --api")
		if !strings.HasSuffix(err.Error(), "hint: set --api") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, ErrMissingAPI) {
			t.Error("hinted error does not unwrap")
		}
	})

	t.Run("keeps the first hint", func(t *testing.T) {
		t.Parallel()
		err := withHint(withHint(ErrUsage, "\n  hint: first"), "\n  hint: second")
		if strings.Contains(err.Error(), "second") {
			t.Errorf("Error() = %q, want only the first hint", err.Error())
		}
	})
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"browser", specsheet.ErrBrowserConnect, "browserFallback"},
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"upstream", catalog.ErrUpstream, "https://api.example.com"},
		{"output", ErrWritePDF, "hint:"},
		{"other", errors.New("x"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, "https://api.example.com")
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
