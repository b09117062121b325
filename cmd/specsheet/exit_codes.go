package main

import (
	"context"
	"errors"
	"os"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/hints"
)

// Exit codes for the specsheet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All spec sheets written
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, choices or validation
	ExitIO       = 3 // Product file unreadable, output not writable
	ExitUpstream = 4 // Product API or browser failure
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no product specified")
	ErrMissingAPI     = errors.New("product API base URL not configured")
	ErrInvalidEnv     = errors.New("invalid environment")
	ErrReadProduct    = errors.New("failed to read product file")
	ErrOutputDir      = errors.New("failed to prepare output directory")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrGeneratorInit  = errors.New("failed to initialize generator")
	ErrBatchFailed    = errors.New("some spec sheets failed")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Upstream and browser errors (exit 4)
	if errors.Is(err, catalog.ErrUpstream) ||
		errors.Is(err, catalog.ErrDecode) ||
		errors.Is(err, specsheet.ErrBrowserConnect) ||
		errors.Is(err, specsheet.ErrPageCreate) ||
		errors.Is(err, specsheet.ErrPageLoad) ||
		errors.Is(err, specsheet.ErrRasterize) {
		return ExitUpstream
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrReadProduct) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrNotExist) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrMissingAPI) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrEmptyID) ||
		errors.Is(err, catalog.ErrInvalidBaseURL) ||
		errors.Is(err, catalog.ErrInvalidChoice) ||
		errors.Is(err, catalog.ErrUnavailableSpec) ||
		errors.Is(err, specsheet.ErrMissingProduct) ||
		errors.Is(err, specsheet.ErrInvalidPageSize) ||
		errors.Is(err, specsheet.ErrInvalidOrientation) ||
		errors.Is(err, specsheet.ErrInvalidMargin) ||
		errors.Is(err, specsheet.ErrInvalidFooter) ||
		errors.Is(err, specsheet.ErrLogoNotFound) ||
		errors.Is(err, specsheet.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches hint to err. Returns err unchanged when hint is empty.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	var h *hintedError
	if errors.As(err, &h) {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor picks a generic hint for errors that carry none yet.
func hintFor(err error, apiBase string) string {
	switch {
	case errors.Is(err, specsheet.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, catalog.ErrUpstream):
		return hints.ForAPI(apiBase)
	case errors.Is(err, ErrOutputDir), errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
