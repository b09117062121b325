package specsheet

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingProduct   = errors.New("product is required")
	ErrDocumentAssembly = errors.New("generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrRasterize        = errors.New("browser rasterization failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooter = errors.New("invalid footer")

	// Asset loading errors.
	ErrLogoNotFound     = errors.New("logo not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
