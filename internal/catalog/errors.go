package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	ErrNotFound        = errors.New("product not found")
	ErrUpstream        = errors.New("catalog API request failed")
	ErrDecode          = errors.New("invalid catalog response")
	ErrEmptyID         = errors.New("product id is required")
	ErrInvalidBaseURL  = errors.New("invalid API base URL")
	ErrInvalidChoice   = errors.New("invalid specification choice")
	ErrUnavailableSpec = errors.New("specification not available for this product")
)
