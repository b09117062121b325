package images

import "errors"

// Errors reported to the logger and observer. Load itself never returns them.
var (
	ErrEmptyURL     = errors.New("empty image URL")
	ErrFetch        = errors.New("image fetch failed")
	ErrHTTPStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge     = errors.New("image exceeds size limit")
	ErrDecode       = errors.New("image decode failed")
	ErrEncode       = errors.New("image encode failed")
	ErrNoRasterizer = errors.New("no fallback rasterizer configured")
)
