package assets

import (
	"bytes"
	"errors"
	"fmt"
)

// DefaultLogoName is the built-in footer logo.
const DefaultLogoName = "default"

// Logo limits.
const (
	MaxLogoNameLength = 64
	MaxLogoSize       = 2 << 20
)

var (
	ErrLogoNotFound    = errors.New("logo not found")
	ErrInvalidLogoName = errors.New("invalid logo name")
	ErrInvalidBasePath = errors.New("invalid logo directory")
	ErrLogoRead        = errors.New("reading logo")
	ErrLogoTooLarge    = errors.New("logo too large")
	ErrUnsupportedLogo = errors.New("unsupported logo format")
)

// LogoLoader loads footer logos by name.
type LogoLoader interface {
	// LoadLogo returns the encoded image for name, given without extension.
	LoadLogo(name string) ([]byte, error)
}

// logoFormat pairs a file extension with the leading bytes its content must carry.
type logoFormat struct {
	ext   string
	magic []byte
}

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// logoFormats is the lookup order for a bare logo name.
var logoFormats = []logoFormat{
	{".png", pngMagic},
	{".jpg", jpegMagic},
	{".jpeg", jpegMagic},
}

// ValidateLogoName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else, separators and dots included, is rejected so a name can
// never select a path or an extension.
func ValidateLogoName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLogoName)
	}
	if len(name) > MaxLogoNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidLogoName, MaxLogoNameLength)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidLogoName, name)
		}
	}
	return nil
}

// checkContent rejects payloads whose bytes do not match the extension
// they were stored under.
func checkContent(f logoFormat, name string, data []byte) error {
	if len(data) > MaxLogoSize {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrLogoTooLarge, name, MaxLogoSize)
	}
	if !bytes.HasPrefix(data, f.magic) {
		return fmt.Errorf("%w: %s%s is not a %s image", ErrUnsupportedLogo, name, f.ext, f.ext[1:])
	}
	return nil
}
