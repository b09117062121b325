// Package dateutil resolves the date printed in a spec sheet footer.
//
// A footer date is a literal ("March 2026"), "auto" for today as
// YYYY-MM-DD, or "auto:FORMAT". FORMAT is a preset name (iso, european,
// us, long) or a pattern built from the tokens YYYY, YY, MMMM, MMM, MM, M,
// DD and D. Text inside [brackets] is copied verbatim.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an unusable "auto" expression or pattern.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength caps a pattern's length.
const MaxDateFormatLength = 50

// DefaultDateFormat is the pattern behind a bare "auto".
const DefaultDateFormat = "YYYY-MM-DD"

const autoKeyword = "auto"

// Presets names common patterns. Lookup is case-insensitive.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokenLayouts pairs each token with its time layout, longest tokens first
// so "MMMM" never matches as two "MM".
var tokenLayouts = [...]struct {
	token, layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Layout translates a token pattern into a time layout.
func Layout(pattern string) (string, error) {
	switch {
	case pattern == "":
		return "", fmt.Errorf("%w: empty pattern", ErrInvalidDateFormat)
	case len(pattern) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: pattern longer than %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for rest := pattern; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed [ in %q", ErrInvalidDateFormat, pattern)
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		n := writeToken(&b, rest)
		if n == 0 {
			b.WriteByte(rest[0])
			n = 1
		}
		rest = rest[n:]
	}
	return b.String(), nil
}

// writeToken writes the layout of the token s starts with and returns the
// token length, or 0 when s starts with no token.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range tokenLayouts {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// ResolveDate formats now for "auto" values and returns any other value
// unchanged.
func ResolveDate(value string, now time.Time) (string, error) {
	pattern, auto, err := autoPattern(value)
	if err != nil {
		return "", err
	}
	if !auto {
		return value, nil
	}
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// Validate reports whether value is empty, a literal, or a well-formed
// "auto" expression.
func Validate(value string) error {
	_, err := ResolveDate(value, time.Time{})
	return err
}

// autoPattern extracts the pattern of an "auto" value. The keyword is
// case-insensitive; the pattern keeps its case.
func autoPattern(value string) (pattern string, auto bool, err error) {
	if !strings.HasPrefix(strings.ToLower(value), autoKeyword) {
		return "", false, nil
	}
	rest := value[len(autoKeyword):]
	if rest == "" {
		return DefaultDateFormat, true, nil
	}
	if rest[0] != ':' {
		return "", true, fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	pattern = rest[1:]
	if pattern == "" {
		return "", true, fmt.Errorf("%w: nothing after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := Presets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}
	return pattern, true, nil
}
