package pipeline

import (
	"net/url"
	"strings"
)

// ResolveURL makes a catalog asset reference absolute against base.
// Absolute URLs, data URLs and protocol-relative URLs are returned
// unchanged, as is ref when base is empty or unparsable.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == "" || !isRelativeRef(ref) {
		return ref
	}

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// isRelativeRef reports whether ref needs a base to be fetched.
func isRelativeRef(ref string) bool {
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//") {
		return false
	}
	return true
}
