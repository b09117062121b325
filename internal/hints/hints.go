// Package hints appends actionable advice to CLI error messages.
// Hints are formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-specsheet/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for a browser fallback that cannot start.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or disable images.browserFallback")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the generation timeout.
func ForTimeout() string {
	return format("for products with many drawings, use --timeout")
}

// ForConfigNotFound suggests --config and the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-specsheet") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check the --output directory exists and is writable")
}

// ForAPI returns hints for an unreachable or misconfigured catalog API.
func ForAPI(baseURL string) string {
	if baseURL == "" {
		return format("set --api, SPECSHEET_API_BASE_URL or api.baseURL in the config")
	}
	return format("check " + baseURL + " is reachable and the token is valid")
}

// ForUnavailableSpec lists the options a product offers, one group per
// line, sorted by group name.
func ForUnavailableSpec(options map[string][]string) string {
	if len(options) == 0 {
		return format("this product has no selectable specifications")
	}
	groups := make([]string, 0, len(options))
	for name := range options {
		groups = append(groups, name)
	}
	slices.Sort(groups)

	lines := make([]string, 0, len(groups))
	for _, name := range groups {
		lines = append(lines, name+": "+strings.Join(options[name], ", "))
	}
	return format("available " + strings.Join(lines, "; "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
