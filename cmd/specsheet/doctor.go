package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/fileutil"
)

// pingTimeout bounds the API reachability check.
const pingTimeout = 10 * time.Second

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	API      apiInfo     `json:"api"`
	Browser  browserInfo `json:"browser"`
	Output   outputInfo  `json:"output"`
	Env      envInfo     `json:"environment"`
	Config   string      `json:"config,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// apiInfo holds product API reachability.
type apiInfo struct {
	URL       string `json:"url,omitempty"`
	Reachable bool   `json:"reachable"`
	Latency   string `json:"latency,omitempty"`
}

// browserInfo holds Chrome/Chromium detection results.
type browserInfo struct {
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Sandbox  bool   `json:"sandbox"`
}

// outputInfo holds output directory checks.
type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		return exitCodeFor(err)
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	applyAPIFlags(&f.common, &f.api, cfg)

	result := runDoctor(ctx, cfg, env)
	if f.common.verbose {
		if data, err := cfg.Marshal(); err == nil {
			result.Config = string(data)
		}
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
		},
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid configuration: %v", err))
	}
	checkAPI(ctx, result, cfg, env)
	checkBrowser(result, cfg, env)
	checkOutput(result, cfg)
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkAPI pings the product API.
func checkAPI(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	result.API.URL = cfg.API.BaseURL
	cat, err := env.NewCatalog(cfg, zap.NewNop())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Product API: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := env.Now()
	if err := cat.Ping(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Product API unreachable: %v", err))
		return
	}
	result.API.Reachable = true
	result.API.Latency = env.Now().Sub(start).Round(time.Millisecond).String()
}

// checkBrowser detects Chrome when the browser fallback is enabled.
func checkBrowser(result *doctorResult, cfg *config.Config, env *Environment) {
	result.Browser.Required = cfg.Images.BrowserFallback
	result.Browser.Sandbox = os.Getenv("ROD_NO_SANDBOX") != "1"

	path, found := env.LookBrowser()
	result.Browser.Found = found
	if found {
		result.Browser.Path = path
	}

	if !result.Browser.Required {
		return
	}
	if !found {
		result.Errors = append(result.Errors,
			"Chrome/Chromium not found but images.browserFallback is on. Install Chrome or set ROD_BROWSER_BIN")
	}
}

// checkOutput verifies the output directory accepts new files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.Dir
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	result.Output.Dir = dir

	if err := fileutil.DirWritable(dir); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s (%v)", dir, err))
		return
	}
	result.Output.Writable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Browser.Required && (result.Env.Container || result.Env.CI) && result.Browser.Sandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("SPECSHEET_CONTAINER") == "1" {
		return true, "SPECSHEET_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "specsheet doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Product API")
	switch {
	case r.API.Reachable:
		fmt.Fprintf(w, "  [OK] %s (%s)\n", r.API.URL, r.API.Latency)
	case r.API.URL == "":
		fmt.Fprintln(w, "  [ERROR] Not configured")
	default:
		fmt.Fprintf(w, "  [ERROR] %s unreachable\n", r.API.URL)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser fallback")
	switch {
	case !r.Browser.Required && r.Browser.Found:
		fmt.Fprintf(w, "  [OK] Disabled (Chrome available at %s)\n", r.Browser.Path)
	case !r.Browser.Required:
		fmt.Fprintln(w, "  [OK] Disabled")
	case r.Browser.Found:
		fmt.Fprintf(w, "  [OK] Chrome at %s\n", r.Browser.Path)
		if !r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	default:
		fmt.Fprintln(w, "  [ERROR] Chrome not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output")
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] %s is writable\n", r.Output.Dir)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s is not writable\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s, GOMAXPROCS=%d\n", r.Env.OS, r.Env.Arch, r.Env.GOMAXPROCS)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if r.Config != "" {
		fmt.Fprintln(w, "Effective configuration")
		fmt.Fprintln(w, r.Config)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to generate")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
