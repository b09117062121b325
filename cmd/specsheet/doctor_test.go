package main

// Notes:
// - Doctor runs against the mock catalog and an injected browser lookup.
//   Container and CI detection read the real environment, so assertions
//   avoid depending on them.

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "specsheet.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	cfgPath := writeConfig(t, "api:\n  token: s3cret\noutput:\n  dir: "+out+"\n")
	env, stdout, stderr := testEnv(&mockCatalog{}, &mockPool{})

	code := runMain(context.Background(), argv("doctor", "--json", "-v", "-c", cfgPath, "--api", testAPI), env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr:\n%s\nstdout:\n%s", code, stderr, stdout)
	}
	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if got.Status == statusErrors {
		t.Errorf("Status = %q, errors: %v", got.Status, got.Errors)
	}
	if !got.API.Reachable || got.API.URL != testAPI {
		t.Errorf("API = %+v", got.API)
	}
	if !got.Output.Writable || got.Output.Dir != out {
		t.Errorf("Output = %+v", got.Output)
	}
	if got.Browser.Required {
		t.Error("browser should not be required by default")
	}
	if strings.Contains(got.Config, "s3cret") {
		t.Error("token leaked into the effective configuration")
	}
	if !strings.Contains(got.Config, testAPI) {
		t.Errorf("Config = %q, want the effective base URL", got.Config)
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "output:\n  dir: "+t.TempDir()+"\n")
	env, stdout, _ := testEnv(&mockCatalog{}, &mockPool{})
	env.LookBrowser = func() (string, bool) { return "/usr/bin/chromium", true }

	code := runMain(context.Background(), argv("doctor", "-c", cfgPath, "--api", testAPI), env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, stdout)
	}
	for _, want := range []string{
		"specsheet doctor",
		"[OK] " + testAPI,
		"[OK] Disabled (Chrome available at /usr/bin/chromium)",
		"is writable",
		"Platform:",
		"Status: Ready",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunDoctorCmd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pingErr   error
		config    func(t *testing.T) string
		args      []string
		wantError string
	}{
		{
			name:      "api not configured",
			config:    func(t *testing.T) string { return "output:\n  dir: " + t.TempDir() + "\n" },
			wantError: "Product API",
		},
		{
			name:      "api unreachable",
			pingErr:   errors.New("connection refused"),
			config:    func(t *testing.T) string { return "output:\n  dir: " + t.TempDir() + "\n" },
			args:      []string{"--api", testAPI},
			wantError: "Product API unreachable: connection refused",
		},
		{
			name: "browser required but missing",
			config: func(t *testing.T) string {
				return "output:\n  dir: " + t.TempDir() + "\nimages:\n  browserFallback: true\n"
			},
			args:      []string{"--api", testAPI},
			wantError: "Chrome/Chromium not found",
		},
		{
			name: "output missing",
			config: func(t *testing.T) string {
				return "output:\n  dir: " + filepath.Join(t.TempDir(), "nope") + "\n"
			},
			args:      []string{"--api", testAPI},
			wantError: "Output directory not writable",
		},
		{
			name:      "invalid configuration",
			config:    func(t *testing.T) string { return "page:\n  size: a0\noutput:\n  dir: " + t.TempDir() + "\n" },
			args:      []string{"--api", testAPI},
			wantError: "Invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath := writeConfig(t, tt.config(t))
			env, stdout, _ := testEnv(&mockCatalog{pingErr: tt.pingErr}, &mockPool{})
			args := append(argv("doctor", "--json", "-c", cfgPath), tt.args...)

			code := runMain(context.Background(), args, env)

			if code != ExitGeneral {
				t.Errorf("exit code = %d, want %d", code, ExitGeneral)
			}
			var got doctorResult
			if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got.Status != statusErrors {
				t.Errorf("Status = %q, want errors", got.Status)
			}
			if !strings.Contains(strings.Join(got.Errors, "\n"), tt.wantError) {
				t.Errorf("Errors = %v, want one containing %q", got.Errors, tt.wantError)
			}
		})
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(&mockCatalog{}, &mockPool{})
	if code := runMain(context.Background(), argv("doctor", "--nope"), env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Rendering of each status
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result doctorResult
		want   []string
	}{
		{
			name: "warnings",
			result: doctorResult{
				Status:   statusWarnings,
				Browser:  browserInfo{Required: true, Found: true, Path: "/opt/chrome"},
				Env:      envInfo{Container: true, ContainerHint: "/.dockerenv"},
				Warnings: []string{"set ROD_NO_SANDBOX=1"},
			},
			want: []string{"[ERROR] Not configured", "[OK] Chrome at /opt/chrome", "Container: detected (/.dockerenv)", "[WARN] set ROD_NO_SANDBOX=1", "Ready with warnings"},
		},
		{
			name: "errors",
			result: doctorResult{
				Status:  statusErrors,
				API:     apiInfo{URL: testAPI},
				Browser: browserInfo{Required: true},
				Output:  outputInfo{Dir: "/ro"},
				Errors:  []string{"boom"},
			},
			want: []string{testAPI + " unreachable", "[ERROR] Chrome not found", "/ro is not writable", "[ERROR] boom", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			printDoctorResult(&sb, &tt.result)
			for _, w := range tt.want {
				if !strings.Contains(sb.String(), w) {
					t.Errorf("output missing %q:\n%s", w, sb.String())
				}
			}
		})
	}
}
