package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    string
		wantErr bool
	}{
		{"YYYY-MM-DD", "2006-01-02", false},
		{"DD/MM/YY", "02/01/06", false},
		{"MMMM D, YYYY", "January 2, 2006", false},
		{"MMM YYYY", "Jan 2006", false},
		{"D.M.YYYY", "2.1.2006", false},
		{"[Issued] YYYY", "Issued 2006", false},
		{"[YYYY] YYYY", "YYYY 2006", false},
		{"", "", true},
		{"[Issued YYYY", "", true},
		{strings.Repeat("Y", MaxDateFormatLength+1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.pattern)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("Layout(%q) error = %v, want ErrInvalidDateFormat", tt.pattern, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) error = %v", tt.pattern, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty passes through", "", "", false},
		{"literal passes through", "Spring 2026", "Spring 2026", false},
		{"auto", "auto", "2026-03-09", false},
		{"auto upper case", "AUTO", "2026-03-09", false},
		{"custom pattern", "auto:DD/MM/YYYY", "09/03/2026", false},
		{"preset", "auto:long", "March 9, 2026", false},
		{"preset any case", "auto:European", "09/03/2026", false},
		{"us preset", "auto:us", "03/09/2026", false},
		{"bracket literal", "auto:[Rev.] MMM YYYY", "Rev. Mar 2026", false},
		{"missing colon", "automatic", "", true},
		{"empty pattern", "auto:", "", true},
		{"bad pattern", "auto:[YYYY", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("ResolveDate(%q) error = %v, want ErrInvalidDateFormat", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "2026-03-09", "auto", "auto:iso", "auto:MMMM YYYY"} {
		if err := Validate(v); err != nil {
			t.Errorf("Validate(%q) = %v", v, err)
		}
	}
	for _, v := range []string{"auto:", "autox", "auto:[x"} {
		if err := Validate(v); err == nil {
			t.Errorf("Validate(%q) = nil, want error", v)
		}
	}
}

func TestPresetsAreValid(t *testing.T) {
	t.Parallel()

	for name, pattern := range Presets {
		if _, err := Layout(pattern); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
