package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "zero page", mutate: func(c *Config) { c.PageWidth = 0 }, wantErr: true},
		{name: "margin eats content", mutate: func(c *Config) { c.Margin = 70 }, wantErr: true},
		{name: "negative margin", mutate: func(c *Config) { c.Margin = -1 }, wantErr: true},
		{name: "descending thresholds", mutate: func(c *Config) { c.SpanThresholds = [3]float64{3, 2, 4} }, wantErr: true},
		{name: "zero threshold", mutate: func(c *Config) { c.SpanThresholds = [3]float64{0, 2, 4} }, wantErr: true},
		{name: "custom ascending thresholds", mutate: func(c *Config) { c.SpanThresholds = [3]float64{1.5, 2.5, 3.5} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Geometry(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.ContentWidth(); got != 180 {
		t.Errorf("ContentWidth() = %v, want 180", got)
	}
	if got := cfg.Bottom(); got != 274 {
		t.Errorf("Bottom() = %v, want 274", got)
	}
}

func TestEngine_PageHook(t *testing.T) {
	t.Parallel()

	var pages []int
	e, rec, _ := newTestEngine(nil, WithPageHook(func(p int) { pages = append(pages, p) }))
	e.NewPage()
	e.NewPage()

	if diff := cmp.Diff([]int{1, 2, 3}, pages); diff != "" {
		t.Errorf("hook pages mismatch (-want +got):\n%s", diff)
	}
	if rec.page != 3 {
		t.Errorf("canvas pages = %d, want 3", rec.page)
	}
	if got := e.Cursor(); got.Page != 3 || got.Y != 15 || got.X != 15 {
		t.Errorf("cursor after NewPage = %+v, want page 3 at margin", got)
	}
}

func TestEngine_Begin(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(nil)
	if got := e.Cursor(); got.Page != 1 || got.Y != titleTop {
		t.Errorf("cursor after Begin = %+v", got)
	}
}

func TestEngine_EnsureSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		y        float64
		h        float64
		wantPage bool
	}{
		{name: "fits", y: 100, h: 50, wantPage: false},
		{name: "exactly at bottom", y: 224, h: 50, wantPage: false},
		{name: "overflows", y: 230, h: 50, wantPage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, _, _ := newTestEngine(nil)
			e.cur.Y = tt.y
			if got := e.EnsureSpace(tt.h); got != tt.wantPage {
				t.Errorf("EnsureSpace() = %v, want %v", got, tt.wantPage)
			}
			if tt.wantPage && e.Cursor().Y != 15 {
				t.Errorf("cursor y = %v, want top margin", e.Cursor().Y)
			}
		})
	}
}

func TestEngine_SectionBreak(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(nil)

	e.cur.Y = 240
	if e.SectionBreak() {
		t.Error("SectionBreak() at y=240 should not break (limit 247)")
	}

	e.cur.Y = 250
	if !e.SectionBreak() {
		t.Fatal("SectionBreak() at y=250 should break")
	}
	if got := e.Cursor(); got.Page != 2 || got.Y != 25 {
		t.Errorf("cursor after SectionBreak = %+v, want page 2 y 25", got)
	}
}

func TestEngine_PlaceBlock(t *testing.T) {
	t.Parallel()

	e, rec, _ := newTestEngine(nil)
	e.cur.Y = 50
	e.PlaceBlock("HEADING")

	if !rec.hasText("HEADING") {
		t.Error("heading text not drawn")
	}
	var line *op
	for i := range rec.ops {
		if rec.ops[i].Name == "line" {
			line = &rec.ops[i]
		}
	}
	if line == nil || line.Y != 52 || line.X != 15 || line.W != 180 {
		t.Errorf("underline = %+v, want y=52 from 15 spanning 180", line)
	}
	if got := e.Cursor().Y; got != 57 {
		t.Errorf("cursor y = %v, want 57", got)
	}
	want := []Placement{{Section: "HEADING", Kind: KindHeading, Page: 1}}
	if diff := cmp.Diff(want, e.Placements()); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_SectionGap(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(nil)
	e.cur.Y = 100
	e.SectionGap()
	if got := e.Cursor().Y; got != 110 {
		t.Errorf("cursor y after SectionGap = %v, want 110", got)
	}
}
