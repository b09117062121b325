package images

import (
	"math"
	"testing"
	"time"
)

func TestTargetSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		oversample float64
		wantW      int
		wantH      int
	}{
		{name: "small image unchanged", srcW: 100, srcH: 50, maxW: 800, maxH: 800, oversample: 1, wantW: 100, wantH: 50},
		{name: "wide image capped by width", srcW: 2000, srcH: 1000, maxW: 800, maxH: 800, oversample: 1, wantW: 800, wantH: 400},
		{name: "tall image capped by height", srcW: 1000, srcH: 2000, maxW: 800, maxH: 800, oversample: 1, wantW: 400, wantH: 800},
		{name: "oversample doubles the box", srcW: 3000, srcH: 1500, maxW: 600, maxH: 600, oversample: 2, wantW: 1200, wantH: 600},
		{name: "oversample never upscales", srcW: 300, srcH: 300, maxW: 600, maxH: 600, oversample: 2, wantW: 300, wantH: 300},
		{name: "zero oversample treated as one", srcW: 2000, srcH: 1000, maxW: 800, maxH: 800, oversample: 0, wantW: 800, wantH: 400},
		{name: "invalid source returned as is", srcW: 0, srcH: 10, maxW: 800, maxH: 800, oversample: 1, wantW: 0, wantH: 10},
		{name: "extreme aspect keeps one pixel", srcW: 10000, srcH: 1, maxW: 100, maxH: 100, oversample: 1, wantW: 100, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := TargetSize(tt.srcW, tt.srcH, tt.maxW, tt.maxH, tt.oversample)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("TargetSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		srcW, srcH float64
		boxW, boxH float64
		wantW      float64
		wantH      float64
	}{
		{name: "landscape in square box", srcW: 200, srcH: 100, boxW: 40, boxH: 40, wantW: 40, wantH: 20},
		{name: "portrait in wide box", srcW: 100, srcH: 200, boxW: 80, boxH: 40, wantW: 20, wantH: 40},
		{name: "upscales small source", srcW: 10, srcH: 10, boxW: 30, boxH: 30, wantW: 30, wantH: 30},
		{name: "invalid source fills box", srcW: 0, srcH: 0, boxW: 25, boxH: 20, wantW: 25, wantH: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := Fit(tt.srcW, tt.srcH, tt.boxW, tt.boxH)
			if math.Abs(w-tt.wantW) > 1e-9 || math.Abs(h-tt.wantH) > 1e-9 {
				t.Errorf("Fit() = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSurfaceSize(t *testing.T) {
	t.Parallel()

	if w, h := SurfaceSize(0, 0); w != DefaultSurfaceWidth || h != DefaultSurfaceHeight {
		t.Errorf("SurfaceSize(0, 0) = %dx%d, want default", w, h)
	}
	if w, h := SurfaceSize(320, 0); w != DefaultSurfaceWidth || h != DefaultSurfaceHeight {
		t.Errorf("SurfaceSize(320, 0) = %dx%d, want default", w, h)
	}
	if w, h := SurfaceSize(320, 240); w != 320 || h != 240 {
		t.Errorf("SurfaceSize(320, 240) = %dx%d, want natural", w, h)
	}
}

func TestCacheBust(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "no query uses question mark",
			url:  "https://cdn.example.com/a.png",
			want: "https://cdn.example.com/a.png?nocache=1700000000123",
		},
		{
			name: "existing query is kept",
			url:  "https://cdn.example.com/a.png?w=100",
			want: "https://cdn.example.com/a.png?nocache=1700000000123&w=100",
		},
		{
			name: "stale stamp is replaced",
			url:  "https://cdn.example.com/a.png?nocache=1",
			want: "https://cdn.example.com/a.png?nocache=1700000000123",
		},
		{
			name: "unparseable url appended textually",
			url:  "http://[::1/a.png?x=1",
			want: "http://[::1/a.png?x=1&nocache=1700000000123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CacheBust(tt.url, now); got != tt.want {
				t.Errorf("CacheBust(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestImage_AspectRatio(t *testing.T) {
	t.Parallel()

	var nilImg *Image
	if got := nilImg.AspectRatio(); got != 1 {
		t.Errorf("nil AspectRatio() = %v, want 1", got)
	}
	if got := (&Image{Width: 300, Height: 100}).AspectRatio(); got != 3 {
		t.Errorf("AspectRatio() = %v, want 3", got)
	}
}
