package layout

import (
	"math/rand/v2"
	"testing"
)

func TestColumnSpan(t *testing.T) {
	t.Parallel()

	const cell = 1.5

	tests := []struct {
		name       string
		aspect     float64
		thresholds [3]float64
		want       int
	}{
		{name: "square image", aspect: 1, thresholds: DefaultSpanThresholds, want: 1},
		{name: "same as cell", aspect: cell, thresholds: DefaultSpanThresholds, want: 1},
		{name: "just under 2x", aspect: cell*2 - 0.01, thresholds: DefaultSpanThresholds, want: 1},
		{name: "exactly 2x", aspect: cell * 2, thresholds: DefaultSpanThresholds, want: 2},
		{name: "3x", aspect: cell * 3, thresholds: DefaultSpanThresholds, want: 3},
		{name: "4x", aspect: cell * 4, thresholds: DefaultSpanThresholds, want: 4},
		{name: "panorama", aspect: cell * 10, thresholds: DefaultSpanThresholds, want: 4},
		{name: "zero aspect", aspect: 0, thresholds: DefaultSpanThresholds, want: 1},
		{name: "custom thresholds", aspect: cell * 1.6, thresholds: [3]float64{1.5, 2, 2.5}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ColumnSpan(tt.aspect, cell, tt.thresholds); got != tt.want {
				t.Errorf("ColumnSpan(%v) = %d, want %d", tt.aspect, got, tt.want)
			}
		})
	}
}

func testGrid() Grid {
	return Grid{Left: 15, Width: 180, Gap: 5, Cols: 4, RowHeight: 30}
}

func TestGrid_Geometry(t *testing.T) {
	t.Parallel()

	g := testGrid()
	if got := g.ColumnWidth(); got != 41.25 {
		t.Errorf("ColumnWidth() = %v, want 41.25", got)
	}
	if got := g.SpanWidth(4); got != 180 {
		t.Errorf("SpanWidth(4) = %v, want 180", got)
	}
	if got := g.SpanWidth(2); got != 87.5 {
		t.Errorf("SpanWidth(2) = %v, want 87.5", got)
	}
}

func TestGrid_Place(t *testing.T) {
	t.Parallel()

	g := testGrid()
	start := Cursor{Page: 1, X: 15, Y: 100}

	tests := []struct {
		name   string
		spans  []int
		bottom float64
		wantTr []Transition
		wantX  []float64
	}{
		{
			name:   "four singles share a row",
			spans:  []int{1, 1, 1, 1},
			bottom: 274,
			wantTr: []Transition{Stay, Stay, Stay, Stay},
			wantX:  []float64{15, 61.25, 107.5, 153.75},
		},
		{
			name:   "fifth single wraps",
			spans:  []int{1, 1, 1, 1, 1},
			bottom: 274,
			wantTr: []Transition{Stay, Stay, Stay, Stay, NewRow},
			wantX:  []float64{15, 61.25, 107.5, 153.75, 15},
		},
		{
			name:   "span overflow wraps",
			spans:  []int{3, 2},
			bottom: 274,
			wantTr: []Transition{Stay, NewRow},
			wantX:  []float64{15, 15},
		},
		{
			name:   "full width starts fresh row",
			spans:  []int{1, 4, 1},
			bottom: 274,
			wantTr: []Transition{Stay, NewRow, NewRow},
			wantX:  []float64{15, 15, 15},
		},
		{
			name:   "row past bottom goes to new page",
			spans:  []int{2, 2, 1},
			bottom: 160,
			wantTr: []Transition{Stay, Stay, NewPage},
			wantX:  []float64{15, 107.5, 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := start
			for i, span := range tt.spans {
				next, at, tr := g.Place(c, span, tt.bottom, 25)
				if tr != tt.wantTr[i] {
					t.Errorf("item %d: transition = %v, want %v", i, tr, tt.wantTr[i])
				}
				if at.X != tt.wantX[i] {
					t.Errorf("item %d: x = %v, want %v", i, at.X, tt.wantX[i])
				}
				if tr == NewPage && (at.Y != 25 || at.Page != start.Page+1) {
					t.Errorf("item %d: new page cursor = %+v", i, at)
				}
				c = next
			}
		})
	}
}

func TestGrid_Place_RowInvariants(t *testing.T) {
	t.Parallel()

	g := testGrid()
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := range 200 {
		c := Cursor{Page: 1, X: g.Left, Y: 40}
		for range 30 {
			span := rng.IntN(4) + 1
			next, at, _ := g.Place(c, span, 274, 25)

			if span == g.Cols && at.ColsUsed != 0 {
				t.Fatalf("trial %d: full-width item placed mid-row (%+v)", trial, at)
			}
			if next.ColsUsed > g.Cols {
				t.Fatalf("trial %d: row uses %d columns", trial, next.ColsUsed)
			}
			if at.Y+g.RowHeight > 274 {
				t.Fatalf("trial %d: item at y=%v exceeds bottom", trial, at.Y)
			}
			if right := at.X + g.SpanWidth(span); right > g.Left+g.Width+1e-9 {
				t.Fatalf("trial %d: item right edge %v beyond grid", trial, right)
			}
			c = next
		}
	}
}

func TestTransition_String(t *testing.T) {
	t.Parallel()

	for tr, want := range map[Transition]string{Stay: "stay", NewRow: "new-row", NewPage: "new-page"} {
		if got := tr.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
