package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitColumns(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 25; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		left, right := SplitColumns(items)
		wantLeft := (n + 1) / 2
		if len(left) != wantLeft || len(right) != n-wantLeft {
			t.Errorf("n=%d: split %d/%d, want %d/%d", n, len(left), len(right), wantLeft, n-wantLeft)
		}
		if len(left) < len(right) {
			t.Errorf("n=%d: left column shorter than right", n)
		}
		// Order is preserved across the split.
		joined := append(append([]int(nil), left...), right...)
		if diff := cmp.Diff(items, joined); n > 0 && diff != "" {
			t.Errorf("n=%d: order mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestPlanColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		left      []float64
		right     []float64
		startY    float64
		bottom    float64
		wantSlots []Slot
		wantPages int
		wantEndY  float64
	}{
		{
			name:      "empty",
			startY:    50,
			bottom:    100,
			wantPages: 0,
			wantEndY:  50,
		},
		{
			name:   "independent columns end at the taller one",
			left:   []float64{5, 13},
			right:  []float64{5},
			startY: 50,
			bottom: 100,
			wantSlots: []Slot{
				{Column: 0, Index: 0, Y: 50},
				{Column: 0, Index: 1, Y: 55},
				{Column: 1, Index: 0, Y: 50},
			},
			wantEndY: 68,
		},
		{
			name:   "overflow continues on next page",
			left:   []float64{20, 20, 20},
			right:  []float64{20, 20},
			startY: 50,
			bottom: 100,
			wantSlots: []Slot{
				{Column: 0, Index: 0, Y: 50},
				{Column: 0, Index: 1, Y: 70},
				{Column: 1, Index: 0, Y: 50},
				{Column: 1, Index: 1, Y: 70},
				{Column: 0, Index: 2, Page: 1, Y: 25},
			},
			wantPages: 1,
			wantEndY:  45,
		},
		{
			name:   "row taller than a page is forced on a fresh page",
			left:   []float64{500},
			startY: 50,
			bottom: 100,
			wantSlots: []Slot{
				{Column: 0, Index: 0, Page: 1, Y: 25},
			},
			wantPages: 1,
			wantEndY:  525,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan := PlanColumns(tt.left, tt.right, tt.startY, 25, tt.bottom)
			if diff := cmp.Diff(tt.wantSlots, plan.Slots); diff != "" {
				t.Errorf("slots mismatch (-want +got):\n%s", diff)
			}
			if plan.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", plan.Pages, tt.wantPages)
			}
			if plan.EndY != tt.wantEndY {
				t.Errorf("EndY = %v, want %v", plan.EndY, tt.wantEndY)
			}
		})
	}
}

func TestPlanColumns_NoOverlapAndInBounds(t *testing.T) {
	t.Parallel()

	heights := []float64{4, 9, 13, 5, 5, 21, 4, 8, 17, 5, 5, 5, 12}
	left, right := SplitColumns(heights)
	plan := PlanColumns(left, right, 200, 25, 274)

	if len(plan.Slots) != len(heights) {
		t.Fatalf("placed %d rows, want %d", len(plan.Slots), len(heights))
	}

	type key struct{ col, page int }
	bottoms := map[key]float64{}
	for _, s := range plan.Slots {
		h := [2][]float64{left, right}[s.Column][s.Index]
		k := key{s.Column, s.Page}
		if s.Y < bottoms[k] {
			t.Errorf("slot %+v overlaps previous row ending at %v", s, bottoms[k])
		}
		if s.Y+h > 274 {
			t.Errorf("slot %+v exceeds bottom", s)
		}
		bottoms[k] = s.Y + h
	}
}
