package layout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	m := &recorder{}

	// At size 10 every rune is 2 units wide: width 20 fits 10 runes.
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "blank text", text: "   ", width: 20, want: nil},
		{name: "fits on one line", text: "short", width: 20, want: []string{"short"}},
		{name: "greedy wrap", text: "aaa bbb ccc ddd", width: 20, want: []string{"aaa bbb", "ccc ddd"}},
		{name: "newline kept", text: "one\ntwo", width: 20, want: []string{"one", "two"}},
		{name: "blank paragraph kept", text: "one\n\ntwo", width: 20, want: []string{"one", "", "two"}},
		{name: "long word split", text: "abcdefghijklmnop", width: 20, want: []string{"abcdefghij", "klmnop"}},
		{name: "zero width disables wrapping", text: "aaa bbb ccc ddd", width: 0, want: []string{"aaa bbb ccc ddd"}},
		{name: "collapses inner spaces", text: "a    b", width: 20, want: []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Wrap(m, tt.text, Regular, 10, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrap_LinesNeverExceedWidth(t *testing.T) {
	t.Parallel()

	m := &recorder{}
	text := strings.Repeat("lorem ipsum dolorsitametconsectetur adipiscing ", 20)

	for _, width := range []float64{3, 10, 25, 61.5, 90} {
		for _, line := range Wrap(m, text, Regular, 10, width) {
			// A single rune may exceed a tiny width; everything else must fit.
			if w := m.StringWidth(line, Regular, 10); w > width && len([]rune(line)) > 1 {
				t.Errorf("width %v: line %q is %v wide", width, line, w)
			}
		}
	}
}
