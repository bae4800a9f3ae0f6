package layout

import (
	"reflect"
	"testing"
)

func TestPaletteColorCycles(t *testing.T) {
	n := PaletteSize()
	for i := 0; i < n; i++ {
		if got := PaletteColor(i + n); got != PaletteColor(i) {
			t.Errorf("PaletteColor(%d) = %s, expected %s (cycling)", i+n, got, PaletteColor(i))
		}
	}
}

func TestPaletteColorsAreDistinctHex(t *testing.T) {
	seen := make(map[Color]bool)
	for i := 0; i < PaletteSize(); i++ {
		c := PaletteColor(i)
		if len(c) != 6 {
			t.Errorf("PaletteColor(%d) = %q, expected six hex digits", i, c)
		}
		if seen[c] {
			t.Errorf("PaletteColor(%d) = %q is repeated", i, c)
		}
		seen[c] = true
	}
}

func TestAssignPaletteIsStable(t *testing.T) {
	a := AssignPalette(11)
	b := AssignPalette(11)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("AssignPalette(11) differs between calls: %v vs %v", a, b)
	}

	// callers cannot mutate the shared palette through the result
	a[0] = "000000"
	if PaletteColor(0) == "000000" {
		t.Error("mutating an assignment changed the palette")
	}
}

func TestAssignPaletteEmpty(t *testing.T) {
	if got := AssignPalette(0); got != nil {
		t.Errorf("AssignPalette(0) = %v, expected nil", got)
	}
}
