package charts

import (
	"math"
	"slices"
	"testing"
)

func sampleStack() *StackChart[string] {
	rows := []Row[string]{
		CategoryRow("2024-01", 1, "A"),
		CategoryRow("2024-01", 2, "B"),
		CategoryRow("2024-02", 3, "A"),
	}
	c := Stacked(rows)
	c.Layout(200, 300)
	return c
}

func TestStackChartLocate(t *testing.T) {
	c := sampleStack()
	tests := []struct {
		Pos   Pos
		X     string
		Z     string
		Value float64
		Top   float64
	}{
		{Pos: NewPos(50, 250), X: "2024-01", Z: "A", Value: 1, Top: 200},
		{Pos: NewPos(50, 150), X: "2024-01", Z: "B", Value: 2, Top: 0},
		{Pos: NewPos(150, 10), X: "2024-02", Z: "A", Value: 3, Top: 0},
		{Pos: NewPos(-40, 290), X: "2024-01", Z: "A", Value: 1, Top: 200},
		{Pos: NewPos(50, -20), X: "2024-01", Z: "", Value: 3, Top: 0},
	}
	for _, tt := range tests {
		h, ok := c.Locate(tt.Pos)
		if !ok {
			t.Errorf("%v: nothing found", tt.Pos)
			continue
		}
		if h.X != tt.X || h.Z != tt.Z || h.Y != tt.Value {
			t.Errorf("%v: want %s/%s = %g, got %s/%s = %g", tt.Pos, tt.X, tt.Z, tt.Value, h.X, h.Z, h.Y)
		}
		if math.Abs(h.Pos.Y-tt.Top) > 1e-9 {
			t.Errorf("%v: want top at %g, got %g", tt.Pos, tt.Top, h.Pos.Y)
		}
		if len(h.Stack) != 2 {
			t.Errorf("%v: hover should carry the whole stack", tt.Pos)
		}
	}
}

func TestStackChartHide(t *testing.T) {
	c := sampleStack()
	colors := c.Colors()

	c.Hide("A")
	s := c.Stacks()
	if !slices.Equal(s.Categories, []string{"B"}) {
		t.Errorf("unexpected categories %v", s.Categories)
	}
	if s.Max() != 2 {
		t.Errorf("hidden categories should not be stacked, max is %g", s.Max())
	}
	if b, _ := s.At("2024-02", "B"); b.Height() != 0 {
		t.Errorf("missing value should give an empty band, got %v", b)
	}
	_, y := c.Scalers()
	if got := y.Scale(2); got != 0 {
		t.Errorf("y scale should follow the visible stacks, got %g", got)
	}
	if got := c.Colors(); got["B"] != colors["B"] {
		t.Errorf("color of B changed from %s to %s", colors["B"], got["B"])
	}

	c.Show("A")
	if s := c.Stacks(); s.Max() != 3 || len(s.Categories) != 2 {
		t.Errorf("shown categories should be stacked again")
	}
}

func TestStackChartEmpty(t *testing.T) {
	c := Stacked[string](nil)
	c.Layout(100, 100)
	if _, ok := c.Locate(NewPos(10, 10)); ok {
		t.Errorf("nothing should be found in an empty chart")
	}
}
