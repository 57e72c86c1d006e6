package charts

import (
	"math"
	"strings"
	"testing"
)

func TestDashArray(t *testing.T) {
	tests := []struct {
		Pattern []int
		Total   float64
		Want    string
	}{
		{Pattern: nil, Total: 10, Want: "10 10"},
		{Pattern: []int{0}, Total: 10, Want: "10 10"},
		{Pattern: []int{0, 0}, Total: 2.5, Want: "2.5 2.5"},
		{Pattern: []int{4, 2}, Total: 12, Want: "4 2 4 2 0 12"},
		{Pattern: []int{1, 2, 3}, Total: 12, Want: "1 2 3 1 2 3 0 12"},
		{Pattern: []int{5, 5}, Total: 12.2, Want: "5 5 5 5 0 13"},
		{Pattern: []int{-1, 3}, Total: 6, Want: "0 3 0 3 0 6"},
	}
	for _, tt := range tests {
		got := DashArray(tt.Pattern, tt.Total)
		if got != tt.Want {
			t.Errorf("DashArray(%v, %g): want %q, got %q", tt.Pattern, tt.Total, tt.Want, got)
		}
	}
}

func TestDashOffset(t *testing.T) {
	tests := []struct {
		Pattern []int
		Total   float64
		At      float64
		Want    float64
	}{
		{Pattern: []int{5, 5}, Total: 100, At: 1, Want: 0},
		{Pattern: []int{5, 5}, Total: 100, At: 0, Want: 100},
		{Pattern: []int{5, 5}, Total: 100, At: 0.52, Want: 50},
		{Pattern: nil, Total: 100, At: 0.25, Want: 75},
		{Pattern: []int{0}, Total: 40, At: 1, Want: 0},
	}
	for _, tt := range tests {
		got := DashOffset(tt.Pattern, tt.Total)(tt.At)
		if got != tt.Want {
			t.Errorf("DashOffset(%v, %g)(%g): want %g, got %g", tt.Pattern, tt.Total, tt.At, tt.Want, got)
		}
	}
}

func TestDashLength(t *testing.T) {
	tests := []struct {
		Total float64
		Array string
	}{
		{Total: -20, Array: "0 0"},
		{Total: math.NaN(), Array: "0 0"},
		{Total: math.Inf(-1), Array: "0 0"},
	}
	for _, tt := range tests {
		if got := DashArray([]int{4, 2}, tt.Total); got != tt.Array {
			t.Errorf("DashArray(%g): want %q, got %q", tt.Total, tt.Array, got)
		}
		if got := DashOffset([]int{4, 2}, tt.Total)(0); got != 0 {
			t.Errorf("DashOffset(%g): want 0, got %g", tt.Total, got)
		}
	}
	for _, total := range []float64{1e12, math.Inf(1)} {
		array := DashArray([]int{1, 1}, total)
		if !strings.HasSuffix(array, " 0 1048576") {
			t.Errorf("DashArray(%g) should be clamped to %d", total, MaxDashLength)
		}
		if got := DashOffset([]int{1, 1}, total)(0); got != MaxDashLength {
			t.Errorf("DashOffset(%g): want %d, got %g", total, MaxDashLength, got)
		}
	}
}

func TestStyleStroke(t *testing.T) {
	s := DefaultStyle()
	s.Line.Dash = []int{4, 2}
	array, offset := s.Stroke(12)
	if array != "4 2 4 2 0 12" {
		t.Errorf("unexpected dash array %q", array)
	}
	if got := offset(0); got != 12 {
		t.Errorf("offset at start: want 12, got %g", got)
	}
}
