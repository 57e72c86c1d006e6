package charts

import (
	"math"
	"testing"
)

func TestBandScale(t *testing.T) {
	b := BandScale([]string{"a", "b", "c", "d"}, NewRange(0, 100))
	b.Inner = 0.2
	b.Outer = 0.1

	step := 100 / (4 - 0.2 + 0.2)
	if got := b.Step(); math.Abs(got-step) > 1e-9 {
		t.Errorf("step: want %g, got %g", step, got)
	}
	if got := b.Bandwidth(); math.Abs(got-step*0.8) > 1e-9 {
		t.Errorf("bandwidth: want %g, got %g", step*0.8, got)
	}
	start := (100 - step*3.8) / 2
	if got := b.Scale("a"); math.Abs(got-start) > 1e-9 {
		t.Errorf("first band: want %g, got %g", start, got)
	}
	if got := b.Scale("c"); math.Abs(got-(start+2*step)) > 1e-9 {
		t.Errorf("third band: want %g, got %g", start+2*step, got)
	}
	if got := b.Scale("z"); !math.IsNaN(got) {
		t.Errorf("unknown key should give NaN, got %g", got)
	}
	if b.Index("z") != -1 {
		t.Errorf("unknown key should give -1")
	}
}

func TestBandInvert(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		Inner float64
		Outer float64
		Pixel float64
		Want  int
	}{
		{Pixel: -1000, Want: 0},
		{Pixel: 1000, Want: 4},
		{Pixel: math.Inf(1), Want: 4},
		{Pixel: math.Inf(-1), Want: 0},
		{Pixel: 0, Want: 0},
		{Pixel: 19.9, Want: 0},
		{Pixel: 20, Want: 1},
		{Pixel: 99.9, Want: 4},
		{Pixel: 100, Want: 4},
		{Inner: 0.5, Outer: 0.25, Pixel: 0, Want: 0},
		{Inner: 0.5, Outer: 0.25, Pixel: 50, Want: 2},
		{Inner: 0.5, Outer: 0.25, Pixel: 100, Want: 4},
	}
	for _, tt := range tests {
		b := BandScale(keys, NewRange(0, 100))
		b.Inner, b.Outer = tt.Inner, tt.Outer
		if got := b.Invert(tt.Pixel); got != tt.Want {
			t.Errorf("invert(%g) with padding %g/%g: want %d, got %d", tt.Pixel, tt.Inner, tt.Outer, tt.Want, got)
		}
	}
}

func TestBandInvertRoundTrip(t *testing.T) {
	keys := make([]float64, 50)
	for i := range keys {
		keys[i] = float64(i)
	}
	b := BandScale(keys, NewRange(-300, 900))
	b.Inner, b.Outer = 0.3, 0.2
	for i, k := range keys {
		center := b.Scale(k) + b.Bandwidth()/2
		if got := b.Invert(center); got != i {
			t.Errorf("center of band %d resolved to %d", i, got)
		}
	}
}

func TestBandInvertEmpty(t *testing.T) {
	b := BandScale[string](nil, NewRange(0, 100))
	if got := b.Invert(10); got != -1 {
		t.Errorf("empty domain: want -1, got %d", got)
	}
	b = BandScale([]string{"a", "b"}, NewRange(0, 0))
	if got := b.Invert(10); got != 0 {
		t.Errorf("empty range: want 0, got %d", got)
	}
}

func TestBandWithRange(t *testing.T) {
	b := BandScale([]string{"a", "b"}, NewRange(0, 100))
	x := b.WithRange(NewRange(0, 200))
	if b.Len() != 100 || x.Len() != 200 {
		t.Errorf("WithRange should not modify the receiver")
	}
	if x.Index("b") != 1 {
		t.Errorf("domain should be kept")
	}
}

func TestBandInvertEnd(t *testing.T) {
	b := BandScale([]string{"a", "b", "c", "d", "e"}, NewRange(0, 100))
	tests := []struct {
		Pixel float64
		Want  int
	}{
		{Pixel: -5, Want: 0},
		{Pixel: 0, Want: 0},
		{Pixel: 19.9, Want: 0},
		{Pixel: 20, Want: 0},
		{Pixel: 20.1, Want: 1},
		{Pixel: 40, Want: 1},
		{Pixel: 100, Want: 4},
		{Pixel: 1000, Want: 4},
	}
	for _, tt := range tests {
		if got := b.InvertEnd(tt.Pixel); got != tt.Want {
			t.Errorf("invert end(%g): want %d, got %d", tt.Pixel, tt.Want, got)
		}
	}
	if got := BandScale[string](nil, NewRange(0, 100)).InvertEnd(10); got != -1 {
		t.Errorf("empty domain: want -1, got %d", got)
	}
}
