package charts

import (
	"fmt"
	"math"
	"slices"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func labelsOf[T any](ticks []Tick[T]) []string {
	var list []string
	for _, t := range ticks {
		list = append(list, t.Label)
	}
	return list
}

func TestAxisLayout(t *testing.T) {
	a := Axis[float64]{
		Orientation: OrientBottom,
		Ticks:       4,
		Scaler:      NumberScaler(NumberDomain(0, 100), NewRange(0, 400)),
	}
	ticks := a.Layout(400, FontMeasurer{Size: FontSize})
	want := []string{"0.00", "25.00", "50.00", "75.00", "100.00"}
	if got := labelsOf(ticks); !slices.Equal(got, want) {
		t.Fatalf("want labels %v, got %v", want, got)
	}
	for i, t1 := range ticks {
		if math.Abs(t1.Pos-float64(i)*100) > 1e-9 {
			t.Errorf("tick %d: want position %d, got %g", i, i*100, t1.Pos)
		}
	}
}

func TestBandAxisLayout(t *testing.T) {
	keys := make([]string, 10)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	scale := BandScale(keys, NewRange(0, 100))
	a := BandAxis[string]{
		Orientation: OrientBottom,
		Scaler:      scale,
	}
	ticks := a.Layout(100, FontMeasurer{Size: 10})
	if got := labelsOf(ticks); !slices.Equal(got, []string{"k0", "k2", "k4", "k6", "k8"}) {
		t.Errorf("unexpected labels %v", got)
	}
	if ticks[0].Pos != 5 {
		t.Errorf("tick should be at the center of its band, got %g", ticks[0].Pos)
	}

	a.Scaler = scale.WithRange(NewRange(-100, 100))
	ticks = a.Layout(100, FontMeasurer{Size: 10})
	if got := labelsOf(ticks); !slices.Equal(got, []string{"k5", "k6", "k7", "k8", "k9"}) {
		t.Errorf("zoomed axis should only label visible bands, got %v", got)
	}
	if ticks[0].Pos != 10 {
		t.Errorf("first visible tick: want 10, got %g", ticks[0].Pos)
	}
}

func TestBandAxisDates(t *testing.T) {
	var (
		when = time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC)
		keys = []time.Time{when, when.AddDate(0, 0, 1), when.AddDate(0, 0, 2), when.AddDate(0, 0, 3)}
	)
	labels, err := DefaultConfig().DateLabels()
	if err != nil {
		t.Fatal(err)
	}
	a := BandAxis[time.Time]{
		Orientation: OrientBottom,
		Scaler:      BandScale(keys, NewRange(0, 1000)),
		Format:      labels,
	}
	want := []string{"Dec 30, 2023", "Dec 31", "Jan 01, 2024", "Jan 02"}
	for i := 0; i < 2; i++ {
		ticks := a.Layout(1000, FontMeasurer{Size: FontSize})
		if got := labelsOf(ticks); !slices.Equal(got, want) {
			t.Errorf("pass %d: want %v, got %v", i, want, got)
		}
	}
}

func TestBandAxisEmpty(t *testing.T) {
	a := BandAxis[string]{Scaler: BandScale[string](nil, NewRange(0, 100))}
	if ticks := a.Layout(100, FontMeasurer{Size: FontSize}); len(ticks) != 0 {
		t.Errorf("no tick expected, got %d", len(ticks))
	}
}

func TestFontMeasurer(t *testing.T) {
	face := basicfont.Face7x13
	tests := []struct {
		Label  string
		Size   float64
		Width  float64
		Height float64
	}{
		{Label: "", Width: 0, Height: 13},
		{Label: "abcd", Width: 28, Height: 13},
		{Label: "2024-01", Width: 49, Height: 13},
		{Label: "abcd", Size: 26, Width: 56, Height: 26},
		{Label: "Dec 30, 2023", Size: 6.5, Width: 42, Height: 6.5},
	}
	for _, tt := range tests {
		w, h := FontMeasurer{Face: face, Size: tt.Size}.Measure(tt.Label)
		if math.Abs(w-tt.Width) > 1e-9 || math.Abs(h-tt.Height) > 1e-9 {
			t.Errorf("%q at %g: want %gx%g, got %gx%g", tt.Label, tt.Size, tt.Width, tt.Height, w, h)
		}
	}
	for _, str := range []string{"k0", "100.00", "Jan 02, 2024"} {
		w, h := FontMeasurer{}.Measure(str)
		if adv := font.MeasureString(face, str).Ceil(); w != float64(adv) {
			t.Errorf("%q: width should be the advance of the face %d, got %g", str, adv, w)
		}
		if want := face.Metrics().Height.Ceil(); h != float64(want) {
			t.Errorf("%q: height should be the line height of the face %d, got %g", str, want, h)
		}
	}
}

func TestMaxLabelSize(t *testing.T) {
	w, h := MaxLabelSize(FontMeasurer{Size: 13}, []string{"a", "abcd", "ab"})
	if math.Abs(w-28) > 1e-9 || math.Abs(h-13) > 1e-9 {
		t.Errorf("want 28x13, got %gx%g", w, h)
	}
	if !OrientLeft.Vertical() || OrientBottom.Vertical() {
		t.Errorf("unexpected orientation")
	}
}

func TestBandAxisZoomedEdge(t *testing.T) {
	keys := make([]string, 100)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	scale := BandScale(keys, NewRange(-500, 4500))
	scale.Inner, scale.Outer = 0.2, 0.1

	a := BandAxis[string]{
		Orientation: OrientBottom,
		Scaler:      scale,
	}
	ticks := a.Layout(500, FontMeasurer{Size: FontSize})
	if len(ticks) != 10 || ticks[0].Value != "k10" || ticks[len(ticks)-1].Value != "k19" {
		t.Fatalf("want k10 to k19, got %v", labelsOf(ticks))
	}
	for _, x := range ticks {
		if x.Pos < 0 || x.Pos > 500 {
			t.Errorf("tick %s placed outside of the axis at %g", x.Label, x.Pos)
		}
	}
}
