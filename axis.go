package charts

import (
	"fmt"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

// Measurer gives the size in pixels of a rendered label.
type Measurer interface {
	Measure(string) (float64, float64)
}

// FontMeasurer measures labels with the glyph metrics of Face, scaled so that
// a line is Size pixels high. A nil Face uses basicfont.Face7x13 and a zero Size
// keeps the size of the face.
type FontMeasurer struct {
	Face font.Face
	Size float64
}

func (m FontMeasurer) Measure(str string) (float64, float64) {
	face := m.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	var (
		width  = fromFixed(font.MeasureString(face, str))
		height = fromFixed(face.Metrics().Height)
	)
	if m.Size <= 0 || height == 0 {
		return width, height
	}
	return width * m.Size / height, m.Size
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// MaxLabelSize returns the width and height of the largest labels.
func MaxLabelSize(m Measurer, labels []string) (float64, float64) {
	var width, height float64
	for _, str := range labels {
		w, h := m.Measure(str)
		width = max(width, w)
		height = max(height, h)
	}
	return width, height
}

type Tick[T any] struct {
	Value T
	Pos   float64
	Label string
}

// Axis computes the ticks of a continuous scale.
type Axis[T ScalerConstraint] struct {
	Orientation
	Ticks  int
	Offset int
	Scaler Scaler[T]
	// Format creates the function labelling the ticks of one pass.
	Format func() func(T) string
}

func (a Axis[T]) Layout(length float64, m Measurer) []Tick[T] {
	values := a.Scaler.Values(a.Ticks)
	return layoutTicks(a.Orientation, values, length, a.Offset, m, a.formatter, a.Scaler.Scale)
}

func (a Axis[T]) formatter() func(T) string {
	if a.Format != nil {
		return a.Format()
	}
	return defaultFormat[T]
}

// BandAxis computes the ticks of the bands visible in [0, length].
type BandAxis[T ScalerConstraint] struct {
	Orientation
	Offset int
	Scaler BandScaler[T]
	Format func() func(T) string
}

func (a BandAxis[T]) Layout(length float64, m Measurer) []Tick[T] {
	if a.Scaler.Count() == 0 {
		return nil
	}
	var (
		fst   = a.Scaler.Invert(0)
		lst   = max(a.Scaler.InvertEnd(length), fst)
		half  = a.Scaler.Bandwidth() / 2
		place = func(v T) float64 {
			return a.Scaler.Scale(v) + half
		}
	)
	values := a.Scaler.Domain()[fst : lst+1]
	return layoutTicks(a.Orientation, values, length, a.Offset, m, a.formatter, place)
}

func (a BandAxis[T]) formatter() func(T) string {
	if a.Format != nil {
		return a.Format()
	}
	return defaultFormat[T]
}

func layoutTicks[T any](orient Orientation, values []T, length float64, offset int, m Measurer, format func() func(T) string, place func(T) float64) []Tick[T] {
	if len(values) == 0 {
		return nil
	}
	var (
		labels = make([]string, len(values))
		label  = format()
	)
	for i := range values {
		labels[i] = label(values[i])
	}
	size, height := MaxLabelSize(m, labels)
	if orient.Vertical() {
		size = height
	}
	var (
		keep  = FilterTicks(values, length, size, offset)
		ticks = make([]Tick[T], 0, len(keep))
	)
	label = format()
	for _, v := range keep {
		t := Tick[T]{
			Value: v,
			Pos:   place(v),
			Label: label(v),
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func defaultFormat[T any](v T) string {
	switch v := any(v).(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case string:
		return v
	case interface{ Format(string) string }:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
