package charts

import (
	"math"
	"time"
)

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

func (p Pos) Distance(other Pos) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Row is one observation of a serie. A NaN Y marks a missing value.
type Row[T ScalerConstraint] struct {
	X T
	Y float64
	Z string
}

func NumberRow(x, y float64, z string) Row[float64] {
	return Row[float64]{
		X: x,
		Y: y,
		Z: z,
	}
}

func TimeRow(x time.Time, y float64, z string) Row[time.Time] {
	return Row[time.Time]{
		X: x,
		Y: y,
		Z: z,
	}
}

func CategoryRow(x string, y float64, z string) Row[string] {
	return Row[string]{
		X: x,
		Y: y,
		Z: z,
	}
}

func (r Row[T]) Defined() bool {
	return !math.IsNaN(r.Y)
}

type Candle[T ScalerConstraint] struct {
	X      T
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

func TimeCandle(x time.Time, o, h, l, c, v float64) Candle[time.Time] {
	return Candle[time.Time]{
		X:      x,
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: v,
	}
}

// Valid reports whether low <= open,close <= high and volume is not negative.
func (c Candle[T]) Valid() bool {
	if c.Volume < 0 || c.Low > c.High {
		return false
	}
	in := func(v float64) bool {
		return v >= c.Low && v <= c.High
	}
	return in(c.Open) && in(c.Close)
}

func keysOf[T ScalerConstraint](rows []Candle[T]) []T {
	keys := make([]T, len(rows))
	for i := range rows {
		keys[i] = rows[i].X
	}
	return keys
}
