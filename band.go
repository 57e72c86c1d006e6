package charts

import (
	"math"
)

// BandScaler maps an ordered list of discrete keys to contiguous slots of
// the range. Each slot is Step() wide and its drawable part is Bandwidth().
// Ranges are expected to grow from F to T.
type BandScaler[T comparable] struct {
	Range
	Inner float64
	Outer float64
	Align float64

	keys  []T
	index map[T]int
}

func BandScale[T comparable](keys []T, rg Range) BandScaler[T] {
	b := BandScaler[T]{
		Range: rg,
		Align: 0.5,
		keys:  keys,
		index: make(map[T]int, len(keys)),
	}
	for i, k := range keys {
		if _, ok := b.index[k]; !ok {
			b.index[k] = i
		}
	}
	return b
}

// WithRange returns a copy of the scaler drawing into rg. The domain is shared
// with the receiver and is never modified.
func (b BandScaler[T]) WithRange(rg Range) BandScaler[T] {
	x := b
	x.Range = rg
	return x
}

func (b BandScaler[T]) Domain() []T {
	return b.keys
}

func (b BandScaler[T]) Count() int {
	return len(b.keys)
}

func (b BandScaler[T]) Step() float64 {
	n := float64(len(b.keys))
	return b.Len() / math.Max(1, n-b.Inner+b.Outer*2)
}

func (b BandScaler[T]) Bandwidth() float64 {
	return b.Step() * (1 - b.Inner)
}

func (b BandScaler[T]) start() float64 {
	n := float64(len(b.keys))
	return b.F + (b.Len()-b.Step()*(n-b.Inner))*b.Align
}

// At gives the position of the band at index i.
func (b BandScaler[T]) At(i int) float64 {
	return b.start() + b.Step()*float64(i)
}

// Scale gives the position of the band of key, NaN if key is not part of the
// domain.
func (b BandScaler[T]) Scale(key T) float64 {
	i := b.Index(key)
	if i < 0 {
		return math.NaN()
	}
	return b.At(i)
}

func (b BandScaler[T]) Index(key T) int {
	i, ok := b.index[key]
	if !ok {
		return -1
	}
	return i
}

// Invert returns the index of the slot containing px. A slot is the band
// enlarged by half of the inner padding on each side. Positions before the
// first or after the last slot are clamped. An empty domain gives -1.
func (b BandScaler[T]) Invert(px float64) int {
	n := len(b.keys)
	if n == 0 {
		return -1
	}
	step := b.Step()
	if step == 0 || math.IsNaN(px) {
		return 0
	}
	i := floor((px - b.start() + step*b.Inner/2) / step)
	return int(clamp(i, 0, float64(n-1)))
}

// InvertEnd is Invert for the right bound of a pixel interval. A position on
// the left edge of a slot, where the slot before it ends, belongs to that
// previous slot.
func (b BandScaler[T]) InvertEnd(px float64) int {
	i := b.Invert(px)
	step := b.Step()
	if i <= 0 || step == 0 {
		return i
	}
	if edge := b.At(i) - step*b.Inner/2; px-edge < step*1e-9 {
		i--
	}
	return i
}
