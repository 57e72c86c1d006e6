package charts

import (
	"math"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

func ceil[T number](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T number](a T) T {
	return T(math.Floor(float64(a)))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sum[T number](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// extent returns the lowest and highest values computed by get over list,
// ignoring NaN. ok is false when no value has been seen.
func extent[E any](list []E, get func(E) (float64, float64)) (lo, hi float64, ok bool) {
	for _, e := range list {
		a, b := get(e)
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		if !ok || a < lo {
			lo = a
		}
		if !ok || b > hi {
			hi = b
		}
		ok = true
	}
	return lo, hi, ok
}
