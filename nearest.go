package charts

import (
	"iter"
	"math"
)

// Nearest returns the index of the point closest to cursor, skipping the
// indices in excluded. Ties are won by the lowest index. The boolean is false
// when no point can be selected.
func Nearest(points []Pos, cursor Pos, excluded map[int]struct{}) (int, bool) {
	var (
		best = -1
		dist = math.Inf(1)
	)
	for i, p := range points {
		if _, ok := excluded[i]; ok {
			continue
		}
		d := p.Distance(cursor)
		if math.IsNaN(d) {
			continue
		}
		if best < 0 || d < dist {
			best, dist = i, d
		}
	}
	return best, best >= 0
}

// Outward yields the indices of a sequence of n values ordered by their
// distance to start: start, start+1, start-1, start+2, ... Every call of the
// returned sequence starts over.
func Outward(start, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if n <= 0 {
			return
		}
		from := clamp(start, 0, n-1)
		if !yield(from) {
			return
		}
		for d := 1; from+d < n || from-d >= 0; d++ {
			if i := from + d; i < n && !yield(i) {
				return
			}
			if i := from - d; i >= 0 && !yield(i) {
				return
			}
		}
	}
}

// closestDefined walks outward from start and returns the first index
// accepted by defined.
func closestDefined(start, n int, defined func(int) bool) (int, bool) {
	for i := range Outward(start, n) {
		if defined(i) {
			return i, true
		}
	}
	return -1, false
}
