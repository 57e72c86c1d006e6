package charts

import (
	"math"
)

// Band is the cumulative interval occupied by one category inside a stack.
type Band struct {
	Y0 float64
	Y1 float64
}

func (b Band) Height() float64 {
	return b.Y1 - b.Y0
}

type StackEntry[T comparable] struct {
	X     T
	Bands []Band
}

// Stacks keeps the stacks of every x in the order x values were first seen.
// Bands of an entry are ordered like Categories.
type Stacks[T comparable] struct {
	Categories []string
	Entries    []StackEntry[T]

	index map[T]int
	cats  map[string]int
}

// Categories returns the unique z values of rows in the order they are met.
func Categories[T ScalerConstraint](rows []Row[T]) []string {
	var (
		list  []string
		seen  = make(map[string]struct{})
		empty = struct{}{}
	)
	for _, r := range rows {
		if _, ok := seen[r.Z]; ok {
			continue
		}
		list = append(list, r.Z)
		seen[r.Z] = empty
	}
	return list
}

// Stack accumulates the y values of rows per x following the order of
// categories. Missing or undefined values count as zero and rows whose
// category is not listed are ignored. Values of duplicate (x, z) pairs are
// summed.
func Stack[T ScalerConstraint](rows []Row[T], categories []string) Stacks[T] {
	s := Stacks[T]{
		Categories: categories,
		index:      make(map[T]int),
		cats:       make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		if _, ok := s.cats[c]; !ok {
			s.cats[c] = i
		}
	}
	var values [][]float64
	for _, r := range rows {
		ix, ok := s.index[r.X]
		if !ok {
			ix = len(values)
			s.index[r.X] = ix
			s.Entries = append(s.Entries, StackEntry[T]{X: r.X})
			values = append(values, make([]float64, len(categories)))
		}
		cx, ok := s.cats[r.Z]
		if !ok || math.IsNaN(r.Y) {
			continue
		}
		values[ix][cx] += r.Y
	}
	for i := range s.Entries {
		var (
			total float64
			bands = make([]Band, len(categories))
		)
		for j, v := range values[i] {
			bands[j] = Band{
				Y0: total,
				Y1: total + v,
			}
			total += v
		}
		s.Entries[i].Bands = bands
	}
	return s
}

func (s Stacks[T]) Len() int {
	return len(s.Entries)
}

func (s Stacks[T]) Keys() []T {
	keys := make([]T, len(s.Entries))
	for i := range s.Entries {
		keys[i] = s.Entries[i].X
	}
	return keys
}

func (s Stacks[T]) At(x T, category string) (Band, bool) {
	ix, ok := s.index[x]
	if !ok {
		return Band{}, false
	}
	cx, ok := s.cats[category]
	if !ok {
		return Band{}, false
	}
	return s.Entries[ix].Bands[cx], true
}

// Max gives the top of the highest stack, the upper bound of the y domain.
func (s Stacks[T]) Max() float64 {
	var top float64
	for _, e := range s.Entries {
		if len(e.Bands) == 0 {
			continue
		}
		top = math.Max(top, e.Bands[len(e.Bands)-1].Y1)
	}
	return top
}
