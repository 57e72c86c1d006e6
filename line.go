package charts

import (
	"math"
	"time"
)

// LineChart draws one line per category of its rows. The pointer is resolved
// to the closest visible point.
type LineChart[T ScalerConstraint] struct {
	Style

	XScale  func([]Row[T], Range) Scaler[T]
	Defined func(Row[T]) bool

	rows     []Row[T]
	x        Scaler[T]
	y        Scaler[float64]
	points   []Pos
	hidden   map[string]struct{}
	excluded map[int]struct{}
}

func NumberLine(rows []Row[float64]) *LineChart[float64] {
	return newLine(rows, func(rows []Row[float64], rg Range) Scaler[float64] {
		lo, hi, _ := extent(rows, func(r Row[float64]) (float64, float64) {
			return r.X, r.X
		})
		return NumberScaler(NumberDomain(lo, hi), rg)
	})
}

func TimeLine(rows []Row[time.Time]) *LineChart[time.Time] {
	return newLine(rows, func(rows []Row[time.Time], rg Range) Scaler[time.Time] {
		var fst, lst time.Time
		for i, r := range rows {
			if i == 0 || r.X.Before(fst) {
				fst = r.X
			}
			if i == 0 || r.X.After(lst) {
				lst = r.X
			}
		}
		return TimeScaler(TimeDomain(fst, lst), rg)
	})
}

func newLine[T ScalerConstraint](rows []Row[T], xscale func([]Row[T], Range) Scaler[T]) *LineChart[T] {
	c := LineChart[T]{
		Style:  DefaultStyle(),
		XScale: xscale,
		rows:   rows,
		hidden: make(map[string]struct{}),
	}
	return &c
}

func (c *LineChart[T]) Rows() []Row[T] {
	return c.rows
}

func (c *LineChart[T]) Layout(width, height float64) {
	c.x = c.XScale(c.rows, NewRange(0, width))
	c.y = c.yscale(height)
	c.points = make([]Pos, len(c.rows))
	for i, r := range c.rows {
		if !c.defined(r) {
			c.points[i] = NewPos(math.NaN(), math.NaN())
			continue
		}
		c.points[i] = NewPos(c.x.Scale(r.X), c.y.Scale(r.Y))
	}
	c.exclude()
}

func (c *LineChart[T]) yscale(height float64) Scaler[float64] {
	lo, hi, ok := extent(c.rows, func(r Row[T]) (float64, float64) {
		if !c.defined(r) {
			return math.NaN(), math.NaN()
		}
		return r.Y, r.Y
	})
	if !ok {
		lo, hi = 0, 1
	}
	return NumberScaler(NumberDomain(hi, lo), NewRange(0, height))
}

func (c *LineChart[T]) Scalers() (Scaler[T], Scaler[float64]) {
	return c.x, c.y
}

func (c *LineChart[T]) Points() []Pos {
	return c.points
}

func (c *LineChart[T]) Hide(cats ...string) {
	for _, z := range cats {
		c.hidden[z] = struct{}{}
	}
	c.exclude()
}

func (c *LineChart[T]) Show(cats ...string) {
	for _, z := range cats {
		delete(c.hidden, z)
	}
	c.exclude()
}

func (c *LineChart[T]) Visible(z string) bool {
	_, ok := c.hidden[z]
	return !ok
}

func (c *LineChart[T]) Locate(pos Pos) (Hover[T], bool) {
	var h Hover[T]
	i, ok := Nearest(c.points, pos, c.excluded)
	if !ok {
		return h, false
	}
	r := c.rows[i]
	h.Index = i
	h.X = r.X
	h.Y = r.Y
	h.Z = r.Z
	h.Pos = c.points[i]
	return h, true
}

// Length gives the length of the line of category z.
func (c *LineChart[T]) Length(z string) float64 {
	var (
		total float64
		prev  Pos
		init  bool
	)
	for i, r := range c.rows {
		if r.Z != z || !c.defined(r) || i >= len(c.points) {
			continue
		}
		if init {
			total += prev.Distance(c.points[i])
		}
		prev, init = c.points[i], true
	}
	return total
}

// Open schedules the animation drawing each visible line from its start.
func (c *LineChart[T]) Open(s Scheduler, d time.Duration) {
	for _, z := range Categories(c.rows) {
		if !c.Visible(z) {
			continue
		}
		var (
			length       = c.Length(z)
			array, tween = c.Stroke(length)
		)
		s.Schedule(Transition{
			Target:   z,
			Attr:     "stroke-dashoffset",
			Value:    array,
			Values:   []float64{tween(0), tween(1)},
			Tween:    tween,
			Duration: d,
		})
	}
}

func (c *LineChart[T]) defined(r Row[T]) bool {
	if c.Defined != nil {
		return c.Defined(r)
	}
	return r.Defined()
}

func (c *LineChart[T]) exclude() {
	c.excluded = make(map[int]struct{})
	for i, r := range c.rows {
		if _, ok := c.hidden[r.Z]; ok || !c.defined(r) {
			c.excluded[i] = struct{}{}
		}
	}
}
