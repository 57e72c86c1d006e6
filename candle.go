package charts

import (
	"errors"
	"math"
	"time"
)

var ErrEmpty = errors.New("no data")

type State int

const (
	StateReset State = iota
	StateZoomed
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateZoomed:
		return "zoomed"
	default:
		return "unknown"
	}
}

type candleView[T ScalerConstraint] struct {
	window Window
	width  float64
	height float64
	x      BandScaler[T]
	y      Scaler[float64]
	lo     float64
	hi     float64
}

// CandleChart draws OHLCV rows on a band scale. It can be zoomed on a window
// of its rows: only the range of the band scale changes and, if RescaleY is
// set, the y domain is computed again from the visible rows.
type CandleChart[T ScalerConstraint] struct {
	RescaleY  bool
	Duration  time.Duration
	Scheduler Scheduler

	rows []Candle[T]
	base BandScaler[T]
	view candleView[T]
}

func Candlestick[T ScalerConstraint](rows []Candle[T]) *CandleChart[T] {
	c := CandleChart[T]{
		RescaleY: true,
		Duration: DefaultDuration,
		rows:     rows,
		base:     BandScale(keysOf(rows), NewRange(0, 0)),
	}
	c.base.Inner = 0.2
	c.base.Outer = 0.1
	c.view.window = Full(len(rows))
	return &c
}

func (c *CandleChart[T]) Rows() []Candle[T] {
	return c.rows
}

// Padding sets the inner and outer padding of the band scale.
func (c *CandleChart[T]) Padding(inner, outer float64) {
	c.base.Inner, c.base.Outer = inner, outer
	c.Layout(c.view.width, c.view.height)
}

func (c *CandleChart[T]) State() State {
	if c.view.window.IsFull(len(c.rows)) {
		return StateReset
	}
	return StateZoomed
}

func (c *CandleChart[T]) Window() Window {
	return c.view.window
}

func (c *CandleChart[T]) Scalers() (BandScaler[T], Scaler[float64]) {
	return c.view.x, c.view.y
}

func (c *CandleChart[T]) YDomain() (float64, float64) {
	return c.view.lo, c.view.hi
}

// Visible returns the rows of the current window.
func (c *CandleChart[T]) Visible() []Candle[T] {
	if len(c.rows) == 0 {
		return nil
	}
	w := c.view.window
	return c.rows[w.Start : w.End+1]
}

// Layout keeps the current window and recomputes the scales for the new
// dimensions.
func (c *CandleChart[T]) Layout(width, height float64) {
	v, err := c.compute(c.view.window, width, height)
	if err != nil {
		v, _ = c.compute(Full(len(c.rows)), width, height)
	}
	c.view = v
}

func (c *CandleChart[T]) Zoom(w Window) error {
	if err := w.Check(len(c.rows)); err != nil {
		return err
	}
	v, err := c.compute(w, c.view.width, c.view.height)
	if err != nil {
		return err
	}
	c.view = v
	c.schedule()
	return nil
}

// Brush zooms on the rows whose bands are under the selection [x0, x1].
func (c *CandleChart[T]) Brush(x0, x1 float64) error {
	w, err := Brush(c.view.x, x0, x1)
	if err != nil {
		return err
	}
	return c.Zoom(w)
}

func (c *CandleChart[T]) Reset() error {
	if len(c.rows) == 0 {
		return ErrEmpty
	}
	return c.Zoom(Full(len(c.rows)))
}

// Locate resolves the pointer to the band under it. Rows outside of the
// window or without a close price are skipped in favor of their closest
// neighbour.
func (c *CandleChart[T]) Locate(pos Pos) (Hover[T], bool) {
	var h Hover[T]
	if c.view.y == nil {
		return h, false
	}
	i, ok := closestDefined(c.view.x.Invert(pos.X), len(c.rows), func(i int) bool {
		return c.view.window.Contains(i) && !math.IsNaN(c.rows[i].Close)
	})
	if !ok {
		return h, false
	}
	r := c.rows[i]
	h.Index = i
	h.X = r.X
	h.Y = r.Close
	h.Candle = &r
	h.Pos = NewPos(c.view.x.At(i)+c.view.x.Bandwidth()/2, c.view.y.Scale(r.Close))
	return h, true
}

func (c *CandleChart[T]) compute(w Window, width, height float64) (candleView[T], error) {
	v := candleView[T]{
		window: w,
		width:  width,
		height: height,
		x:      c.base.WithRange(NewRange(0, width)),
	}
	if n := len(c.rows); n > 0 {
		rg, err := ZoomRange(n, width, w)
		if err != nil {
			return v, err
		}
		v.x = c.base.WithRange(rg)
	}
	v.lo, v.hi = c.view.lo, c.view.hi
	if c.RescaleY || c.view.y == nil {
		rows := c.rows
		if c.RescaleY && len(rows) > 0 {
			rows = rows[w.Start : w.End+1]
		}
		lo, hi, ok := extent(rows, func(r Candle[T]) (float64, float64) {
			return r.Low, r.High
		})
		if !ok {
			lo, hi = 0, 1
		}
		v.lo, v.hi = lo, hi
	}
	v.y = NumberScaler(NumberDomain(v.hi, v.lo), NewRange(0, height))
	return v, nil
}

func (c *CandleChart[T]) schedule() {
	if c.Scheduler == nil {
		return
	}
	c.Scheduler.Schedule(Transition{
		Target:   "x",
		Attr:     "range",
		Values:   []float64{c.view.x.F, c.view.x.T},
		Duration: c.Duration,
	})
	if c.RescaleY {
		c.Scheduler.Schedule(Transition{
			Target:   "y",
			Attr:     "domain",
			Values:   []float64{c.view.lo, c.view.hi},
			Duration: c.Duration,
		})
	}
}
