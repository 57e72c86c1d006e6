package api

import (
	"fmt"
	"math"
	"time"

	"github.com/midbel/charts/v2"
)

type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Row is the JSON form of a row. A null or missing y is a missing value.
type Row struct {
	X string   `json:"x"`
	Y *float64 `json:"y"`
	Z string   `json:"z,omitempty"`
}

func (r Row) Row() charts.Row[string] {
	y := math.NaN()
	if r.Y != nil {
		y = *r.Y
	}
	return charts.CategoryRow(r.X, y, r.Z)
}

type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

func (c Candle) Candle() charts.Candle[time.Time] {
	return charts.TimeCandle(c.Date, c.Open, c.High, c.Low, c.Close, c.Volume)
}

func candleOf(c charts.Candle[time.Time]) Candle {
	return Candle{
		Date:   c.X,
		Open:   c.Open,
		High:   c.High,
		Low:    c.Low,
		Close:  c.Close,
		Volume: c.Volume,
	}
}

// Candles converts and checks the candles of a request.
func Candles(list []Candle) ([]charts.Candle[time.Time], error) {
	rows := make([]charts.Candle[time.Time], 0, len(list))
	for i, c := range list {
		x := c.Candle()
		if !x.Valid() {
			return nil, fmt.Errorf("invalid candle %d at %s", i, c.Date.Format(time.DateOnly))
		}
		rows = append(rows, x)
	}
	return rows, nil
}

type Stack struct {
	X     string                `json:"x"`
	Bands map[string][2]float64 `json:"bands"`
}

type StackView struct {
	Categories []string          `json:"categories"`
	Colors     map[string]string `json:"colors"`
	Domain     [2]float64        `json:"domain"`
	Stacks     []Stack           `json:"stacks"`
	Ticks      []Tick            `json:"ticks"`
}

// Stacked lays out a stacked chart of rows and describes its stacks and the
// ticks of its x axis.
func Stacked(cfg charts.Config, inner, outer float64, rows []charts.Row[string], categories, hide []string) StackView {
	kind := charts.Stacked(rows, categories...)
	kind.Inner, kind.Outer = inner, outer
	kind.Hide(hide...)

	var (
		chart  = charts.New(cfg, charts.Kind[string](kind))
		stacks = kind.Stacks()
		xs, _  = kind.Scalers()
		axis   = charts.BandAxis[string]{
			Orientation: charts.OrientBottom,
			Scaler:      xs,
			Offset:      chart.TickOffset,
		}
		view = StackView{
			Categories: stacks.Categories,
			Colors:     kind.Colors(),
			Domain:     [2]float64{0, stacks.Max()},
			Stacks:     make([]Stack, 0, stacks.Len()),
		}
	)
	for _, e := range stacks.Entries {
		s := Stack{
			X:     e.X,
			Bands: make(map[string][2]float64, len(e.Bands)),
		}
		for i, b := range e.Bands {
			s.Bands[stacks.Categories[i]] = [2]float64{b.Y0, b.Y1}
		}
		view.Stacks = append(view.Stacks, s)
	}
	view.Ticks = ticksOf(axis.Layout(chart.DrawingWidth(), chart.Measurer()))
	return view
}

type ZoomView struct {
	State     string     `json:"state"`
	Window    [2]int     `json:"window"`
	Range     [2]float64 `json:"range"`
	Step      float64    `json:"step"`
	Bandwidth float64    `json:"bandwidth"`
	Domain    [2]float64 `json:"domain"`
	Ticks     []Tick     `json:"ticks"`
}

// Zoom describes the current view of a candlestick chart.
func Zoom(chart *charts.Chart[time.Time], kind *charts.CandleChart[time.Time]) (ZoomView, error) {
	labels, err := chart.DateLabels()
	if err != nil {
		return ZoomView{}, err
	}
	var (
		xs, _  = kind.Scalers()
		lo, hi = kind.YDomain()
		win    = kind.Window()
		axis   = charts.BandAxis[time.Time]{
			Orientation: charts.OrientBottom,
			Scaler:      xs,
			Offset:      chart.TickOffset,
			Format:      labels,
		}
	)
	view := ZoomView{
		State:     kind.State().String(),
		Window:    [2]int{win.Start, win.End},
		Range:     [2]float64{xs.F, xs.T},
		Step:      xs.Step(),
		Bandwidth: xs.Bandwidth(),
		Domain:    [2]float64{lo, hi},
		Ticks:     ticksOf(axis.Layout(chart.DrawingWidth(), chart.Measurer())),
	}
	return view, nil
}

type DashView struct {
	DashArray string    `json:"dasharray"`
	Offsets   []float64 `json:"offsets"`
}

const maxDashSteps = 1000

// CheckDash rejects the lines and animation steps a dash view can not be
// computed for.
func CheckDash(length float64, steps int) error {
	if math.IsNaN(length) || length < 0 || length > charts.MaxDashLength {
		return fmt.Errorf("length must be between 0 and %d, got %g", charts.MaxDashLength, length)
	}
	if steps < 0 || steps > maxDashSteps {
		return fmt.Errorf("steps must be between 0 and %d, got %d", maxDashSteps, steps)
	}
	return nil
}

// Dash computes the dash array of a line and its offsets at steps+1 evenly
// spaced times of the opening animation.
func Dash(pattern []int, length float64, steps int) DashView {
	style := charts.DefaultStyle()
	style.Line.Dash = pattern

	var (
		array, offset = style.Stroke(length)
		view          = DashView{
			DashArray: array,
			Offsets:   make([]float64, 0, steps+1),
		}
	)
	for i := 0; i <= steps; i++ {
		view.Offsets = append(view.Offsets, offset(float64(i)/float64(max(steps, 1))))
	}
	return view
}

type HoverView struct {
	Index  int        `json:"index"`
	X      string     `json:"x"`
	Y      float64    `json:"y"`
	Z      string     `json:"z,omitempty"`
	Pos    [2]float64 `json:"pos"`
	Candle *Candle    `json:"candle,omitempty"`
}

func Hover(h charts.Hover[time.Time]) HoverView {
	v := HoverView{
		Index: h.Index,
		X:     h.X.Format(time.RFC3339),
		Y:     h.Y,
		Z:     h.Z,
		Pos:   [2]float64{h.Pos.X, h.Pos.Y},
	}
	if h.Candle != nil {
		c := candleOf(*h.Candle)
		v.Candle = &c
	}
	return v
}

type Transition struct {
	Target   string    `json:"target"`
	Attr     string    `json:"attr"`
	Value    string    `json:"value,omitempty"`
	Values   []float64 `json:"values"`
	Duration int64     `json:"duration"`
}

func transitionOf(t charts.Transition) Transition {
	return Transition{
		Target:   t.Target,
		Attr:     t.Attr,
		Value:    t.Value,
		Values:   t.Values,
		Duration: t.Duration.Milliseconds(),
	}
}

func ticksOf[T any](list []charts.Tick[T]) []Tick {
	ticks := make([]Tick, 0, len(list))
	for _, t := range list {
		ticks = append(ticks, Tick{Pos: t.Pos, Label: t.Label})
	}
	return ticks
}
