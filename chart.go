package charts

import (
	"time"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

const (
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultDuration = 250 * time.Millisecond
)

var DefaultPadding = Padding{
	Top:    20,
	Right:  40,
	Bottom: 40,
	Left:   60,
}

// Config groups the options of a chart. It is built once and handed to New.
type Config struct {
	Width  float64
	Height float64
	Padding

	// Duration of the transitions handed to the scheduler.
	Duration time.Duration
	// RescaleY recomputes the y domain from the visible values after a zoom.
	RescaleY bool
	// Dash is the on/off pattern of lines, empty for solid lines.
	Dash []int

	DayFormat  string
	YearFormat string
	TickOffset int
	FontSize   float64
}

func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Padding:    DefaultPadding,
		Duration:   DefaultDuration,
		RescaleY:   true,
		DayFormat:  DefaultDayFormat,
		YearFormat: DefaultYearFormat,
		FontSize:   FontSize,
	}
}

func (c Config) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Config) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

// DateLabels returns a constructor of date formatters following the day and
// year formats of the configuration. Every call gives a fresh formatter.
func (c Config) DateLabels() (func() func(time.Time) string, error) {
	if _, err := NewDateFormatter(c.DayFormat, c.YearFormat); err != nil {
		return nil, err
	}
	return func() func(time.Time) string {
		f, _ := NewDateFormatter(c.DayFormat, c.YearFormat)
		return f.Format
	}, nil
}

func (c Config) Measurer() Measurer {
	size := c.FontSize
	if size <= 0 {
		size = FontSize
	}
	return FontMeasurer{Size: size}
}

// Hover is the record given to the move callback of a chart. Pos is expressed
// in the coordinates of the whole chart, padding included.
type Hover[T ScalerConstraint] struct {
	Index  int
	X      T
	Y      float64
	Z      string
	Candle *Candle[T]
	Stack  []Band
	Pos    Pos
}

// Kind computes the scales of one type of chart and resolves pointer
// positions, given in the coordinates of the drawing area, to data.
type Kind[T ScalerConstraint] interface {
	Layout(width, height float64)
	Locate(Pos) (Hover[T], bool)
}

// Transition describes the target of an animated attribute. Value holds the
// attribute set before the animation starts, if any.
type Transition struct {
	Target   string
	Attr     string
	Value    string
	Values   []float64
	Tween    func(float64) float64
	Duration time.Duration
}

// Scheduler interpolates attributes toward their target over time. Charts
// only hand it targets.
type Scheduler interface {
	Schedule(Transition)
}

type Chart[T ScalerConstraint] struct {
	Config
	Kind Kind[T]

	OnMove  func(Hover[T])
	OnLeave func()
}

func New[T ScalerConstraint](cfg Config, kind Kind[T]) *Chart[T] {
	c := Chart[T]{
		Config: cfg,
		Kind:   kind,
	}
	c.Resize(cfg.Width, cfg.Height)
	return &c
}

func (c *Chart[T]) Resize(width, height float64) {
	c.Width, c.Height = width, height
	c.Kind.Layout(c.DrawingWidth(), c.DrawingHeight())
}

// Move resolves the pointer at x, y and gives the result to OnMove. Nothing
// happens when no data can be found under the pointer.
func (c *Chart[T]) Move(x, y float64) (Hover[T], bool) {
	pos := NewPos(x-c.Padding.Left, y-c.Padding.Top)
	h, ok := c.Kind.Locate(pos)
	if !ok {
		return h, false
	}
	h.Pos.X += c.Padding.Left
	h.Pos.Y += c.Padding.Top
	if c.OnMove != nil {
		c.OnMove(h)
	}
	return h, true
}

func (c *Chart[T]) Leave() {
	if c.OnLeave != nil {
		c.OnLeave()
	}
}
