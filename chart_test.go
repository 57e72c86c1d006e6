package charts

import (
	"math"
	"testing"
	"time"
)

func TestChartMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 400, 400
	cfg.Padding = Padding{Top: 50, Right: 50, Bottom: 50, Left: 50}

	var (
		line   = sampleLine()
		chart  = New(cfg, Kind[float64](line))
		moves  []Hover[float64]
		leaves int
	)
	chart.OnMove = func(h Hover[float64]) {
		moves = append(moves, h)
	}
	chart.OnLeave = func() {
		leaves++
	}
	if w, h := chart.DrawingWidth(), chart.DrawingHeight(); w != 300 || h != 300 {
		t.Fatalf("unexpected drawing area %gx%g", w, h)
	}
	h, ok := chart.Move(250, 240)
	if !ok || h.Index != 6 {
		t.Fatalf("want point 6, got %+v", h)
	}
	if h.Pos.X != 250 || h.Pos.Y != 250 {
		t.Errorf("position should include padding, got %v", h.Pos)
	}
	line.Hide("a", "b")
	if _, ok := chart.Move(250, 240); ok {
		t.Errorf("no point should be found")
	}
	if len(moves) != 1 {
		t.Errorf("move callback should only be called when a point is found, called %d times", len(moves))
	}
	chart.Leave()
	if leaves != 1 {
		t.Errorf("leave callback not called")
	}
}

func TestChartResize(t *testing.T) {
	var (
		cfg   = DefaultConfig()
		kind  = Candlestick(sampleCandles(100))
		chart = New(cfg, Kind[time.Time](kind))
	)
	if err := kind.Zoom(Window{10, 19}); err != nil {
		t.Fatal(err)
	}
	chart.Resize(cfg.Padding.Horizontal()+500, 400)
	x, _ := kind.Scalers()
	if kind.Window() != (Window{10, 19}) || math.Abs(x.T-4500) > 1e-9 {
		t.Errorf("resize should keep the zoom, got %v over [%g, %g]", kind.Window(), x.F, x.T)
	}
}

func TestPalette(t *testing.T) {
	if len(Category10) != 10 || len(Tableau10) != 10 {
		t.Fatalf("palettes should have 10 colors")
	}
	if got := Category10.Color(11); got != Category10[1] {
		t.Errorf("colors should cycle, got %s", got)
	}
	set := Category10.Assign([]string{"x", "y", "x"})
	if set["x"] != "#1f77b4" || set["y"] != "#ff7f0e" {
		t.Errorf("unexpected colors %v", set)
	}
	if got := Palette(nil).Color(0); got != "" {
		t.Errorf("empty palette should give no color")
	}
}
