package charts

type Style struct {
	Line struct {
		Dash    []int
		Width   float64
		Opacity float64
	}
	Fill struct {
		Opacity float64
		List    Palette
	}
}

func DefaultStyle() Style {
	var s Style
	s.Line.Width = 1
	s.Line.Opacity = 1
	s.Fill.Opacity = 0.5
	s.Fill.List = Category10
	return s
}

// Stroke gives the dash array of a line of the given length and the offset
// to animate to draw it.
func (s Style) Stroke(length float64) (string, func(float64) float64) {
	return DashArray(s.Line.Dash, length), DashOffset(s.Line.Dash, length)
}
