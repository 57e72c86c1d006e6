package charts

import (
	"math"
	"strconv"
	"strings"
)

// MaxDashLength is the longest line a dash array is built for. Longer lines
// are clamped to it.
const MaxDashLength = 1 << 20

// DashArray builds the stroke-dasharray used to draw a line of the given
// length progressively. The pattern is repeated to cover the whole line and
// closed by an empty dash followed by a gap as long as the line. An empty or
// zero pattern gives a solid line. Negative or undefined lengths count as 0.
func DashArray(pattern []int, total float64) string {
	total = dashLength(total)
	pattern = normalizeDash(pattern)
	size := sum(pattern)
	if size == 0 {
		str := formatLength(total)
		return str + " " + str
	}
	var (
		seq   = joinDash(pattern)
		count = int(ceil(total / float64(size)))
		parts = make([]string, 0, count+1)
	)
	for i := 0; i < count; i++ {
		parts = append(parts, seq)
	}
	parts = append(parts, "0 "+formatLength(ceil(total)))
	return strings.Join(parts, " ")
}

// DashOffset returns the stroke-dashoffset at time t in [0, 1] of the opening
// animation of a line. With a real pattern, offsets snap to whole periods of
// the pattern.
func DashOffset(pattern []int, total float64) func(float64) float64 {
	total = dashLength(total)
	pattern = normalizeDash(pattern)
	size := float64(sum(pattern))
	if size == 0 {
		return func(t float64) float64 {
			return total * (1 - t)
		}
	}
	return func(t float64) float64 {
		return math.Round(((1-t)*total)/size) * size
	}
}

func dashLength(total float64) float64 {
	if math.IsNaN(total) || total < 0 {
		return 0
	}
	return math.Min(total, MaxDashLength)
}

func normalizeDash(pattern []int) []int {
	list := make([]int, 0, len(pattern)*2)
	for _, p := range pattern {
		list = append(list, max(p, 0))
	}
	if len(list)%2 == 1 {
		list = append(list, list...)
	}
	return list
}

func joinDash(pattern []int) string {
	parts := make([]string, len(pattern))
	for i := range pattern {
		parts[i] = strconv.Itoa(pattern[i])
	}
	return strings.Join(parts, " ")
}

func formatLength(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
