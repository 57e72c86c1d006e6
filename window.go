package charts

import (
	"fmt"
)

// Window is an inclusive range of indices over an ordered dataset.
type Window struct {
	Start int
	End   int
}

func Full(n int) Window {
	return Window{
		Start: 0,
		End:   n - 1,
	}
}

func (w Window) Len() int {
	return w.End - w.Start + 1
}

func (w Window) IsFull(n int) bool {
	return w.Start == 0 && w.End == n-1
}

func (w Window) Contains(i int) bool {
	return i >= w.Start && i <= w.End
}

func (w Window) Check(n int) error {
	if n <= 0 {
		return WindowError{Window: w, Size: n, Reason: "empty dataset"}
	}
	if w.Start > w.End {
		return WindowError{Window: w, Size: n, Reason: "start after end"}
	}
	if w.Start < 0 || w.End > n-1 {
		return WindowError{Window: w, Size: n, Reason: "index out of bounds"}
	}
	return nil
}

type WindowError struct {
	Window
	Size   int
	Reason string
}

func (e WindowError) Error() string {
	return fmt.Sprintf("invalid window [%d, %d] over %d values: %s", e.Start, e.End, e.Size, e.Reason)
}

// ZoomRange computes the range a band scale over the n values of a dataset has
// to draw into so that the values of w fill [0, width]. The domain of the
// scale is left untouched.
func ZoomRange(n int, width float64, w Window) (Range, error) {
	if err := w.Check(n); err != nil {
		return Range{}, err
	}
	if w.IsFull(n) {
		return NewRange(0, width), nil
	}
	var (
		ratio  = float64(n) / float64(w.Len())
		offset = float64(w.Start) / float64(n)
		size   = width * ratio
	)
	return NewRange(-offset*size, size-offset*size), nil
}

// Brush converts a pixel selection into a window using the band inversion of
// scale. The bounds can be given in any order. The right bound is exclusive so
// that brushing the visible area gives back the current window.
func Brush[T comparable](scale BandScaler[T], x0, x1 float64) (Window, error) {
	if scale.Count() == 0 {
		return Window{}, WindowError{Size: 0, Reason: "empty dataset"}
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	w := Window{
		Start: scale.Invert(x0),
		End:   scale.InvertEnd(x1),
	}
	w.End = max(w.End, w.Start)
	return w, nil
}
