package charts

// FilterTicks keeps the largest regular subset of ticks whose labels, at most
// labelWidth pixels wide, fit into width without overlapping. Ticks are taken
// every interval starting at offset. The result is never empty when ticks is
// not.
func FilterTicks[T any](ticks []T, width, labelWidth float64, offset int) []T {
	if len(ticks) == 0 {
		return nil
	}
	if labelWidth < 0 {
		labelWidth = 0
	}
	var (
		count    = max(int(floor(width/(labelWidth+1)))+1, 1)
		interval = max(ceil(float64(len(ticks))/float64(count)), 1)
		step     = int(interval)
	)
	if offset < 0 || offset >= len(ticks) {
		offset = ((offset % step) + step) % step
	}
	list := make([]T, 0, len(ticks)/step+1)
	for i := offset; i < len(ticks); i += step {
		list = append(list, ticks[i])
	}
	return list
}
