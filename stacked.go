package charts

// StackChart stacks the values of its categories at each x, for stacked area
// and bar charts. Hidden categories are removed from the stacks.
type StackChart[T ScalerConstraint] struct {
	Style
	Inner float64
	Outer float64

	rows       []Row[T]
	categories []string
	hidden     map[string]struct{}

	stacks Stacks[T]
	x      BandScaler[T]
	y      Scaler[float64]
	width  float64
	height float64
}

// Stacked creates a chart stacking categories in the given order, or in the
// order they appear in rows when none are given.
func Stacked[T ScalerConstraint](rows []Row[T], categories ...string) *StackChart[T] {
	if len(categories) == 0 {
		categories = Categories(rows)
	}
	c := StackChart[T]{
		Style:      DefaultStyle(),
		Inner:      0.1,
		rows:       rows,
		categories: categories,
		hidden:     make(map[string]struct{}),
	}
	c.restack()
	return &c
}

func (c *StackChart[T]) Categories() []string {
	return c.categories
}

func (c *StackChart[T]) Stacks() Stacks[T] {
	return c.stacks
}

func (c *StackChart[T]) Scalers() (BandScaler[T], Scaler[float64]) {
	return c.x, c.y
}

// Colors assigns colors to all categories, hidden ones included.
func (c *StackChart[T]) Colors() map[string]string {
	return c.Fill.List.Assign(c.categories)
}

func (c *StackChart[T]) Hide(cats ...string) {
	for _, z := range cats {
		c.hidden[z] = struct{}{}
	}
	c.restack()
	c.Layout(c.width, c.height)
}

func (c *StackChart[T]) Show(cats ...string) {
	for _, z := range cats {
		delete(c.hidden, z)
	}
	c.restack()
	c.Layout(c.width, c.height)
}

func (c *StackChart[T]) Layout(width, height float64) {
	c.width, c.height = width, height
	c.x = BandScale(c.stacks.Keys(), NewRange(0, width))
	c.x.Inner, c.x.Outer = c.Inner, c.Outer
	c.y = NumberScaler(NumberDomain(c.stacks.Max(), 0), NewRange(0, height))
}

// Locate finds the stack under the pointer and, inside it, the band of the
// category under the pointer if any.
func (c *StackChart[T]) Locate(pos Pos) (Hover[T], bool) {
	var h Hover[T]
	i := c.x.Invert(pos.X)
	if i < 0 || c.y == nil {
		return h, false
	}
	e := c.stacks.Entries[i]
	h.Index = i
	h.X = e.X
	h.Stack = e.Bands
	var top float64
	if n := len(e.Bands); n > 0 {
		top = e.Bands[n-1].Y1
	}
	h.Y = top
	for j, b := range e.Bands {
		if b.Height() <= 0 {
			continue
		}
		if pos.Y >= c.y.Scale(b.Y1) && pos.Y <= c.y.Scale(b.Y0) {
			h.Z = c.stacks.Categories[j]
			h.Y = b.Height()
			top = b.Y1
			break
		}
	}
	h.Pos = NewPos(c.x.At(i)+c.x.Bandwidth()/2, c.y.Scale(top))
	return h, true
}

func (c *StackChart[T]) restack() {
	var visible []string
	for _, z := range c.categories {
		if _, ok := c.hidden[z]; !ok {
			visible = append(visible, z)
		}
	}
	c.stacks = Stack(c.rows, visible)
}
