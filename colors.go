package charts

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func (p Palette) Color(i int) string {
	if len(p) == 0 || i < 0 {
		return ""
	}
	return p[i%len(p)]
}

// Assign gives a color to each category following their order so that a
// category keeps its color whatever the categories hidden.
func (p Palette) Assign(categories []string) map[string]string {
	set := make(map[string]string, len(categories))
	for i, c := range categories {
		if _, ok := set[c]; ok {
			continue
		}
		set[c] = p.Color(i)
	}
	return set
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}
