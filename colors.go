package charts

type Palette []string

var (
	Simca      Palette
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Simca = splitColorString("3B91C36BC6B6F4D384F09596FBB77B9E96D7")
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

// PaletteByName gives the palette registered under name, the default one
// when name is empty.
func PaletteByName(name string) (Palette, bool) {
	switch name {
	case "", "simca", "default":
		return Simca, true
	case "category10":
		return Category10, true
	case "tableau10":
		return Tableau10, true
	default:
		return nil, false
	}
}

func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return Simca.Color(i)
	}
	return p[i%len(p)]
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}
