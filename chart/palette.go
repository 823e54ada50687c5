package chart

// Category20 - the 20 color categorical palette
var Category20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

const fallbackColor = "#000000"

// Palette - explicit mapping from series key to color
type Palette struct {
	keys   []string
	colors map[string]string
}

// NewPalette assigns colors by position in keys, cycling past the end of
// Category20. Duplicate keys keep their first color.
func NewPalette(keys []string) Palette {
	p := Palette{
		keys:   make([]string, 0, len(keys)),
		colors: make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		if _, ok := p.colors[k]; ok {
			continue
		}
		p.colors[k] = Category20[len(p.keys)%len(Category20)]
		p.keys = append(p.keys, k)
	}
	return p
}

// Color returns the color of a key, black for unknown keys.
func (p Palette) Color(key string) string {
	if c, ok := p.colors[key]; ok {
		return c
	}
	return fallbackColor
}

func (p Palette) Keys() []string {
	return p.keys
}
