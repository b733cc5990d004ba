// internal/render/palette.go
package render

// Palette maps the postcard roles to SVG colors.
type Palette struct {
	LTR      string
	Internal string
	TSD      string
	Text     string
	BG       string
}

var palettes = map[string]Palette{
	"classic": {
		LTR:      "#4E79A7",
		Internal: "#A0CBE8",
		TSD:      "#333333",
		Text:     "#111111",
		BG:       "#FFFFFF",
	},
	"mono": {
		LTR:      "#666666",
		Internal: "#BBBBBB",
		TSD:      "#111111",
		Text:     "#000000",
		BG:       "#FFFFFF",
	},
	"protanopia": {
		LTR:      "#0072B2",
		Internal: "#56B4E9",
		TSD:      "#444444",
		Text:     "#111111",
		BG:       "#FFFFFF",
	},
}

// PaletteByName returns the named palette, falling back to classic.
func PaletteByName(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["classic"]
}
