// Package render draws slides onto a GoPPT presentation and rasterises
// chart placements with gg.
package render

import (
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
)

// Theme holds the colors every painter uses, as RGB hex triplets.
type Theme struct {
	Background layout.Color `yaml:"background" json:"background"`
	Title      layout.Color `yaml:"title" json:"title"`
	Accent     layout.Color `yaml:"accent" json:"accent"`
	Text       layout.Color `yaml:"text" json:"text"`
	Citation   layout.Color `yaml:"citation" json:"citation"`
	Muted      layout.Color `yaml:"muted" json:"muted"`
	Panel      layout.Color `yaml:"panel" json:"panel"`
}

// DefaultTheme returns the stock colors.
func DefaultTheme() Theme {
	return Theme{
		Background: "F8F9FA",
		Title:      "003366",
		Accent:     "0066CC",
		Text:       "333333",
		Citation:   "808080",
		Muted:      "C4CAD0",
		Panel:      "EAF1F8",
	}
}

// Merge returns t with every empty field taken from base.
func (t Theme) Merge(base Theme) Theme {
	pick := func(c, d layout.Color) layout.Color {
		if c == "" {
			return d
		}
		return layout.Color(strings.ToUpper(strings.TrimPrefix(string(c), "#")))
	}
	return Theme{
		Background: pick(t.Background, base.Background),
		Title:      pick(t.Title, base.Title),
		Accent:     pick(t.Accent, base.Accent),
		Text:       pick(t.Text, base.Text),
		Citation:   pick(t.Citation, base.Citation),
		Muted:      pick(t.Muted, base.Muted),
		Panel:      pick(t.Panel, base.Panel),
	}
}

// argb converts an RGB triplet to the opaque ARGB form GoPPT expects.
func argb(c layout.Color) string {
	return "FF" + strings.ToUpper(string(c))
}

// solidFill creates a solid fill of c.
func solidFill(c layout.Color) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb(c)))
}
