package layout

// Color is an RGB hex triplet without the leading '#', e.g. "0066CC".
type Color string

// palette is the fixed series color order. It is never mutated.
var palette = [...]Color{
	"0066CC", // Blue
	"F28E2B", // Orange
	"2CA58D", // Teal
	"E15759", // Red
	"6C5B7B", // Violet
	"EDC948", // Yellow
	"76B7B2", // Sage
	"9C755F", // Brown
}

// PaletteSize returns the number of distinct palette colors.
func PaletteSize() int {
	return len(palette)
}

// PaletteColor returns the color for index i, cycling through the palette.
func PaletteColor(i int) Color {
	n := len(palette)
	return palette[((i%n)+n)%n]
}

// AssignPalette returns one color per item in encounter order.
func AssignPalette(count int) []Color {
	if count <= 0 {
		return nil
	}
	colors := make([]Color, count)
	for i := range colors {
		colors[i] = PaletteColor(i)
	}
	return colors
}
