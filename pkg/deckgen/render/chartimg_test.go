package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"reflect"
	"testing"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
)

var chartFrame = layout.Frame{Width: 10, Height: 5.625, Margin: 0.4}

// plan runs the layout pipeline for a request and fails the test on error.
func plan(t *testing.T, req layout.ChartRequest) layout.Result {
	t.Helper()
	res, err := layout.Plan(req, chartFrame)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	return res
}

func chartRequest(typ layout.ChartType, cats []string, series ...layout.Series) layout.ChartRequest {
	return layout.ChartRequest{
		Type:       typ,
		Categories: cats,
		Series:     series,
		DataType:   layout.DataPercentage,
		Area:       layout.Rect{X: 0.8, Y: 1.4, W: 6, H: 3.5},
	}
}

// decode paints p and decodes the resulting PNG.
func decode(t *testing.T, p layout.Placement) (ChartImage, image.Image) {
	t.Helper()
	ci, err := ChartPainter{DPI: 96}.Paint(p)
	if err != nil {
		t.Fatalf("Paint failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(ci.PNG))
	if err != nil {
		t.Fatalf("PNG does not decode: %v", err)
	}
	return ci, img
}

// hasColor reports whether any pixel is within a small distance of hex.
func hasColor(img image.Image, hex layout.Color) bool {
	var r0, g0, b0 int
	fmt.Sscanf(string(hex), "%02x%02x%02x", &r0, &g0, &b0)
	near := func(a uint32, b int) bool { return math.Abs(float64(a>>8)-float64(b)) <= 2 }

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if near(r, r0) && near(g, g0) && near(b, b0) {
				return true
			}
		}
	}
	return false
}

func TestPaintColumnChart(t *testing.T) {
	res := plan(t, chartRequest(layout.ChartColumn,
		[]string{"Q1", "Q2", "Q3"},
		layout.Series{Name: "2023", Values: []float64{20, 35, 30}},
		layout.Series{Name: "2024", Values: []float64{25, 40, 45}},
	))
	p := res.Placements[0]

	ci, img := decode(t, p)
	if ci.Width != 576 || ci.Height != 336 {
		t.Errorf("Expected 576x336 image for a 6x3.5in area at 96 DPI, got %dx%d", ci.Width, ci.Height)
	}
	if ci.Area != p.Area {
		t.Errorf("Expected image area %v, got %v", p.Area, ci.Area)
	}
	for i, col := range p.Style.Palette {
		if !hasColor(img, col) {
			t.Errorf("series %d color %s not found in image", i, col)
		}
	}
	if hasColor(img, layout.PaletteColor(2)) {
		t.Errorf("unused palette color %s found in a two-series chart", layout.PaletteColor(2))
	}
}

func TestPaintSplitBarParts(t *testing.T) {
	cats := make([]string, 13)
	vals := make([]float64, 13)
	for i := range cats {
		cats[i] = fmt.Sprintf("Item %02d", i+1)
		vals[i] = float64(i*7%40 + 3)
	}
	res := plan(t, chartRequest(layout.ChartColumn, cats, layout.Series{Name: "share", Values: vals}))
	if res.Strategy != layout.StrategySplit || len(res.Placements) != 2 {
		t.Fatalf("Expected a split into two placements, got %s with %d", res.Strategy, len(res.Placements))
	}

	for i, p := range res.Placements {
		ci, img := decode(t, p)
		if ci.Width >= 576 {
			t.Errorf("part %d: expected an image narrower than the full area, got %d px", i, ci.Width)
		}
		if !hasColor(img, p.Style.Palette[0]) {
			t.Errorf("part %d: bar color missing", i)
		}
	}
}

func TestPaintPieChart(t *testing.T) {
	res := plan(t, chartRequest(layout.ChartPie,
		[]string{"North", "South", "East", "West"},
		layout.Series{Name: "share", Values: []float64{40, 30, 20, 10}},
	))
	p := res.Placements[0]
	if len(p.Style.Palette) != 4 {
		t.Fatalf("Expected one color per slice, got %d", len(p.Style.Palette))
	}

	_, img := decode(t, p)
	for i, col := range p.Style.Palette {
		if !hasColor(img, col) {
			t.Errorf("slice %d color %s not found in image", i, col)
		}
	}
}

func TestPaintDegenerateCharts(t *testing.T) {
	tests := []struct {
		name string
		req  layout.ChartRequest
	}{
		{"all-zero pie", chartRequest(layout.ChartPie, []string{"a", "b"}, layout.Series{Name: "s", Values: []float64{0, 0}})},
		{"negative columns", chartRequest(layout.ChartColumn, []string{"a", "b"}, layout.Series{Name: "s", Values: []float64{-5, 12}})},
		{"all-zero bars", chartRequest(layout.ChartBar, []string{"a"}, layout.Series{Name: "s", Values: []float64{0}})},
		{"float64 extremes", chartRequest(layout.ChartColumn, []string{"a", "b"}, layout.Series{Name: "s", Values: []float64{1.7e308, -1.7e308}})},
		{"non-finite values", chartRequest(layout.ChartBar, []string{"a", "b", "c"}, layout.Series{Name: "s", Values: []float64{math.NaN(), math.Inf(1), 4}})},
	}

	for _, tt := range tests {
		res, err := layout.Plan(tt.req, chartFrame)
		if err != nil {
			t.Errorf("%s: Plan failed: %v", tt.name, err)
			continue
		}
		if _, err := (ChartPainter{DPI: 72}).Paint(res.Placements[0]); err != nil {
			t.Errorf("%s: Paint failed: %v", tt.name, err)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		lo, hi   float64
		expected []float64
	}{
		{0, 87, []float64{0, 20, 40, 60, 80, 100}},
		{-12, 30, []float64{-20, -10, 0, 10, 20, 30}},
		{0, 4.5, []float64{0, 1, 2, 3, 4, 5}},
		{0, 0, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{-1.7e308, 1.7e308, []float64{0, 1}},
		{math.NaN(), 10, []float64{0, 1}},
		{0, math.Inf(1), []float64{0, 1}},
		{math.Inf(-1), math.Inf(-1), []float64{0, 1}},
	}

	for _, tt := range tests {
		result := niceTicks(tt.lo, tt.hi, tickTarget)
		if len(result) != len(tt.expected) {
			t.Errorf("niceTicks(%v, %v) = %v, expected %v", tt.lo, tt.hi, result, tt.expected)
			continue
		}
		for i := range result {
			if math.Abs(result[i]-tt.expected[i]) > 1e-9 {
				t.Errorf("niceTicks(%v, %v) = %v, expected %v", tt.lo, tt.hi, result, tt.expected)
				break
			}
		}
	}
}

func TestValueRangeSkipsNonFinite(t *testing.T) {
	lo, hi := valueRange([]layout.Series{{Values: []float64{math.NaN(), -3, math.Inf(1), 8, math.Inf(-1)}}})
	if lo != -3 || hi != 8 {
		t.Errorf("valueRange = %v, %v, expected -3, 8", lo, hi)
	}
}

func TestDrawableValues(t *testing.T) {
	p := layout.Placement{Request: layout.ChartRequest{Series: []layout.Series{
		{Name: "s", Values: []float64{math.NaN(), math.Inf(-1), 1.7e308, 2.5}},
	}}}
	got := drawable(p).Request.Series[0].Values
	expected := []float64{0, 0, maxDrawable, 2.5}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("drawable values = %v, expected %v", got, expected)
	}
	if !math.IsNaN(p.Request.Series[0].Values[0]) {
		t.Error("drawable modified the caller's series")
	}
}

func TestLegendRows(t *testing.T) {
	tests := []struct {
		widths   []float64
		limit    float64
		expected [][]int
	}{
		{[]float64{30, 30, 30}, 200, [][]int{{0, 1, 2}}},
		{[]float64{30, 30, 30}, 70, [][]int{{0, 1}, {2}}},
		{[]float64{300, 10}, 100, [][]int{{0}, {1}}},
		{nil, 100, nil},
	}

	for _, tt := range tests {
		result := legendRows(tt.widths, 10, tt.limit)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("legendRows(%v, 10, %v) = %v, expected %v", tt.widths, tt.limit, result, tt.expected)
		}
	}
}

func TestLegendEntries(t *testing.T) {
	pie := plan(t, chartRequest(layout.ChartPie, []string{"a", "b", "c"},
		layout.Series{Name: "s", Values: []float64{1, 2, 3}})).Placements[0]
	if got := legendEntries(pie); len(got) != 3 || got[2].name != "c" || got[2].color != layout.PaletteColor(2) {
		t.Errorf("pie legend entries = %+v", got)
	}

	cols := plan(t, chartRequest(layout.ChartColumn, []string{"a", "b"},
		layout.Series{Name: "x", Values: []float64{1, 2}},
		layout.Series{Name: "y", Values: []float64{3, 4}})).Placements[0]
	if got := legendEntries(cols); len(got) != 2 || got[1].name != "y" || got[1].color != layout.PaletteColor(1) {
		t.Errorf("column legend entries = %+v", got)
	}
}
