package render

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/parser"
)

// DefaultDPI is the resolution charts are rasterised at.
const DefaultDPI = 192

// Vertical anchors for DrawStringAnchored, whose y is the baseline.
const (
	anchorAbove  = -0.17
	anchorMiddle = 0.25
	anchorBelow  = 0.63
)

// tickTarget is the number of value-axis intervals aimed for.
const tickTarget = 5

// ChartImage is a chart rasterised for one placement.
type ChartImage struct {
	// Area is where the image goes on the slide, in inches.
	Area layout.Rect
	// PNG is the encoded image.
	PNG []byte
	// Width and Height are the pixel size of PNG.
	Width  int
	Height int
}

// ChartPainter rasterises chart placements. The zero value paints at
// DefaultDPI with DefaultTheme. Paint keeps no state between calls and is
// safe for concurrent use; the parsed font is shared.
type ChartPainter struct {
	DPI   float64
	Theme Theme
}

func (cp ChartPainter) dpi() float64 {
	if cp.DPI <= 0 {
		return DefaultDPI
	}
	return cp.DPI
}

// chartFont parses the chart font once; the source is shared by every
// Paint call.
var chartFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Paint draws p into a PNG sized to its area, applying every field of its
// style directive.
func (cp ChartPainter) Paint(p layout.Placement) (ChartImage, error) {
	fonts, err := chartFont()
	if err != nil {
		return ChartImage{}, fmt.Errorf("load chart font: %w", err)
	}
	p = drawable(p)

	dpi := cp.dpi()
	w := max(parser.InchesToPixels(p.Area.W, dpi), 1)
	h := max(parser.InchesToPixels(p.Area.H, dpi), 1)

	dc := gg.NewContext(w, h)
	defer dc.Close()

	c := &canvas{
		dc:    dc,
		fonts: fonts,
		scale: dpi / 72,
		theme: cp.Theme.Merge(DefaultTheme()),
	}
	c.fillRect(0, 0, float64(w), float64(h), c.theme.Background)

	pad := 6 * c.scale
	plot := box{x: pad, y: pad, w: float64(w) - 2*pad, h: float64(h) - 2*pad}
	plot = c.legend(p, plot)

	if p.Style.EffectiveType == layout.ChartPie {
		c.pie(p, plot)
	} else {
		c.bars(p, plot)
	}
	if c.err != nil {
		return ChartImage{}, fmt.Errorf("draw %s chart: %w", p.Style.EffectiveType, c.err)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return ChartImage{}, fmt.Errorf("encode chart: %w", err)
	}
	return ChartImage{Area: p.Area, PNG: buf.Bytes(), Width: w, Height: h}, nil
}

// box is a rectangle in pixels.
type box struct {
	x, y, w, h float64
}

func (b box) right() float64  { return b.x + b.w }
func (b box) bottom() float64 { return b.y + b.h }

// canvas wraps a gg context with the chart's fonts and colors. The first
// drawing error is kept in err and later calls still run.
type canvas struct {
	dc    *gg.Context
	fonts *text.FontSource
	scale float64 // pixels per point
	theme Theme
	err   error
}

func (c *canvas) keep(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

// setFont selects a face of pt points and returns its pixel size.
func (c *canvas) setFont(pt int) float64 {
	px := float64(pt) * c.scale
	c.dc.SetFont(c.fonts.Face(px))
	return px
}

func (c *canvas) measure(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

func (c *canvas) fillRect(x, y, w, h float64, col layout.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.SetHexColor(string(col))
	c.dc.DrawRectangle(x, y, w, h)
	c.keep(c.dc.Fill())
}

func (c *canvas) line(x1, y1, x2, y2 float64, col layout.Color, width float64) {
	c.dc.SetHexColor(string(col))
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.keep(c.dc.Stroke())
}

func (c *canvas) label(s string, x, y, ax, ay float64, col layout.Color) {
	c.dc.SetHexColor(string(col))
	c.dc.DrawStringAnchored(s, x, y, ax, ay)
}

// legendEntry is one swatch of the legend.
type legendEntry struct {
	name  string
	color layout.Color
}

// legendEntries lists categories for a pie and series otherwise, matching
// how the palette was assigned.
func legendEntries(p layout.Placement) []legendEntry {
	var names []string
	if p.Style.EffectiveType == layout.ChartPie {
		names = p.Request.Categories
	} else {
		for _, s := range p.Request.Series {
			names = append(names, s.Name)
		}
	}

	entries := make([]legendEntry, len(names))
	for i, name := range names {
		entries[i] = legendEntry{name: name, color: paletteAt(p.Style.Palette, i)}
	}
	return entries
}

// legend draws the legend and returns what is left of plot.
func (c *canvas) legend(p layout.Placement, plot box) box {
	lg := p.Style.Legend
	entries := legendEntries(p)
	if !lg.Visible || len(entries) == 0 {
		return plot
	}

	px := c.setFont(lg.FontSize)
	swatch := px * 0.8
	gap := px * 0.5
	lineH := px * 1.5

	widths := make([]float64, len(entries))
	for i, e := range entries {
		widths[i] = swatch + gap + c.measure(e.name)
	}

	if lg.Position == layout.LegendRight {
		colW := math.Min(maxOf(widths)+gap, plot.w*0.35)
		x := plot.right() - colW
		y := plot.y + math.Max(0, (plot.h-lineH*float64(len(entries)))/2)
		for i, e := range entries {
			cy := y + lineH*(float64(i)+0.5)
			c.fillRect(x, cy-swatch/2, swatch, swatch, e.color)
			c.label(e.name, x+swatch+gap, cy, 0, anchorMiddle, c.theme.Text)
		}
		plot.w -= colW + gap
		return plot
	}

	spacing := gap * 2
	rows := legendRows(widths, spacing, plot.w)
	height := lineH * float64(len(rows))
	y := plot.bottom() - height
	for r, row := range rows {
		x := plot.x + (plot.w-rowWidth(widths, row, spacing))/2
		cy := y + lineH*(float64(r)+0.5)
		for _, i := range row {
			e := entries[i]
			c.fillRect(x, cy-swatch/2, swatch, swatch, e.color)
			c.label(e.name, x+swatch+gap, cy, 0, anchorMiddle, c.theme.Text)
			x += widths[i] + spacing
		}
	}
	plot.h -= height + gap
	return plot
}

// legendRows packs entry widths into rows no wider than limit. Every row
// holds at least one entry.
func legendRows(widths []float64, spacing, limit float64) [][]int {
	var rows [][]int
	var row []int
	used := 0.0
	for i, w := range widths {
		need := w
		if len(row) > 0 {
			need += spacing
		}
		if len(row) > 0 && used+need > limit {
			rows = append(rows, row)
			row, used, need = nil, 0, w
		}
		row = append(row, i)
		used += need
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func rowWidth(widths []float64, row []int, spacing float64) float64 {
	w := 0.0
	for k, i := range row {
		if k > 0 {
			w += spacing
		}
		w += widths[i]
	}
	return w
}

// pie draws the first series as slices clockwise from twelve o'clock.
func (c *canvas) pie(p layout.Placement, plot box) {
	st := p.Style
	var values []float64
	if len(p.Request.Series) > 0 {
		values = p.Request.Series[0].Values
	}

	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}

	cx, cy := plot.x+plot.w/2, plot.y+plot.h/2
	r := math.Min(plot.w, plot.h) / 2 * 0.92
	outside := st.DataLabels.Visible && st.DataLabels.Position == layout.LabelOutsideEnd
	if outside {
		r *= 0.8
	}
	if r <= 0 {
		return
	}

	if total <= 0 {
		c.dc.SetHexColor(string(c.theme.Muted))
		c.dc.SetLineWidth(c.scale)
		c.dc.DrawCircle(cx, cy, r)
		c.keep(c.dc.Stroke())
		return
	}

	type slice struct {
		value, mid float64
	}
	var slices []slice

	a := -math.Pi / 2
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi

		c.dc.SetHexColor(string(paletteAt(st.Palette, i)))
		c.dc.MoveTo(cx, cy)
		c.dc.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
		c.dc.DrawArc(cx, cy, r, a, a+sweep)
		c.dc.ClosePath()
		if st.SuppressOutline {
			c.keep(c.dc.Fill())
		} else {
			c.keep(c.dc.FillPreserve())
			c.dc.SetHexColor(string(c.theme.Background))
			c.dc.SetLineWidth(1.5 * c.scale)
			c.keep(c.dc.Stroke())
		}

		slices = append(slices, slice{value: v, mid: a + sweep/2})
		a += sweep
	}

	if !st.DataLabels.Visible {
		return
	}
	c.setFont(st.DataLabels.FontSize)
	for _, s := range slices {
		txt := st.DataLabels.NumberFormat.Format(s.value, total)
		cos, sin := math.Cos(s.mid), math.Sin(s.mid)
		if outside {
			ax := 0.0
			if cos < 0 {
				ax = 1
			}
			c.label(txt, cx+r*1.08*cos, cy+r*1.08*sin, ax, anchorMiddle, c.theme.Text)
			continue
		}
		c.label(txt, cx+r*0.62*cos, cy+r*0.62*sin, 0.5, anchorMiddle, "FFFFFF")
	}
}

// bars draws a clustered column or bar chart.
func (c *canvas) bars(p layout.Placement, plot box) {
	st := p.Style
	req := p.Request
	n := len(req.Categories)
	if n == 0 || len(req.Series) == 0 {
		return
	}

	lo, hi := valueRange(req.Series)
	ticks := niceTicks(lo, hi, tickTarget)
	lo, hi = ticks[0], ticks[len(ticks)-1]

	tickLabels := make([]string, len(ticks))
	for i, t := range ticks {
		tickLabels[i] = st.DataLabels.NumberFormat.Format(t, 0)
	}

	valuePx := c.setFont(st.Axes.ValueFontSize)
	tickW := 0.0
	for _, s := range tickLabels {
		tickW = math.Max(tickW, c.measure(s))
	}

	labelPx := 0.0
	valueW := 0.0
	if st.DataLabels.Visible {
		labelPx = c.setFont(st.DataLabels.FontSize)
		for _, s := range req.Series {
			for _, v := range s.Values {
				valueW = math.Max(valueW, c.measure(st.DataLabels.NumberFormat.Format(v, 0)))
			}
		}
	}

	catPx := c.setFont(st.Axes.CategoryFontSize)
	catW := 0.0
	for _, name := range req.Categories {
		catW = math.Max(catW, c.measure(name))
	}

	gap := 4 * c.scale
	groups := len(req.Series)
	// bar width b satisfies slot = groups*b + gapWidth% of b
	barsPerSlot := float64(groups) + float64(st.GapWidth)/100

	if st.EffectiveType == layout.ChartColumn {
		inner := box{
			x: plot.x + tickW + gap,
			y: plot.y + labelPx*1.3,
			w: plot.w - tickW - gap,
			h: plot.h - labelPx*1.3 - catPx*1.5,
		}
		if inner.w <= 0 || inner.h <= 0 {
			return
		}
		toY := func(v float64) float64 { return inner.bottom() - (v-lo)/(hi-lo)*inner.h }

		c.setFont(st.Axes.ValueFontSize)
		for i, t := range ticks {
			y := toY(t)
			if st.Axes.ValueGridlinesVisible {
				c.line(inner.x, y, inner.right(), y, c.theme.Muted, c.scale*0.75)
			}
			c.label(tickLabels[i], inner.x-gap, y, 1, anchorMiddle, c.theme.Text)
		}
		base := toY(clamp(0, lo, hi))
		c.line(inner.x, base, inner.right(), base, c.theme.Muted, c.scale)

		slot := inner.w / float64(n)
		b := slot / barsPerSlot
		c.setFont(st.Axes.CategoryFontSize)
		for i, name := range req.Categories {
			c.label(name, inner.x+slot*(float64(i)+0.5), inner.bottom()+gap, 0.5, anchorBelow, c.theme.Text)
		}
		for i := 0; i < n; i++ {
			start := inner.x + slot*float64(i) + (slot-b*float64(groups))/2
			for j, s := range req.Series {
				v := s.Values[i]
				x := start + b*float64(j)
				top := toY(v)
				c.barRect(x, math.Min(top, base), b, math.Abs(base-top), paletteAt(st.Palette, j), st.SuppressOutline)
			}
		}
		if st.DataLabels.Visible {
			c.setFont(st.DataLabels.FontSize)
			for i := 0; i < n; i++ {
				start := inner.x + slot*float64(i) + (slot-b*float64(groups))/2
				for j, s := range req.Series {
					v := s.Values[i]
					x := start + b*(float64(j)+0.5)
					txt := st.DataLabels.NumberFormat.Format(v, 0)
					switch {
					case st.DataLabels.Position == layout.LabelBestFit:
						c.label(txt, x, (toY(v)+base)/2, 0.5, anchorMiddle, c.theme.Text)
					case v < 0:
						c.label(txt, x, toY(v)+gap/2, 0.5, anchorBelow, c.theme.Text)
					default:
						c.label(txt, x, toY(v)-gap/2, 0.5, anchorAbove, c.theme.Text)
					}
				}
			}
		}
		return
	}

	catGutter := math.Min(catW+gap, plot.w*0.4)
	inner := box{
		x: plot.x + catGutter,
		y: plot.y,
		w: plot.w - catGutter - valueW - gap,
		h: plot.h - valuePx*1.5,
	}
	if inner.w <= 0 || inner.h <= 0 {
		return
	}
	toX := func(v float64) float64 { return inner.x + (v-lo)/(hi-lo)*inner.w }

	c.setFont(st.Axes.ValueFontSize)
	for i, t := range ticks {
		x := toX(t)
		if st.Axes.ValueGridlinesVisible {
			c.line(x, inner.y, x, inner.bottom(), c.theme.Muted, c.scale*0.75)
		}
		c.label(tickLabels[i], x, inner.bottom()+gap, 0.5, anchorBelow, c.theme.Text)
	}
	base := toX(clamp(0, lo, hi))
	c.line(base, inner.y, base, inner.bottom(), c.theme.Muted, c.scale)

	slot := inner.h / float64(n)
	b := slot / barsPerSlot
	c.setFont(st.Axes.CategoryFontSize)
	for i, name := range req.Categories {
		c.label(name, inner.x-gap, inner.y+slot*(float64(i)+0.5), 1, anchorMiddle, c.theme.Text)
	}
	for i := 0; i < n; i++ {
		start := inner.y + slot*float64(i) + (slot-b*float64(groups))/2
		for j, s := range req.Series {
			end := toX(s.Values[i])
			c.barRect(math.Min(base, end), start+b*float64(j), math.Abs(end-base), b, paletteAt(st.Palette, j), st.SuppressOutline)
		}
	}
	if st.DataLabels.Visible {
		c.setFont(st.DataLabels.FontSize)
		for i := 0; i < n; i++ {
			start := inner.y + slot*float64(i) + (slot-b*float64(groups))/2
			for j, s := range req.Series {
				v := s.Values[i]
				y := start + b*(float64(j)+0.5)
				txt := st.DataLabels.NumberFormat.Format(v, 0)
				switch {
				case st.DataLabels.Position == layout.LabelBestFit:
					c.label(txt, (toX(v)+base)/2, y, 0.5, anchorMiddle, c.theme.Text)
				case v < 0:
					c.label(txt, toX(v)-gap/2, y, 1, anchorMiddle, c.theme.Text)
				default:
					c.label(txt, toX(v)+gap/2, y, 0, anchorMiddle, c.theme.Text)
				}
			}
		}
	}
}

// barRect fills one bar, outlined unless suppressed.
func (c *canvas) barRect(x, y, w, h float64, col layout.Color, suppressOutline bool) {
	c.fillRect(x, y, w, h, col)
	if suppressOutline || w <= 0 || h <= 0 {
		return
	}
	c.dc.SetHexColor(string(c.theme.Text))
	c.dc.SetLineWidth(c.scale * 0.5)
	c.dc.DrawRectangle(x, y, w, h)
	c.keep(c.dc.Stroke())
}

// valueRange returns the smallest and largest finite value, always
// including 0.
func valueRange(series []layout.Series) (lo, hi float64) {
	for _, s := range series {
		for _, v := range s.Values {
			if !finite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// niceTicks returns evenly spaced round values covering [lo, hi] in about
// target steps. The first and last tick bound the axis. Bounds whose span
// is not a finite number fall back to [0, 1].
func niceTicks(lo, hi float64, target int) []float64 {
	fallback := []float64{0, 1}
	if !finite(lo) || !finite(hi) || !finite(hi-lo) {
		return fallback
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		switch {
		case hi == 0:
			hi = 1
		case hi > 0:
			lo = 0
		default:
			hi = 0
		}
	}

	target = max(target, 1)
	step := niceStep((hi - lo) / float64(target))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	if step <= 0 || !finite(step) || !finite(start) || !finite(end) {
		return fallback
	}

	var ticks []float64
	for i := 0; i <= 4*target; i++ {
		v := start + float64(i)*step
		if v > end+step/2 {
			break
		}
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	f := raw / math.Pow(10, exp)
	var nice float64
	switch {
	case f <= 1:
		nice = 1
	case f <= 2:
		nice = 2
	case f <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow(10, exp)
}

// maxDrawable bounds value magnitudes so that axis spans and pie totals
// stay finite.
const maxDrawable = 1e300

// drawable returns p with its series copied and every value finite.
// Non-finite values draw as 0.
func drawable(p layout.Placement) layout.Placement {
	series := make([]layout.Series, len(p.Request.Series))
	for i, s := range p.Request.Series {
		vals := make([]float64, len(s.Values))
		for j, v := range s.Values {
			if finite(v) {
				vals[j] = clamp(v, -maxDrawable, maxDrawable)
			}
		}
		series[i] = layout.Series{Name: s.Name, Values: vals}
	}
	p.Request.Series = series
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func paletteAt(colors []layout.Color, i int) layout.Color {
	if i >= 0 && i < len(colors) {
		return colors[i]
	}
	return layout.PaletteColor(i)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func maxOf(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		m = math.Max(m, v)
	}
	return m
}
