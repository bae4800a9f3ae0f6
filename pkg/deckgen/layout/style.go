package layout

import (
	"math"
	"strconv"
)

// LegendPosition is where the legend is drawn.
type LegendPosition string

const (
	LegendBottom LegendPosition = "bottom"
	LegendRight  LegendPosition = "right"
)

// LabelPosition is where data labels sit relative to their point.
type LabelPosition string

const (
	LabelOutsideEnd LabelPosition = "outside_end"
	LabelBestFit    LabelPosition = "best_fit"
)

// NumberFormat is an Office number format code for data labels.
type NumberFormat string

const (
	// FormatScore prints two decimals.
	FormatScore NumberFormat = "0.00"
	// FormatShare prints the slice's share of the pie total.
	FormatShare NumberFormat = "0%"
	// FormatPercentSuffix prints the raw value rounded with a literal '%'.
	FormatPercentSuffix NumberFormat = `0"%"`
)

// Format renders v according to f. total is the sum of all slices and is
// only used by FormatShare.
func (f NumberFormat) Format(v, total float64) string {
	switch f {
	case FormatScore:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case FormatShare:
		if total == 0 {
			return "0%"
		}
		return strconv.FormatFloat(math.Round(v/total*100), 'f', 0, 64) + "%"
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + "%"
}

// Legend styles the chart legend.
type Legend struct {
	Visible  bool           `json:"visible"`
	Position LegendPosition `json:"position,omitempty"`
	FontSize int            `json:"font_size,omitempty"`
}

// DataLabels styles the printed value labels.
type DataLabels struct {
	Visible      bool          `json:"visible"`
	Tier         string        `json:"tier"`
	NumberFormat NumberFormat  `json:"number_format"`
	FontSize     int           `json:"font_size,omitempty"`
	Position     LabelPosition `json:"position"`
}

// Axes styles the category and value axes.
type Axes struct {
	CategoryFontSize      int  `json:"category_axis_font_size"`
	ValueGridlinesVisible bool `json:"value_axis_gridlines_visible"`
	ValueFontSize         int  `json:"value_axis_font_size"`
}

// StyleDirective is the complete styling decision for one chart.
type StyleDirective struct {
	EffectiveType   ChartType  `json:"effective_chart_type"`
	Legend          Legend     `json:"legend"`
	DataLabels      DataLabels `json:"data_labels"`
	Axes            Axes       `json:"axes"`
	GapWidth        int        `json:"gap_width"`
	SuppressOutline bool       `json:"suppress_outline"`
	Palette         []Color    `json:"palette"`
}

// Style computes the directive for a chart of the given effective type and
// profile. The result depends only on its arguments.
func Style(effective ChartType, p DensityProfile, dataType DataType) StyleDirective {
	d := StyleDirective{
		EffectiveType: effective,
		Legend:        legendFor(effective, p),
		DataLabels:    dataLabelsFor(effective, p, dataType),
	}

	d.Axes = Axes{
		CategoryFontSize: categoryAxisFont(p.MaxLabelLength),
		ValueFontSize:    ValueAxisFontSize,
	}
	// without labels the gridlines are the only way to read values
	d.Axes.ValueGridlinesVisible = !d.DataLabels.Visible

	if effective == ChartPie {
		d.Palette = AssignPalette(p.CategoryCount)
	} else {
		d.Palette = AssignPalette(p.SeriesCount)
	}

	if effective.IsBarLike() {
		d.GapWidth = ThickBarGapWidth
		d.SuppressOutline = true
	}
	return d
}

func legendFor(t ChartType, p DensityProfile) Legend {
	if p.SeriesCount <= 1 && t != ChartPie {
		return Legend{}
	}
	if p.SeriesCount > LegendRightMinSeries {
		return Legend{Visible: true, Position: LegendRight, FontSize: LegendFontRight}
	}
	return Legend{Visible: true, Position: LegendBottom, FontSize: LegendFontSize}
}

func dataLabelsFor(t ChartType, p DensityProfile, dataType DataType) DataLabels {
	l := DataLabels{
		NumberFormat: numberFormatFor(t, dataType),
		Position:     LabelOutsideEnd,
	}
	if t == ChartPie {
		l.Position = LabelBestFit
	}

	tier := LabelTierFor(p.TotalPoints)
	l.Tier = tier.String()
	switch tier {
	case TierLarge:
		l.Visible, l.FontSize = true, DataLabelFontLarge
	case TierMedium:
		l.Visible, l.FontSize = true, DataLabelFontMedium
	case TierSmall:
		l.Visible, l.FontSize = true, DataLabelFontSmall
	}
	return l
}

func numberFormatFor(t ChartType, dataType DataType) NumberFormat {
	switch {
	case dataType == DataScore:
		return FormatScore
	case t == ChartPie:
		return FormatShare
	}
	return FormatPercentSuffix
}

func categoryAxisFont(maxLabel int) int {
	switch {
	case maxLabel <= ShortAxisLabel:
		return AxisFontShort
	case maxLabel <= MediumAxisLabel:
		return AxisFontMedium
	}
	return AxisFontLong
}
