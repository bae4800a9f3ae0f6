package layout

// Density thresholds. These were tuned by eye on real decks; there is no
// model behind them, so change them only together with the tests.
const (
	// LongLabelThreshold is the label length above which column labels collide.
	LongLabelThreshold = 6
	// ManyCategoriesForLongLabels is the category count above which long labels force bars.
	ManyCategoriesForLongLabels = 4
	// MaxColumnCategories is the largest category count still drawn as columns.
	MaxColumnCategories = 8

	// SplitMinCategories is the smallest single-series bar chart that is split in two.
	SplitMinCategories = 10
	// WidenLabelThreshold is the label length above which a bar chart is widened.
	WidenLabelThreshold = 10

	// LargeLabelMaxPoints is the last point count printed with large labels.
	LargeLabelMaxPoints = 15
	// MediumLabelMaxPoints is the last point count printed with medium labels.
	MediumLabelMaxPoints = 30
	// SmallLabelMaxPoints is the last point count printed with labels at all.
	SmallLabelMaxPoints = 40

	// ShortAxisLabel and MediumAxisLabel bound the category axis font tiers.
	ShortAxisLabel  = 6
	MediumAxisLabel = 10

	// LegendRightMinSeries is the series count above which the legend moves right.
	LegendRightMinSeries = 4
)

// Geometry of the split and widen strategies, in inches unless noted.
const (
	SplitGap       = 0.3
	SplitLeftShare = 0.46
	WidenFactor    = 1.25
)

// Font sizes in points.
const (
	DataLabelFontLarge  = 14
	DataLabelFontMedium = 12
	DataLabelFontSmall  = 10

	AxisFontShort  = 14
	AxisFontMedium = 12
	AxisFontLong   = 10

	ValueAxisFontSize = 12
	LegendFontSize    = 12
	LegendFontRight   = 11
)

// ThickBarGapWidth is the gap between bar groups as a percentage of the bar
// width (Office semantics). 50 yields thick bars.
const ThickBarGapWidth = 50
