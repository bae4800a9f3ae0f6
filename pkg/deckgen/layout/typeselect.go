package layout

// SelectType returns the chart type actually drawn for a request.
//
// Column charts with long or numerous category labels are turned into
// horizontal bars, which give each label a full row. Pies are never changed.
func SelectType(requested ChartType, p DensityProfile) ChartType {
	if !requested.IsBarLike() {
		return requested
	}
	longLabels := p.MaxLabelLength > LongLabelThreshold && p.CategoryCount > ManyCategoriesForLongLabels
	if longLabels || p.CategoryCount > MaxColumnCategories {
		return ChartBar
	}
	return requested
}
