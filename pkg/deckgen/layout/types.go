// Package layout decides how a chart is laid out on a slide.
//
// Every function in this package is pure: a ChartRequest goes through
// Classify, SelectType, PlanSplit and Style (composed by Plan) and comes out
// as one or two Placements that a renderer applies verbatim.
package layout

import (
	"fmt"
	"strings"
)

// ChartType is the kind of chart drawn for a request.
type ChartType string

const (
	// ChartColumn draws vertical bars.
	ChartColumn ChartType = "column"
	// ChartBar draws horizontal bars.
	ChartBar ChartType = "bar"
	// ChartPie draws a single-series pie.
	ChartPie ChartType = "pie"
)

// ParseChartType maps a chart_type string to a ChartType.
// Unknown names fail with ErrUnsupportedChartType.
func ParseChartType(s string) (ChartType, error) {
	switch ChartType(strings.ToLower(strings.TrimSpace(s))) {
	case ChartColumn:
		return ChartColumn, nil
	case ChartBar:
		return ChartBar, nil
	case ChartPie:
		return ChartPie, nil
	}
	return "", &RequestError{Field: "chart_type", Value: s, Err: ErrUnsupportedChartType}
}

// IsBarLike reports whether t is drawn with rectangular bars.
func (t ChartType) IsBarLike() bool {
	return t == ChartColumn || t == ChartBar
}

// DataType declares what the series values mean.
type DataType string

const (
	// DataPercentage values are percentages (the default).
	DataPercentage DataType = "percentage"
	// DataScore values are scores printed with two decimals.
	DataScore DataType = "score"
)

// ParseDataType maps a data_type string to a DataType. An empty string
// means DataPercentage.
func ParseDataType(s string) (DataType, error) {
	switch DataType(strings.ToLower(strings.TrimSpace(s))) {
	case "", DataPercentage:
		return DataPercentage, nil
	case DataScore:
		return DataScore, nil
	}
	return "", &RequestError{Field: "data_type", Value: s, Err: ErrMalformedChartRequest}
}

// Rect is an axis-aligned rectangle in inches.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.X, r.Y, r.W, r.H)
}

// Frame describes the slide a chart is placed on.
type Frame struct {
	// Width is the slide width in inches.
	Width float64 `json:"width"`
	// Height is the slide height in inches.
	Height float64 `json:"height"`
	// Margin is the minimum horizontal distance kept from the slide edges.
	Margin float64 `json:"margin"`
}

// Series is one named run of values.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartRequest is everything the engine knows about one chart.
type ChartRequest struct {
	Type       ChartType `json:"chart_type"`
	Categories []string  `json:"categories"`
	Series     []Series  `json:"series"`
	DataType   DataType  `json:"data_type"`
	Area       Rect      `json:"area"`
}

// Validate checks the request invariants.
func (r ChartRequest) Validate() error {
	if !r.Type.IsBarLike() && r.Type != ChartPie {
		return &RequestError{Field: "chart_type", Value: string(r.Type), Err: ErrUnsupportedChartType}
	}
	if len(r.Series) == 0 {
		return &RequestError{Field: "series", Value: "[]", Err: ErrMalformedChartRequest}
	}
	if len(r.Categories) == 0 {
		return &RequestError{Field: "categories", Value: "[]", Err: ErrMalformedChartRequest}
	}
	if r.Area.W <= 0 || r.Area.H <= 0 {
		return &RequestError{Field: "area", Value: r.Area.String(), Err: ErrMalformedChartRequest}
	}
	check := r.Series
	if r.Type == ChartPie {
		// pies only draw the first series
		check = r.Series[:1]
	}
	for _, s := range check {
		if len(s.Values) != len(r.Categories) {
			return &RequestError{
				Field: "series." + s.Name,
				Value: fmt.Sprintf("%d values for %d categories", len(s.Values), len(r.Categories)),
				Err:   ErrMalformedChartRequest,
			}
		}
	}
	return nil
}

// withType returns a copy of r drawn as t.
func (r ChartRequest) withType(t ChartType) ChartRequest {
	r.Type = t
	return r
}
