package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Chart carries the chart fields of a slide.
type Chart struct {
	// ChartType is "column", "bar" or "pie".
	ChartType string `json:"chart_type,omitempty"`
	// Categories are the category labels; scalars are coerced to strings.
	Categories []Label `json:"categories,omitempty"`
	// Series are the named value runs.
	Series []ChartSeries `json:"series,omitempty"`
	// DataType is "percentage" (default) or "score".
	DataType string `json:"data_type,omitempty"`
	// Area is the target rectangle in inches (nil means the content area).
	Area *Rect `json:"area,omitempty"`
	// Source loads categories and series from a workbook instead.
	Source *DataSource `json:"source,omitempty"`
}

// ChartSeries is one named series.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// Values holds one value per category.
	Values []float64 `json:"values"`
}

// Rect is a rectangle in inches.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DataSource points at a sheet holding chart data: series names across the
// header row, categories down the first column.
type DataSource struct {
	// Workbook is the xlsx path, relative to the input file.
	Workbook string `json:"workbook"`
	// Sheet is the sheet name (default: first sheet).
	Sheet string `json:"sheet,omitempty"`
	// Range is an optional A1 range such as "A1:C8".
	Range string `json:"range,omitempty"`
}

// Label is a category label decoded from any JSON scalar.
type Label string

// UnmarshalJSON coerces numbers, booleans and null to their string form.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty category label")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*l = Label(strconv.FormatBool(b))
	case 'n':
		*l = ""
	case '{', '[':
		return fmt.Errorf("category label must be a scalar, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*l = Label(FormatNumber(n))
	}
	return nil
}

// FormatNumber renders a JSON number the way a spreadsheet shows it:
// 2024 stays 2024, 2.50 becomes 2.5.
func FormatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// Strings returns the labels as plain strings.
func Strings(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}
