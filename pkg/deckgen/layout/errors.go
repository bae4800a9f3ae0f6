package layout

import (
	"errors"
	"fmt"
)

// ErrMalformedChartRequest indicates missing or inconsistent chart fields.
var ErrMalformedChartRequest = errors.New("malformed chart request")

// ErrUnsupportedChartType indicates a chart type other than column, bar or pie.
var ErrUnsupportedChartType = errors.New("unsupported chart type")

// RequestError reports which field of a chart request was rejected.
type RequestError struct {
	Field string
	Value string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%v: %s = %s", e.Err, e.Field, e.Value)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
