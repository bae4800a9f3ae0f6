package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/models"
)

// ErrNotSlideArray indicates the input is valid JSON but not an array of
// slide objects.
var ErrNotSlideArray = errors.New("input must be a JSON array of slides")

// LoadSlides reads the slide description file at path.
func LoadSlides(path string) ([]models.Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeSlides(f)
}

// DecodeSlides decodes a slide description from r.
func DecodeSlides(r io.Reader) ([]models.Slide, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrNotSlideArray
	}

	var slides []models.Slide
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, fmt.Errorf("decode slides: %w", err)
	}
	return slides, nil
}

// ChartRequest converts the chart fields of a slide into a layout request.
// A slide without an explicit area is placed in defaultArea.
func ChartRequest(c models.Chart, defaultArea layout.Rect) (layout.ChartRequest, error) {
	typ, err := layout.ParseChartType(c.ChartType)
	if err != nil {
		return layout.ChartRequest{}, err
	}
	dataType, err := layout.ParseDataType(c.DataType)
	if err != nil {
		return layout.ChartRequest{}, err
	}

	req := layout.ChartRequest{
		Type:       typ,
		Categories: models.Strings(c.Categories),
		DataType:   dataType,
		Area:       defaultArea,
	}
	if c.Area != nil {
		req.Area = layout.Rect{X: c.Area.X, Y: c.Area.Y, W: c.Area.W, H: c.Area.H}
	}

	req.Series = make([]layout.Series, len(c.Series))
	for i, s := range c.Series {
		req.Series[i] = layout.Series{
			Name:   s.Name,
			Values: append([]float64(nil), s.Values...),
		}
	}
	return req, nil
}
