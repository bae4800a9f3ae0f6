// Package models defines the slide description read from JSON and the plan
// written back out.
package models

import "strings"

// Layout tags understood by the generator.
const (
	LayoutCover    = "cover"
	LayoutBullets  = "bullets"
	LayoutChart    = "chart"
	LayoutTimeline = "timeline"
	LayoutQuadrant = "quadrant"
)

// Slide is one entry of the input array.
type Slide struct {
	// Layout selects the slide painter. Empty means bullets.
	Layout string `json:"layout,omitempty"`
	// IsCover is the legacy spelling of layout "cover".
	IsCover bool `json:"is_cover,omitempty"`
	// Title is the slide title.
	Title string `json:"title,omitempty"`
	// Subtitle is shown under the title on cover slides.
	Subtitle string `json:"subtitle,omitempty"`
	// Bullets are body lines; "Lead: rest [Citation: x]" is styled in runs.
	Bullets []string `json:"bullets,omitempty"`
	// Icon is an icon id such as "mdi:chart-bar" shown beside the title.
	Icon string `json:"icon,omitempty"`

	// Chart holds the chart fields of a chart slide.
	Chart

	// Events are the milestones of a timeline slide.
	Events []Event `json:"events,omitempty"`
	// Quadrants are the four cells of a quadrant slide, in reading order.
	Quadrants []Quadrant `json:"quadrants,omitempty"`
	// XAxis and YAxis label the quadrant matrix axes.
	XAxis string `json:"x_axis,omitempty"`
	YAxis string `json:"y_axis,omitempty"`
}

// Kind returns the effective layout tag, trimmed and lower-cased.
func (s Slide) Kind() string {
	if s.IsCover {
		return LayoutCover
	}
	tag := strings.ToLower(strings.TrimSpace(s.Layout))
	if tag == "" {
		return LayoutBullets
	}
	return tag
}

// Event is one timeline milestone.
type Event struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Quadrant is one cell of a two-by-two matrix.
type Quadrant struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Icon  string `json:"icon,omitempty"`
}
