package models

import "github.com/ukaji3/deckgen-go/pkg/deckgen/layout"

// DeckPlan is the layout decision record for a whole deck.
type DeckPlan struct {
	// Input is the slide description file name (no path).
	Input string `json:"input"`
	// Template is the template used, empty for a blank deck.
	Template string `json:"template,omitempty"`
	// Frame is the slide geometry charts were fitted into.
	Frame layout.Frame `json:"frame"`
	// Slides has one entry per input slide.
	Slides []SlidePlan `json:"slides"`
}

// SlidePlan records what was decided for one slide.
type SlidePlan struct {
	// Index is the 1-based slide number.
	Index int `json:"index"`
	// Layout is the effective layout tag.
	Layout string `json:"layout"`
	// Title is the slide title.
	Title string `json:"title,omitempty"`
	// Chart is the chart plan, set for chart slides only.
	Chart *layout.Result `json:"chart,omitempty"`
	// MissingIcons lists icon ids that could not be resolved.
	MissingIcons []string `json:"missing_icons,omitempty"`
}
