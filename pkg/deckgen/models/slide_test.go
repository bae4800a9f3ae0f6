package models

import "testing"

func TestSlideKind(t *testing.T) {
	tests := []struct {
		slide    Slide
		expected string
	}{
		{Slide{}, LayoutBullets},
		{Slide{Layout: "  "}, LayoutBullets},
		{Slide{Layout: "chart"}, LayoutChart},
		{Slide{Layout: "Chart"}, LayoutChart},
		{Slide{Layout: " TIMELINE "}, LayoutTimeline},
		{Slide{Layout: "Quadrant", IsCover: true}, LayoutCover},
		{Slide{Layout: "Gallery"}, "gallery"},
	}

	for _, tt := range tests {
		if result := tt.slide.Kind(); result != tt.expected {
			t.Errorf("Kind(%q, cover=%v) = %q, expected %q", tt.slide.Layout, tt.slide.IsCover, result, tt.expected)
		}
	}
}
