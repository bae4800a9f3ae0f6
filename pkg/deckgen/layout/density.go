package layout

import "unicode/utf8"

// DensityProfile summarises the data shape of a request.
type DensityProfile struct {
	CategoryCount  int `json:"category_count"`
	MaxLabelLength int `json:"max_label_length"`
	SeriesCount    int `json:"series_count"`
	TotalPoints    int `json:"total_points"`
}

// Classify computes the density profile of req. Label length counts runes,
// so a CJK label of four characters measures 4.
func Classify(req ChartRequest) DensityProfile {
	p := DensityProfile{
		CategoryCount: len(req.Categories),
		SeriesCount:   len(req.Series),
	}
	for _, c := range req.Categories {
		if n := utf8.RuneCountInString(c); n > p.MaxLabelLength {
			p.MaxLabelLength = n
		}
	}
	p.TotalPoints = p.CategoryCount * p.SeriesCount
	return p
}

// LabelTier is a density bucket for data label fonts.
type LabelTier int

const (
	// TierLarge applies to sparse charts.
	TierLarge LabelTier = iota
	// TierMedium applies to moderately dense charts.
	TierMedium
	// TierSmall applies to dense charts that still print labels.
	TierSmall
	// TierHidden suppresses labels entirely.
	TierHidden
)

func (t LabelTier) String() string {
	switch t {
	case TierLarge:
		return "large"
	case TierMedium:
		return "medium"
	case TierSmall:
		return "small"
	}
	return "hidden"
}

// LabelTierFor buckets a total point count.
func LabelTierFor(totalPoints int) LabelTier {
	switch {
	case totalPoints <= LargeLabelMaxPoints:
		return TierLarge
	case totalPoints <= MediumLabelMaxPoints:
		return TierMedium
	case totalPoints <= SmallLabelMaxPoints:
		return TierSmall
	}
	return TierHidden
}
