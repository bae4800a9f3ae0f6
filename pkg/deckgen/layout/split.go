package layout

import "math"

// Strategy names how a request was fitted into its area.
type Strategy string

const (
	// StrategyUnchanged keeps the declared area.
	StrategyUnchanged Strategy = "unchanged"
	// StrategySplit renders two side-by-side sub-charts.
	StrategySplit Strategy = "split"
	// StrategyWiden widens a single chart and re-centres it.
	StrategyWiden Strategy = "widen"
)

// SplitPart is one chart of a SplitPlan and where it goes.
type SplitPart struct {
	Request ChartRequest `json:"request"`
	Area    Rect         `json:"area"`
}

// SplitPlan is the outcome of PlanSplit. Parts has one element unless
// Strategy is StrategySplit.
type SplitPlan struct {
	Strategy Strategy    `json:"strategy"`
	Parts    []SplitPart `json:"parts"`
}

// PlanSplit decides between split, widen and unchanged for a request whose
// effective type has already been selected. Split wins over widen.
func PlanSplit(req ChartRequest, effective ChartType, p DensityProfile, frame Frame) SplitPlan {
	req = req.withType(effective)
	if effective != ChartBar {
		return unchanged(req)
	}
	if p.SeriesCount == 1 && p.CategoryCount >= SplitMinCategories {
		return split(req)
	}
	if p.MaxLabelLength > WidenLabelThreshold {
		return SplitPlan{
			Strategy: StrategyWiden,
			Parts:    []SplitPart{{Request: req, Area: widen(req.Area, frame)}},
		}
	}
	return unchanged(req)
}

func unchanged(req ChartRequest) SplitPlan {
	return SplitPlan{
		Strategy: StrategyUnchanged,
		Parts:    []SplitPart{{Request: req, Area: req.Area}},
	}
}

// split partitions the categories at the midpoint; the first half takes the
// extra element when the count is odd.
func split(req ChartRequest) SplitPlan {
	mid := (len(req.Categories) + 1) / 2
	s := req.Series[0]

	left := req
	left.Categories = req.Categories[:mid:mid]
	left.Series = []Series{{Name: s.Name, Values: s.Values[:mid:mid]}}

	right := req
	right.Categories = req.Categories[mid:]
	right.Series = []Series{{Name: s.Name, Values: s.Values[mid:]}}

	la, ra := SplitAreas(req.Area)
	left.Area, right.Area = la, ra

	return SplitPlan{
		Strategy: StrategySplit,
		Parts: []SplitPart{
			{Request: left, Area: la},
			{Request: right, Area: ra},
		},
	}
}

// SplitAreas divides area into a narrower left and a wider right rectangle
// separated by SplitGap. Together they span area's full width.
func SplitAreas(area Rect) (left, right Rect) {
	gap := math.Min(SplitGap, area.W/10)
	usable := area.W - gap
	lw := usable * SplitLeftShare
	left = Rect{X: area.X, Y: area.Y, W: lw, H: area.H}
	right = Rect{X: area.X + lw + gap, Y: area.Y, W: area.Right() - (area.X + lw + gap), H: area.H}
	return left, right
}

// widen grows area horizontally by WidenFactor, capped by the slide margins,
// and centres it on the slide.
func widen(area Rect, frame Frame) Rect {
	w := area.W * WidenFactor
	if frame.Width > 0 {
		if limit := frame.Width - 2*frame.Margin; limit > 0 && w > limit {
			w = limit
		}
		if w < area.W {
			w = area.W
		}
		return Rect{X: (frame.Width - w) / 2, Y: area.Y, W: w, H: area.H}
	}
	return Rect{X: area.X - (w-area.W)/2, Y: area.Y, W: w, H: area.H}
}
