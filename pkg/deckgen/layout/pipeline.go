package layout

// Placement is a fully decided chart: what to draw, where, and how.
type Placement struct {
	Request ChartRequest   `json:"request"`
	Profile DensityProfile `json:"profile"`
	Area    Rect           `json:"area"`
	Style   StyleDirective `json:"style"`
}

// Result is the output of Plan for one chart request.
type Result struct {
	RequestedType ChartType      `json:"requested_type"`
	Profile       DensityProfile `json:"profile"`
	Strategy      Strategy       `json:"strategy"`
	Placements    []Placement    `json:"placements"`
}

// Plan runs the full pipeline: validate, classify, select the type, plan
// the split, then style every resulting part with its own profile so that
// split halves scale their fonts on their own point counts.
func Plan(req ChartRequest, frame Frame) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	profile := Classify(req)
	effective := SelectType(req.Type, profile)
	sp := PlanSplit(req, effective, profile, frame)

	res := Result{
		RequestedType: req.Type,
		Profile:       profile,
		Strategy:      sp.Strategy,
		Placements:    make([]Placement, 0, len(sp.Parts)),
	}
	for _, part := range sp.Parts {
		pp := Classify(part.Request)
		res.Placements = append(res.Placements, Placement{
			Request: part.Request,
			Profile: pp,
			Area:    part.Area,
			Style:   Style(effective, pp, part.Request.DataType),
		})
	}
	return res, nil
}
