package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genRequest generates well-formed chart requests of any supported type.
func genRequest() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(ChartColumn, ChartBar, ChartPie),
		gen.IntRange(1, 30),
		gen.IntRange(0, 16),
		gen.IntRange(1, 6),
		gen.OneConstOf(DataPercentage, DataScore),
	).Map(func(vals []interface{}) ChartRequest {
		req := request(vals[0].(ChartType), labels(vals[1].(int), vals[2].(int)), vals[3].(int))
		req.DataType = vals[4].(DataType)
		return req
	})
}

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("single-series non-pie charts have no legend", prop.ForAll(
		func(req ChartRequest) bool {
			req.Series = req.Series[:1]
			res, err := Plan(req, testFrame)
			if err != nil {
				return false
			}
			for _, p := range res.Placements {
				if p.Style.EffectiveType != ChartPie && p.Style.Legend.Visible {
					return false
				}
			}
			return true
		},
		genRequest(),
	))

	properties.Property("more than 8 columns always become bars", prop.ForAll(
		func(req ChartRequest) bool {
			if req.Type != ChartColumn || len(req.Categories) <= MaxColumnCategories {
				return true
			}
			res, err := Plan(req, testFrame)
			return err == nil && res.Placements[0].Style.EffectiveType == ChartBar
		},
		genRequest(),
	))

	properties.Property("dense charts hide labels and show gridlines", prop.ForAll(
		func(req ChartRequest) bool {
			res, err := Plan(req, testFrame)
			if err != nil {
				return false
			}
			for _, p := range res.Placements {
				dense := p.Profile.TotalPoints > SmallLabelMaxPoints
				if dense && (p.Style.DataLabels.Visible || !p.Style.Axes.ValueGridlinesVisible) {
					return false
				}
				if !dense && !p.Style.DataLabels.Visible {
					return false
				}
			}
			return true
		},
		genRequest(),
	))

	properties.Property("styling is idempotent", prop.ForAll(
		func(req ChartRequest) bool {
			a, errA := Plan(req, testFrame)
			b, errB := Plan(req, testFrame)
			return errA == nil && errB == nil && reflect.DeepEqual(a, b)
		},
		genRequest(),
	))

	properties.Property("palette assignment depends only on the index", prop.ForAll(
		func(n int) bool {
			a := AssignPalette(n)
			b := AssignPalette(n)
			for i := range a {
				if a[i] != PaletteColor(i) {
					return false
				}
			}
			return reflect.DeepEqual(a, b)
		},
		gen.IntRange(0, 40),
	))

	properties.Property("split parts keep every category in order and tile the area", prop.ForAll(
		func(req ChartRequest) bool {
			res, err := Plan(req, testFrame)
			if err != nil {
				return false
			}
			if res.Strategy != StrategySplit {
				return len(res.Placements) == 1
			}
			left, right := res.Placements[0], res.Placements[1]
			joined := append(append([]string{}, left.Request.Categories...), right.Request.Categories...)
			if !reflect.DeepEqual(joined, req.Categories) {
				return false
			}
			if len(left.Request.Categories) < len(right.Request.Categories) {
				return false
			}
			return !left.Area.Overlaps(right.Area) &&
				left.Area.X == req.Area.X &&
				math.Abs(right.Area.Right()-req.Area.Right()) < 1e-9
		},
		genRequest(),
	))

	properties.TestingRun(t)
}
