package chart

import (
	"gonum.org/v1/gonum/floats"
)

// StartAngle is where the first wedge begins: the top of the pie
const StartAngle = 90.0

// BuildWedges projects a frequency table onto the circle. Wedges follow
// table order clockwise from the top and their spans sum to 360 degrees.
func BuildWedges(table FrequencyTable) []Wedge {
	if table.Len() == 0 || table.Total == 0 {
		return nil
	}

	spans := make([]float64, table.Len())
	for i, c := range table.Categories {
		spans[i] = 360 * float64(c.Count) / float64(table.Total)
	}
	ends := floats.CumSum(make([]float64, len(spans)), spans)

	wedges := make([]Wedge, len(spans))
	for i, c := range table.Categories {
		begin := 0.0
		if i > 0 {
			begin = ends[i-1]
		}
		wedges[i] = Wedge{
			Category:   c,
			StartAngle: StartAngle - ends[i],
			EndAngle:   StartAngle - begin,
		}
	}
	return wedges
}
