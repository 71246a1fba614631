// Package callout places the outer labels of a pie chart.
//
// Each visible wedge gets a label on the rim joined to the wedge by a
// leader line. Labels keep the horizontal position given by their wedge
// and are moved vertically, greedily and in wedge order, until they are at
// least MinGap away from every label placed before them.
package callout

import (
	"fmt"
	"math"

	"tabchart/domain/chart"
)

const (
	// MinGap is the smallest vertical distance between two labels, in radii.
	MinGap = 0.08
	// MaxY is the ceiling for a label's vertical position.
	MaxY = 1.05

	// AnchorRadius is where the leader line touches the wedge.
	AnchorRadius = 0.7
	// CandidateRadius gives the preferred vertical position of a label.
	CandidateRadius = 1.15
	// TextRadius gives the horizontal position of a label.
	TextRadius = 1.3
)

// Placement is the resolved position of one label.
type Placement struct {
	YText       float64
	Align       chart.Alignment
	LeaderStart chart.Point
	LeaderEnd   chart.Point

	// Clamped is set when YText was capped at MaxY. A clamped label may
	// coincide with another label at the ceiling.
	Clamped bool
}

// Layout computes the callouts for wedges. The result has one slot per
// wedge in input order; the slot is nil when the wedge's percentage is
// below hideThreshold. Layout keeps no state between calls.
func Layout(wedges []chart.Wedge, percentages []float64, hideThreshold float64) ([]*Placement, error) {
	if len(wedges) != len(percentages) {
		return nil, fmt.Errorf("callout: %d wedges but %d percentages", len(wedges), len(percentages))
	}

	placements := make([]*Placement, len(wedges))
	var committed []float64
	for i, w := range wedges {
		if percentages[i] < hideThreshold {
			continue
		}
		p := place(w, committed)
		committed = append(committed, p.YText)
		placements[i] = &p
	}
	return placements, nil
}

func place(w chart.Wedge, committed []float64) Placement {
	dir := w.Direction()
	y, clamped := ResolveY(dir.Y*CandidateRadius, committed)

	align := chart.AlignLeft
	if dir.X < 0 {
		align = chart.AlignRight
	}

	return Placement{
		YText:       y,
		Align:       align,
		LeaderStart: dir.Scale(AnchorRadius),
		LeaderEnd:   chart.Point{X: dir.X * TextRadius, Y: y},
		Clamped:     clamped,
	}
}

// ResolveY returns the first position, stepping from candidate in MinGap
// increments, that is not within MinGap of any committed position. Positive
// candidates step down and the rest step up; the direction chosen at the
// start is kept even if the walk crosses zero. The result is then capped
// at MaxY without re-checking committed positions.
func ResolveY(candidate float64, committed []float64) (y float64, clamped bool) {
	step := MinGap
	if candidate > 0 {
		step = -MinGap
	}

	y = candidate
	for collides(y, committed) {
		y += step
	}

	if y > MaxY {
		return MaxY, true
	}
	return y, false
}

func collides(y float64, committed []float64) bool {
	for _, used := range committed {
		if math.Abs(y-used) < MinGap {
			return true
		}
	}
	return false
}
