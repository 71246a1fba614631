package app

import (
	"math"

	"tabchart/domain/chart"
	"tabchart/internal/errors"
	"tabchart/ports"

	"github.com/montanaflynn/stats"
)

const (
	barWidth      = 10.0 // inches
	barMinHeight  = 4.0
	barRowHeight  = 0.4
	barHeadroom   = 1.3  // x axis extent as a multiple of the largest share
	barLabelShift = 0.01 // label offset as a fraction of the largest share
	barTextSize   = 8.0
)

// BarRenderer draws one horizontal bar per category, largest at the top,
// each labelled with its percentage.
type BarRenderer struct {
	surfaces ports.SurfaceFactoryPort
}

// NewBarRenderer creates a bar renderer
func NewBarRenderer(surfaces ports.SurfaceFactoryPort) *BarRenderer {
	return &BarRenderer{surfaces: surfaces}
}

// Render implements ports.ChartRendererPort
func (r *BarRenderer) Render(table chart.FrequencyTable, title string) (ports.SurfacePort, error) {
	if table.Len() == 0 {
		return nil, errors.EmptyColumn(table.Column)
	}

	pcts := table.Percentages()
	largest, err := stats.Max(pcts)
	if err != nil {
		return nil, errors.RenderError("computing largest share", err)
	}

	surface, err := r.surfaces.NewSurface(ports.CanvasSpec{
		Kind:   chart.KindBarH,
		Title:  title,
		Width:  barWidth,
		Height: math.Max(barMinHeight, barRowHeight*float64(table.Len())),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating bar surface")
	}

	bars := make([]chart.Bar, table.Len())
	for i, c := range table.Categories {
		bars[i] = chart.Bar{Label: c.Label, Value: c.Percentage}
	}
	surface.DrawBars(bars, largest*barHeadroom)

	for i, pct := range pcts {
		surface.PlaceText(chart.TextMark{
			At:         chart.Point{X: pct + largest*barLabelShift, Y: float64(i)},
			Text:       formatPercent(pct),
			Align:      chart.AlignLeft,
			Size:       barTextSize,
			Background: true,
		})
	}

	return surface, nil
}
