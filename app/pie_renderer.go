package app

import (
	"fmt"

	"tabchart/domain/callout"
	"tabchart/domain/chart"
	"tabchart/internal/errors"
	"tabchart/ports"
)

const (
	pieSize        = 8.0 // inches, square
	pieTextSize    = 10.0
	pieInlineRatio = 0.6 // radius of the inline percentage text
)

// PieRenderer draws an annotated pie: inline percentages inside large
// wedges and outer callouts with leader lines.
type PieRenderer struct {
	surfaces ports.SurfaceFactoryPort

	// ShowThreshold is the minimum percentage that gets inline text;
	// HideThreshold is the minimum that gets an outer callout.
	ShowThreshold float64
	HideThreshold float64
}

// NewPieRenderer creates a pie renderer
func NewPieRenderer(surfaces ports.SurfaceFactoryPort, showThreshold, hideThreshold float64) *PieRenderer {
	return &PieRenderer{
		surfaces:      surfaces,
		ShowThreshold: showThreshold,
		HideThreshold: hideThreshold,
	}
}

// Render implements ports.ChartRendererPort
func (r *PieRenderer) Render(table chart.FrequencyTable, title string) (ports.SurfacePort, error) {
	if table.Len() == 0 {
		return nil, errors.EmptyColumn(table.Column)
	}

	surface, err := r.surfaces.NewSurface(ports.CanvasSpec{
		Kind:   chart.KindPie,
		Title:  title,
		Width:  pieSize,
		Height: pieSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating pie surface")
	}

	wedges := chart.BuildWedges(table)
	surface.DrawWedges(wedges)

	for _, w := range wedges {
		if w.Percentage < r.ShowThreshold {
			continue
		}
		surface.PlaceText(chart.TextMark{
			At:    w.Direction().Scale(pieInlineRatio),
			Text:  formatPercent(w.Percentage),
			Align: chart.AlignCenter,
			Size:  pieTextSize,
		})
	}

	placements, err := callout.Layout(wedges, table.Percentages(), r.HideThreshold)
	if err != nil {
		return nil, errors.RenderError("laying out callouts", err)
	}
	for i, p := range placements {
		if p == nil {
			continue
		}
		surface.DrawLine(p.LeaderStart, p.LeaderEnd)
		surface.PlaceText(chart.TextMark{
			At:    p.LeaderEnd,
			Text:  wedges[i].Label,
			Align: p.Align,
			Size:  pieTextSize,
		})
	}

	return surface, nil
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
