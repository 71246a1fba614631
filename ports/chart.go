package ports

import (
	"tabchart/domain/chart"
)

// SurfacePort is a drawing target for one chart. Pie surfaces use radius
// units centred on the pie; bar surfaces use percentage on x and row index
// on y, row 0 at the top.
type SurfacePort interface {
	DrawWedges(wedges []chart.Wedge)
	DrawBars(bars []chart.Bar, axisMax float64)
	PlaceText(mark chart.TextMark)
	DrawLine(from, to chart.Point)
	// Save writes the image; the format follows the path's extension
	Save(path string) error
}

// CanvasSpec describes the surface a renderer needs
type CanvasSpec struct {
	Kind   chart.Kind
	Title  string
	Width  float64 // inches
	Height float64 // inches
}

// SurfaceFactoryPort creates surfaces
type SurfaceFactoryPort interface {
	NewSurface(spec CanvasSpec) (SurfacePort, error)
}

// ChartRendererPort draws a frequency table onto a new surface
type ChartRendererPort interface {
	Render(table chart.FrequencyTable, title string) (SurfacePort, error)
}
