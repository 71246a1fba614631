// Package gonumplot draws charts with gonum.org/v1/plot.
//
// Renderers describe a chart as wedges, bars, lines and text marks in data
// units; a Surface collects them into a scene plotter and rasterises or
// vectorises the plot when it is saved.
package gonumplot

import (
	"fmt"
	"log"

	"tabchart/domain/chart"
	"tabchart/internal/errors"
	"tabchart/ports"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	titleSize = 14
	tickSize  = 9
	axisSize  = 10

	// pieExtent is the half-width of the pie viewport in radii, wide
	// enough for labels written from 1.3 radii outwards.
	pieExtent = 2.2
	// pieTitlePad and barTitlePad separate the title from the drawing.
	pieTitlePad = 28
	barTitlePad = 20
)

// Factory creates surfaces that share a resolution and an optional font
type Factory struct {
	dpi   int
	fonts *typography
}

// NewFactory returns a Factory. fontPath may be empty to keep the bundled
// fonts.
func NewFactory(dpi int, fontPath string) (*Factory, error) {
	if dpi <= 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("dpi must be positive, got %d", dpi))
	}

	f := &Factory{dpi: dpi}
	if fontPath != "" {
		fonts, err := loadTypography(fontPath)
		if err != nil {
			return nil, err
		}
		f.fonts = fonts
		log.Printf("[gonumplot] Using font %s", fontPath)
	}
	return f, nil
}

// NewSurface prepares an empty plot for spec
func (f *Factory) NewSurface(spec ports.CanvasSpec) (ports.SurfacePort, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, errors.RenderError(fmt.Sprintf("invalid canvas %gx%g in", spec.Width, spec.Height), nil)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	f.fonts.apply(&p.Title.TextStyle, vg.Points(titleSize))
	f.fonts.apply(&p.X.Label.TextStyle, vg.Points(axisSize))
	f.fonts.apply(&p.X.Tick.Label, vg.Points(tickSize))
	f.fonts.apply(&p.Y.Label.TextStyle, vg.Points(axisSize))
	f.fonts.apply(&p.Y.Tick.Label, vg.Points(tickSize))

	sc := newScene(spec.Kind == chart.KindPie, p.Title.TextStyle, f.fonts)

	switch spec.Kind {
	case chart.KindPie:
		p.Title.Padding = vg.Points(pieTitlePad)
		p.HideAxes()
		p.X.Min, p.X.Max = -pieExtent, pieExtent
		p.Y.Min, p.Y.Max = -pieExtent, pieExtent
	case chart.KindBarH:
		p.Title.Padding = vg.Points(barTitlePad)
		p.X.Label.Text = "Share (%)"
		grid := plotter.NewGrid()
		grid.Horizontal.Color = nil
		p.Add(grid)
	default:
		return nil, errors.RenderError(fmt.Sprintf("unsupported chart kind %q", spec.Kind), nil)
	}
	p.Add(sc)

	return &Surface{spec: spec, plot: p, scene: sc, dpi: f.dpi}, nil
}

// Surface is one chart being drawn
type Surface struct {
	spec  ports.CanvasSpec
	plot  *plot.Plot
	scene *scene
	dpi   int
}

func (s *Surface) DrawWedges(wedges []chart.Wedge) {
	s.scene.wedges = append(s.scene.wedges, wedges...)
}

// DrawBars adds one bar per row, row 0 at the top, on an x axis running
// from 0 to axisMax
func (s *Surface) DrawBars(bars []chart.Bar, axisMax float64) {
	s.scene.bars = append(s.scene.bars, bars...)
	if len(s.scene.bars) == 0 {
		return
	}

	labels := make([]string, len(s.scene.bars))
	for i, b := range s.scene.bars {
		labels[i] = b.Label
	}
	s.plot.NominalY(labels...)
	s.plot.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	s.plot.Y.Min = -0.5
	s.plot.Y.Max = float64(len(labels)) - 0.5

	if axisMax <= 0 {
		axisMax = 1
	}
	s.plot.X.Min, s.plot.X.Max = 0, axisMax
}

func (s *Surface) PlaceText(mark chart.TextMark) {
	s.scene.texts = append(s.scene.texts, mark)
}

func (s *Surface) DrawLine(from, to chart.Point) {
	s.scene.lines = append(s.scene.lines, [2]chart.Point{from, to})
}
