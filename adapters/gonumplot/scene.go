package gonumplot

import (
	"image/color"
	"math"

	"tabchart/domain/chart"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	barThickness = 0.8
	leaderWidth  = 1
	labelPad     = 2 // points around a text background box
)

// scene is a plot.Plotter replaying the drawing calls of a Surface in
// order: wedges, bars, lines, then text on top.
type scene struct {
	// isotropic maps one data unit to the same length on both axes so
	// that pies stay round.
	isotropic bool

	wedges []chart.Wedge
	bars   []chart.Bar
	lines  [][2]chart.Point
	texts  []chart.TextMark

	textStyle text.Style
	fonts     *typography
	leader    draw.LineStyle
}

func newScene(isotropic bool, base text.Style, fonts *typography) *scene {
	base.Rotation = 0
	base.YAlign = text.YCenter
	return &scene{
		isotropic: isotropic,
		textStyle: base,
		fonts:     fonts,
		leader: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(leaderWidth),
		},
	}
}

// Plot implements plot.Plotter
func (s *scene) Plot(c draw.Canvas, p *plot.Plot) {
	at := s.transform(&c, p)

	if len(s.wedges) > 0 {
		center := at(chart.Point{})
		edge := at(chart.Point{X: 1})
		radius := edge.X - center.X
		for i, w := range s.wedges {
			var path vg.Path
			path.Move(center)
			path.Arc(center, radius, w.StartAngle*math.Pi/180, (w.EndAngle-w.StartAngle)*math.Pi/180)
			path.Close()
			c.SetColor(tab10[i%len(tab10)])
			c.Fill(path)
		}
	}

	for i, b := range s.bars {
		row := float64(i)
		lo := at(chart.Point{X: 0, Y: row - barThickness/2})
		hi := at(chart.Point{X: b.Value, Y: row + barThickness/2})
		c.SetColor(barColor)
		c.Fill(rectangle(lo, hi))
	}

	for _, l := range s.lines {
		from, to := at(l[0]), at(l[1])
		c.StrokeLine2(s.leader, from.X, from.Y, to.X, to.Y)
	}

	for _, m := range s.texts {
		sty := s.textStyle
		s.fonts.apply(&sty, vg.Points(m.Size))
		sty.XAlign = xAlign(m.Align)
		pt := at(m.At)

		if m.Background {
			w, h := sty.Width(m.Text), sty.Height(m.Text)
			x0 := pt.X + vg.Length(sty.XAlign)*w
			y0 := pt.Y + vg.Length(sty.YAlign)*h
			pad := vg.Points(labelPad)
			c.SetColor(color.White)
			c.Fill(rectangle(
				vg.Point{X: x0 - pad, Y: y0 - pad},
				vg.Point{X: x0 + w + pad, Y: y0 + h + pad},
			))
		}
		c.FillText(sty, pt, m.Text)
	}
}

// transform maps data coordinates to the canvas. The isotropic mapping
// centres the data origin and uses the smaller of the two axis scales.
func (s *scene) transform(c *draw.Canvas, p *plot.Plot) func(chart.Point) vg.Point {
	trX, trY := p.Transforms(c)
	if !s.isotropic {
		return func(pt chart.Point) vg.Point {
			return vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}
	}

	cx, cy := trX(0), trY(0)
	unit := trX(1) - cx
	if uy := trY(1) - cy; uy < unit {
		unit = uy
	}
	return func(pt chart.Point) vg.Point {
		return vg.Point{X: cx + unit*vg.Length(pt.X), Y: cy + unit*vg.Length(pt.Y)}
	}
}

func rectangle(a, b vg.Point) vg.Path {
	var path vg.Path
	path.Move(a)
	path.Line(vg.Point{X: b.X, Y: a.Y})
	path.Line(b)
	path.Line(vg.Point{X: a.X, Y: b.Y})
	path.Close()
	return path
}

func xAlign(a chart.Alignment) text.XAlignment {
	switch a {
	case chart.AlignLeft:
		return text.XLeft
	case chart.AlignRight:
		return text.XRight
	default:
		return text.XCenter
	}
}
