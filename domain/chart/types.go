package chart

import (
	"fmt"
	"math"
)

// Kind selects the chart style
type Kind string

const (
	KindBarH Kind = "barh"
	KindPie  Kind = "pie"
)

// ParseKind validates a chart style name
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBarH, KindPie:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown graph %q (want %s or %s)", s, KindBarH, KindPie)
}

// Category is one distinct value observed in a column
type Category struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FrequencyTable lists the categories of one column by descending count.
// Ties keep first-seen order. Total is the number of non-missing values.
type FrequencyTable struct {
	Column     string     `json:"column"`
	Total      int        `json:"total"`
	Categories []Category `json:"categories"`
}

// Len returns the number of categories
func (t FrequencyTable) Len() int {
	return len(t.Categories)
}

// Percentages returns the category percentages in table order
func (t FrequencyTable) Percentages() []float64 {
	out := make([]float64, len(t.Categories))
	for i, c := range t.Categories {
		out[i] = c.Percentage
	}
	return out
}

// Wedge is a category projected onto an angular span of the pie. Angles
// are degrees counter-clockwise from the positive x axis; StartAngle is
// always below EndAngle.
type Wedge struct {
	Category
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

// MidAngle returns the bisecting angle of the wedge in degrees
func (w Wedge) MidAngle() float64 {
	return (w.StartAngle + w.EndAngle) / 2
}

// Direction returns the unit vector along the wedge's bisector
func (w Wedge) Direction() Point {
	rad := w.MidAngle() * math.Pi / 180
	return Point{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Point is a position in chart data units. For pies the unit is the
// radius and the origin is the centre.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale multiplies both coordinates by f
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Alignment is the horizontal anchoring of a text mark
type Alignment int

const (
	// AlignLeft starts the text at the anchor and runs rightwards
	AlignLeft Alignment = iota
	// AlignRight ends the text at the anchor
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// TextMark is a piece of text placed on a surface, vertically centred on At
type TextMark struct {
	At         Point
	Text       string
	Align      Alignment
	Size       float64 // points
	Background bool    // paint an opaque box behind the text
}

// Bar is one row of a horizontal bar chart
type Bar struct {
	Label string
	Value float64
}
