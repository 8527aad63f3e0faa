package charts

import (
	"math"

	"github.com/midbel/svgchart/svg"
)

// Dot is a data point projected on the drawing area. Value keeps the
// value given by the caller, before any accumulation.
type Dot struct {
	X       float64
	Y       float64
	Value   float64
	Missing bool
}

func NewDot(x, y, value float64) Dot {
	return Dot{
		X:     round2(x),
		Y:     round2(y),
		Value: value,
	}
}

func missingDot(x float64) Dot {
	return Dot{
		X:       round2(x),
		Y:       math.NaN(),
		Value:   math.NaN(),
		Missing: true,
	}
}

func (d Dot) Pos() svg.Pos {
	return svg.NewPos(d.X, d.Y)
}

type AxisSide int

const (
	AxisPrimary AxisSide = iota
	AxisSecondary
)

type Objective struct {
	Value float64
	Color string
	Width float64
}

func NewObjective(value float64, color string, width float64) Objective {
	if color == "" {
		color = "red"
	}
	if width <= 0 {
		width = 1
	}
	return Objective{
		Value: value,
		Color: color,
		Width: width,
	}
}
