package charts

import (
	"github.com/midbel/svgchart/svg"
)

type MarkerFunc func(svg.Pos, string, float64) svg.Element

func markerFunc(name string) MarkerFunc {
	switch name {
	case MarkerSquare:
		return GetSquare
	case MarkerDiamond:
		return GetDiamond
	case MarkerNone:
		return nil
	default:
		return GetCircle
	}
}

func GetCircle(pos svg.Pos, color string, size float64) svg.Element {
	el := svg.NewCircle(pos, size)
	el.Fill = svg.NewFill(color)
	el.Stroke = svg.NewStroke("white", 1)
	return el
}

func GetSquare(pos svg.Pos, color string, size float64) svg.Element {
	pos.X -= size
	pos.Y -= size

	el := svg.NewRect(pos, svg.NewDim(size*2, size*2))
	el.Fill = svg.NewFill(color)
	el.Stroke = svg.NewStroke("white", 1)
	return el
}

func GetDiamond(pos svg.Pos, color string, size float64) svg.Element {
	el := GetSquare(pos, color, size).(svg.Rect)
	el.Transform = svg.Rotate(45, pos.X, pos.Y)
	return el
}
