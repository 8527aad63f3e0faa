package charts

import (
	"math"

	"github.com/midbel/svgchart/svg"
)

// renderer holds the geometry of one kind of chart.
type renderer interface {
	validate(*Chart) error
	layout(*Chart) (*frame, error)
	draw(*frame) []svg.Element
}

const (
	fullcircle = 360.0
	halfcircle = 180.0
	deg2rad    = math.Pi / halfcircle
)

func getPosFromAngle(center svg.Pos, angle, radius float64) svg.Pos {
	var (
		rad = angle * deg2rad
		x   = center.X + radius*math.Cos(rad)
		y   = center.Y + radius*math.Sin(rad)
	)
	return svg.NewPos(round2(x), round2(y))
}

func getBasePath(color string, width float64, fill bool) svg.Path {
	pat := svg.NewPath()
	pat.Rendering = "geometricPrecision"
	if width > 0 {
		pat.Stroke = svg.NewStroke(color, width)
	}
	if fill {
		pat.Fill = svg.NewFill(color)
	}
	return pat
}

func getBaseGroup(class ...string) svg.Group {
	return svg.NewGroup(svg.WithClass(class...))
}

func getValueText(s Style, str string, pos svg.Pos, color string) svg.Text {
	tx := s.label(str, pos, "middle")
	if color != "" {
		tx.Fill = svg.NewFill(color)
	}
	return tx
}

func isMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
