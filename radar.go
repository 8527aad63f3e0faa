package charts

import (
	"fmt"
	"math"
	"slices"

	"github.com/midbel/svgchart/svg"
)

const (
	radarPadding     = 50.0
	radarSpokeWidth  = 1.5
	radarLevelWidth  = 1.0
	radarOutline     = 2.0
	radarDotRadius   = 2.5
	radarFirstOffset = 15.0
	radarLabelOffset = 5.0
)

// radarRenderer projects every label on its own axis around a center. The
// axes are evenly distributed starting at the configured angle.
type radarRenderer struct{}

func (radarRenderer) validate(c *Chart) error {
	return runChecks(c, checkLabels, checkSeries, checkLength)
}

type radar struct {
	Range
	Levels []float64
	Step   float64
}

func (r radarRenderer) axis(c *Chart) radar {
	var values []float64
	if c.options.Stacked {
		values = stackedSums(c.series)
	} else {
		for _, s := range c.series {
			values = append(values, s...)
		}
	}
	rg := NewRange(0, minSpan)
	for _, v := range values {
		if isMissing(v) {
			continue
		}
		rg = rg.extend(v)
	}
	y := newYAxisFromRange(rg, c.options.NumLines)
	return radar{
		Range:  y.Range,
		Levels: y.Levels,
		Step:   fullcircle / float64(len(c.labels)),
	}
}

func (r radar) angle(c *Chart, i int) float64 {
	return c.options.StartAngle + float64(i)*r.Step
}

// distance gives the distance to the center of the given value.
func (r radar) distance(v, radius float64) float64 {
	return v * radius / r.Len()
}

func (r radarRenderer) layout(c *Chart) (*frame, error) {
	var (
		ax = r.axis(c)
		f  = frame{
			Chart:  c,
			center: svg.NewPos(c.Width/2, c.Height/2),
			radius: max(min(c.Width-radarPadding, c.Height-radarPadding)/2, 0),
		}
		cumul = make([]float64, len(c.labels))
	)
	for _, serie := range c.series {
		list := make([]Dot, len(serie))
		for j, v := range serie {
			var (
				angle = ax.angle(c, j)
				value = v
			)
			if isMissing(v) {
				pos := getPosFromAngle(f.center, angle, ax.distance(cumul[j], f.radius))
				list[j] = missingDot(pos.X)
				list[j].Y = pos.Y
				continue
			}
			if c.options.Stacked {
				cumul[j] += v
				value = cumul[j]
			}
			pos := getPosFromAngle(f.center, angle, ax.distance(value, f.radius))
			list[j] = NewDot(pos.X, pos.Y, v)
		}
		f.dots = append(f.dots, list)
	}
	return &f, nil
}

func (r radarRenderer) draw(f *frame) []svg.Element {
	ax := r.axis(f.Chart)
	list := []svg.Element{
		r.drawSpokes(f, ax),
		r.drawLevels(f, ax),
	}
	order := make([]int, len(f.dots))
	for i := range order {
		order[i] = i
	}
	if f.options.Stacked {
		slices.Reverse(order)
	}
	for _, i := range order {
		list = append(list, r.drawSerie(f, i))
	}
	return append(list, r.drawLabels(f, ax))
}

func (r radarRenderer) drawSpokes(f *frame, ax radar) svg.Element {
	grp := getBaseGroup("spokes")
	for i := range f.labels {
		li := svg.NewLine(f.center, getPosFromAngle(f.center, ax.angle(f.Chart, i), f.radius))
		li.Stroke = svg.NewStroke(f.Radar.Spoke, radarSpokeWidth)
		grp.Append(li)
	}
	return grp
}

func (r radarRenderer) drawLevels(f *frame, ax radar) svg.Element {
	grp := getBaseGroup("levels")
	for _, v := range ax.Levels {
		dist := ax.distance(v, f.radius)
		if v < ax.F || dist <= 0 {
			continue
		}
		pat := getBasePath(f.Radar.Level, radarLevelWidth, false)
		for i := range f.labels {
			pos := getPosFromAngle(f.center, ax.angle(f.Chart, i), dist)
			if i == 0 {
				pat.AbsMoveTo(pos)
				continue
			}
			pat.AbsLineTo(pos)
		}
		pat.ClosePath()
		grp.Append(pat)

		tx := f.label(Format(v), getPosFromAngle(f.center, ax.angle(f.Chart, 0), dist), "start")
		tx.Fill = svg.NewFill(f.Radar.Text)
		grp.Append(tx)
	}
	return grp
}

func (r radarRenderer) drawSerie(f *frame, i int) svg.Element {
	var (
		color = f.color(i)
		grp   = getBaseGroup("serie", "radar")
		pat   = getBasePath(color, radarOutline, true)
		first = true
	)
	grp.Id = fmt.Sprintf("serie-%d", i)
	pat.Fill.Opacity = f.options.FillOpacity
	for _, d := range f.dots[i] {
		if d.Missing {
			continue
		}
		if first {
			pat.AbsMoveTo(d.Pos())
			first = false
			continue
		}
		pat.AbsLineTo(d.Pos())
	}
	if pat.Empty() {
		return grp
	}
	pat.ClosePath()
	grp.Append(pat)
	for _, d := range f.dots[i] {
		if d.Missing {
			continue
		}
		ci := svg.NewCircle(d.Pos(), radarDotRadius)
		ci.Fill = svg.NewFill(color)
		grp.Append(ci)
	}
	return grp
}

// drawLabels writes the labels at the end of their axis. The anchor of the
// text depends on the side of the center where the axis ends.
func (r radarRenderer) drawLabels(f *frame, ax radar) svg.Element {
	grp := getBaseGroup("labels")
	for i, str := range f.labels {
		offset := radarLabelOffset
		if i == 0 {
			offset = radarFirstOffset
		}
		var (
			pos    = getPosFromAngle(f.center, ax.angle(f.Chart, i), f.radius+offset)
			anchor = "middle"
		)
		switch dx := pos.X - f.center.X; {
		case math.Abs(dx) < 1:
		case dx < 0:
			anchor = "end"
		default:
			anchor = "start"
		}
		tx := f.label(str, pos, anchor)
		tx.Fill = svg.NewFill(f.Radar.Text)
		grp.Append(tx)
	}
	return grp
}
