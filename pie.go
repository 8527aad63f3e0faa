package charts

import (
	"fmt"

	"github.com/midbel/svgchart/svg"
)

const (
	piePadding     = 40.0
	pieLabelOffset = 10.0
	pieLabelShift  = 5.0
)

// pieRenderer draws one slice per serie. A serie is made of the value of
// the slice and optionally of the fraction of the radius used by the slice.
type pieRenderer struct{}

func (pieRenderer) validate(c *Chart) error {
	err := runChecks(c, checkSeries, func(c *Chart) error {
		return checkTuples(c, 1, 2)
	})
	if err != nil {
		return err
	}
	var sum float64
	for i, s := range c.series {
		if s[0] < 0 {
			return invalidSerie(i, "slice value cannot be negative")
		}
		if len(s) == 2 && (s[1] < 0 || s[1] > 1) {
			return invalidSerie(i, "radius fraction should be between 0 and 1")
		}
		sum += s[0]
	}
	if sum <= 0 {
		return DataError{Message: "invalid serie data: sum of slices should be positive"}
	}
	return nil
}

type slice struct {
	Start  float64
	End    float64
	Radius float64
	Value  float64
}

func (s slice) Angle() float64 {
	return s.End - s.Start
}

func (s slice) Middle() float64 {
	return s.Start + s.Angle()/2
}

func (s slice) Full() bool {
	return s.Angle() >= fullcircle
}

func (s slice) Large() bool {
	return s.Angle() > halfcircle
}

func (r pieRenderer) slices(f *frame) []slice {
	var (
		sum   float64
		angle float64
		list  = make([]slice, 0, len(f.series))
	)
	for _, s := range f.series {
		sum += s[0]
	}
	for _, s := range f.series {
		sl := slice{
			Start:  angle,
			End:    angle + fullcircle*s[0]/sum,
			Radius: f.radius,
			Value:  s[0],
		}
		if len(s) == 2 {
			sl.Radius = f.radius * s[1]
		}
		angle = sl.End
		list = append(list, sl)
	}
	return list
}

func (r pieRenderer) layout(c *Chart) (*frame, error) {
	f := frame{
		Chart:  c,
		center: svg.NewPos(c.Width/2, c.Height/2),
		radius: min(c.Width-piePadding, c.Height-piePadding) / 2,
	}
	f.radius = max(f.radius, 0)
	for _, s := range r.slices(&f) {
		pos := getPosFromAngle(f.center, s.Middle(), s.Radius+pieLabelOffset)
		pos.Y += pieLabelShift
		f.dots = append(f.dots, []Dot{NewDot(pos.X, pos.Y, s.Value)})
	}
	return &f, nil
}

func (r pieRenderer) draw(f *frame) []svg.Element {
	var (
		list   []svg.Element
		slices = r.slices(f)
		gap    = f.options.Gap
		values = getBaseGroup("values")
	)
	for i, s := range slices {
		if s.Angle() <= 0 || s.Radius <= 0 {
			continue
		}
		color := f.color(i)
		grp := getBaseGroup("serie", "slice")
		grp.Id = fmt.Sprintf("serie-%d", i)
		grp.Append(r.drawSlice(s, f.center, color, gap))
		list = append(list, grp)

		tx := getValueText(f.Style, FormatMaxPrecision(s.Value, 2), f.dots[i][0].Pos(), "")
		values.Append(tx)
	}
	if gap > 0 && len(slices) > 1 {
		grp := getBaseGroup("gaps")
		for _, s := range slices {
			li := svg.NewLine(f.center, getPosFromAngle(f.center, s.Start, f.radius))
			li.Stroke = svg.NewStroke("white", gap)
			grp.Append(li)
		}
		list = append(list, grp)
	}
	return append(list, values)
}

func (r pieRenderer) drawSlice(s slice, center svg.Pos, color string, gap float64) svg.Element {
	var stroke svg.Stroke
	if gap == 0 {
		stroke = svg.NewStroke(color, 1)
	}
	if s.Full() {
		ci := svg.NewCircle(center, s.Radius)
		ci.Fill = svg.NewFill(color)
		ci.Stroke = stroke
		return ci
	}
	pat := getBasePath(color, 0, true)
	pat.Stroke = stroke
	pat.AbsMoveTo(center)
	pat.AbsLineTo(getPosFromAngle(center, s.End, s.Radius))
	pat.AbsArcTo(getPosFromAngle(center, s.Start, s.Radius), s.Radius, s.Radius, 0, s.Large(), false)
	pat.ClosePath()
	return pat
}
