package charts

import (
	"fmt"

	"github.com/midbel/svgchart/svg"
)

const (
	lineWidth  = 3.0
	trendWidth = 1.0
	markerSize = 4.0
)

type lineRenderer struct{}

func (lineRenderer) validate(c *Chart) error {
	return runChecks(c, checkLabels, checkSeries, checkLength, checkSecondary, checkTimeLabels)
}

func (lineRenderer) layout(c *Chart) (*frame, error) {
	x, err := labelAxis(c)
	if err != nil {
		return nil, err
	}
	f := newCartesianFrame(c, x, yAxes(c))
	f.xs = make([]float64, len(c.labels))
	for i, str := range c.labels {
		v := float64(i)
		if c.options.TimeChart {
			ts, err := ParseTimestamp(str)
			if err != nil {
				return nil, err
			}
			v = float64(ts)
		}
		f.xs[i] = f.xscale.Scale(v)
	}
	f.computeDots()
	return f, nil
}

func labelAxis(c *Chart) (XAxis, error) {
	if c.options.TimeChart {
		return NewTimeAxis(c.labels)
	}
	return NewCategoryAxis(c.labels), nil
}

func (r lineRenderer) draw(f *frame) []svg.Element {
	list := []svg.Element{f.drawAxes()}
	if f.options.Fill {
		list = append(list, r.drawAreas(f))
	}
	for i := range f.dots {
		list = append(list, r.drawSerie(f, i))
	}
	list = append(list, r.drawLabels(f))
	if f.options.Trend {
		list = append(list, r.drawTrends(f))
	}
	if f.options.TimeChart && len(f.events) > 0 {
		list = append(list, r.drawEvents(f))
	}
	list = append(list, f.drawObjectives())

	position := f.categoryPosition
	if f.options.TimeChart {
		position = f.scaledPosition
	}
	return append(list, f.drawXLabels(f.X.Ticks(), position))
}

func (r lineRenderer) drawSerie(f *frame, i int) svg.Element {
	var (
		color  = f.color(i)
		dots   = f.dots[i]
		curved = f.options.Curve != CurveStraight
		grp    = getBaseGroup("serie", "line")
		pat    = getBasePath(color, lineWidth, false)
		marker = markerFunc(f.options.Marker)
	)
	grp.Id = fmt.Sprintf("serie-%d", i)
	linePath(&pat, splitRuns(dots, curved), curved)
	if !pat.Empty() {
		grp.Append(pat)
	}
	if marker == nil {
		return grp
	}
	for _, d := range dots {
		if d.Missing {
			continue
		}
		grp.Append(marker(d.Pos(), color, markerSize))
	}
	return grp
}

func (r lineRenderer) drawLabels(f *frame) svg.Element {
	grp := getBaseGroup("values")
	for _, dots := range f.dots {
		for _, d := range dots {
			if d.Missing {
				continue
			}
			pos := svg.NewPos(d.X, d.Y-labelOffset)
			grp.Append(getValueText(f.Style, Format(d.Value), pos, ""))
		}
	}
	return grp
}

// drawAreas fills the surface below each serie. Stacked series are filled
// down to the serie below them on the same axis.
func (r lineRenderer) drawAreas(f *frame) svg.Element {
	var (
		grp    = getBaseGroup("areas")
		curved = f.options.Curve != CurveStraight
		below  [2][]Dot
	)
	for i, dots := range f.dots {
		var (
			side = f.side(i)
			base = f.yscale[side].Scale(max(0, f.Y[side].Min()))
			runs = splitRuns(dots, curved)
			pat  = getBasePath(f.color(i), 0, true)
		)
		pat.Fill.Opacity = f.options.FillOpacity

		prev := below[side]
		if f.options.Stacked && prev != nil && fullRun(dots, runs) && fullRun(prev, splitRuns(prev, curved)) {
			bandPath(&pat, runs[0], splitRuns(prev, curved)[0], curved)
		} else {
			areaPath(&pat, runs, base, curved)
		}
		below[side] = dots
		if !pat.Empty() {
			grp.Append(pat)
		}
	}
	return grp
}

func (r lineRenderer) drawTrends(f *frame) svg.Element {
	grp := getBaseGroup("trends")
	for i, dots := range f.dots {
		start, end, ok := trendLine(dots, f.plotLeft(), f.plotRight())
		if !ok {
			f.log().Debug("trend skipped", "serie", i)
			continue
		}
		li := svg.NewLine(start, end)
		li.Stroke = svg.NewStroke(f.color(i), trendWidth)
		grp.Append(li)
	}
	return grp
}

func (r lineRenderer) drawEvents(f *frame) svg.Element {
	var (
		grp   = getBaseGroup("events")
		scale = f.yscale[AxisPrimary]
		y1    = scale.Scale(f.Y[AxisPrimary].Min())
		y2    = scale.Scale(f.Y[AxisPrimary].Max())
	)
	for _, str := range f.events {
		ts, err := ParseTimestamp(str)
		if err != nil {
			continue
		}
		x := f.xscale.Scale(float64(ts))
		li := svg.NewLine(svg.NewPos(x, y1), svg.NewPos(x, y2))
		li.Stroke = svg.NewStroke(f.Event.Color, f.Event.Width)
		grp.Append(li)
	}
	return grp
}
