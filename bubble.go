package charts

import (
	"fmt"

	"github.com/midbel/svgchart/svg"
)

const bubbleHeadroom = 10.0

// bubbleRenderer draws one circle per serie, each serie being a triple
// made of the position on the X axis, the position on the Y axis and the
// radius of the circle. On a time chart, the X position is a timestamp in
// seconds, or the date given by the label at the same index.
type bubbleRenderer struct{}

func (bubbleRenderer) validate(c *Chart) error {
	err := runChecks(c, checkSeries, func(c *Chart) error {
		return checkTuples(c, 3, 3)
	})
	if err != nil {
		return err
	}
	for i, s := range c.series {
		if s[2] < 0 {
			return invalidSerie(i, "radius cannot be negative")
		}
	}
	if c.options.SecondaryCount > 0 {
		return OptionError{Option: "nbYkeys2", Value: c.options.SecondaryCount, Reason: "bubble charts have a single Y axis"}
	}
	if c.options.TimeChart && len(c.labels) > 0 {
		if len(c.labels) != len(c.series) {
			return DataError{Message: fmt.Sprintf("bubble labels mismatch: expected %d, got %d", len(c.series), len(c.labels))}
		}
		return checkTimeLabels(c)
	}
	return nil
}

func (r bubbleRenderer) positions(c *Chart) ([]float64, error) {
	xs := make([]float64, len(c.series))
	for i, s := range c.series {
		xs[i] = s[0]
		if c.options.TimeChart && len(c.labels) > 0 {
			ts, err := ParseTimestamp(c.labels[i])
			if err != nil {
				return nil, err
			}
			xs[i] = float64(ts)
		}
	}
	return xs, nil
}

func (r bubbleRenderer) layout(c *Chart) (*frame, error) {
	xs, err := r.positions(c)
	if err != nil {
		return nil, err
	}
	var x XAxis = NewNumberAxis(xs)
	if c.options.TimeChart {
		x = NewTimeAxisFromRange(NewNumberAxis(xs).Range)
	}

	rg := NewRange(0, minSpan)
	for _, s := range c.series {
		rg = rg.extend(s[1] + bubbleHeadroom)
	}
	for _, o := range c.objectives[AxisPrimary] {
		rg = rg.extend(o.Value)
	}
	y := newYAxisFromRange(rg, c.options.NumLines)
	y.Unit = c.options.UnitY1

	f := newCartesianFrame(c, x, [2]YAxis{y, y})
	f.xs = make([]float64, len(xs))
	f.dots = make([][]Dot, len(c.series))
	for i, s := range c.series {
		f.xs[i] = f.xscale.Scale(xs[i])
		f.dots[i] = []Dot{
			NewDot(f.xs[i], f.yscale[AxisPrimary].Scale(s[1]), s[2]),
		}
	}
	return f, nil
}

func (r bubbleRenderer) draw(f *frame) []svg.Element {
	var (
		list   = []svg.Element{f.drawAxes()}
		values = getBaseGroup("values")
	)
	for i, dots := range f.dots {
		var (
			color = f.color(i)
			grp   = getBaseGroup("serie", "bubble")
		)
		grp.Id = fmt.Sprintf("serie-%d", i)
		for _, d := range dots {
			ci := svg.NewCircle(d.Pos(), d.Value)
			ci.Fill = svg.NewFill(color)
			ci.Stroke = svg.NewStroke("white", 1)
			grp.Append(ci)

			var fill string
			if IsColorDark(color) {
				fill = "white"
			}
			tx := getValueText(f.Style, FormatMaxPrecision(d.Value, 2), d.Pos(), fill)
			tx.Baseline = "middle"
			values.Append(tx)
		}
		list = append(list, grp)
	}
	list = append(list, values, f.drawObjectives())
	return append(list, f.drawXLabels(f.X.Ticks(), f.scaledPosition))
}
