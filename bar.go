package charts

import (
	"fmt"
	"math"

	"github.com/midbel/svgchart/svg"
)

const (
	barGap   = 3.0
	barRatio = 0.75
)

type barRenderer struct{}

func (barRenderer) validate(c *Chart) error {
	return runChecks(c, checkLabels, checkSeries, checkLength, checkSecondary)
}

// layout places the dots at the center of the group of their label. Bars
// always use a category axis, dates included.
func (barRenderer) layout(c *Chart) (*frame, error) {
	f := newCartesianFrame(c, NewCategoryAxis(c.labels), yAxes(c))
	f.xs = make([]float64, len(c.labels))

	width := f.groupWidth()
	for i := range f.xs {
		f.xs[i] = round2(f.Left + float64(i)*width + width/2)
	}
	f.computeDots()
	return f, nil
}

func (f *frame) groupWidth() float64 {
	return f.DrawingWidth() / float64(len(f.labels))
}

func (r barRenderer) columns(f *frame) float64 {
	switch {
	case !f.options.Stacked:
		return float64(len(f.series))
	case f.dual():
		return 2
	default:
		return 1
	}
}

func (r barRenderer) barWidth(f *frame) float64 {
	return barRatio*f.groupWidth()/r.columns(f) - barGap
}

func (r barRenderer) draw(f *frame) []svg.Element {
	list := []svg.Element{f.drawAxes()}
	list = append(list, r.drawBars(f)...)
	list = append(list, f.drawObjectives())
	return append(list, f.drawXLabels(f.X.Ticks(), f.categoryPosition))
}

type bar struct {
	svg.Pos
	Width  float64
	Bottom float64
	Value  float64
}

func (b bar) Height() float64 {
	return math.Abs(b.Bottom - b.Y)
}

func (b bar) Top() float64 {
	return min(b.Y, b.Bottom)
}

func (b bar) Center() svg.Pos {
	return svg.NewPos(round2(b.X+b.Width/2), round2((b.Y+b.Bottom)/2))
}

// bars computes the rectangles of every serie. Stacked bars are drawn
// between two consecutive cumulated levels of the axis of their serie.
func (r barRenderer) bars(f *frame) [][]bar {
	var (
		width  = r.barWidth(f)
		offset = barRatio * f.groupWidth() / 2
		cumul  [2][]float64
		all    = make([][]bar, len(f.dots))
	)
	for i := range cumul {
		cumul[i] = make([]float64, len(f.labels))
	}
	for i, dots := range f.dots {
		side := f.side(i)
		for j, d := range dots {
			if d.Missing {
				continue
			}
			b := bar{
				Pos:   svg.NewPos(d.X-offset, d.Y),
				Width: width,
				Value: d.Value,
			}
			if f.options.Stacked {
				b.Bottom = f.yscale[side].Scale(cumul[side][j])
				cumul[side][j] += d.Value
				if side == AxisSecondary {
					b.X += width + barGap
				}
			} else {
				b.Bottom = f.yscale[side].Scale(0)
				b.X += (width + barGap) * float64(i)
			}
			b.X = round2(b.X)
			all[i] = append(all[i], b)
		}
	}
	return all
}

func (r barRenderer) drawBars(f *frame) []svg.Element {
	var (
		bars   = r.bars(f)
		list   []svg.Element
		values = getBaseGroup("values")
	)
	for i, set := range bars {
		var (
			color = f.color(i)
			grp   = getBaseGroup("serie", "bar")
		)
		grp.Id = fmt.Sprintf("serie-%d", i)
		for _, b := range set {
			rec := svg.NewRect(svg.NewPos(b.X, b.Top()), svg.NewDim(b.Width, b.Height()))
			rec.Fill = svg.NewFill(color)
			rec.Stroke = svg.NewStroke(color, 1)
			grp.Append(rec)

			str := FormatMaxPrecision(b.Value, 2)
			if !f.options.Stacked {
				pos := svg.NewPos(round2(b.X+b.Width/2), b.Y-labelOffset)
				values.Append(getValueText(f.Style, str, pos, ""))
				continue
			}
			var (
				pos  = b.Center()
				fill string
			)
			pos.Y += 4
			if IsColorDark(color) {
				fill = "white"
			}
			values.Append(getValueText(f.Style, str, pos, fill))
		}
		list = append(list, grp)
	}
	return append(list, values)
}
