package charts

import (
	"math"
	"unicode/utf8"

	"github.com/midbel/svgchart/svg"
)

const (
	chartPadding = 20.0
	labelGutter  = 40.0
	labelOffset  = 8.0
)

// frame is the state of one layout pass. It is built from the chart
// configuration and discarded once the chart has been drawn.
type frame struct {
	*Chart
	Padding

	X      XAxis
	Y      [2]YAxis
	xs     []float64
	xscale Scaler
	yscale [2]Scaler
	dots   [][]Dot

	center svg.Pos
	radius float64
}

func newCartesianFrame(c *Chart, x XAxis, y [2]YAxis) *frame {
	f := frame{
		Chart: c,
		X:     x,
		Y:     y,
	}
	f.Padding = computePadding(c, x, y)

	var (
		margin = c.options.Margin
		rx     = NewRange(f.Left+margin, f.Width-f.Right-margin)
		ry     = NewRange(f.Height-f.Bottom, f.Top)
	)
	f.xscale = NewScaler(x, rx)
	for i := range y {
		f.yscale[i] = NewScaler(y[i], ry)
	}
	return &f
}

func computePadding(c *Chart, x XAxis, y [2]YAxis) Padding {
	gutter := max(labelGutter, y[AxisPrimary].LabelWidth())
	if c.dual() {
		gutter = max(gutter, y[AxisSecondary].LabelWidth())
	}
	p := Padding{
		Top:    chartPadding,
		Right:  chartPadding,
		Bottom: chartPadding,
		Left:   chartPadding + gutter,
	}
	if c.dual() {
		p.Right += gutter
	}
	if angle := c.options.LabelAngle; angle != 0 {
		var chars int
		for _, t := range x.Ticks() {
			chars = max(chars, utf8.RuneCountInString(t.Label))
		}
		p.Bottom += float64(chars) * CharWidth * math.Abs(math.Sin(angle*deg2rad))
	}
	return p
}

func yAxes(c *Chart) [2]YAxis {
	var (
		groups = splitBySide(c)
		axes   [2]YAxis
		units  = [2]string{c.options.UnitY1, c.options.UnitY2}
	)
	for i := range axes {
		axes[i] = NewYAxis(groups[i], c.objectives[i], c.options.Stacked, c.options.NumLines)
		axes[i].Unit = units[i]
	}
	return axes
}

func (f *frame) DrawingWidth() float64 {
	return f.Width - f.Padding.Horizontal()
}

func (f *frame) DrawingHeight() float64 {
	return f.Height - f.Padding.Vertical()
}

func (f *frame) gutter() float64 {
	return f.Left - chartPadding
}

func (f *frame) plotLeft() float64 {
	return f.Left
}

func (f *frame) plotRight() float64 {
	return f.Width - f.Right
}

// computeDots projects every value of every serie. Stacked values are
// accumulated per label and per axis before being projected.
func (f *frame) computeDots() {
	var cumul [2][]float64
	for i := range cumul {
		cumul[i] = make([]float64, len(f.xs))
	}
	f.dots = make([][]Dot, 0, len(f.series))
	for i, serie := range f.series {
		var (
			side = f.side(i)
			list = make([]Dot, len(serie))
		)
		for j, v := range serie {
			x := f.xs[j]
			if isMissing(v) {
				list[j] = missingDot(x)
				continue
			}
			value := v
			if f.options.Stacked {
				cumul[side][j] += v
				value = cumul[side][j]
			}
			list[j] = NewDot(x, f.yscale[side].Scale(value), v)
		}
		f.dots = append(f.dots, list)
	}
}

func (f *frame) drawAxes() svg.Element {
	var (
		grp   = getBaseGroup("axis")
		left  = f.plotLeft()
		right = f.plotRight()
	)
	for _, t := range f.Y[AxisPrimary].Ticks() {
		if t.Value < f.Y[AxisPrimary].Min() {
			continue
		}
		y := f.yscale[AxisPrimary].Scale(t.Value)
		grp.Append(f.gridLine(svg.NewPos(left, y), svg.NewPos(right, y)))
		grp.Append(f.axisLabel(t.Label, svg.NewPos(f.gutter(), y), "end"))
	}
	if f.dual() {
		for _, t := range f.Y[AxisSecondary].Ticks() {
			if t.Value < f.Y[AxisSecondary].Min() {
				continue
			}
			y := f.yscale[AxisSecondary].Scale(t.Value)
			grp.Append(f.axisLabel(t.Label, svg.NewPos(f.Width-f.gutter(), y), "start"))
		}
	}
	if f.options.ShowYAxis {
		var (
			y1 = f.yscale[AxisPrimary].Scale(f.Y[AxisPrimary].Min())
			y2 = f.yscale[AxisPrimary].Scale(f.Y[AxisPrimary].Max())
			li = svg.NewLine(svg.NewPos(left, y1), svg.NewPos(left, y2))
		)
		li.Stroke = svg.NewStroke(f.Grid.Color, 1)
		grp.Append(li)
	}
	return grp
}

func (f *frame) drawObjectives() svg.Element {
	var (
		grp   = getBaseGroup("objectives")
		left  = f.plotLeft()
		right = f.plotRight()
	)
	for side, list := range f.objectives {
		for _, o := range list {
			y := f.yscale[side].Scale(o.Value)

			pat := getBasePath(o.Color, o.Width, false)
			pat.AbsMoveTo(svg.NewPos(left, y))
			pat.AbsHorizontalLine(right)
			grp.Append(pat)

			var (
				str = FormatMaxPrecision(o.Value, 2)
				tx  svg.Text
			)
			if AxisSide(side) == AxisPrimary {
				tx = f.axisLabel(str, svg.NewPos(left, y-labelOffset), "start")
			} else {
				tx = f.axisLabel(str, svg.NewPos(f.xscale.Scale(f.X.Max()), y-labelOffset), "end")
			}
			tx.Fill = svg.NewFill(o.Color)
			grp.Append(tx)
		}
	}
	return grp
}

func (f *frame) drawXLabels(ticks []Tick, position func(Tick) float64) svg.Element {
	var (
		grp   = getBaseGroup("labels")
		angle = f.options.LabelAngle
	)
	for _, t := range ticks {
		x := position(t)
		if angle == 0 {
			tx := f.label(t.Label, svg.NewPos(x, f.Height-2), "middle")
			tx.Fill = svg.NewFill(f.Text.Color)
			grp.Append(tx)
			continue
		}
		y := f.Height - f.Bottom + f.Text.Size + 2
		tx := f.label(t.Label, svg.NewPos(x, y), "end")
		tx.Fill = svg.NewFill(f.Text.Color)
		tx.Transform = svg.Rotate(-angle, x, y)
		grp.Append(tx)
	}
	return grp
}

// categoryPosition places the ticks of a category axis on the computed
// positions of the labels.
func (f *frame) categoryPosition(t Tick) float64 {
	i := int(t.Value)
	if i < 0 || i >= len(f.xs) {
		return f.xscale.Scale(t.Value)
	}
	return f.xs[i]
}

func (f *frame) scaledPosition(t Tick) float64 {
	return f.xscale.Scale(t.Value)
}
