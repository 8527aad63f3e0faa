package charts

import (
	"slices"

	"github.com/midbel/svgchart/svg"
)

type segment struct {
	From  svg.Pos
	Ctrl1 svg.Pos
	Ctrl2 svg.Pos
	To    svg.Pos
}

func (s segment) reverse() segment {
	return segment{
		From:  s.To,
		Ctrl1: s.Ctrl2,
		Ctrl2: s.Ctrl1,
		To:    s.From,
	}
}

// run is a sequence of consecutive dots without missing values.
type run struct {
	Start    svg.Pos
	Segments []segment
}

func (r run) End() svg.Pos {
	if len(r.Segments) == 0 {
		return r.Start
	}
	return r.Segments[len(r.Segments)-1].To
}

func (r run) reverse() run {
	x := run{
		Start: r.End(),
	}
	for i := len(r.Segments) - 1; i >= 0; i-- {
		x.Segments = append(x.Segments, r.Segments[i].reverse())
	}
	return x
}

// gradients computes the slope at every dot from its direct neighbours.
// Only the available neighbour is used at the bounds of a run.
func gradients(dots []Dot) []float64 {
	var (
		grads = make([]float64, len(dots))
		valid = func(i int) bool {
			return i >= 0 && i < len(dots) && !dots[i].Missing
		}
	)
	for i := range dots {
		if !valid(i) {
			continue
		}
		switch prev, next := valid(i-1), valid(i+1); {
		case prev && next:
			grads[i] = gradient(dots[i-1], dots[i+1])
		case prev:
			grads[i] = gradient(dots[i-1], dots[i])
		case next:
			grads[i] = gradient(dots[i], dots[i+1])
		}
	}
	return grads
}

func gradient(a, b Dot) float64 {
	dx := a.X - b.X
	if dx == 0 {
		return 0
	}
	return (a.Y - b.Y) / dx
}

// splitRuns splits a serie on its missing dots. With curved set, every
// segment is a cubic Bezier curve whose control points are placed at a
// quarter of the horizontal distance between its ends, following the
// gradient at each end.
func splitRuns(dots []Dot, curved bool) []run {
	var (
		list  []run
		curr  *run
		grads = gradients(dots)
	)
	for i, d := range dots {
		if d.Missing {
			curr = nil
			continue
		}
		if curr == nil {
			list = append(list, run{Start: d.Pos()})
			curr = &list[len(list)-1]
			continue
		}
		var (
			prev = dots[i-1]
			seg  = segment{
				From:  prev.Pos(),
				Ctrl1: prev.Pos(),
				Ctrl2: d.Pos(),
				To:    d.Pos(),
			}
		)
		if curved {
			ix := (d.X - prev.X) / 4
			seg.Ctrl1 = svg.NewPos(prev.X+ix, prev.Y+ix*grads[i-1])
			seg.Ctrl2 = svg.NewPos(d.X-ix, d.Y-ix*grads[i])
		}
		curr.Segments = append(curr.Segments, seg)
	}
	return list
}

func appendSegments(pat *svg.Path, segs []segment, curved bool) {
	for _, s := range segs {
		if curved {
			pat.AbsCubicCurve(s.To, s.Ctrl1, s.Ctrl2)
		} else {
			pat.AbsLineTo(s.To)
		}
	}
}

func linePath(pat *svg.Path, runs []run, curved bool) {
	for _, r := range runs {
		pat.AbsMoveTo(r.Start)
		appendSegments(pat, r.Segments, curved)
	}
}

// areaPath closes every run down to the base line.
func areaPath(pat *svg.Path, runs []run, base float64, curved bool) {
	for _, r := range runs {
		pat.AbsMoveTo(r.Start)
		appendSegments(pat, r.Segments, curved)
		pat.AbsLineTo(svg.NewPos(r.End().X, base))
		pat.AbsLineTo(svg.NewPos(r.Start.X, base))
		pat.ClosePath()
	}
}

// bandPath fills the surface between the curve of a serie and the one of
// the serie below it.
func bandPath(pat *svg.Path, top, bottom run, curved bool) {
	pat.AbsMoveTo(top.Start)
	appendSegments(pat, top.Segments, curved)

	back := bottom.reverse()
	pat.AbsLineTo(back.Start)
	appendSegments(pat, back.Segments, curved)
	pat.ClosePath()
}

// trendLine fits a line through the dots by ordinary least squares and
// evaluates it at from and to.
func trendLine(dots []Dot, from, to float64) (svg.Pos, svg.Pos, bool) {
	var (
		sumX, sumY, sumXY, sumX2 float64
		n                        float64
	)
	for _, d := range dots {
		if d.Missing {
			continue
		}
		sumX += d.X
		sumY += d.Y
		sumXY += d.X * d.Y
		sumX2 += d.X * d.X
		n++
	}
	denom := n*sumX2 - sumX*sumX
	if n < 2 || denom == 0 {
		return svg.Pos{}, svg.Pos{}, false
	}
	var (
		slope     = (n*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / n
		start     = svg.NewPos(round2(from), round2(slope*from+intercept))
		end       = svg.NewPos(round2(to), round2(slope*to+intercept))
	)
	return start, end, true
}

func fullRun(dots []Dot, runs []run) bool {
	return len(runs) == 1 && !slices.ContainsFunc(dots, func(d Dot) bool {
		return d.Missing
	})
}
