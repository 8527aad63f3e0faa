package charts

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	FontSize  = 12.0
	CharWidth = 6.0
)

const timeTicks = 4

type Tick struct {
	Value float64
	Label string
}

// XAxis projects the horizontal values of a chart in [0, 1].
type XAxis interface {
	Min() float64
	Max() float64
	Normalize(float64) float64
	Ticks() []Tick
}

type CategoryAxis struct {
	Labels []string
}

func NewCategoryAxis(labels []string) CategoryAxis {
	return CategoryAxis{
		Labels: labels,
	}
}

func (a CategoryAxis) Min() float64 {
	return 0
}

func (a CategoryAxis) Max() float64 {
	return float64(max(len(a.Labels)-1, 0))
}

func (a CategoryAxis) Normalize(i float64) float64 {
	if len(a.Labels) <= 1 {
		return 0.5
	}
	return i / a.Max()
}

func (a CategoryAxis) Ticks() []Tick {
	list := make([]Tick, len(a.Labels))
	for i := range a.Labels {
		list[i] = Tick{
			Value: float64(i),
			Label: a.Labels[i],
		}
	}
	return list
}

// TimeAxis handles values given as seconds since the Unix epoch.
type TimeAxis struct {
	Range
	Format func(time.Time) string
}

func NewTimeAxis(labels []string) (TimeAxis, error) {
	var (
		rg    Range
		first = true
	)
	for _, str := range labels {
		ts, err := ParseTimestamp(str)
		if err != nil {
			return TimeAxis{}, err
		}
		if first {
			rg, first = NewRange(float64(ts), float64(ts)), false
			continue
		}
		rg = rg.extend(float64(ts))
	}
	return NewTimeAxisFromRange(rg), nil
}

func NewTimeAxisFromRange(rg Range) TimeAxis {
	layout := TimeLayout(time.Duration(rg.Len()) * time.Second)
	return TimeAxis{
		Range: rg,
		Format: func(t time.Time) string {
			return t.UTC().Format(layout)
		},
	}
}

func (a TimeAxis) Min() float64 {
	return a.F
}

func (a TimeAxis) Max() float64 {
	return a.T
}

func (a TimeAxis) Ticks() []Tick {
	var list []Tick
	for _, v := range a.Values(timeTicks) {
		ts := math.Trunc(v)
		list = append(list, Tick{
			Value: ts,
			Label: a.Format(time.Unix(int64(ts), 0)),
		})
	}
	return list
}

// TimeLayout selects the layout of the time labels according to the
// duration covered by an axis.
func TimeLayout(span time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case span < day:
		return "15:04"
	case span < 7*day:
		return "Mon 15:04"
	case span < 90*day:
		return "2006-01-02 15:04"
	case span < 365*day:
		return "2006-01-02"
	default:
		return "2006"
	}
}

type NumberAxis struct {
	Range
	Format func(float64) string
}

func NewNumberAxis(values []float64) NumberAxis {
	var rg Range
	for i, v := range values {
		if i == 0 {
			rg = NewRange(v, v)
			continue
		}
		rg = rg.extend(v)
	}
	return NumberAxis{
		Range:  rg,
		Format: Format,
	}
}

func (a NumberAxis) Min() float64 {
	return a.F
}

func (a NumberAxis) Max() float64 {
	return a.T
}

func (a NumberAxis) Ticks() []Tick {
	var list []Tick
	for _, v := range a.Values(timeTicks) {
		list = append(list, Tick{
			Value: v,
			Label: a.Format(v),
		})
	}
	return list
}

type YAxis struct {
	Range
	Unit   string
	Levels []float64
}

// NewYAxis computes the range of an axis from the given series and the
// objectives attached to it. The top of the range is the last grid level,
// the bottom stays the lowest value found.
func NewYAxis(series [][]float64, objectives []Objective, stacked bool, lines int) YAxis {
	rg := NewRange(0, minSpan)
	if stacked {
		var width int
		for _, s := range series {
			width = max(width, len(s))
		}
		for i := 0; i < width; i++ {
			var sum float64
			for _, s := range series {
				if i >= len(s) || isMissing(s[i]) {
					continue
				}
				sum += s[i]
				rg = rg.extend(sum)
			}
		}
	} else {
		for _, s := range series {
			if x, ok := Serie(s).Extent(); ok {
				rg = rg.extend(x.F).extend(x.T)
			}
		}
	}
	for _, o := range objectives {
		rg = rg.extend(o.Value)
	}
	return newYAxisFromRange(rg, lines)
}

func newYAxisFromRange(rg Range, lines int) YAxis {
	levels := GridLines(rg.F, rg.T, lines)
	rg.T = levels[len(levels)-1]
	return YAxis{
		Range:  rg,
		Levels: levels,
	}
}

func (a YAxis) Min() float64 {
	return a.F
}

func (a YAxis) Max() float64 {
	return a.T
}

func (a YAxis) Ticks() []Tick {
	list := make([]Tick, len(a.Levels))
	for i, v := range a.Levels {
		list[i] = Tick{
			Value: v,
			Label: a.Label(v),
		}
	}
	return list
}

func (a YAxis) Label(v float64) string {
	return strings.TrimSpace(Format(v) + " " + a.Unit)
}

// LabelWidth estimates the width needed by the widest label of the axis.
func (a YAxis) LabelWidth() float64 {
	size := func(v float64) int {
		return utf8.RuneCountInString(a.Label(v))
	}
	return float64(max(size(a.Max()), size(a.Min()))) * CharWidth
}
