package charts

import (
	"testing"

	"github.com/midbel/svgchart/svg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradients(t *testing.T) {
	dots := []Dot{
		NewDot(0, 0, 0),
		NewDot(10, 10, 0),
		NewDot(20, 30, 0),
		missingDot(30),
		NewDot(40, 0, 0),
	}
	got := gradients(dots)
	assert.Equal(t, []float64{1, 1.5, 2, 0, 0}, got)
}

func TestSplitRunsStraight(t *testing.T) {
	dots := []Dot{
		NewDot(0, 0, 0),
		NewDot(10, 10, 0),
		missingDot(20),
		NewDot(30, 5, 0),
		NewDot(40, 5, 0),
	}
	runs := splitRuns(dots, false)
	require.Len(t, runs, 2)

	var pat svg.Path
	linePath(&pat, runs, false)
	assert.Equal(t, "M0,0L10,10M30,5L40,5", pat.String())
}

func TestSplitRunsCurved(t *testing.T) {
	dots := []Dot{
		NewDot(0, 0, 0),
		NewDot(40, 40, 0),
		NewDot(80, 0, 0),
	}
	runs := splitRuns(dots, true)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Segments, 2)

	seg := runs[0].Segments[0]
	assert.Equal(t, svg.NewPos(10, 10), seg.Ctrl1)
	assert.Equal(t, svg.NewPos(30, 40), seg.Ctrl2)

	var pat svg.Path
	linePath(&pat, runs, true)
	assert.Equal(t, "M0,0C10,10 30,40 40,40C50,40 70,10 80,0", pat.String())
}

func TestAreaPath(t *testing.T) {
	dots := []Dot{
		NewDot(0, 50, 0),
		NewDot(10, 20, 0),
	}
	var pat svg.Path
	areaPath(&pat, splitRuns(dots, false), 100, false)
	assert.Equal(t, "M0,50L10,20L10,100L0,100Z", pat.String())
}

func TestBandPath(t *testing.T) {
	top := splitRuns([]Dot{NewDot(0, 10, 0), NewDot(10, 20, 0)}, false)
	bottom := splitRuns([]Dot{NewDot(0, 50, 0), NewDot(10, 60, 0)}, false)

	var pat svg.Path
	bandPath(&pat, top[0], bottom[0], false)
	assert.Equal(t, "M0,10L10,20L10,60L0,50Z", pat.String())
}

func TestTrendLine(t *testing.T) {
	dots := []Dot{
		NewDot(0, 1, 0),
		missingDot(1),
		NewDot(2, 5, 0),
		NewDot(4, 9, 0),
	}
	start, end, ok := trendLine(dots, 0, 10)
	require.True(t, ok)
	assert.Equal(t, svg.NewPos(0, 1), start)
	assert.Equal(t, svg.NewPos(10, 21), end)

	_, _, ok = trendLine(dots[:1], 0, 10)
	assert.False(t, ok)

	_, _, ok = trendLine([]Dot{NewDot(3, 1, 0), NewDot(3, 5, 0)}, 0, 10)
	assert.False(t, ok)
}
