package charts

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLabels = []string{"A", "B", "C", "D"}

func TestLineChartDots(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}}).
		SetLabels(testLabels).
		AddObjectiveY1(20, "", 0)

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 1)

	want := []Dot{
		NewDot(120, 308, 10),
		NewDot(253.33, 56, 45),
		NewDot(386.67, 164, 30),
		NewDot(520, 200, 25),
	}
	assert.Equal(t, want, dots[0])
}

func TestBarChartDots(t *testing.T) {
	c := NewBarChart(600, 400).
		SetSeries([][]float64{
			{10, 45, 30, 25},
			{15, 20, 15, 25},
		}).
		SetLabels(testLabels)

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 2)

	want := []Dot{
		NewDot(125, 308, 10),
		NewDot(255, 56, 45),
		NewDot(385, 164, 30),
		NewDot(515, 200, 25),
	}
	assert.Equal(t, want, dots[0])
}

func TestStackedDualBarChartDots(t *testing.T) {
	c := NewBarChart(600, 400).
		SetSeries([][]float64{
			{10, 45, 30, 25},
			{15, 20, 15, 25},
			{15, 20, 15, 25},
		}).
		SetLabels(testLabels).
		Configure(map[string]any{
			"stacked":  true,
			"nbYkeys2": 1,
		}).
		SetLogger(slog.New(slog.DiscardHandler))

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 3)

	want := []Dot{
		NewDot(120, 200, 15),
		NewDot(240, 140, 20),
		NewDot(360, 200, 15),
		NewDot(480, 80, 25),
	}
	assert.Equal(t, want, dots[2])

	warnings := c.Warnings()
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrConfiguration)
}

func TestStrictStackedDual(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{1, 2}, {3, 4}}).
		SetLabels([]string{"A", "B"}).
		Configure(map[string]any{
			"stacked":  true,
			"nbYkeys2": 1,
			"strict":   true,
		})
	_, err := c.Render()
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.EqualError(t, err, "stacked charts with dual Y-axis are not fully supported")
}

func TestChartValidation(t *testing.T) {
	t.Run("empty-labels", func(t *testing.T) {
		c := NewLineChart(600, 400).
			SetSeries([][]float64{{1, 2, 3}}).
			SetLabels([]string{})
		_, err := c.Render()
		require.ErrorIs(t, err, ErrInvalidData)
		assert.EqualError(t, err, "chart labels cannot be empty")
	})
	t.Run("empty-series", func(t *testing.T) {
		c := NewBarChart(600, 400).SetLabels(testLabels)
		_, err := c.Render()
		require.ErrorIs(t, err, ErrInvalidData)
		assert.EqualError(t, err, "chart series cannot be empty")
	})
	t.Run("length", func(t *testing.T) {
		c := NewLineChart(600, 400).
			SetSeries([][]float64{{1, 2, 3}, {1, 2}}).
			SetLabels([]string{"A", "B", "C"})
		_, err := c.Render()
		require.ErrorIs(t, err, ErrInvalidData)

		var lerr LengthError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, 1, lerr.Serie)
		assert.Equal(t, 3, lerr.Expected)
		assert.Equal(t, 2, lerr.Actual)
		assert.EqualError(t, err, "series length mismatch: expected 3, got 2")
	})
	t.Run("secondary", func(t *testing.T) {
		c := NewLineChart(600, 400).
			SetSeries([][]float64{{1, 2}}).
			SetLabels([]string{"A", "B"}).
			Configure(map[string]any{"nbYkeys2": 2})
		_, err := c.Render()
		require.ErrorIs(t, err, ErrConfiguration)
		assert.EqualError(t, err, "number of Y2 keys (2) cannot exceed total series count (1)")
	})
	t.Run("time-labels", func(t *testing.T) {
		c := NewLineChart(600, 400).
			SetSeries([][]float64{{1, 2}}).
			SetLabels([]string{"2024-01-01", "not a date"}).
			Configure(map[string]any{"timeChart": true})
		_, err := c.Render()
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("options", func(t *testing.T) {
		opts := DefaultOptions()
		opts.NumLines = 1
		c := NewLineChart(600, 400).
			SetSeries([][]float64{{1, 2}}).
			SetLabels([]string{"A", "B"}).
			SetOptions(opts)
		require.ErrorIs(t, c.Err(), ErrInvalidOptions)
		_, err := c.Render()
		assert.ErrorIs(t, err, ErrInvalidOptions)
	})
	t.Run("size", func(t *testing.T) {
		c := NewLineChart(0, 400)
		assert.ErrorIs(t, c.Err(), ErrInvalidOptions)
	})
	t.Run("event", func(t *testing.T) {
		c := NewLineChart(600, 400).AddEvent("soon")
		assert.ErrorIs(t, c.Err(), ErrParse)
	})
}

func TestRenderDeterministic(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}, {15, math.NaN(), 15, 25}}).
		SetLabels(testLabels).
		Configure(map[string]any{"fill": true, "trend": true, "nbYkeys2": 1, "unitY2": "%"}).
		AddObjectiveY1(20, "", 0).
		AddObjectiveY2(10, "green", 2)

	first, err := c.Render()
	require.NoError(t, err)
	second, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(first)), n)
	assert.Equal(t, first, buf.String())
}

func TestRenderDocument(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}}).
		SetLabels(testLabels)
	c.Title = "production"

	doc, err := c.Render()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "<svg"))
	assert.Contains(t, doc, `class="chart line"`)
	assert.Contains(t, doc, `id="serie-0"`)
	assert.Contains(t, doc, `<title>production</title>`)
	assert.Contains(t, doc, `stroke="#3B91C3"`)
	assert.Contains(t, doc, `>45</text>`)
}

func TestRenderEmbedded(t *testing.T) {
	c := NewBarChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}}).
		SetLabels(testLabels)

	img, err := c.RenderEmbedded()
	require.NoError(t, err)

	const prefix = `<img src="data:image/svg+xml;base64,`
	require.True(t, strings.HasPrefix(img, prefix))
	require.True(t, strings.HasSuffix(img, `"/>`))

	data := strings.TrimSuffix(strings.TrimPrefix(img, prefix), `"/>`)
	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, doc, string(raw))
}

func TestChartCopiesInput(t *testing.T) {
	series := [][]float64{{10, 45, 30, 25}}
	c := NewLineChart(600, 400).SetSeries(series).SetLabels(testLabels)
	series[0][0] = 1000

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.Equal(t, 10.0, dots[0][0].Value)
}

func TestLineChartMissing(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, math.NaN(), 30, 25}}).
		SetLabels(testLabels)

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.True(t, dots[0][1].Missing)
	assert.Equal(t, 253.33, dots[0][1].X)

	doc, err := c.Render()
	require.NoError(t, err)
	d := pathData(t, doc, "serie-0")
	assert.Equal(t, 2, strings.Count(d, "M"), "path should restart after the missing value")
	assert.True(t, strings.HasPrefix(d, "M120,260M386.67,20C"))
}

// pathData extracts the data of the first path found in the element with
// the given id.
func pathData(t *testing.T, doc, id string) string {
	t.Helper()
	ix := strings.Index(doc, `id="`+id+`"`)
	require.GreaterOrEqual(t, ix, 0, "element %s not found", id)
	doc = doc[ix:]
	ix = strings.Index(doc, "<path")
	require.GreaterOrEqual(t, ix, 0, "path not found in %s", id)
	doc = doc[ix:]
	ix = strings.Index(doc, ` d="`)
	require.GreaterOrEqual(t, ix, 0, "path without data in %s", id)
	doc = doc[ix+4:]
	return doc[:strings.Index(doc, `"`)]
}

func TestTimeChartDots(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30}}).
		SetLabels([]string{"2024-01-01 00:00", "2024-01-01 03:00", "2024-01-01 12:00"}).
		Configure(map[string]any{"timeChart": true}).
		AddEvent("2024-01-01 06:00")

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.Equal(t, 120.0, dots[0][0].X)
	assert.Equal(t, 220.0, dots[0][1].X)
	assert.Equal(t, 520.0, dots[0][2].X)

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, doc, `class="events"`)
	assert.Contains(t, doc, ">06:00</text>")
}

func TestStackedLineChart(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}, {15, 20, 15, 25}}).
		SetLabels(testLabels).
		Configure(map[string]any{"stacked": true, "fill": true})

	dots, err := c.Dots()
	require.NoError(t, err)
	// second serie is drawn on the cumulated values, max 65 snaps to 70
	assert.Equal(t, NewDot(120, 251.43, 15), dots[1][0])
	assert.Equal(t, NewDot(253.33, 45.71, 20), dots[1][1])
}

func TestPieChart(t *testing.T) {
	c := NewPieChart(440, 440).SetSeries([][]float64{{3}, {1}})

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, doc, `d="M220,220L220,20A200,200 0 1,0 420,220Z"`)
	assert.Contains(t, doc, `d="M220,220L420,220A200,200 0 0,0 220,20Z"`)
	assert.Contains(t, doc, `class="gaps"`)
	assert.NotContains(t, doc, `width="440.00"`)

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 2)
	assert.Equal(t, 3.0, dots[0][0].Value)
}

func TestPieChartFull(t *testing.T) {
	c := NewPieChart(440, 440).
		SetSeries([][]float64{{5}, {0}}).
		SetOptions(func() Options {
			opts := DefaultOptions()
			opts.Gap = 0
			return opts
		}())

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, doc, "<circle")
	assert.NotContains(t, doc, `class="gaps"`)
}

func TestPieChartInvalid(t *testing.T) {
	tests := []struct {
		Name   string
		Series [][]float64
	}{
		{Name: "negative", Series: [][]float64{{-1}, {2}}},
		{Name: "fraction", Series: [][]float64{{1, 1.5}}},
		{Name: "tuple", Series: [][]float64{{1, 0.5, 3}}},
		{Name: "zero", Series: [][]float64{{0}, {0}}},
		{Name: "empty", Series: nil},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := NewPieChart(400, 400).SetSeries(tt.Series).Render()
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestRadarChart(t *testing.T) {
	c := NewRadarChart(450, 450).
		SetSeries([][]float64{{10, 20, 30, 40}}).
		SetLabels(testLabels)

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 1)
	assert.Equal(t, 225.0, dots[0][0].X)
	assert.Equal(t, 175.0, dots[0][0].Y)
	assert.Equal(t, 325.0, dots[0][1].X)
	assert.Equal(t, 225.0, dots[0][1].Y)

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, doc, `class="spokes"`)
	assert.Contains(t, doc, `fill-opacity="0.25"`)
}

func TestStackedRadarChart(t *testing.T) {
	c := NewRadarChart(450, 450).
		SetSeries([][]float64{{10, 20, 30, 40}, {10, 10, 10, 0}}).
		SetLabels(testLabels).
		Configure(map[string]any{"stacked": true})

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.Equal(t, 10.0, dots[1][0].Value)
	assert.Equal(t, 225.0, dots[1][0].X)
	assert.Equal(t, 125.0, dots[1][0].Y)

	doc, err := c.Render()
	require.NoError(t, err)
	first := strings.Index(doc, `id="serie-0"`)
	second := strings.Index(doc, `id="serie-1"`)
	assert.Less(t, second, first, "stacked series are drawn from the last one")
}

func TestBubbleChart(t *testing.T) {
	c := NewBubbleChart(600, 400).SetSeries([][]float64{{1, 10, 5}, {3, 20, 8}})

	dots, err := c.Dots()
	require.NoError(t, err)
	require.Len(t, dots, 2)
	assert.Equal(t, NewDot(120, 260, 5), dots[0][0])
	assert.Equal(t, NewDot(520, 140, 8), dots[1][0])

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, doc, `class="serie bubble"`)
}

func TestBubbleChartInvalid(t *testing.T) {
	_, err := NewBubbleChart(600, 400).SetSeries([][]float64{{1, 10}}).Render()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewBubbleChart(600, 400).SetSeries([][]float64{{1, 10, -5}}).Render()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewBubbleChart(600, 400).
		SetSeries([][]float64{{1, 10, 5}}).
		SetLabels([]string{"garbage"}).
		Configure(map[string]any{"timeChart": true}).
		Render()
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindLine, KindBar, KindPie, KindRadar, KindBubble} {
		got, err := ParseKind(strings.ToUpper(k.String()))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("scatter")
	assert.Error(t, err)
}

func TestBarGeometry(t *testing.T) {
	series := [][]float64{
		{10, 45, 30, 25},
		{15, 20, 15, 25},
	}
	t.Run("grouped", func(t *testing.T) {
		c := NewBarChart(600, 400).SetSeries(series).SetLabels(testLabels)
		f, err := c.layout()
		require.NoError(t, err)

		bars := barRenderer{}.bars(f)
		require.Len(t, bars, 2)
		tests := []struct {
			Serie  int
			Label  int
			X      float64
			Y      float64
			Bottom float64
		}{
			{Serie: 0, Label: 0, X: 76.25, Y: 308, Bottom: 380},
			{Serie: 1, Label: 0, X: 125, Y: 272, Bottom: 380},
			{Serie: 0, Label: 1, X: 206.25, Y: 56, Bottom: 380},
			{Serie: 1, Label: 3, X: 515, Y: 200, Bottom: 380},
		}
		for _, tt := range tests {
			b := bars[tt.Serie][tt.Label]
			assert.Equal(t, tt.X, b.X, "serie %d, label %d", tt.Serie, tt.Label)
			assert.Equal(t, tt.Y, b.Y, "serie %d, label %d", tt.Serie, tt.Label)
			assert.Equal(t, tt.Bottom, b.Bottom, "serie %d, label %d", tt.Serie, tt.Label)
			assert.Equal(t, 45.75, b.Width)
		}
		assert.Equal(t, 108.0, bars[1][0].Height())
	})
	t.Run("stacked", func(t *testing.T) {
		c := NewBarChart(600, 400).
			SetSeries(series).
			SetLabels(testLabels).
			Configure(map[string]any{"stacked": true})
		f, err := c.layout()
		require.NoError(t, err)

		bars := barRenderer{}.bars(f)
		require.Len(t, bars, 2)
		for j := range testLabels {
			assert.Equal(t, bars[0][j].Y, bars[1][j].Bottom, "label %d", j)
			assert.Equal(t, bars[0][j].X, bars[1][j].X, "label %d", j)
		}
		b := bars[1][1]
		assert.Equal(t, 206.25, b.X)
		assert.Equal(t, 94.5, b.Width)
		assert.Equal(t, 45.71, b.Y)
		assert.Equal(t, 148.57, b.Bottom)
		assert.InDelta(t, 102.86, b.Height(), 1e-9)
		assert.Equal(t, 20.0, b.Value)
	})
	t.Run("stacked dual", func(t *testing.T) {
		c := NewBarChart(600, 400).
			SetSeries(append(series, []float64{5, 5, 5, 5})).
			SetLabels(testLabels).
			Configure(map[string]any{"stacked": true, "nbYkeys2": 1})
		c.SetLogger(slog.New(slog.DiscardHandler))
		f, err := c.layout()
		require.NoError(t, err)

		bars := barRenderer{}.bars(f)
		width := bars[0][0].Width
		assert.InDelta(t, barRatio*f.groupWidth()/2-barGap, width, 1e-9)
		assert.Equal(t, round2(bars[0][0].X+width+barGap), bars[2][0].X)
		assert.Equal(t, f.yscale[AxisSecondary].Scale(0), bars[2][0].Bottom)
	})
}

func TestChartPadding(t *testing.T) {
	series := [][]float64{
		{10, 45, 30, 25},
		{1000, 2000, 1500, 1200},
	}
	tests := []struct {
		Name    string
		Labels  []string
		Options map[string]any
		Want    Padding
	}{
		{
			Name:   "default",
			Labels: testLabels,
			Want:   Padding{Top: 20, Right: 20, Bottom: 20, Left: 60},
		},
		{
			Name:    "unit",
			Labels:  testLabels,
			Options: map[string]any{"unitY1": "kWh"},
			Want:    Padding{Top: 20, Right: 20, Bottom: 20, Left: 74},
		},
		{
			Name:    "dual",
			Labels:  testLabels,
			Options: map[string]any{"nbYkeys2": 1, "unitY2": "kWh"},
			Want:    Padding{Top: 20, Right: 74, Bottom: 20, Left: 74},
		},
		{
			Name:    "dual narrow",
			Labels:  testLabels,
			Options: map[string]any{"nbYkeys2": 1},
			Want:    Padding{Top: 20, Right: 60, Bottom: 20, Left: 60},
		},
		{
			Name:    "vertical labels",
			Labels:  []string{"January", "February", "March", "April"},
			Options: map[string]any{"labelAngle": -90},
			Want:    Padding{Top: 20, Right: 20, Bottom: 68, Left: 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			c := NewLineChart(600, 400).
				SetSeries(series).
				SetLabels(tt.Labels).
				Configure(tt.Options)
			f, err := c.layout()
			require.NoError(t, err)
			assert.InDelta(t, tt.Want.Top, f.Top, 1e-9)
			assert.InDelta(t, tt.Want.Right, f.Right, 1e-9)
			assert.InDelta(t, tt.Want.Bottom, f.Bottom, 1e-9)
			assert.InDelta(t, tt.Want.Left, f.Left, 1e-9)
		})
	}

	t.Run("rotated labels", func(t *testing.T) {
		c := NewLineChart(600, 400).
			SetSeries(series).
			SetLabels([]string{"January", "February", "March", "April"}).
			Configure(map[string]any{"labelAngle": 45})
		f, err := c.layout()
		require.NoError(t, err)
		assert.InDelta(t, 20+8*CharWidth*math.Sqrt2/2, f.Bottom, 1e-9)
		assert.InDelta(t, f.Height-f.Bottom, f.yscale[AxisPrimary].Scale(0), 0.005)
	})
}

func TestStraightLineChart(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{10, 45, 30, 25}}).
		SetLabels(testLabels).
		Configure(map[string]any{"lineType": CurveStraight})

	doc, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, "M120,308L253.33,56L386.67,164L520,200", pathData(t, doc, "serie-0"))
}

func TestNegativeLineChart(t *testing.T) {
	c := NewLineChart(600, 400).
		SetSeries([][]float64{{-7, 12}}).
		SetLabels([]string{"A", "B"})

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.Equal(t, []Dot{NewDot(120, 380, -7), NewDot(520, 69.09, 12)}, dots[0])

	doc, err := c.Render()
	require.NoError(t, err)
	assert.NotContains(t, doc, ">-7.50</text>", "grid levels below the minimum are not drawn")
	assert.Contains(t, doc, ">7.50</text>")
	assert.Contains(t, doc, ">15</text>")
}

func TestNegativeRadarChart(t *testing.T) {
	c := NewRadarChart(450, 450).
		SetSeries([][]float64{{-10, 20, 30, 40}}).
		SetLabels(testLabels)

	dots, err := c.Dots()
	require.NoError(t, err)
	assert.Equal(t, 291.67, dots[0][1].X)
	assert.Equal(t, 225.0, dots[0][1].Y)
	assert.Equal(t, 258.33, dots[0][0].Y)
}
