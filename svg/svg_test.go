package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	tests := []struct {
		Name  string
		Build func(*Path)
		Want  string
	}{
		{
			Name: "line",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(10, 20))
				p.AbsLineTo(NewPos(30, 40))
			},
			Want: "M10,20L30,40",
		},
		{
			Name: "horizontal-vertical",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(0, 0))
				p.AbsHorizontalLine(50)
				p.AbsVerticalLine(30)
			},
			Want: "M0,0H50V30",
		},
		{
			Name: "closed",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(10, 10))
				p.AbsLineTo(NewPos(20, 10))
				p.AbsLineTo(NewPos(15, 20))
				p.ClosePath()
			},
			Want: "M10,10L20,10L15,20Z",
		},
		{
			Name: "cubic",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(0, 0))
				p.AbsCubicCurve(NewPos(50, 60), NewPos(10, 20), NewPos(30, 40))
			},
			Want: "M0,0C10,20 30,40 50,60",
		},
		{
			Name: "quadratic",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(0, 0))
				p.AbsQuadraticCurve(NewPos(50, 0), NewPos(25, 50))
			},
			Want: "M0,0Q25,50 50,0",
		},
		{
			Name: "arc",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(100, 100))
				p.AbsArcTo(NewPos(0, 100), 50, 50, 0, true, false)
			},
			Want: "M100,100A50,50 0 1,0 0,100",
		},
		{
			Name: "rounded",
			Build: func(p *Path) {
				p.AbsMoveTo(NewPos(1.005, -0.001))
				p.AbsLineTo(NewPos(253.333333, 56))
			},
			Want: "M1,0L253.33,56",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			p := NewPath()
			tt.Build(&p)
			assert.Equal(t, tt.Want, p.String())
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0", Format(-0.0001))
	assert.Equal(t, "12.5", Format(12.5))
	assert.Equal(t, "386.67", Format(386.666666))
	assert.Equal(t, "-3", Format(-3))
}

func TestRender(t *testing.T) {
	doc := NewSVG(600, 400, false)
	doc.OmitProlog = true

	g := NewGroup(WithID("serie-0"), WithClass("line"))
	li := NewLine(NewPos(0, 0), NewPos(10, 10))
	li.Stroke = NewStroke("#3B91C3", 1.5)
	g.Append(li)

	tx := NewText("  A & B ")
	tx.Pos = NewPos(5, 5)
	tx.Anchor = "middle"
	tx.Font = NewFont(12)
	g.Append(tx)

	ci := NewCircle(NewPos(4, 4), 4)
	ci.Fill = NewFill("red")
	ci.Fill.Opacity = 0.25
	g.Append(ci)

	doc.Append(g)
	doc.Append(nil)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	str := buf.String()
	assert.True(t, strings.HasPrefix(str, "<svg"))
	assert.Contains(t, str, `width="600.00"`)
	assert.Contains(t, str, `viewBox="0 0 600 400"`)
	assert.Contains(t, str, `id="serie-0"`)
	assert.Contains(t, str, `class="line"`)
	assert.Contains(t, str, `stroke="#3B91C3" stroke-width="1.5"`)
	assert.Contains(t, str, `text-anchor="middle"`)
	assert.Contains(t, str, `>A &amp; B</text>`)
	assert.Contains(t, str, `fill-opacity="0.25"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(str), "</svg>"))
}

func TestRenderResponsive(t *testing.T) {
	doc := NewSVG(500, 400, true)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	str := buf.String()
	assert.True(t, strings.HasPrefix(str, "<?xml"))
	assert.NotContains(t, str, `width="500.00"`)
	assert.Contains(t, str, `preserveAspectRatio="xMidYMid meet"`)
}
