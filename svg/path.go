package svg

import (
	"fmt"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
)

type Path struct {
	Fill      Fill
	Stroke    Stroke
	Rendering string
	Class     []string

	commands []string
}

func NewPath() Path {
	return Path{
		Fill: NewFill("none"),
	}
}

func (p *Path) AbsMoveTo(pos Pos) {
	p.push("M%s", coord(pos))
}

func (p *Path) AbsLineTo(pos Pos) {
	p.push("L%s", coord(pos))
}

func (p *Path) AbsHorizontalLine(x float64) {
	p.push("H%s", Format(x))
}

func (p *Path) AbsVerticalLine(y float64) {
	p.push("V%s", Format(y))
}

func (p *Path) AbsCubicCurve(pos, ctrl1, ctrl2 Pos) {
	p.push("C%s %s %s", coord(ctrl1), coord(ctrl2), coord(pos))
}

func (p *Path) AbsQuadraticCurve(pos, ctrl Pos) {
	p.push("Q%s %s", coord(ctrl), coord(pos))
}

func (p *Path) AbsArcTo(pos Pos, rx, ry, rot float64, large, sweep bool) {
	p.push("A%s,%s %s %d,%d %s", Format(rx), Format(ry), Format(rot), flag(large), flag(sweep), coord(pos))
}

func (p *Path) ClosePath() {
	p.commands = append(p.commands, "Z")
}

func (p *Path) Empty() bool {
	return len(p.commands) == 0
}

func (p *Path) String() string {
	return strings.Join(p.commands, "")
}

func (p Path) Render(canvas *svgo.SVG) {
	attrs := classes(p.Class)
	if p.Rendering != "" {
		attrs = append(attrs, attr("shape-rendering", p.Rendering))
	}
	attrs = append(attrs, p.Fill.attributes()...)
	attrs = append(attrs, p.Stroke.attributes()...)
	canvas.Path(p.String(), attrs...)
}

func (p *Path) push(pattern string, args ...any) {
	p.commands = append(p.commands, fmt.Sprintf(pattern, args...))
}

func coord(pos Pos) string {
	return Format(pos.X) + "," + Format(pos.Y)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
