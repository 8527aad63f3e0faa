package svg

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
)

const decimals = 2

type Element interface {
	Render(*svgo.SVG)
}

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

type Dim struct {
	W float64
	H float64
}

func NewDim(w, h float64) Dim {
	return Dim{
		W: w,
		H: h,
	}
}

type Stroke struct {
	Color   string
	Width   float64
	Opacity float64
}

func NewStroke(color string, width float64) Stroke {
	return Stroke{
		Color:   color,
		Width:   width,
		Opacity: 1,
	}
}

func (s Stroke) attributes() []string {
	if s.Color == "" {
		return nil
	}
	list := []string{
		attr("stroke", s.Color),
		attr("stroke-width", Format(s.Width)),
	}
	if s.Opacity != 1 {
		list = append(list, attr("stroke-opacity", Format(s.Opacity)))
	}
	return list
}

type Fill struct {
	Color   string
	Opacity float64
}

func NewFill(color string) Fill {
	return Fill{
		Color:   color,
		Opacity: 1,
	}
}

func (f Fill) attributes() []string {
	if f.Color == "" {
		return nil
	}
	list := []string{attr("fill", f.Color)}
	if f.Opacity != 1 {
		list = append(list, attr("fill-opacity", Format(f.Opacity)))
	}
	return list
}

type Font struct {
	Size   float64
	Family string
}

func NewFont(size float64) Font {
	return Font{
		Size:   size,
		Family: "Sans-serif",
	}
}

func (f Font) attributes() []string {
	var list []string
	if f.Family != "" {
		list = append(list, attr("font-family", f.Family))
	}
	if f.Size > 0 {
		list = append(list, attr("font-size", Format(f.Size)))
	}
	return list
}

type Transform struct {
	Rotate float64
	RX     float64
	RY     float64
}

func Rotate(angle, x, y float64) Transform {
	return Transform{
		Rotate: angle,
		RX:     x,
		RY:     y,
	}
}

func (t Transform) attributes() []string {
	if t.Rotate == 0 {
		return nil
	}
	return []string{attr("transform", fmt.Sprintf("rotate(%s %s %s)", Format(t.Rotate), Format(t.RX), Format(t.RY)))}
}

type node struct {
	Id        string
	Class     []string
	Transform Transform
}

func (n node) attributes() []string {
	var list []string
	if n.Id != "" {
		list = append(list, attr("id", n.Id))
	}
	if len(n.Class) > 0 {
		list = append(list, attr("class", strings.Join(n.Class, " ")))
	}
	return append(list, n.Transform.attributes()...)
}

type Option func(*node)

func WithID(id string) Option {
	return func(n *node) {
		n.Id = id
	}
}

func WithClass(class ...string) Option {
	return func(n *node) {
		n.Class = append(n.Class, class...)
	}
}

type SVG struct {
	node
	Dim
	Responsive bool
	OmitProlog bool
	Title      string

	children []Element
}

func NewSVG(width, height float64, responsive bool, options ...Option) SVG {
	s := SVG{
		Dim:        NewDim(width, height),
		Responsive: responsive,
	}
	for _, o := range options {
		o(&s.node)
	}
	return s
}

func (s *SVG) Append(el Element) {
	if el == nil {
		return
	}
	s.children = append(s.children, el)
}

func (s *SVG) Len() int {
	return len(s.children)
}

func (s *SVG) Render(w io.Writer) error {
	var (
		buf    bytes.Buffer
		canvas = svgo.New(&buf)
		attrs  = []string{
			fmt.Sprintf(`viewBox="0 0 %s %s"`, Format(s.W), Format(s.H)),
			attr("preserveAspectRatio", "xMidYMid meet"),
		}
	)
	canvas.Decimals = decimals
	attrs = append(attrs, s.node.attributes()...)
	if s.Responsive {
		canvas.Startraw(attrs...)
	} else {
		canvas.Start(s.W, s.H, attrs...)
	}
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	for _, c := range s.children {
		c.Render(canvas)
	}
	canvas.End()

	doc := buf.Bytes()
	if s.OmitProlog {
		if ix := bytes.Index(doc, []byte("<svg")); ix > 0 {
			doc = doc[ix:]
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(doc); err != nil {
		return err
	}
	return bw.Flush()
}

type Group struct {
	node
	Fill   Fill
	Stroke Stroke

	children []Element
}

func NewGroup(options ...Option) Group {
	var g Group
	for _, o := range options {
		o(&g.node)
	}
	return g
}

func (g *Group) Append(el Element) {
	if el == nil {
		return
	}
	g.children = append(g.children, el)
}

func (g Group) Len() int {
	return len(g.children)
}

func (g Group) Render(canvas *svgo.SVG) {
	attrs := g.node.attributes()
	attrs = append(attrs, g.Fill.attributes()...)
	attrs = append(attrs, g.Stroke.attributes()...)
	canvas.Group(attrs...)
	for _, c := range g.children {
		c.Render(canvas)
	}
	canvas.Gend()
}

type Line struct {
	Start  Pos
	End    Pos
	Stroke Stroke
	Class  []string
}

func NewLine(start, end Pos) Line {
	return Line{
		Start: start,
		End:   end,
	}
}

func (i Line) Render(canvas *svgo.SVG) {
	attrs := classes(i.Class)
	attrs = append(attrs, i.Stroke.attributes()...)
	canvas.Line(i.Start.X, i.Start.Y, i.End.X, i.End.Y, attrs...)
}

type Rect struct {
	Pos
	Dim
	Fill      Fill
	Stroke    Stroke
	Transform Transform
	Class     []string
}

func NewRect(pos Pos, dim Dim) Rect {
	return Rect{
		Pos: pos,
		Dim: dim,
	}
}

func (r Rect) Render(canvas *svgo.SVG) {
	attrs := classes(r.Class)
	attrs = append(attrs, r.Fill.attributes()...)
	attrs = append(attrs, r.Stroke.attributes()...)
	attrs = append(attrs, r.Transform.attributes()...)
	canvas.Rect(r.X, r.Y, r.W, r.H, attrs...)
}

type Circle struct {
	Pos
	Radius float64
	Fill   Fill
	Stroke Stroke
	Class  []string
}

func NewCircle(pos Pos, radius float64) Circle {
	return Circle{
		Pos:    pos,
		Radius: radius,
	}
}

func (c Circle) Render(canvas *svgo.SVG) {
	attrs := classes(c.Class)
	attrs = append(attrs, c.Fill.attributes()...)
	attrs = append(attrs, c.Stroke.attributes()...)
	canvas.Circle(c.X, c.Y, c.Radius, attrs...)
}

type Text struct {
	Pos
	Literal   string
	Font      Font
	Fill      Fill
	Anchor    string
	Baseline  string
	Transform Transform
	Class     []string
}

func NewText(str string) Text {
	return Text{
		Literal: strings.TrimSpace(str),
	}
}

func (t Text) Render(canvas *svgo.SVG) {
	attrs := classes(t.Class)
	attrs = append(attrs, t.Font.attributes()...)
	if t.Anchor != "" {
		attrs = append(attrs, attr("text-anchor", t.Anchor))
	}
	if t.Baseline != "" {
		attrs = append(attrs, attr("alignment-baseline", t.Baseline))
	}
	attrs = append(attrs, t.Fill.attributes()...)
	attrs = append(attrs, t.Transform.attributes()...)
	canvas.Text(t.X, t.Y, t.Literal, attrs...)
}

// Format writes v with at most 2 decimals and without trailing zeros.
func Format(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func classes(class []string) []string {
	if len(class) == 0 {
		return nil
	}
	return []string{attr("class", strings.Join(class, " "))}
}
