package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/midbel/svgchart/svg"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

type Kind int

const (
	KindLine Kind = iota
	KindBar
	KindPie
	KindRadar
	KindBubble
)

func ParseKind(str string) (Kind, error) {
	switch strings.ToLower(str) {
	case "line":
		return KindLine, nil
	case "bar":
		return KindBar, nil
	case "pie":
		return KindPie, nil
	case "radar":
		return KindRadar, nil
	case "bubble":
		return KindBubble, nil
	default:
		return 0, fmt.Errorf("%s: unknown chart type", str)
	}
}

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	case KindPie:
		return "pie"
	case KindRadar:
		return "radar"
	case KindBubble:
		return "bubble"
	default:
		return "unknown"
	}
}

// Chart accumulates the data and the configuration of a chart. Every
// output method performs a complete layout pass from that state.
//
// A Chart is not safe for concurrent use.
type Chart struct {
	Kind   Kind
	Title  string
	Width  float64
	Height float64
	Style

	series     [][]float64
	labels     []string
	colors     Palette
	options    Options
	objectives [2][]Objective
	events     []string
	logger     *slog.Logger
	err        error

	renderer renderer
}

func New(kind Kind, width, height float64) *Chart {
	c := Chart{
		Kind:    kind,
		Width:   width,
		Height:  height,
		Style:   DefaultStyle(),
		colors:  Simca,
		options: DefaultOptions(),
	}
	switch kind {
	case KindLine:
		c.renderer = lineRenderer{}
	case KindBar:
		c.renderer = barRenderer{}
	case KindPie:
		c.renderer = pieRenderer{}
		c.options.Responsive = true
	case KindRadar:
		c.renderer = radarRenderer{}
		c.options.Responsive = true
	case KindBubble:
		c.renderer = bubbleRenderer{}
	default:
		c.err = fmt.Errorf("%d: unknown chart type", kind)
	}
	if width <= 0 || height <= 0 {
		c.setErr(OptionError{Option: "size", Value: fmt.Sprintf("%gx%g", width, height), Reason: "dimensions should be positive"})
	}
	return &c
}

func NewLineChart(width, height float64) *Chart {
	return New(KindLine, width, height)
}

func NewBarChart(width, height float64) *Chart {
	return New(KindBar, width, height)
}

func NewPieChart(width, height float64) *Chart {
	return New(KindPie, width, height)
}

func NewRadarChart(width, height float64) *Chart {
	return New(KindRadar, width, height)
}

func NewBubbleChart(width, height float64) *Chart {
	return New(KindBubble, width, height)
}

func (c *Chart) SetSeries(series [][]float64) *Chart {
	c.series = make([][]float64, len(series))
	for i := range series {
		c.series[i] = append([]float64(nil), series[i]...)
	}
	return c
}

func (c *Chart) SetLabels(labels []string) *Chart {
	c.labels = append([]string(nil), labels...)
	return c
}

// SetColors replaces the palette used for the series. An empty list keeps
// the current palette.
func (c *Chart) SetColors(colors []string) *Chart {
	if len(colors) == 0 {
		return c
	}
	c.colors = append(Palette(nil), colors...)
	return c
}

func (c *Chart) SetOptions(opts Options) *Chart {
	if err := opts.Validate(); err != nil {
		c.setErr(err)
		return c
	}
	c.options = opts
	return c
}

// Configure applies a set of options given by name, see Options.Set.
func (c *Chart) Configure(values map[string]any) *Chart {
	opts := c.options
	if err := opts.Merge(values); err != nil {
		c.setErr(err)
		return c
	}
	c.options = opts
	return c
}

func (c *Chart) AddObjectiveY1(value float64, color string, width float64) *Chart {
	return c.addObjective(AxisPrimary, NewObjective(value, color, width))
}

func (c *Chart) AddObjectiveY2(value float64, color string, width float64) *Chart {
	return c.addObjective(AxisSecondary, NewObjective(value, color, width))
}

func (c *Chart) addObjective(side AxisSide, obj Objective) *Chart {
	c.objectives[side] = append(c.objectives[side], obj)
	return c
}

// AddEvent marks a date on a time chart with a vertical line.
func (c *Chart) AddEvent(when string) *Chart {
	if _, err := ParseTimestamp(when); err != nil {
		c.setErr(err)
		return c
	}
	c.events = append(c.events, when)
	return c
}

func (c *Chart) SetLogger(logger *slog.Logger) *Chart {
	c.logger = logger
	return c
}

func (c *Chart) Options() Options {
	return c.options
}

// Err reports the first error recorded by a configuration call.
func (c *Chart) Err() error {
	return c.err
}

// Warnings lists the partially supported settings of the current
// configuration.
func (c *Chart) Warnings() []error {
	var list []error
	cartesian := c.Kind == KindLine || c.Kind == KindBar
	if cartesian && c.options.Stacked && c.dual() {
		list = append(list, stackedDualAxis())
	}
	return list
}

func (c *Chart) Render() (string, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderEmbedded returns the document as an img tag with a base64 data
// URI.
func (c *Chart) RenderEmbedded() (string, error) {
	doc, err := c.Render()
	if err != nil {
		return "", err
	}
	var str strings.Builder
	str.WriteString(`<img src="data:image/svg+xml;base64,`)
	str.WriteString(base64.StdEncoding.EncodeToString([]byte(doc)))
	str.WriteString(`"/>`)
	return str.String(), nil
}

func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	f, err := c.layout()
	if err != nil {
		return 0, err
	}
	doc := svg.NewSVG(c.Width, c.Height, c.options.Responsive, svg.WithClass("chart", c.Kind.String()))
	doc.OmitProlog = true
	doc.Title = c.Title
	for _, el := range c.renderer.draw(f) {
		doc.Append(el)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return 0, err
	}
	c.log().Debug("chart rendered", "kind", c.Kind, "elements", doc.Len(), "bytes", buf.Len())
	return buf.WriteTo(w)
}

// Dots gives the projected coordinates of every data point, one list per
// serie.
func (c *Chart) Dots() ([][]Dot, error) {
	f, err := c.layout()
	if err != nil {
		return nil, err
	}
	return f.dots, nil
}

func (c *Chart) layout() (*frame, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.validate(); err != nil {
		c.log().Debug("chart validation failed", "kind", c.Kind, "err", err)
		return nil, err
	}
	for _, w := range c.Warnings() {
		if c.options.Strict {
			return nil, w
		}
		c.log().Warn("degraded chart configuration", "kind", c.Kind, "reason", w)
	}
	f, err := c.renderer.layout(c)
	if err != nil {
		return nil, err
	}
	c.log().Debug("chart layout computed", "kind", c.Kind, "series", len(c.series), "options", c.options.String())
	return f, nil
}

func (c *Chart) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

func (c *Chart) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Chart) color(i int) string {
	return c.colors.Color(i)
}

func (c *Chart) secondary(serie int) bool {
	return serie >= len(c.series)-c.options.SecondaryCount
}

func (c *Chart) side(serie int) AxisSide {
	if c.secondary(serie) {
		return AxisSecondary
	}
	return AxisPrimary
}

func (c *Chart) dual() bool {
	return c.options.SecondaryCount > 0
}
