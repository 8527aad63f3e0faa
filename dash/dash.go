package dash

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charts "github.com/midbel/svgchart"
	"github.com/spf13/viper"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultType   = "line"
)

const (
	AxisY1 = "y1"
	AxisY2 = "y2"
)

type Objective struct {
	Value float64
	Color string
	Width float64
	Axis  string
}

// Definition describes a chart in a file. Data are given inline with
// labels and series or loaded from a source.
type Definition struct {
	Type       string
	Title      string
	Width      float64
	Height     float64
	Labels     []string
	Series     [][]float64
	Colors     []string
	Palette    string
	Options    map[string]any
	Objectives []Objective
	Events     []string
	Style      Style
	Source     *Source
	Output     string
	Embed      bool

	file   string
	logger *slog.Logger
}

func Default() Definition {
	return Definition{
		Type:   DefaultType,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Load reads a definition file. Its format is given by its extension.
// Unknown keys are rejected.
func Load(file string) (Definition, error) {
	v := newViper()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return Definition{}, fmt.Errorf("unable to read definition file: %w", err)
	}
	def, err := decode(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", file, err)
	}
	def.file = file
	if def.Source != nil && def.Source.Path != "" && !isRemote(def.Source.Path) && !filepath.IsAbs(def.Source.Path) {
		def.Source.Path = filepath.Join(filepath.Dir(file), def.Source.Path)
	}
	return def, nil
}

// LoadReader reads a definition in the given format: yaml, json or toml.
func LoadReader(r io.Reader, format string) (Definition, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return Definition{}, fmt.Errorf("unable to read definition: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	def := Default()
	v.SetDefault("type", def.Type)
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	return v
}

func decode(v *viper.Viper) (Definition, error) {
	var def Definition
	if err := v.UnmarshalExact(&def); err != nil {
		return def, fmt.Errorf("unable to decode definition: %w", err)
	}
	return def, nil
}

func (d Definition) SetLogger(logger *slog.Logger) Definition {
	d.logger = logger
	return d
}

// File gives the path of the file the definition has been loaded from.
func (d Definition) File() string {
	return d.file
}

// OutputPath gives the file where the chart should be written: the output
// of the definition, or the definition file with a svg extension.
func (d Definition) OutputPath() string {
	if d.Output != "" {
		if d.file != "" && !filepath.IsAbs(d.Output) {
			return filepath.Join(filepath.Dir(d.file), d.Output)
		}
		return d.Output
	}
	if d.file == "" {
		return ""
	}
	return strings.TrimSuffix(d.file, filepath.Ext(d.file)) + ".svg"
}

// Chart builds the chart described by the definition, loading its data
// from its source first if any.
func (d Definition) Chart(ctx context.Context) (*charts.Chart, error) {
	kind, err := charts.ParseKind(d.Type)
	if err != nil {
		return nil, err
	}
	if err := d.load(ctx); err != nil {
		return nil, err
	}
	palette, ok := charts.PaletteByName(d.Palette)
	if !ok {
		return nil, fmt.Errorf("%s: unknown palette", d.Palette)
	}
	c := charts.New(kind, d.Width, d.Height).
		SetLabels(d.Labels).
		SetSeries(d.Series).
		SetColors(palette).
		SetColors(d.Colors).
		Configure(d.Options)
	if d.logger != nil {
		c.SetLogger(d.logger)
	}
	c.Title = d.Title
	c.Style = d.Style.merge(c.Style)
	for _, o := range d.Objectives {
		switch strings.ToLower(o.Axis) {
		case "", AxisY1:
			c.AddObjectiveY1(o.Value, o.Color, o.Width)
		case AxisY2:
			c.AddObjectiveY2(o.Value, o.Color, o.Width)
		default:
			return nil, fmt.Errorf("%s: unknown axis for objective", o.Axis)
		}
	}
	for _, e := range d.Events {
		c.AddEvent(e)
	}
	return c, c.Err()
}

func (d *Definition) load(ctx context.Context) error {
	if d.Source == nil {
		return nil
	}
	src, err := d.Source.Open()
	if err != nil {
		return err
	}
	tab, err := src.Load(ctx)
	if err != nil {
		return err
	}
	if len(d.Labels) == 0 {
		d.Labels = tab.Labels
	}
	if len(d.Series) > 0 {
		return nil
	}
	switch strings.ToLower(d.Type) {
	case "pie", "bubble":
		d.Series = tab.Rows()
	default:
		d.Series = tab.Series
	}
	return nil
}

// Render writes the chart to w, as an img tag when the definition asks
// for an embedded chart.
func (d Definition) Render(ctx context.Context, w io.Writer) error {
	c, err := d.Chart(ctx)
	if err != nil {
		return err
	}
	ws := bufio.NewWriter(w)
	if d.Embed {
		str, err := c.RenderEmbedded()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(ws, str); err != nil {
			return err
		}
	} else if _, err := c.WriteTo(ws); err != nil {
		return err
	}
	return ws.Flush()
}

// RenderFile writes the chart to the given file, or to the output path of
// the definition when file is empty.
func (d Definition) RenderFile(ctx context.Context, file string) error {
	if file == "" {
		file = d.OutputPath()
	}
	if file == "" {
		return fmt.Errorf("no output file for chart")
	}
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := d.Render(ctx, w); err != nil {
		return err
	}
	return w.Close()
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
