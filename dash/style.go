package dash

import (
	charts "github.com/midbel/svgchart"
)

// Style overrides the default appearance of a chart. Empty fields keep
// the default values.
type Style struct {
	GridColor  string  `mapstructure:"grid_color"`
	GridWidth  float64 `mapstructure:"grid_width"`
	TextColor  string  `mapstructure:"text_color"`
	TextSize   float64 `mapstructure:"text_size"`
	FontFamily string  `mapstructure:"font_family"`
	EventColor string  `mapstructure:"event_color"`
	EventWidth float64 `mapstructure:"event_width"`
}

func (s Style) merge(g charts.Style) charts.Style {
	if s.GridColor != "" {
		g.Grid.Color = s.GridColor
	}
	if s.GridWidth > 0 {
		g.Grid.Width = s.GridWidth
	}
	if s.TextColor != "" {
		g.Text.Color = s.TextColor
	}
	if s.TextSize > 0 {
		g.Text.Size = s.TextSize
	}
	if s.FontFamily != "" {
		g.Text.Family = s.FontFamily
	}
	if s.EventColor != "" {
		g.Event.Color = s.EventColor
	}
	if s.EventWidth > 0 {
		g.Event.Width = s.EventWidth
	}
	return g
}
