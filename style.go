package charts

import (
	"github.com/midbel/svgchart/svg"
)

type Style struct {
	Grid struct {
		Color string
		Width float64
	}
	Text struct {
		Size   float64
		Color  string
		Family string
	}
	Radar struct {
		Spoke string
		Level string
		Text  string
	}
	Event struct {
		Color string
		Width float64
	}
}

func DefaultStyle() Style {
	var s Style
	s.Grid.Color = "#aaaaaa"
	s.Grid.Width = 0.5
	s.Text.Size = FontSize
	s.Text.Color = "#888888"
	s.Text.Family = "Sans-serif"
	s.Radar.Spoke = "#dddddd"
	s.Radar.Level = "#e5e5e5"
	s.Radar.Text = "#666666"
	s.Event.Color = "#273646"
	s.Event.Width = 1.5
	return s
}

func (s Style) label(str string, pos svg.Pos, anchor string) svg.Text {
	tx := svg.NewText(str)
	tx.Pos = pos
	tx.Font = svg.NewFont(s.Text.Size)
	tx.Font.Family = s.Text.Family
	tx.Anchor = anchor
	return tx
}

func (s Style) axisLabel(str string, pos svg.Pos, anchor string) svg.Text {
	tx := s.label(str, pos, anchor)
	tx.Baseline = "middle"
	tx.Fill = svg.NewFill(s.Text.Color)
	return tx
}

func (s Style) gridLine(from, to svg.Pos) svg.Line {
	li := svg.NewLine(from, to)
	li.Stroke = svg.NewStroke(s.Grid.Color, s.Grid.Width)
	return li
}
