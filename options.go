package charts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

const (
	CurveSmooth   = "curved"
	CurveStraight = "straight"
)

const (
	MarkerCircle  = "circle"
	MarkerSquare  = "square"
	MarkerDiamond = "diamond"
	MarkerNone    = "none"
)

type Options struct {
	// number of horizontal grid lines
	NumLines int
	// accumulate series at each label position
	Stacked bool
	// labels are dates and the X axis is a time axis
	TimeChart bool
	// number of series, counted from the end, drawn on the right axis
	SecondaryCount int
	ShowYAxis      bool
	UnitY1         string
	UnitY2         string
	// opacity of filled areas
	FillOpacity float64
	// rotation of the labels of the X axis, in degrees
	LabelAngle float64
	// emit a viewBox only, the document scales to its container
	Responsive bool
	// distance between the vertical axis and the first/last point
	Margin float64
	Curve  string
	Marker string
	Trend  bool
	Fill   bool
	// angle of the first axis of a radar chart, in degrees
	StartAngle float64
	// width of the lines separating pie slices
	Gap float64
	// reject configurations that are only partially supported
	Strict bool
}

func DefaultOptions() Options {
	return Options{
		NumLines:    5,
		FillOpacity: 0.25,
		Margin:      60,
		Curve:       CurveSmooth,
		Marker:      MarkerCircle,
		StartAngle:  270,
		Gap:         3,
	}
}

func (o Options) Validate() error {
	if o.NumLines < 2 {
		return OptionError{Option: "numLines", Value: o.NumLines, Reason: "at least 2 grid lines are required"}
	}
	if o.FillOpacity < 0 || o.FillOpacity > 1 {
		return OptionError{Option: "fillOpacity", Value: o.FillOpacity, Reason: "value should be between 0 and 1"}
	}
	if o.LabelAngle < -90 || o.LabelAngle > 90 {
		return OptionError{Option: "labelAngle", Value: o.LabelAngle, Reason: "value should be between -90 and 90"}
	}
	if o.SecondaryCount < 0 {
		return OptionError{Option: "nbYkeys2", Value: o.SecondaryCount, Reason: "value cannot be negative"}
	}
	if o.Margin < 0 {
		return OptionError{Option: "margin", Value: o.Margin, Reason: "value cannot be negative"}
	}
	if o.Gap < 0 {
		return OptionError{Option: "gap", Value: o.Gap, Reason: "value cannot be negative"}
	}
	switch o.Curve {
	case CurveSmooth, CurveStraight:
	default:
		return OptionError{Option: "lineType", Value: o.Curve, Reason: "expected curved or straight"}
	}
	switch o.Marker {
	case MarkerCircle, MarkerSquare, MarkerDiamond, MarkerNone:
	default:
		return OptionError{Option: "marker", Value: o.Marker, Reason: "unknown marker"}
	}
	return nil
}

type setter func(*Options, any) error

var setters = map[string]setter{
	"numLines": func(o *Options, v any) (err error) {
		o.NumLines, err = cast.ToIntE(v)
		return
	},
	"stacked": func(o *Options, v any) (err error) {
		o.Stacked, err = cast.ToBoolE(v)
		return
	},
	"timeChart": func(o *Options, v any) (err error) {
		o.TimeChart, err = cast.ToBoolE(v)
		return
	},
	"nbYkeys2": func(o *Options, v any) (err error) {
		o.SecondaryCount, err = cast.ToIntE(v)
		return
	},
	"showYAxis": func(o *Options, v any) (err error) {
		o.ShowYAxis, err = cast.ToBoolE(v)
		return
	},
	"unitY1": func(o *Options, v any) (err error) {
		o.UnitY1, err = cast.ToStringE(v)
		return
	},
	"unitY2": func(o *Options, v any) (err error) {
		o.UnitY2, err = cast.ToStringE(v)
		return
	},
	"fillOpacity": func(o *Options, v any) (err error) {
		o.FillOpacity, err = cast.ToFloat64E(v)
		return
	},
	"labelAngle": func(o *Options, v any) (err error) {
		o.LabelAngle, err = cast.ToFloat64E(v)
		return
	},
	"responsive": func(o *Options, v any) (err error) {
		o.Responsive, err = cast.ToBoolE(v)
		return
	},
	"margin": func(o *Options, v any) (err error) {
		o.Margin, err = cast.ToFloat64E(v)
		return
	},
	"lineType": func(o *Options, v any) (err error) {
		o.Curve, err = cast.ToStringE(v)
		return
	},
	"marker": func(o *Options, v any) (err error) {
		o.Marker, err = cast.ToStringE(v)
		return
	},
	"trend": func(o *Options, v any) (err error) {
		o.Trend, err = cast.ToBoolE(v)
		return
	},
	"fill": func(o *Options, v any) (err error) {
		o.Fill, err = cast.ToBoolE(v)
		return
	},
	"startAngle": func(o *Options, v any) (err error) {
		o.StartAngle, err = cast.ToFloat64E(v)
		return
	},
	"gap": func(o *Options, v any) (err error) {
		o.Gap, err = cast.ToFloat64E(v)
		return
	},
	"strict": func(o *Options, v any) (err error) {
		o.Strict, err = cast.ToBoolE(v)
		return
	},
}

// Set assigns the option identified by key. Keys are matched without
// regard to case. The resulting options are validated.
func (o *Options) Set(key string, value any) error {
	set, ok := lookupSetter(key)
	if !ok {
		return OptionError{Option: key, Reason: "option not recognized"}
	}
	x := *o
	if err := set(&x, value); err != nil {
		return OptionError{Option: key, Value: value, Reason: err.Error()}
	}
	if err := x.Validate(); err != nil {
		return err
	}
	*o = x
	return nil
}

// Merge applies all the given values with Set, in a stable order.
func (o *Options) Merge(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := o.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func OptionKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupSetter(key string) (setter, bool) {
	if set, ok := setters[key]; ok {
		return set, ok
	}
	for k, set := range setters {
		if strings.EqualFold(k, key) {
			return set, true
		}
	}
	return nil, false
}

func (o Options) String() string {
	return fmt.Sprintf("lines=%d stacked=%t time=%t secondary=%d curve=%s", o.NumLines, o.Stacked, o.TimeChart, o.SecondaryCount, o.Curve)
}
