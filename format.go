package charts

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

const (
	maxPrecision = 9
	// integer part of humanize.FormatFloat is an int64
	maxFloatInt = 1 << 63
)

// Format writes v with thousands separators, without decimals when v is
// an integer and with 2 decimals otherwise.
func Format(v float64) string {
	if v == math.Trunc(v) {
		return FormatPrecision(v, 0)
	}
	return FormatPrecision(v, 2)
}

func FormatPrecision(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	prec = min(max(prec, 0), maxPrecision)
	if math.Abs(v) >= maxFloatInt {
		str := humanize.BigCommaf(big.NewFloat(v))
		if prec > 0 {
			str += "." + strings.Repeat("0", prec)
		}
		return str
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", prec), v)
}

// FormatMaxPrecision is FormatPrecision without the trailing zeros.
func FormatMaxPrecision(v float64, prec int) string {
	str := FormatPrecision(v, prec)
	if !strings.Contains(str, ".") {
		return str
	}
	str = strings.TrimRight(str, "0")
	return strings.TrimSuffix(str, ".")
}

func IsColorDark(color string) bool {
	color = strings.TrimPrefix(strings.TrimSpace(color), "#")
	if color == "" || color == "0" {
		return false
	}
	if len(color) == 3 {
		color = string([]byte{color[0], color[0], color[1], color[1], color[2], color[2]})
	}
	if len(color) != 6 {
		return false
	}
	rgb, err := strconv.ParseUint(color, 16, 32)
	if err != nil {
		return false
	}
	var (
		r = float64((rgb >> 16) & 0xFF)
		g = float64((rgb >> 8) & 0xFF)
		b = float64(rgb & 0xFF)
	)
	return 0.2126*r+0.7152*g+0.0722*b < 128
}

// ParseTimestamp converts a date label to seconds since the Unix epoch.
// Labels without an explicit zone are read as UTC.
func ParseTimestamp(label string) (int64, error) {
	when, err := parseTime(label)
	if err != nil {
		return 0, err
	}
	return when.Unix(), nil
}

func parseTime(label string) (time.Time, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}, ParseError{Label: label}
	}
	when, err := dateparse.ParseIn(label, time.UTC)
	if err != nil {
		return time.Time{}, ParseError{Label: label, Err: err}
	}
	return when, nil
}
