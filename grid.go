package charts

import (
	"math"
)

const minSpan = 0.1

// GridLines computes evenly spaced "nice" levels covering [min, max]. The
// first level is lower or equal to min, the last one greater or equal to
// max and zero is one of the levels when the range crosses it.
func GridLines(min, max float64, lines int) []float64 {
	if lines < 2 {
		lines = 2
	}
	if max-min <= 0 {
		max = min + minSpan
	}
	var (
		span = max - min
		mag  = magnitude(span)
		unit = math.Pow(10, mag)
		gmin = math.Floor(min/unit) * unit
		gmax = math.Ceil(max/unit) * unit
		step = (gmax - gmin) / float64(lines-1)
	)
	if unit == 1 && step > 1 && math.Ceil(step) != step {
		step = math.Ceil(step)
		gmax = gmin + step*float64(lines-1)
	}
	if gmin < 0 && gmax > 0 {
		gmin = math.Floor(min/step) * step
		gmax = math.Ceil(max/step) * step
	}

	var (
		count  = int(math.Round((gmax-gmin)/step)) + 1
		levels = make([]float64, 0, count)
		digits = -1
	)
	if step < 1 {
		digits = 1 - int(math.Floor(math.Log10(step)))
	}
	for i := 0; i < count; i++ {
		v := gmin + float64(i)*step
		if digits >= 0 {
			v = roundTo(v, digits)
		}
		levels = append(levels, v)
	}
	if digits >= 0 {
		// rounding must not move the bounds inside [min, max]
		pow := math.Pow(10, float64(digits))
		if last := len(levels) - 1; levels[last] < max {
			levels[last] = math.Ceil((gmin+float64(last)*step)*pow) / pow
		}
		if levels[0] > min {
			levels[0] = math.Floor(gmin*pow) / pow
		}
	}
	return levels
}

// MaxGridValue gives the top level computed by GridLines.
func MaxGridValue(min, max float64, lines int) float64 {
	levels := GridLines(min, max, lines)
	return levels[len(levels)-1]
}

func magnitude(span float64) float64 {
	mag := math.Floor(math.Log10(span))
	if math.Pow(10, mag+1) <= span {
		mag++
	} else if math.Pow(10, mag) > span {
		mag--
	}
	return mag
}

func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	v = math.Round(v*pow) / pow
	if v == 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}
