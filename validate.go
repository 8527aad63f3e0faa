package charts

import (
	"math"
)

func (c *Chart) validate() error {
	return c.renderer.validate(c)
}

func checkLabels(c *Chart) error {
	if len(c.labels) == 0 {
		return emptyLabels()
	}
	return nil
}

func checkSeries(c *Chart) error {
	if len(c.series) == 0 {
		return emptySeries()
	}
	return nil
}

func checkLength(c *Chart) error {
	for i, s := range c.series {
		if len(s) != len(c.labels) {
			return LengthError{
				Serie:    i,
				Expected: len(c.labels),
				Actual:   len(s),
			}
		}
	}
	return nil
}

func checkSecondary(c *Chart) error {
	if n := c.options.SecondaryCount; n > len(c.series) {
		return tooManySecondary(n, len(c.series))
	}
	return nil
}

func checkTimeLabels(c *Chart) error {
	if !c.options.TimeChart {
		return nil
	}
	for _, str := range c.labels {
		if _, err := ParseTimestamp(str); err != nil {
			return err
		}
	}
	return nil
}

func checkTuples(c *Chart, min, max int) error {
	for i, s := range c.series {
		if len(s) < min || len(s) > max {
			if min == max {
				return invalidSerie(i, "expected exactly "+Format(float64(min))+" values")
			}
			return invalidSerie(i, "expected between "+Format(float64(min))+" and "+Format(float64(max))+" values")
		}
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalidSerie(i, "values should be finite")
			}
		}
	}
	return nil
}

func runChecks(c *Chart, checks ...func(*Chart) error) error {
	for _, check := range checks {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}
