package charts

// Serie is a list of values sharing the labels of a chart. NaN marks a
// missing value.
type Serie []float64

// Extent gives the range covered by the values of the serie. The second
// value is false when the serie has no value.
func (s Serie) Extent() (Range, bool) {
	var (
		rg Range
		ok bool
	)
	for _, v := range s {
		if isMissing(v) {
			continue
		}
		if !ok {
			rg, ok = NewRange(v, v), true
			continue
		}
		rg = rg.extend(v)
	}
	return rg, ok
}

// stackedSums adds the values of every serie found at the same index.
func stackedSums(series [][]float64) []float64 {
	var width int
	for _, s := range series {
		width = max(width, len(s))
	}
	sums := make([]float64, width)
	for _, s := range series {
		for i, v := range s {
			if isMissing(v) {
				continue
			}
			sums[i] += v
		}
	}
	return sums
}

func splitBySide(c *Chart) [2][][]float64 {
	var groups [2][][]float64
	for i, s := range c.series {
		side := c.side(i)
		groups[side] = append(groups[side], s)
	}
	return groups
}
