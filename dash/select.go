package dash

import (
	"errors"
	"math"
	"strings"

	"github.com/spf13/cast"
)

var ErrIndex = errors.New("invalid index")

// Selector extracts the values of the series from one row of a table.
type Selector interface {
	Select([]string) ([]float64, error)
	Names([]string) []string
}

type combined struct {
	selectors []Selector
}

func Combined(xs ...Selector) Selector {
	return combined{
		selectors: xs,
	}
}

func (c combined) Names(header []string) []string {
	var list []string
	for _, s := range c.selectors {
		list = append(list, s.Names(header)...)
	}
	return list
}

func (c combined) Select(row []string) ([]float64, error) {
	var list []float64
	for _, s := range c.selectors {
		fs, err := s.Select(row)
		if err != nil {
			return nil, err
		}
		list = append(list, fs...)
	}
	return list, nil
}

type summer struct {
	index []int
}

// SelectSum adds the values of the given columns in a single serie.
// Missing values are ignored.
func SelectSum(list []int) Selector {
	return summer{
		index: list,
	}
}

func (s summer) Names(header []string) []string {
	return []string{strings.Join(pick(header, s.index), "+")}
}

func (s summer) Select(row []string) ([]float64, error) {
	var sum float64
	for _, i := range s.index {
		if i < 0 || i >= len(row) {
			return nil, ErrIndex
		}
		f, err := parseValue(row[i])
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) {
			continue
		}
		sum += f
	}
	return []float64{sum}, nil
}

type multi struct {
	index []int
}

func SelectSingle(i int) Selector {
	return SelectMulti([]int{i})
}

func SelectMulti(list []int) Selector {
	return multi{
		index: list,
	}
}

func (m multi) Names(header []string) []string {
	return pick(header, m.index)
}

func (m multi) Select(row []string) ([]float64, error) {
	list := make([]float64, 0, len(m.index))
	for _, i := range m.index {
		if i < 0 || i >= len(row) {
			return nil, ErrIndex
		}
		f, err := parseValue(row[i])
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, nil
}

// SelectFrom selects every column from the given index to the last column
// of the row.
func SelectFrom(first int) Selector {
	return rest{
		first: first,
	}
}

type rest struct {
	first int
}

func (r rest) Names(header []string) []string {
	if r.first >= len(header) {
		return nil
	}
	return header[r.first:]
}

func (r rest) Select(row []string) ([]float64, error) {
	if r.first > len(row) {
		return nil, ErrIndex
	}
	return SelectMulti(ExpandRange(r.first, len(row)-1)).Select(row)
}

func ExpandRange(fst, lst int) []int {
	var list []int
	for i := fst; i <= lst; i++ {
		list = append(list, i)
	}
	return list
}

func pick(header []string, index []int) []string {
	var list []string
	for _, i := range index {
		if i >= 0 && i < len(header) {
			list = append(list, header[i])
		}
	}
	return list
}

// parseValue converts a cell to a number. An empty cell is a missing
// value.
func parseValue(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return math.NaN(), nil
	}
	return cast.ToFloat64E(str)
}
