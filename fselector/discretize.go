package fselector

import (
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// A Discretizer converts a continuous stream into bin ids, guided by a
// parallel label stream.
//
// A Discretizer is shared by all workers of a batch, so Discretize must not
// modify the receiver or its arguments. The result must have the same length
// as values. Empty or constant inputs produce a single bin of zeros.
type Discretizer interface {
	Discretize(values []float64, labels []int) []int
}

// DiscretizerFunc adapts an ordinary function to a Discretizer.
type DiscretizerFunc func(values []float64, labels []int) []int

func (d DiscretizerFunc) Discretize(values []float64, labels []int) []int {
	return d(values, labels)
}

// DefaultDiscretizer is used when no Discretizer is specified.
var DefaultDiscretizer Discretizer = MDL{}

// sortedRows returns the indices of all non-NaN values, sorted by value.
// Equal values are ordered by index.
func sortedRows(values []float64) []int {
	rows := make([]int, 0, len(values))
	for i, x := range values {
		if !math.IsNaN(x) {
			rows = append(rows, i)
		}
	}
	slices.SortFunc(rows, func(i, j int) int {
		if values[i] < values[j] {
			return -1
		} else if values[i] > values[j] {
			return 1
		}
		return i - j
	})
	return rows
}

// classCodes maps arbitrary labels to contiguous codes in order of first
// appearance, returning the codes and the number of classes.
func classCodes(labels []int) ([]int, int) {
	mapping := map[int]int{}
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := mapping[l]
		if !ok {
			code = len(mapping)
			mapping[l] = code
		}
		codes[i] = code
	}
	return codes, len(mapping)
}

// applyCutPoints assigns every value the number of cut points below it.
// NaN values get one more than the largest bin id, unless every value is
// NaN, in which case they all share bin zero.
func applyCutPoints(values []float64, cuts []float64) []int {
	missing := len(cuts) + 1
	if allNaN(values) {
		missing = 0
	}
	res := make([]int, len(values))
	for i, x := range values {
		if math.IsNaN(x) {
			res[i] = missing
		} else {
			res[i] = sort.SearchFloat64s(cuts, x)
		}
	}
	return res
}

func allNaN(values []float64) bool {
	for _, x := range values {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}
