package fselector

import (
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Entropy computes the Shannon entropy, in bits, of a stream of discrete
// symbols.
func Entropy[S comparable](stream List[S]) float64 {
	return FreqEntropy(Table1D(stream))
}

// FreqEntropy computes the entropy, in bits, of the distribution described
// by a frequency table.
//
// For a table produced by Table2D, this is the joint entropy H(X, Y) of the
// flattened table, not the conditional entropy H(X|Y).
func FreqEntropy[K comparable](table map[K]int) float64 {
	counts := make([]int, 0, len(table))
	for _, c := range table {
		counts = append(counts, c)
	}
	return CountsEntropy(counts)
}

// CountsEntropy computes the entropy, in bits, of a distribution given by
// occurrence counts. Zero counts contribute nothing.
//
// The counts are summed in sorted order, so the result does not depend on
// the order in which they are passed. The slice may be reordered.
func CountsEntropy(counts []int) float64 {
	slices.Sort(counts)
	var total int
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	terms := make([]float64, 0, len(counts))
	for _, c := range counts {
		if c == 0 || c == total {
			continue
		}
		p := float64(c) / float64(total)
		terms = append(terms, -p*math.Log2(p))
	}
	return floats.Sum(terms)
}

// weightedEntropy computes n*H for a set of class counts, where n is the
// total count.
func weightedEntropy(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	var res float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= float64(c) * logOrZero(p)
	}
	return res
}

func logOrZero(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Log2(x)
}
