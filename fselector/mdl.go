package fselector

import "math"

// An MDLCriterion decides whether a candidate split pays for its own
// description length.
type MDLCriterion int

const (
	// FayyadIrani is the criterion from Fayyad and Irani (1993).
	FayyadIrani MDLCriterion = iota

	// Kononenko compares the coding cost of the class distribution before
	// and after the split, as in Kononenko (1995).
	Kononenko
)

// MDL is a Discretizer which recursively partitions the sorted values at the
// boundary that minimizes the class entropy of both halves, accepting a
// split only if it passes the minimum description length criterion.
//
// The zero value is ready to use and applies the Fayyad-Irani criterion.
type MDL struct {
	// Criterion selects the stopping rule.
	Criterion MDLCriterion

	// MinBinSize prevents splits which result in bins with fewer than
	// MinBinSize values. Values less than 1 are treated as 1.
	MinBinSize int

	// BetterEncoding counts only boundaries between distinct values when
	// encoding the chosen cut point, rather than every gap between rows.
	BetterEncoding bool
}

// Discretize assigns each value the index of its bin.
func (m MDL) Discretize(values []float64, labels []int) []int {
	return applyCutPoints(values, m.boundaries(values, labels))
}

// CutPoints returns the sorted thresholds between adjacent bins.
// A value v belongs to bin i when it lies between cut i-1 and cut i.
func (m MDL) CutPoints(values []float64, labels []int) []float64 {
	bounds := m.boundaries(values, labels)
	if len(bounds) == 0 {
		return nil
	}
	rows := sortedRows(values)
	res := make([]float64, len(bounds))
	for i, b := range bounds {
		// The next distinct value is the smallest one above the boundary.
		next := math.Inf(1)
		for _, r := range rows {
			if values[r] > b {
				next = values[r]
				break
			}
		}
		res[i] = midpoint(b, next)
	}
	return res
}

// midpoint returns a threshold t with lo <= t < hi, halfway between the two
// values when both are finite.
func midpoint(lo, hi float64) float64 {
	if math.IsInf(hi, 1) {
		return lo
	} else if math.IsInf(lo, -1) {
		return math.Nextafter(hi, math.Inf(-1))
	}
	return lo/2 + hi/2
}

// boundaries returns, for each accepted split, the largest value kept on the
// lower side.
func (m MDL) boundaries(values []float64, labels []int) []float64 {
	if len(values) != len(labels) {
		panic("values and labels must have same length")
	}
	rows := sortedRows(values)
	if len(rows) < 2 {
		return nil
	}
	codes, numClasses := classCodes(labels)
	s := &mdlSearch{
		MDL:        m,
		Values:     make([]float64, len(rows)),
		Classes:    make([]int, len(rows)),
		NumClasses: numClasses,
	}
	for i, r := range rows {
		s.Values[i] = values[r]
		s.Classes[i] = codes[r]
	}
	return s.Search(0, len(rows))
}

type mdlSearch struct {
	MDL
	Values     []float64
	Classes    []int
	NumClasses int
}

func (m *mdlSearch) minBinSize() int {
	if m.MinBinSize < 1 {
		return 1
	}
	return m.MinBinSize
}

// Search finds the boundaries within the sorted range [first, last).
func (m *mdlSearch) Search(first, last int) []float64 {
	n := last - first
	if n < 2*m.minBinSize() {
		return nil
	}

	prior := make([]int, m.NumClasses)
	for _, c := range m.Classes[first:last] {
		prior[c]++
	}
	split, ok := m.bestSplit(first, last, prior)
	if !ok || !m.accept(prior, split) {
		return nil
	}

	left := m.Search(first, split.Index)
	right := m.Search(split.Index, last)
	res := make([]float64, 0, len(left)+len(right)+1)
	res = append(res, left...)
	res = append(res, m.Values[split.Index-1])
	return append(res, right...)
}

type mdlSplit struct {
	// Index is the first row of the upper side.
	Index int

	// Entropy is the count-weighted entropy of both sides, in bits.
	Entropy float64

	Left, Right []int

	// NumCandidates is the number of boundaries between distinct values.
	NumCandidates int
}

func (m *mdlSearch) bestSplit(first, last int, prior []int) (mdlSplit, bool) {
	left := make([]int, m.NumClasses)
	right := append([]int{}, prior...)
	minSize := m.minBinSize()

	var best mdlSplit
	var found bool
	var numCandidates int
	lastIndex := first
	iterateBoundaries(m.Values[first:last], func(i int) {
		idx := first + i
		for lastIndex < idx {
			c := m.Classes[lastIndex]
			left[c]++
			right[c]--
			lastIndex++
		}
		numCandidates++
		leftCount := idx - first
		rightCount := last - idx
		if leftCount < minSize || rightCount < minSize {
			return
		}
		e := weightedEntropy(left, leftCount) + weightedEntropy(right, rightCount)
		if !found || e < best.Entropy {
			found = true
			best = mdlSplit{
				Index:   idx,
				Entropy: e,
				Left:    append([]int{}, left...),
				Right:   append([]int{}, right...),
			}
		}
	})
	best.NumCandidates = numCandidates
	return best, found
}

func (m *mdlSearch) accept(prior []int, split mdlSplit) bool {
	n := 0
	for _, c := range prior {
		n += c
	}
	priorEntropy := weightedEntropy(prior, n) / float64(n)
	gain := priorEntropy - split.Entropy/float64(n)
	if gain <= 0 {
		return false
	}

	numCuts := n - 1
	if m.BetterEncoding {
		numCuts = split.NumCandidates
	}

	switch m.Criterion {
	case Kononenko:
		return kononenkoAccept(prior, split.Left, split.Right, numCuts)
	default:
		return fayyadIraniAccept(prior, split.Left, split.Right, gain, numCuts)
	}
}

func fayyadIraniAccept(prior, left, right []int, gain float64, numCuts int) bool {
	n, k := countAndClasses(prior)
	n1, k1 := countAndClasses(left)
	n2, k2 := countAndClasses(right)
	h := weightedEntropy(prior, n) / float64(n)
	h1 := weightedEntropy(left, n1) / float64(n1)
	h2 := weightedEntropy(right, n2) / float64(n2)
	delta := log2Pow3Minus2(k) - (float64(k)*h - float64(k1)*h1 - float64(k2)*h2)
	return gain > (math.Log2(float64(numCuts))+delta)/float64(n)
}

func kononenkoAccept(prior, left, right []int, numCuts int) bool {
	n, k := countAndClasses(prior)
	before := log2Binomial(float64(n+k-1), float64(k-1)) + log2Multinomial(prior)
	after := math.Log2(float64(numCuts))
	for _, side := range [][]int{left, right} {
		sn, _ := countAndClasses(side)
		after += log2Binomial(float64(sn+k-1), float64(k-1)) + log2Multinomial(side)
	}
	return before > after
}

func countAndClasses(counts []int) (total, classes int) {
	for _, c := range counts {
		total += c
		if c > 0 {
			classes++
		}
	}
	return
}

// log2Pow3Minus2 computes log2(3^k - 2) without overflowing for large k.
func log2Pow3Minus2(k int) float64 {
	if k < 30 {
		return math.Log2(math.Pow(3, float64(k)) - 2)
	}
	return float64(k) * math.Log2(3)
}

func log2Binomial(n, k float64) float64 {
	return (lgamma(n+1) - lgamma(k+1) - lgamma(n-k+1)) / math.Ln2
}

func log2Multinomial(counts []int) float64 {
	var n int
	var res float64
	for _, c := range counts {
		n += c
		res -= lgamma(float64(c) + 1)
	}
	return (res + lgamma(float64(n)+1)) / math.Ln2
}

func lgamma(x float64) float64 {
	res, _ := math.Lgamma(x)
	return res
}

// iterateBoundaries calls f(i) for every index i > 0 where the sorted values
// change, i.e. every place a split may occur between distinct values.
func iterateBoundaries(sorted []float64, f func(int)) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			f(i)
		}
	}
}
