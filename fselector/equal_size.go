package fselector

const DefaultEqualSizeBins = 10

// EqualSize is a Discretizer which splits the sorted values into bins of
// (approximately) equal frequency, ignoring the labels.
//
// Equal values always land in the same bin, so heavily tied data may
// produce fewer than Bins bins.
type EqualSize struct {
	// Bins is the target number of bins.
	// If less than 1, DefaultEqualSizeBins is used.
	Bins int
}

func (e EqualSize) Discretize(values []float64, labels []int) []int {
	if len(values) != len(labels) {
		panic("values and labels must have same length")
	}
	bins := e.Bins
	if bins < 1 {
		bins = DefaultEqualSizeBins
	}
	rows := sortedRows(values)

	var bounds []float64
	n := len(rows)
	for i := 1; i < bins; i++ {
		// Rows before rank i*n/bins go in a lower bin; the boundary is moved
		// forward to the end of any run of tied values.
		rank := i * n / bins
		if rank == 0 || rank >= n {
			continue
		}
		for rank < n && values[rows[rank]] == values[rows[rank-1]] {
			rank++
		}
		if rank >= n {
			break
		}
		b := values[rows[rank-1]]
		if len(bounds) == 0 || bounds[len(bounds)-1] < b {
			bounds = append(bounds, b)
		}
	}
	return applyCutPoints(values, bounds)
}
