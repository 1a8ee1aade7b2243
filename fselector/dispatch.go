package fselector

import (
	"math"

	"github.com/pkg/errors"
)

// ColumnEntropy computes the entropy H(X) of a feature column and the joint
// entropy H(X, Y) of the column with the labels, both in bits.
//
// Continuous columns are first discretized with disc, or with
// DefaultDiscretizer if disc is nil. Categorical and sparse columns are
// counted as-is.
func ColumnEntropy(col Column, labels []int, disc Discretizer) (entropy, joint float64, err error) {
	if err := checkColumn(col, labels); err != nil {
		return 0, 0, err
	}
	if disc == nil {
		disc = DefaultDiscretizer
	}
	labelList := NewListSlice(labels)

	switch col := col.(type) {
	case ContinuousColumn:
		symbols := disc.Discretize(col, labels)
		if len(symbols) != len(col) {
			panic("discretizer returned wrong number of symbols")
		}
		entropy, joint = streamEntropies(NewListSlice(symbols), labelList)
	case IntColumn:
		entropy, joint = streamEntropies(NewListSlice(col), labelList)
	case StringColumn:
		entropy, joint = streamEntropies(NewListSlice(col), labelList)
	case SparseColumn:
		entropy, joint = sparseEntropies(col, labels)
	}
	return
}

func streamEntropies[S comparable](symbols List[S], labels List[int]) (entropy, joint float64) {
	return Entropy(symbols), FreqEntropy(Table2D(symbols, labels))
}

func checkColumn(col Column, labels []int) error {
	switch col.(type) {
	case ContinuousColumn, IntColumn, StringColumn, SparseColumn:
	default:
		return ErrUnsupportedColumnType
	}
	if col.Len() != len(labels) {
		return errors.Wrapf(ErrLengthMismatch, "%d values but %d labels", col.Len(), len(labels))
	}
	if s, ok := col.(SparseColumn); ok {
		return s.check()
	}
	return nil
}

// floatKey canonicalizes a float so that all NaNs compare equal, as do
// positive and negative zero.
func floatKey(x float64) uint64 {
	if math.IsNaN(x) {
		return math.Float64bits(math.NaN())
	} else if x == 0 {
		return 0
	}
	return math.Float64bits(x)
}
