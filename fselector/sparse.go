package fselector

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CSC is a compressed sparse column matrix.
//
// The stored entries of column j are RowIdx[ColPtr[j]:ColPtr[j+1]] and
// Values[ColPtr[j]:ColPtr[j+1]]. Every other entry is zero.
//
// CSC implements mat.Matrix.
type CSC struct {
	Rows   int
	Cols   int
	ColPtr []int
	RowIdx []int
	Values []float64
}

// NewCSC creates a matrix from compressed column data, checking that the
// data is well formed. Row indices within a column must be strictly
// increasing.
func NewCSC(rows, cols int, colPtr, rowIdx []int, values []float64) (*CSC, error) {
	res := &CSC{
		Rows:   rows,
		Cols:   cols,
		ColPtr: colPtr,
		RowIdx: rowIdx,
		Values: values,
	}
	if err := res.checkLayout(); err != nil {
		return nil, errors.Wrap(err, "new CSC")
	}
	for j := 0; j < cols; j++ {
		if err := res.Column(j).check(); err != nil {
			return nil, errors.Wrapf(err, "new CSC: column %d", j)
		}
	}
	return res, nil
}

// checkLayout checks the dimensions and column pointers, so that every
// column can be sliced out safely.
func (c *CSC) checkLayout() error {
	if c.Rows < 0 || c.Cols < 0 {
		return errors.New("negative dimensions")
	}
	if len(c.ColPtr) != c.Cols+1 || c.ColPtr[0] != 0 {
		return errors.New("column pointers must have cols+1 entries starting at 0")
	}
	if len(c.RowIdx) != len(c.Values) || c.ColPtr[c.Cols] != len(c.Values) {
		return errors.New("mismatched number of stored entries")
	}
	for j := 0; j < c.Cols; j++ {
		if c.ColPtr[j] > c.ColPtr[j+1] {
			return errors.Errorf("column pointers decrease at column %d", j)
		}
	}
	return nil
}

// NewCSCFromMatrix stores the nonzero entries of m.
func NewCSCFromMatrix(m mat.Matrix) *CSC {
	rows, cols := m.Dims()
	res := &CSC{
		Rows:   rows,
		Cols:   cols,
		ColPtr: make([]int, 1, cols+1),
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if x := m.At(i, j); x != 0 {
				res.RowIdx = append(res.RowIdx, i)
				res.Values = append(res.Values, x)
			}
		}
		res.ColPtr = append(res.ColPtr, len(res.Values))
	}
	return res
}

// Column returns a view of the j-th column.
func (c *CSC) Column(j int) SparseColumn {
	if j < 0 || j >= c.Cols {
		panic(mat.ErrColAccess)
	}
	start, end := c.ColPtr[j], c.ColPtr[j+1]
	return SparseColumn{
		Rows:   c.Rows,
		RowIdx: c.RowIdx[start:end],
		Values: c.Values[start:end],
	}
}

// check returns an error unless every stored row index is in range and the
// indices are strictly increasing.
func (s SparseColumn) check() error {
	if len(s.RowIdx) != len(s.Values) {
		return errors.Wrapf(ErrLengthMismatch, "%d row indices but %d values",
			len(s.RowIdx), len(s.Values))
	}
	for k, row := range s.RowIdx {
		if row < 0 || row >= s.Rows {
			return errors.Wrapf(ErrUnsupportedColumnType, "row %d out of range [0, %d)", row, s.Rows)
		}
		if k > 0 && s.RowIdx[k-1] >= row {
			return errors.Wrapf(ErrUnsupportedColumnType, "row %d stored out of order", row)
		}
	}
	return nil
}

func (c *CSC) Dims() (r, cols int) {
	return c.Rows, c.Cols
}

func (c *CSC) At(i, j int) float64 {
	if i < 0 || i >= c.Rows {
		panic(mat.ErrRowAccess)
	}
	col := c.Column(j)
	for k, row := range col.RowIdx {
		if row == i {
			return col.Values[k]
		} else if row > i {
			break
		}
	}
	return 0
}

func (c *CSC) T() mat.Matrix {
	return mat.Transpose{Matrix: c}
}

// SparseInformationGain computes the entropy and joint entropy of every
// column of a sparse matrix, treating each distinct value as a category.
// No discretization is applied, and absent entries count as zeros.
//
// The work is done on a single goroutine. The matrix is checked before any
// column is counted, as with NewCSC.
func SparseInformationGain(m *CSC, labels []int) (*Result, error) {
	if m == nil {
		return nil, errors.Wrap(ErrUnsupportedColumnType, "sparse information gain: nil matrix")
	}
	if err := m.checkLayout(); err != nil {
		return nil, errors.Wrap(err, "sparse information gain")
	}
	if m.Rows != len(labels) {
		return nil, &ColumnError{
			Index: 0,
			Type:  SparseNumeric.String(),
			Err: errors.Wrapf(ErrLengthMismatch, "%d rows but %d labels",
				m.Rows, len(labels)),
		}
	}
	for j := 0; j < m.Cols; j++ {
		if err := m.Column(j).check(); err != nil {
			return nil, &ColumnError{Index: j, Type: SparseNumeric.String(), Err: err}
		}
	}
	res := newResult(m.Cols)
	labelCounts := Table1D(NewListSlice(labels))
	for j := 0; j < m.Cols; j++ {
		res.Entropy[j], res.Joint[j] = sparseCounts(m.Column(j), labels, labelCounts)
	}
	return res, nil
}

func sparseEntropies(col SparseColumn, labels []int) (entropy, joint float64) {
	return sparseCounts(col, labels, Table1D(NewListSlice(labels)))
}

// sparseCounts builds the frequency tables of a sparse column by visiting
// only the stored entries, then crediting every remaining row of each label
// to the zero symbol.
func sparseCounts(col SparseColumn, labels []int, labelCounts map[int]int) (entropy, joint float64) {
	symbols := map[uint64]int{}
	pairs := map[Pair[uint64, int]]int{}
	implicit := make(map[int]int, len(labelCounts))
	for l, c := range labelCounts {
		implicit[l] = c
	}
	for k, row := range col.RowIdx {
		key := floatKey(col.Values[k])
		label := labels[row]
		symbols[key]++
		pairs[Pair[uint64, int]{Symbol: key, Label: label}]++
		implicit[label]--
	}
	zero := floatKey(0)
	for label, c := range implicit {
		if c > 0 {
			symbols[zero] += c
			pairs[Pair[uint64, int]{Symbol: zero, Label: label}] += c
		}
	}
	return FreqEntropy(symbols), FreqEntropy(pairs)
}
