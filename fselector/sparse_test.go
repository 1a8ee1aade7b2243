package fselector

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func denseColumns(columns [][]float64) *mat.Dense {
	res := mat.NewDense(len(columns[0]), len(columns), nil)
	for j, col := range columns {
		res.SetCol(j, col)
	}
	return res
}

func TestSparseAllZero(t *testing.T) {
	m, err := NewCSC(5, 2, []int{0, 0, 1}, []int{3}, []float64{0})
	require.NoError(t, err)
	res, err := SparseInformationGain(m, []int{0, 1, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, res.Entropy)
	hy := LabelEntropy([]int{0, 1, 0, 1, 1})
	assert.Equal(t, []float64{hy, hy}, res.Joint)
}

func TestSparseMatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows, cols := 300, 12
	labels := make([]int, rows)
	for i := range labels {
		labels[i] = rng.Intn(3) - 1
	}
	data := make([][]float64, cols)
	intColumns := make([]Column, cols)
	for j := range data {
		data[j] = make([]float64, rows)
		intCol := make(IntColumn, rows)
		for i := range data[j] {
			if rng.Intn(4) == 0 {
				intCol[i] = rng.Intn(5) - 2
				data[j][i] = float64(intCol[i])
			}
		}
		intColumns[j] = intCol
	}
	m := NewCSCFromMatrix(denseColumns(data))

	sparse, err := SparseInformationGain(m, labels)
	require.NoError(t, err)
	dense, err := InformationGain(intColumns, labels, 4)
	require.NoError(t, err)
	assert.Equal(t, dense, sparse)

	// The dispatcher's sparse path and the dense view give the same numbers.
	for j := 0; j < cols; j++ {
		col := m.Column(j)
		h, joint, err := ColumnEntropy(col, labels, nil)
		require.NoError(t, err)
		assert.Equal(t, sparse.Entropy[j], h)
		assert.Equal(t, sparse.Joint[j], joint)

		symbols := MapList(NewListSlice(col.Dense()), floatKey)
		assert.Equal(t, h, Entropy(symbols))
		assert.Equal(t, joint, FreqEntropy(Table2D(symbols, NewListSlice(labels))))
	}
}

func TestSparseExplicitZerosAndSigns(t *testing.T) {
	// Stored zeros, negative zeros and implicit zeros are one category.
	m, err := NewCSC(4, 1, []int{0, 2}, []int{0, 2}, []float64{0, negZero()})
	require.NoError(t, err)
	res, err := SparseInformationGain(m, []int{0, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Entropy[0])
	assert.Equal(t, 1.0, res.Joint[0])
}

func TestSparseLengthMismatch(t *testing.T) {
	m := NewCSCFromMatrix(mat.NewDense(3, 2, []float64{1, 0, 0, 2, 0, 0}))
	res, err := SparseInformationGain(m, []int{0, 1, 0, 1})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestSparseMalformedMatrix(t *testing.T) {
	labels := []int{0, 1, 1}
	res, err := SparseInformationGain(nil, labels)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrUnsupportedColumnType))

	// Duplicate rows in the second column.
	m := &CSC{
		Rows:   3,
		Cols:   2,
		ColPtr: []int{0, 1, 3},
		RowIdx: []int{2, 1, 1},
		Values: []float64{1, 2, 3},
	}
	res, err = SparseInformationGain(m, labels)
	assert.Nil(t, res)
	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, 1, colErr.Index)

	m.ColPtr = []int{0, 4, 3}
	res, err = SparseInformationGain(m, labels)
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestCSCMatrix(t *testing.T) {
	dense := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 0,
		4, 5,
	})
	m := NewCSCFromMatrix(dense)
	assert.Equal(t, []int{0, 2, 3}, m.ColPtr)
	assert.Equal(t, []int{0, 2, 2}, m.RowIdx)
	assert.Equal(t, []float64{1, 4, 5}, m.Values)
	assert.True(t, mat.Equal(dense, m))
	assert.True(t, mat.Equal(dense.T(), m.T()))
	assert.Equal(t, []float64{0, 0, 5}, m.Column(1).Dense())

	assert.Panics(t, func() { m.At(3, 0) })
	assert.Panics(t, func() { m.Column(2) })
}

func TestNewCSCValidation(t *testing.T) {
	_, err := NewCSC(2, 1, []int{0, 1}, []int{2}, []float64{1})
	assert.Error(t, err)
	_, err = NewCSC(2, 1, []int{0, 2}, []int{1, 0}, []float64{1, 1})
	assert.Error(t, err)
	_, err = NewCSC(2, 2, []int{0, 1}, []int{0}, []float64{1})
	assert.Error(t, err)
	_, err = NewCSC(2, 1, []int{0, 2}, []int{0}, []float64{1})
	assert.Error(t, err)
	_, err = NewCSC(0, 0, []int{0}, nil, nil)
	assert.NoError(t, err)
}

func negZero() float64 {
	var zero float64
	return -zero
}
