package fselector

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInformationGainScenarios(t *testing.T) {
	columns := []Column{
		IntColumn{1, 1, 1, 2, 2, 2},
		StringColumn{"a", "b", "a", "b", "a", "b"},
		ContinuousColumn{5, 5, 5, 5, 5, 5},
	}
	labels := []int{0, 0, 0, 1, 1, 1}
	res, err := InformationGain(columns, labels, 2)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Entropy[0])
	assert.Equal(t, 1.0, res.Joint[0])

	assert.Equal(t, 1.0, res.Entropy[1])
	assert.InDelta(t, 1+0.9182958340544896, res.Joint[1], 1e-12)

	assert.Equal(t, 0.0, res.Entropy[2])
	assert.Equal(t, 1.0, res.Joint[2])
}

func TestInformationGainStringScenario(t *testing.T) {
	res, err := InformationGain([]Column{StringColumn{"a", "b", "a", "b"}}, []int{0, 1, 0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, res.Entropy)
	assert.Equal(t, []float64{1}, res.Joint)
}

func TestInformationGainContinuous(t *testing.T) {
	values, labels := thresholdDataset()
	res, err := InformationGain([]Column{ContinuousColumn(values)}, labels, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Entropy[0])
	assert.Equal(t, 1.0, res.Joint[0])

	ig := res.InformationGain(LabelEntropy(labels))
	assert.Equal(t, 1.0, ig[0])
}

func TestInformationGainEmpty(t *testing.T) {
	res, err := InformationGain(nil, []int{1, 2, 3}, 4)
	require.NoError(t, err)
	assert.Empty(t, res.Entropy)
	assert.Empty(t, res.Joint)

	res, err = InformationGain([]Column{IntColumn{}, ContinuousColumn{}}, []int{}, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, res.Entropy)
	assert.Equal(t, []float64{0, 0}, res.Joint)
}

func TestInformationGainLengthMismatch(t *testing.T) {
	columns := []Column{
		IntColumn{1, 2, 3, 4},
		IntColumn{1, 2, 3},
		StringColumn{"a"},
	}
	res, err := InformationGain(columns, []int{0, 1, 0, 1}, 4)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, 1, colErr.Index)
	assert.Equal(t, "integer-categorical", colErr.Type)
	assert.Contains(t, err.Error(), "column 1")
}

func TestInformationGainUnsupported(t *testing.T) {
	res, err := InformationGain([]Column{IntColumn{1}, nil}, []int{0}, 1)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrUnsupportedColumnType))

	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, 1, colErr.Index)
	assert.Equal(t, "nil", colErr.Type)
}

func TestInformationGainThreadsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	numRows := 500
	labels := make([]int, numRows)
	for i := range labels {
		labels[i] = rng.Intn(3)
	}
	var columns []Column
	for i := 0; i < 40; i++ {
		switch i % 4 {
		case 0:
			col := make(ContinuousColumn, numRows)
			for j := range col {
				col[j] = rng.NormFloat64() + float64(labels[j])
			}
			columns = append(columns, col)
		case 1:
			col := make(IntColumn, numRows)
			for j := range col {
				col[j] = rng.Intn(7)
			}
			columns = append(columns, col)
		case 2:
			col := make(StringColumn, numRows)
			for j := range col {
				col[j] = fmt.Sprintf("s%d", rng.Intn(4)+labels[j])
			}
			columns = append(columns, col)
		case 3:
			col := make([]float64, numRows)
			for j := range col {
				if rng.Intn(5) == 0 {
					col[j] = float64(rng.Intn(3) + 1)
				}
			}
			csc := NewCSCFromMatrix(denseColumns([][]float64{col}))
			columns = append(columns, csc.Column(0))
		}
	}

	expected, err := InformationGain(columns, labels, 1)
	require.NoError(t, err)
	for _, threads := range []int{2, 8, 0, 100} {
		actual, err := InformationGain(columns, labels, threads)
		require.NoError(t, err)
		require.Equal(t, expected, actual, "threads=%d", threads)
	}
}

func TestInformationGainJointDominates(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	labels := make([]int, 200)
	for i := range labels {
		labels[i] = rng.Intn(4)
	}
	columns := make([]Column, 10)
	for i := range columns {
		col := make(ContinuousColumn, len(labels))
		for j := range col {
			col[j] = rng.Float64() * float64(labels[j]+i)
		}
		columns[i] = col
	}
	res, err := InformationGain(columns, labels, 3)
	require.NoError(t, err)
	hy := LabelEntropy(labels)
	for i := range columns {
		assert.GreaterOrEqual(t, res.Joint[i], res.Entropy[i]-1e-12)
		assert.GreaterOrEqual(t, res.Joint[i], hy-1e-12)
	}
}

func TestEvaluatorCustomDiscretizer(t *testing.T) {
	var calls int
	e := &Evaluator{
		Discretizer: DiscretizerFunc(func(values []float64, labels []int) []int {
			calls++
			res := make([]int, len(values))
			for i, x := range values {
				if x > 0 {
					res[i] = 1
				}
			}
			return res
		}),
		Threads: 1,
	}
	res, err := e.Evaluate([]Column{
		ContinuousColumn{-1, -2, 3, 4},
		IntColumn{1, 2, 3, 4},
	}, []int{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []float64{1, 2}, res.Entropy)
	assert.Equal(t, []float64{1, 2}, res.Joint)
}

func TestEvaluatorEqualSize(t *testing.T) {
	values := make(ContinuousColumn, 64)
	for i := range values {
		values[i] = float64(i)
	}
	e := &Evaluator{Discretizer: EqualSize{Bins: 8}}
	res, err := e.Evaluate([]Column{values}, make([]int, 64))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Entropy[0], 1e-12)
}

func TestEvaluatorNegativeThreads(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := &Evaluator{Threads: -3, Logger: zap.New(core)}
	res, err := e.Evaluate([]Column{IntColumn{1, 2}}, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, res.Entropy)

	entries := logs.FilterField(zap.String("kind", "InvalidConcurrencyParameter")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(-3), entries[0].ContextMap()["threads"])
}

func TestResultScores(t *testing.T) {
	res := &Result{
		Entropy: []float64{1, 0, 2},
		Joint:   []float64{1, 1, 2.5},
	}
	hy := 1.0
	assert.Equal(t, []float64{1, 0, 0.5}, res.InformationGain(hy))
	assert.Equal(t, []float64{1, 0, 0.25}, res.GainRatio(hy))
	su := res.SymmetricalUncertainty(hy)
	assert.Equal(t, 1.0, su[0])
	assert.Equal(t, 0.0, su[1])
	assert.InDelta(t, 1.0/3, su[2], 1e-12)
	assert.Equal(t, []float64{0}, (&Result{Entropy: []float64{0}, Joint: []float64{0}}).SymmetricalUncertainty(0))
	assert.False(t, math.IsNaN(res.GainRatio(0)[1]))
}
