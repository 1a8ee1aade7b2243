package fselector

import "math"

// Kind identifies the representation of a Column.
type Kind int

const (
	UnknownKind Kind = iota
	Continuous
	IntCategorical
	StringCategorical
	SparseNumeric
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case IntCategorical:
		return "integer-categorical"
	case StringCategorical:
		return "string-categorical"
	case SparseNumeric:
		return "sparse-numeric"
	default:
		return "unknown"
	}
}

const (
	// MissingInt marks a missing value in an IntColumn.
	// Missing values form their own category.
	MissingInt = math.MinInt32

	// MissingString marks a missing value in a StringColumn.
	MissingString = "\x00NA"
)

// A Column is one feature of a dataset, with one value per observation.
//
// The set of implementations is closed: ContinuousColumn, IntColumn,
// StringColumn and SparseColumn.
type Column interface {
	Kind() Kind
	Len() int

	column()
}

// A ContinuousColumn holds real-valued observations, which are discretized
// before counting. NaN values are treated as missing.
type ContinuousColumn []float64

func (c ContinuousColumn) Kind() Kind { return Continuous }
func (c ContinuousColumn) Len() int   { return len(c) }
func (c ContinuousColumn) column()    {}

// An IntColumn holds integer category codes.
type IntColumn []int

func (c IntColumn) Kind() Kind { return IntCategorical }
func (c IntColumn) Len() int   { return len(c) }
func (c IntColumn) column()    {}

// A StringColumn holds categories compared by string equality.
type StringColumn []string

func (c StringColumn) Kind() Kind { return StringCategorical }
func (c StringColumn) Len() int   { return len(c) }
func (c StringColumn) column()    {}

// A SparseColumn is a view of one column of a CSC matrix. Rows without a
// stored entry have the value zero.
type SparseColumn struct {
	Rows   int
	RowIdx []int
	Values []float64
}

func (s SparseColumn) Kind() Kind { return SparseNumeric }
func (s SparseColumn) Len() int   { return s.Rows }
func (s SparseColumn) column()    {}

// Dense materializes the column, including explicit zeros for absent rows.
func (s SparseColumn) Dense() []float64 {
	res := make([]float64, s.Rows)
	for i, row := range s.RowIdx {
		res[row] = s.Values[i]
	}
	return res
}

func columnTypeName(c Column) string {
	if c == nil {
		return "nil"
	}
	return c.Kind().String()
}
