package fselector

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/constraints"
)

// ColumnsFromRecord converts every field of an Arrow record, except for the
// named label field, into a Column. The label field is converted with
// LabelsFromArray.
//
// The returned names give the field name of each column.
func ColumnsFromRecord(rec arrow.Record, label string) (columns []Column, labels []int,
	names []string, err error) {
	labelIdx := -1
	for i := 0; i < int(rec.NumCols()); i++ {
		if rec.ColumnName(i) == label {
			labelIdx = i
		} else {
			names = append(names, rec.ColumnName(i))
		}
	}
	if labelIdx == -1 {
		return nil, nil, nil, errors.Errorf("columns from record: no label field %q", label)
	}
	labels, err = LabelsFromArray(rec.Column(labelIdx))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "columns from record")
	}

	arrays := make([]arrow.Array, 0, len(names))
	for i := 0; i < int(rec.NumCols()); i++ {
		if i != labelIdx {
			arrays = append(arrays, rec.Column(i))
		}
	}
	columns = make([]Column, len(arrays))
	errs := make([]error, len(arrays))
	essentials.ConcurrentMap(0, len(arrays), func(i int) {
		col, err := ColumnFromArray(arrays[i])
		if err != nil {
			errs[i] = &ColumnError{Index: i, Type: arrays[i].DataType().Name(), Err: err}
		}
		columns[i] = col
	})
	for _, err := range errs {
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "columns from record")
		}
	}
	return columns, labels, names, nil
}

// ColumnFromArray converts an Arrow array into a Column.
//
// Floating-point arrays become continuous columns with nulls as NaN.
// Integer and boolean arrays become integer-categorical columns, and
// dictionary arrays become integer-categorical columns of dictionary
// indices. String arrays become string-categorical columns. Nulls in
// categorical columns become MissingInt or MissingString, so an integer equal
// to MissingInt cannot be told apart from a null. Integers that do not fit in
// an int are rejected.
func ColumnFromArray(arr arrow.Array) (Column, error) {
	switch arr := arr.(type) {
	case *array.Float64:
		return floatValues[float64](arr), nil
	case *array.Float32:
		return floatValues[float32](arr), nil
	case *array.Int8:
		return intColumn[int8](arr)
	case *array.Int16:
		return intColumn[int16](arr)
	case *array.Int32:
		return intColumn[int32](arr)
	case *array.Int64:
		return intColumn[int64](arr)
	case *array.Uint8:
		return intColumn[uint8](arr)
	case *array.Uint16:
		return intColumn[uint16](arr)
	case *array.Uint32:
		return intColumn[uint32](arr)
	case *array.Uint64:
		return intColumn[uint64](arr)
	case *array.Boolean:
		return IntColumn(boolValues(arr)), nil
	case *array.Dictionary:
		return IntColumn(dictValues(arr)), nil
	case *array.String:
		return StringColumn(stringValues(arr)), nil
	case *array.LargeString:
		return StringColumn(stringValues(arr)), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedColumnType, "arrow type %s", arr.DataType().Name())
	}
}

// LabelsFromArray converts an Arrow array into label codes.
//
// Integer and boolean arrays are used directly. String arrays are coded in
// order of first appearance, and dictionary arrays use their indices.
func LabelsFromArray(arr arrow.Array) ([]int, error) {
	col, err := ColumnFromArray(arr)
	if err != nil {
		return nil, errors.Wrap(err, "labels from array")
	}
	switch col := col.(type) {
	case IntColumn:
		return col, nil
	case StringColumn:
		codes := map[string]int{}
		res := make([]int, len(col))
		for i, s := range col {
			code, ok := codes[s]
			if !ok {
				code = len(codes)
				codes[s] = code
			}
			res[i] = code
		}
		return res, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedColumnType, "labels from array: %s labels", col.Kind())
	}
}

type valueArray[T any] interface {
	arrow.Array
	Value(i int) T
}

func floatValues[T constraints.Float](arr valueArray[T]) ContinuousColumn {
	res := make(ContinuousColumn, arr.Len())
	for i := range res {
		if arr.IsNull(i) {
			res[i] = math.NaN()
		} else {
			res[i] = float64(arr.Value(i))
		}
	}
	return res
}

func intColumn[T constraints.Integer](arr valueArray[T]) (Column, error) {
	values, err := intValues(arr)
	if err != nil {
		return nil, err
	}
	return IntColumn(values), nil
}

func intValues[T constraints.Integer](arr valueArray[T]) ([]int, error) {
	res := make([]int, arr.Len())
	for i := range res {
		if arr.IsNull(i) {
			res[i] = MissingInt
			continue
		}
		v := arr.Value(i)
		x := int(v)
		if T(x) != v || (x < 0) != (v < 0) {
			return nil, errors.Wrapf(ErrUnsupportedColumnType, "value %d at row %d overflows int", v, i)
		}
		res[i] = x
	}
	return res, nil
}

func boolValues(arr *array.Boolean) []int {
	res := make([]int, arr.Len())
	for i := range res {
		if arr.IsNull(i) {
			res[i] = MissingInt
		} else if arr.Value(i) {
			res[i] = 1
		}
	}
	return res
}

func dictValues(arr *array.Dictionary) []int {
	res := make([]int, arr.Len())
	for i := range res {
		if arr.IsNull(i) {
			res[i] = MissingInt
		} else {
			res[i] = arr.GetValueIndex(i)
		}
	}
	return res
}

func stringValues(arr valueArray[string]) []string {
	res := make([]string, arr.Len())
	for i := range res {
		if arr.IsNull(i) {
			res[i] = MissingString
		} else {
			res[i] = arr.Value(i)
		}
	}
	return res
}
