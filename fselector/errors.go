package fselector

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrLengthMismatch is returned when a feature column and the label
	// column have different numbers of observations.
	ErrLengthMismatch = errors.New("feature and label lengths differ")

	// ErrUnsupportedColumnType is returned for a column representation that
	// cannot be dispatched.
	ErrUnsupportedColumnType = errors.New("unsupported column type")
)

// A ColumnError identifies the feature column which caused a failure.
type ColumnError struct {
	Index int
	Type  string
	Err   error
}

func (c *ColumnError) Error() string {
	return fmt.Sprintf("column %d (%s): %v", c.Index, c.Type, c.Err)
}

func (c *ColumnError) Unwrap() error {
	return c.Err
}
