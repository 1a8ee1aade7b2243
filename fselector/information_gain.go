// Package fselector computes entropy-based feature relevance scores.
//
// For every feature column, the entropy H(X) and the joint entropy H(X, Y)
// with a label column are computed in bits. Continuous features are first
// discretized by a pluggable Discretizer, and columns are processed in
// parallel.
package fselector

import (
	"runtime"
	"time"

	"github.com/unixpickle/essentials"
	"go.uber.org/zap"
)

// InformationGain computes the entropy and joint entropy of every column
// using the default MDL discretizer.
//
// The threads argument specifies the maximum number of Goroutines to use.
// If it is less than 1, GOMAXPROCS is used.
func InformationGain(columns []Column, labels []int, threads int) (*Result, error) {
	e := &Evaluator{Threads: threads}
	return e.Evaluate(columns, labels)
}

// An Evaluator computes entropies for batches of columns.
//
// A single Evaluator may be used by many Goroutines at once.
type Evaluator struct {
	// Discretizer is applied to continuous columns.
	// If nil, DefaultDiscretizer is used.
	Discretizer Discretizer

	// Threads is the maximum number of Goroutines to use.
	// If less than 1, GOMAXPROCS is used.
	Threads int

	// Logger, if non-nil, receives debug information about each batch.
	Logger *zap.Logger
}

// Evaluate computes the entropy and joint entropy of every column.
//
// Every column is checked before any work is done. If any column is
// unsupported or has a different length than labels, a *ColumnError for the
// first such column is returned and no result is produced.
func (e *Evaluator) Evaluate(columns []Column, labels []int) (*Result, error) {
	for i, col := range columns {
		if err := checkColumn(col, labels); err != nil {
			return nil, &ColumnError{Index: i, Type: columnTypeName(col), Err: err}
		}
	}

	logger := e.logger()
	disc := e.Discretizer
	if disc == nil {
		disc = DefaultDiscretizer
	}
	threads := e.threads(logger)
	if len(columns) > 0 {
		threads = essentials.MinInt(threads, len(columns))
	}

	start := time.Now()
	res := newResult(len(columns))
	queue := newWorkQueue(threads)
	err := queue.Run(func() error {
		return queue.Range(0, len(columns), func(i int) error {
			var err error
			res.Entropy[i], res.Joint[i], err = ColumnEntropy(columns[i], labels, disc)
			if err != nil {
				return &ColumnError{Index: i, Type: columnTypeName(columns[i]), Err: err}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(
		"computed column entropies",
		zap.Int("columns", len(columns)),
		zap.Int("rows", len(labels)),
		zap.Int("threads", threads),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (e *Evaluator) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Evaluator) threads(logger *zap.Logger) int {
	if e.Threads >= 1 {
		return e.Threads
	}
	res := runtime.GOMAXPROCS(0)
	if e.Threads < 0 {
		logger.Warn(
			"invalid concurrency parameter, using GOMAXPROCS",
			zap.String("kind", "InvalidConcurrencyParameter"),
			zap.Int("threads", e.Threads),
			zap.Int("using", res),
		)
	}
	return res
}
