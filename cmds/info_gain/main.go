package main

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/fselector/fselector"
	"go.uber.org/zap"
)

func main() {
	cmd := &cobra.Command{
		Use:   "info_gain [flags] <input.arrow>",
		Short: "Compute entropy-based relevance of every feature in an Arrow file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return Run(cfg, args[0])
		},
		SilenceUsage: true,
	}
	AddFlags(cmd.Flags())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type Output struct {
	Names                  []string  `json:"names"`
	Entropy                []float64 `json:"entropy"`
	Joint                  []float64 `json:"joint"`
	LabelEntropy           float64   `json:"label_entropy"`
	InformationGain        []float64 `json:"info_gain"`
	GainRatio              []float64 `json:"gain_ratio"`
	SymmetricalUncertainty []float64 `json:"sym_uncert"`
}

func Run(cfg *Config, inputPath string) error {
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("reading input", zap.String("path", inputPath))
	rec, err := ReadArrow(inputPath)
	if err != nil {
		return err
	}
	defer rec.Release()

	columns, labels, names, err := fselector.ColumnsFromRecord(rec, cfg.Label)
	if err != nil {
		return err
	}
	logger.Info(
		"loaded dataset",
		zap.Int("rows", len(labels)),
		zap.Int("features", len(columns)),
	)

	var result *fselector.Result
	if cfg.Sparse {
		matrix, err := SparseMatrix(columns)
		if err != nil {
			return err
		}
		logger.Info("using sparse path", zap.Int("nonzeros", len(matrix.Values)))
		result, err = fselector.SparseInformationGain(matrix, labels)
		if err != nil {
			return err
		}
	} else {
		disc, err := cfg.Discretizer()
		if err != nil {
			return err
		}
		evaluator := &fselector.Evaluator{
			Discretizer: disc,
			Threads:     cfg.Threads,
			Logger:      logger,
		}
		result, err = evaluator.Evaluate(columns, labels)
		if err != nil {
			return err
		}
	}

	labelEntropy := fselector.LabelEntropy(labels)
	return WriteOutput(os.Stdout, &Output{
		Names:                  names,
		Entropy:                result.Entropy,
		Joint:                  result.Joint,
		LabelEntropy:           labelEntropy,
		InformationGain:        result.InformationGain(labelEntropy),
		GainRatio:              result.GainRatio(labelEntropy),
		SymmetricalUncertainty: result.SymmetricalUncertainty(labelEntropy),
	})
}

// WriteOutput encodes the output as indented JSON.
func WriteOutput(w io.Writer, out *Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

// SparseMatrix packs numeric columns into a CSC matrix.
func SparseMatrix(columns []fselector.Column) (*fselector.CSC, error) {
	var rows int
	if len(columns) > 0 {
		rows = columns[0].Len()
	}
	colPtr := []int{0}
	var rowIdx []int
	var values []float64
	for i, col := range columns {
		var dense []float64
		switch col := col.(type) {
		case fselector.ContinuousColumn:
			dense = col
		case fselector.IntColumn:
			dense = make([]float64, len(col))
			for j, x := range col {
				dense[j] = float64(x)
			}
		default:
			return nil, errors.Errorf("sparse matrix: column %d is %s, not numeric", i, col.Kind())
		}
		for row, x := range dense {
			if x != 0 {
				rowIdx = append(rowIdx, row)
				values = append(values, x)
			}
		}
		colPtr = append(colPtr, len(values))
	}
	return fselector.NewCSC(rows, len(columns), colPtr, rowIdx, values)
}
