package fselector

// Result holds per-column entropies, in bits, indexed like the input
// columns.
type Result struct {
	// Entropy[i] is H(X_i).
	Entropy []float64 `json:"entropy"`

	// Joint[i] is the joint entropy H(X_i, Y) with the labels.
	Joint []float64 `json:"joint"`
}

func newResult(n int) *Result {
	return &Result{
		Entropy: make([]float64, n),
		Joint:   make([]float64, n),
	}
}

// LabelEntropy computes H(Y) for a label column.
func LabelEntropy(labels []int) float64 {
	return Entropy(NewListSlice(labels))
}

// InformationGain computes H(X) + H(Y) - H(X, Y) for every column, given the
// label entropy H(Y).
func (r *Result) InformationGain(labelEntropy float64) []float64 {
	res := make([]float64, len(r.Entropy))
	for i, h := range r.Entropy {
		res[i] = h + labelEntropy - r.Joint[i]
	}
	return res
}

// GainRatio divides the information gain of every column by H(X).
// Columns with zero entropy get a ratio of zero.
func (r *Result) GainRatio(labelEntropy float64) []float64 {
	res := r.InformationGain(labelEntropy)
	for i, h := range r.Entropy {
		if h == 0 {
			res[i] = 0
		} else {
			res[i] /= h
		}
	}
	return res
}

// SymmetricalUncertainty computes 2*IG / (H(X) + H(Y)) for every column.
func (r *Result) SymmetricalUncertainty(labelEntropy float64) []float64 {
	res := r.InformationGain(labelEntropy)
	for i, h := range r.Entropy {
		if denom := h + labelEntropy; denom == 0 {
			res[i] = 0
		} else {
			res[i] = 2 * res[i] / denom
		}
	}
	return res
}
