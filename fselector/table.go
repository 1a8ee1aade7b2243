package fselector

// A Pair is a key of a joint frequency table.
type Pair[S, L comparable] struct {
	Symbol S
	Label  L
}

// Table1D counts the occurrences of each distinct symbol in a stream.
func Table1D[S comparable](stream List[S]) map[S]int {
	res := map[S]int{}
	for i := 0; i < stream.Len; i++ {
		res[stream.Get(i)]++
	}
	return res
}

// Table2D counts the occurrences of each distinct (symbol, label) pair,
// where the i-th symbol is paired with the i-th label.
func Table2D[S, L comparable](stream List[S], labels List[L]) map[Pair[S, L]]int {
	if stream.Len != labels.Len {
		panic("symbols and labels must have same length")
	}
	res := map[Pair[S, L]]int{}
	for i := 0; i < stream.Len; i++ {
		res[Pair[S, L]{Symbol: stream.Get(i), Label: labels.Get(i)}]++
	}
	return res
}
