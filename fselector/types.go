package fselector

// A List is a general array type which can have an arbitrary getter.
// This can be useful for avoiding contiguous slice allocations, for example
// when counting the implicit zeros of a sparse column.
type List[T any] struct {
	Len int
	Get func(int) T
}

func NewListSlice[T any](s []T) List[T] {
	return List[T]{
		Len: len(s),
		Get: func(i int) T {
			return s[i]
		},
	}
}

// MapList lazily applies f to every element of l.
func MapList[T, U any](l List[T], f func(T) U) List[U] {
	return List[U]{
		Len: l.Len,
		Get: func(i int) U {
			return f(l.Get(i))
		},
	}
}
