package wrap

import "cmp"

// Equaler is the optional equality capability of a wrapped type.
type Equaler[T any] interface {
	Equal(T) bool
}

// Comparer is the optional ordering capability of a wrapped type.
// Compare returns a negative number, zero or a positive number when the
// receiver is less than, equal to or greater than the argument.
type Comparer[T any] interface {
	Compare(T) int
}

// Equal reports whether a and b hold equal values.
func Equal[T comparable](a, b *Value[T]) bool {
	return a.value == b.value
}

// EqualTo reports whether a holds v.
func EqualTo[T comparable](a *Value[T], v T) bool {
	return a.value == v
}

// Compare orders the values held by a and b.
func Compare[T cmp.Ordered](a, b *Value[T]) int {
	return cmp.Compare(a.value, b.value)
}

// CompareTo orders the value held by a against v.
func CompareTo[T cmp.Ordered](a *Value[T], v T) int {
	return cmp.Compare(a.value, v)
}

// Less reports whether a holds a value less than b's.
func Less[T cmp.Ordered](a, b *Value[T]) bool {
	return a.value < b.value
}

// LessEq reports whether a holds a value less than or equal to b's.
func LessEq[T cmp.Ordered](a, b *Value[T]) bool {
	return a.value <= b.value
}

// Greater reports whether a holds a value greater than b's.
func Greater[T cmp.Ordered](a, b *Value[T]) bool {
	return a.value > b.value
}

// GreaterEq reports whether a holds a value greater than or equal to b's.
func GreaterEq[T cmp.Ordered](a, b *Value[T]) bool {
	return a.value >= b.value
}

// EqualFunc compares two wrappers using T's own Equal method.
func EqualFunc[T Equaler[T]](a, b *Value[T]) bool {
	return a.value.Equal(b.value)
}

// EqualFuncTo compares a wrapper against v using T's own Equal method.
func EqualFuncTo[T Equaler[T]](a *Value[T], v T) bool {
	return a.value.Equal(v)
}

// CompareFunc orders two wrappers using T's own Compare method.
func CompareFunc[T Comparer[T]](a, b *Value[T]) int {
	return a.value.Compare(b.value)
}

// CompareFuncTo orders a wrapper against v using T's own Compare method.
func CompareFuncTo[T Comparer[T]](a *Value[T], v T) int {
	return a.value.Compare(v)
}
