// Package wrap provides Value, a holder for exactly one live value of an
// arbitrary type, and the optional capabilities a wrapped type may expose.
//
// A Value adds nothing beyond assignment and access. The history package
// layers bounded undo/redo on top of it.
//
//	v := wrap.New(42)
//	*v.Ptr() += 1
//	v.Set(7)
//	wrap.EqualTo(v, 7) // true
package wrap

import "fmt"

// Value wraps a single value of type T.
// The zero Value holds the zero value of T and is ready to use.
type Value[T any] struct {
	value T
}

// New creates a Value holding v.
func New[T any](v T) *Value[T] {
	return &Value[T]{value: v}
}

// Get returns the held value.
// For types that share state between copies, mutate through Ptr instead.
func (w *Value[T]) Get() T {
	return w.value
}

// Ptr returns a pointer to the held value for in-place access.
// The pointer stays valid for the lifetime of the Value.
func (w *Value[T]) Ptr() *T {
	return &w.value
}

// Set replaces the held value.
func (w *Value[T]) Set(v T) {
	w.value = v
}

// Assign copies the value held by o into w.
// Types implementing Cloner are copied with Clone.
func (w *Value[T]) Assign(o *Value[T]) {
	if w == o {
		return
	}
	w.value = CopyOf(&o.value)
}

// Take moves the value held by o into w, leaving o in its moved-from state.
func (w *Value[T]) Take(o *Value[T]) {
	if w == o {
		return
	}
	w.value = MoveOf(&o.value)
}

// Swap exchanges the values held by w and o.
func (w *Value[T]) Swap(o *Value[T]) {
	w.value, o.value = o.value, w.value
}

// String formats the held value.
func (w *Value[T]) String() string {
	return fmt.Sprint(w.value)
}
