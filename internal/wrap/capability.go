package wrap

// Cloner is implemented by types whose plain Go copies would share state
// (slices, maps, pointers) and which know how to produce an independent copy.
// Clone may be declared on either the value or the pointer receiver.
type Cloner[T any] interface {
	Clone() T
}

// Mover is implemented on *T by types that can hand their contents over,
// leaving the receiver in a valid moved-from state.
type Mover[T any] interface {
	Move() T
}

// NoCopy may be embedded in a struct to mark it as not copyable by plain
// assignment. Such a type can only be stored in a history if it also
// implements Cloner or Mover.
type NoCopy struct{}

func (NoCopy) noCopy() {}

type noCopier interface {
	noCopy()
}

func clonerOf[T any](v *T) (Cloner[T], bool) {
	if c, ok := any(*v).(Cloner[T]); ok {
		return c, true
	}
	c, ok := any(v).(Cloner[T])
	return c, ok
}

// CanClone reports whether T implements Cloner.
func CanClone[T any]() bool {
	var zero T
	_, ok := clonerOf(&zero)
	return ok
}

// CanMove reports whether *T implements Mover.
func CanMove[T any]() bool {
	var zero T
	_, ok := any(&zero).(Mover[T])
	return ok
}

// IsNoCopy reports whether T embeds NoCopy. Pointers to such types are
// copyable.
func IsNoCopy[T any]() bool {
	var zero T
	_, ok := any(&zero).(noCopier)
	return ok
}

// CopyOf returns a copy of *v, using Clone when T implements Cloner.
// *v is left untouched.
func CopyOf[T any](v *T) T {
	if c, ok := clonerOf(v); ok {
		return c.Clone()
	}
	return *v
}

// MoveOf hands over the contents of *v. If *T implements Mover its Move
// method is used; otherwise *v is copied out and reset to the zero value.
func MoveOf[T any](v *T) T {
	if m, ok := any(v).(Mover[T]); ok {
		return m.Move()
	}
	out := *v
	var zero T
	*v = zero
	return out
}
