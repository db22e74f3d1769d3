package storage

import (
	"fmt"

	"github.com/dshills/revert/internal/wrap"
)

// Mode describes how a Transfer takes a snapshot of a value.
type Mode int

const (
	// ModeCopy copies by plain assignment.
	ModeCopy Mode = iota
	// ModeClone copies with the type's Clone method.
	ModeClone
	// ModeMove hands the value over, leaving the source moved-from.
	ModeMove
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeClone:
		return "clone"
	case ModeMove:
		return "move"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Transfer takes snapshots of values of type T.
// The zero Transfer copies by plain assignment.
type Transfer[T any] struct {
	mode Mode
	fn   func(*T) T
}

// Mode returns how the transfer takes snapshots.
func (x Transfer[T]) Mode() Mode {
	return x.mode
}

// Take returns a snapshot of *v. Copying transfers leave *v intact.
func (x Transfer[T]) Take(v *T) T {
	if x.fn == nil {
		return *v
	}
	return x.fn(v)
}

// Resolve picks the transfer for T, preferring a copy that keeps the
// caller's value intact and falling back to a move only for NoCopy types.
// A NoCopy type without a Move method yields ErrNotTransferable.
func Resolve[T any]() (Transfer[T], error) {
	switch {
	case wrap.CanClone[T]():
		return Transfer[T]{mode: ModeClone, fn: wrap.CopyOf[T]}, nil
	case !wrap.IsNoCopy[T]():
		return Transfer[T]{mode: ModeCopy}, nil
	case wrap.CanMove[T]():
		return moveTransfer[T](), nil
	default:
		var zero T
		return Transfer[T]{}, fmt.Errorf("%w: %T", ErrNotTransferable, zero)
	}
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any]() Transfer[T] {
	x, err := Resolve[T]()
	if err != nil {
		panic(err)
	}
	return x
}

func moveTransfer[T any]() Transfer[T] {
	return Transfer[T]{mode: ModeMove, fn: wrap.MoveOf[T]}
}
