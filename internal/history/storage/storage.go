// Package storage provides the bounded snapshot stacks used by the history
// package and the policies that create them.
//
// A Policy is a strategy, not a stack: it reports a capacity and builds
// fresh stacks on demand, so one policy can back both the undo stack and
// the redo stack of a controller without the two sharing anything.
//
// # Policies
//
//   - Single: one optional slot. A push while full replaces the entry.
//   - Array: N preallocated slots. A push while full replaces the most
//     recent entry.
//   - Ring: N preallocated slots used circularly. A push while full evicts
//     the oldest entry.
//
// # Transfers
//
// Values enter a stack through a Transfer, resolved once per element type
// by Resolve: Clone when the type implements wrap.Cloner, plain assignment
// for ordinary types, and a destructive move for wrap.NoCopy types that
// implement wrap.Mover. Values always leave a stack by moving, since the
// vacated slot is never read again.
package storage

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dshills/revert/internal/wrap"
)

// Errors returned by policy construction and stack transfers.
var (
	// ErrInvalidCapacity indicates a capacity below one or above MaxCapacity.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrUnknownPolicy indicates a policy name Lookup does not recognise.
	ErrUnknownPolicy = errors.New("unknown storage policy")

	// ErrNotTransferable indicates a type that can be neither copied nor moved.
	ErrNotTransferable = errors.New("type is neither copyable nor movable")

	// ErrNotCopyable indicates a copy was requested for a move-only type.
	ErrNotCopyable = errors.New("type is move-only")
)

// Policy names accepted by Lookup.
const (
	NameSingle = "single"
	NameArray  = "array"
	NameRing   = "ring"
)

// Stack is a bounded LIFO of snapshots.
type Stack[T any] interface {
	// HasData reports whether at least one entry is present.
	HasData() bool

	// Capacity returns the maximum number of entries.
	Capacity() int

	// Len returns the current number of entries.
	Len() int

	// Store pushes a snapshot of *v taken with x.
	// It returns true if an existing entry was overwritten or evicted.
	Store(v *T, x Transfer[T]) (overwrote bool)

	// Restore pops the most recent entry, moving it into *v.
	// It returns false and leaves *v untouched when the stack is empty.
	Restore(v *T) bool

	// Seq returns the sequence number of the most recent entry.
	// Every Store draws the next number from a counter that only grows, so
	// an entry that was overwritten or evicted never reappears under its
	// number.
	Seq() (uint64, bool)

	// NextSeq returns the number the next Store will assign.
	NextSeq() uint64

	// Peek returns the most recent entry without removing it.
	// The pointer is only valid until the stack is next modified.
	Peek() (*T, bool)

	// All yields entries from oldest to most recent.
	All() iter.Seq2[int, *T]

	// CopyFrom replaces the contents of the stack with copies of src's
	// entries taken with x.
	CopyFrom(src Stack[T], x Transfer[T]) error

	// MoveFrom replaces the contents of the stack with src's entries,
	// leaving src empty.
	MoveFrom(src Stack[T])

	// Dispose drops every entry.
	Dispose()
}

// Policy creates snapshot stacks of a fixed kind and capacity.
type Policy[T any] interface {
	// Name identifies the policy kind.
	Name() string

	// Capacity returns the capacity of every stack the policy creates.
	Capacity() int

	// New creates an empty stack.
	New() Stack[T]
}

// Lookup returns the policy registered under name.
// The capacity is ignored for the single-slot policy.
func Lookup[T any](name string, capacity int) (Policy[T], error) {
	switch name {
	case NameSingle, "":
		return Single[T](), nil
	case NameArray:
		return Array[T](capacity)
	case NameRing:
		return Ring[T](capacity)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Names returns the policy names accepted by Lookup.
func Names() []string {
	return []string{NameSingle, NameArray, NameRing}
}

// MaxCapacity is the largest capacity Array and Ring accept.
// Stacks preallocate their slots, so the bound caps memory per stack.
const MaxCapacity = 1 << 16

func checkCapacity(n int) error {
	if n < 1 || n > MaxCapacity {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidCapacity, n, MaxCapacity)
	}
	return nil
}

// sequence hands out entry sequence numbers.
type sequence struct {
	next uint64
}

func (c *sequence) NextSeq() uint64 { return c.next }

func (c *sequence) issue() uint64 {
	n := c.next
	c.next++
	return n
}

// release resets a vacated slot so it no longer retains references.
func release[T any](slot *T) {
	var zero T
	*slot = zero
}

// take moves a slot's contents out and releases the slot.
func take[T any](slot *T) T {
	out := wrap.MoveOf(slot)
	release(slot)
	return out
}

// copyStack rebuilds dst from src oldest first, so that dst's own overflow
// rule decides what survives when dst is the smaller stack.
func copyStack[T any](dst, src Stack[T], x Transfer[T]) error {
	if x.Mode() == ModeMove {
		return ErrNotCopyable
	}
	if dst == src {
		return nil
	}
	dst.Dispose()
	for _, v := range src.All() {
		dst.Store(v, x)
	}
	return nil
}

func moveStack[T any](dst, src Stack[T]) {
	if dst == src {
		return
	}
	dst.Dispose()
	x := moveTransfer[T]()
	for _, v := range src.All() {
		dst.Store(v, x)
	}
	src.Dispose()
}
