package history

import (
	"github.com/dshills/revert/internal/history/storage"
	"github.com/dshills/revert/internal/wrap"
)

// Undoable wraps a value with a bounded stack of saved snapshots.
// The wrapped value is reached through the embedded wrap.Value.
//
// The zero Undoable holds the zero value of T and uses the single-slot
// policy. It panics on first use if T can be neither copied nor moved;
// NewUndoable reports that as an error instead.
type Undoable[T any] struct {
	wrap.Value[T]

	policy storage.Policy[T]
	xfer   storage.Transfer[T]
	saves  storage.Stack[T]
}

// NewUndoable creates an Undoable holding v.
// It fails if T can be neither copied nor moved, or if the policy is nil.
func NewUndoable[T any](v T, opts ...Option[T]) (*Undoable[T], error) {
	u := &Undoable[T]{}
	if err := u.init(opts); err != nil {
		return nil, err
	}
	u.Set(v)
	return u, nil
}

// MustUndoable is like NewUndoable but panics on error.
func MustUndoable[T any](v T, opts ...Option[T]) *Undoable[T] {
	u, err := NewUndoable(v, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// stack returns the undo stack, setting up a zero Undoable on first use.
func (u *Undoable[T]) stack() storage.Stack[T] {
	if u.saves == nil {
		if err := u.init(nil); err != nil {
			panic(err)
		}
	}
	return u.saves
}

func (u *Undoable[T]) init(opts []Option[T]) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}
	xfer, err := storage.Resolve[T]()
	if err != nil {
		return err
	}
	u.policy = o.policy
	u.xfer = xfer
	u.saves = o.policy.New()
	return nil
}

// Save pushes a snapshot of the current value onto the undo stack.
// It returns false if the push replaced or evicted an earlier snapshot.
//
// For move-only types the current value is handed to the stack and left
// in its moved-from state.
func (u *Undoable[T]) Save() bool {
	saves := u.stack()
	return !saves.Store(u.Ptr(), u.xfer)
}

// Undo replaces the current value with the most recent snapshot.
// It returns false and changes nothing if there is no snapshot.
func (u *Undoable[T]) Undo() bool {
	return u.stack().Restore(u.Ptr())
}

// HasSave returns true if Undo would restore a snapshot.
func (u *Undoable[T]) HasSave() bool {
	return u.stack().HasData()
}

// MaxSaves returns the capacity of the undo stack.
func (u *Undoable[T]) MaxSaves() int {
	return u.stack().Capacity()
}

// Saves returns the number of snapshots on the undo stack.
func (u *Undoable[T]) Saves() int {
	return u.stack().Len()
}

// PeekSave returns the snapshot Undo would restore, without removing it.
// The pointer is only valid until the history is next modified.
func (u *Undoable[T]) PeekSave() (*T, bool) {
	return u.stack().Peek()
}

// ClearSaves drops every snapshot on the undo stack.
func (u *Undoable[T]) ClearSaves() {
	u.stack().Dispose()
}

// Policy returns the storage policy backing the history.
func (u *Undoable[T]) Policy() storage.Policy[T] {
	u.stack()
	return u.policy
}

// Mode returns how snapshots of T are taken.
func (u *Undoable[T]) Mode() storage.Mode {
	u.stack()
	return u.xfer.Mode()
}

// Clone returns an independent copy of the value and its undo stack.
// It fails with ErrNotCopyable for move-only types.
func (u *Undoable[T]) Clone() (*Undoable[T], error) {
	p := u.Policy()
	c := &Undoable[T]{policy: p, xfer: u.xfer, saves: p.New()}
	if err := c.copyFrom(u); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the value and undo stack with copies of o's.
// The receiver keeps its own policy, so snapshots beyond its capacity are
// handled by its overflow rule. Fails with ErrNotCopyable for move-only
// types, leaving the receiver unchanged.
func (u *Undoable[T]) Assign(o *Undoable[T]) error {
	if u == o {
		return nil
	}
	return u.copyFrom(o)
}

func (u *Undoable[T]) copyFrom(o *Undoable[T]) error {
	if o.Mode() == storage.ModeMove {
		return ErrNotCopyable
	}
	if err := u.stack().CopyFrom(o.stack(), o.xfer); err != nil {
		return err
	}
	u.Set(o.xfer.Take(o.Ptr()))
	return nil
}

// Take moves the value and undo stack out of o, leaving o holding its
// moved-from value and no snapshots.
func (u *Undoable[T]) Take(o *Undoable[T]) {
	if u == o {
		return
	}
	u.Value.Take(&o.Value)
	u.stack().MoveFrom(o.stack())
}

// Swap exchanges the value, policy and undo stack of u and o.
func (u *Undoable[T]) Swap(o *Undoable[T]) {
	u.stack()
	o.stack()
	u.Value.Swap(&o.Value)
	u.policy, o.policy = o.policy, u.policy
	u.saves, o.saves = o.saves, u.saves
}

// Dispose drops every snapshot. The current value is kept.
func (u *Undoable[T]) Dispose() {
	u.stack().Dispose()
}
