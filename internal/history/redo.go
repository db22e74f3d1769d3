package history

import "github.com/dshills/revert/internal/history/storage"

// Redoable is an Undoable that also keeps the values thrown away by Undo,
// so they can be brought back with Redo.
//
// Like Undoable, the zero Redoable uses the single-slot policy.
type Redoable[T any] struct {
	Undoable[T]

	edits storage.Stack[T]
}

// redoStack returns the redo stack, setting up a zero Redoable on first use.
func (r *Redoable[T]) redoStack() storage.Stack[T] {
	if r.edits == nil {
		r.edits = r.Policy().New()
	}
	return r.edits
}

// NewRedoable creates a Redoable holding v.
// The undo and redo stacks are built independently from the same policy.
func NewRedoable[T any](v T, opts ...Option[T]) (*Redoable[T], error) {
	r := &Redoable[T]{}
	if err := r.init(opts); err != nil {
		return nil, err
	}
	r.edits = r.policy.New()
	r.Set(v)
	return r, nil
}

// MustRedoable is like NewRedoable but panics on error.
func MustRedoable[T any](v T, opts ...Option[T]) *Redoable[T] {
	r, err := NewRedoable(v, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Undo pushes the current value onto the redo stack and then restores the
// most recent save. With no save it returns false and neither stack changes.
func (r *Redoable[T]) Undo() bool {
	if !r.HasSave() {
		return false
	}
	r.redoStack().Store(r.Ptr(), r.xfer)
	return r.Undoable.Undo()
}

// Redo replaces the current value with the most recent value discarded by
// Undo. It returns false and changes nothing if there is none.
func (r *Redoable[T]) Redo() bool {
	return r.redoStack().Restore(r.Ptr())
}

// HasEdit returns true if Redo would restore a value.
func (r *Redoable[T]) HasEdit() bool {
	return r.redoStack().HasData()
}

// MaxEdits returns the capacity of the redo stack.
func (r *Redoable[T]) MaxEdits() int {
	return r.redoStack().Capacity()
}

// Edits returns the number of values on the redo stack.
func (r *Redoable[T]) Edits() int {
	return r.redoStack().Len()
}

// PeekEdit returns the value Redo would restore, without removing it.
// The pointer is only valid until the history is next modified.
func (r *Redoable[T]) PeekEdit() (*T, bool) {
	return r.redoStack().Peek()
}

// ClearEdits drops every value on the redo stack.
func (r *Redoable[T]) ClearEdits() {
	r.redoStack().Dispose()
}

// Clear drops both stacks. The current value is kept.
func (r *Redoable[T]) Clear() {
	r.ClearSaves()
	r.ClearEdits()
}

// Clone returns an independent copy of the value and both stacks.
// It fails with ErrNotCopyable for move-only types.
func (r *Redoable[T]) Clone() (*Redoable[T], error) {
	p := r.Policy()
	c := &Redoable[T]{
		Undoable: Undoable[T]{policy: p, xfer: r.xfer, saves: p.New()},
		edits:    p.New(),
	}
	if err := c.copyFrom(r); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the value and both stacks with copies of o's.
// Fails with ErrNotCopyable for move-only types, leaving r unchanged.
func (r *Redoable[T]) Assign(o *Redoable[T]) error {
	if r == o {
		return nil
	}
	return r.copyFrom(o)
}

func (r *Redoable[T]) copyFrom(o *Redoable[T]) error {
	if o.Mode() == storage.ModeMove {
		return ErrNotCopyable
	}
	if err := r.redoStack().CopyFrom(o.redoStack(), o.xfer); err != nil {
		return err
	}
	return r.Undoable.copyFrom(&o.Undoable)
}

// Take moves the value and both stacks out of o.
func (r *Redoable[T]) Take(o *Redoable[T]) {
	if r == o {
		return
	}
	r.Undoable.Take(&o.Undoable)
	r.redoStack().MoveFrom(o.redoStack())
}

// Swap exchanges the value and both stacks of r and o.
func (r *Redoable[T]) Swap(o *Redoable[T]) {
	r.redoStack()
	o.redoStack()
	r.Undoable.Swap(&o.Undoable)
	r.edits, o.edits = o.edits, r.edits
}

// Dispose drops both stacks. The current value is kept.
func (r *Redoable[T]) Dispose() {
	r.Undoable.Dispose()
	r.redoStack().Dispose()
}
