package history

import "github.com/dshills/revert/internal/history/storage"

// Checkpoint marks a point in the undo history that UndoTo can return to.
// A checkpoint belongs to the history it was taken from.
type Checkpoint struct {
	depth int
	seq   uint64
}

// Depth returns the number of saves recorded at the checkpoint.
func (c Checkpoint) Depth() int {
	return c.depth
}

// Checkpoint marks the current point in the undo history.
func (u *Undoable[T]) Checkpoint() Checkpoint {
	return Checkpoint{depth: u.Saves(), seq: u.stack().NextSeq()}
}

// UndoTo undoes every save made after the checkpoint and returns the number
// of undos performed.
//
// A full stack overwrites or evicts snapshots, so the snapshot taken by the
// first save after the checkpoint may be gone. UndoTo then still undoes the
// surviving later saves but reports ok false, since the value it ends on is
// not the one current at the checkpoint.
func (u *Undoable[T]) UndoTo(cp Checkpoint) (n int, ok bool) {
	return undoTo(cp, u.stack(), u.Undo)
}

// UndoTo is Undoable.UndoTo, capturing each discarded value on the redo
// stack.
func (r *Redoable[T]) UndoTo(cp Checkpoint) (n int, ok bool) {
	return undoTo(cp, r.stack(), r.Undo)
}

// RedoAll redoes until the redo stack is empty.
// It returns the number of redos performed.
func (r *Redoable[T]) RedoAll() int {
	n := 0
	for r.Redo() {
		n++
	}
	return n
}

func undoTo[T any](cp Checkpoint, saves storage.Stack[T], undo func() bool) (int, bool) {
	n := 0
	last := cp.seq
	for {
		seq, has := saves.Seq()
		if !has || seq < cp.seq || !undo() {
			break
		}
		last = seq
		n++
	}
	return n, last == cp.seq
}
