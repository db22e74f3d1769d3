// Package history adds bounded undo and redo to a wrapped value.
//
// Unlike an edit log of commands, history here is a stack of whole-value
// snapshots. Any type can be wrapped; how snapshots are taken is decided
// once per type (see storage.Resolve) and how many are kept is decided by
// a storage.Policy.
//
// # Undoable
//
// Undoable keeps one stack of saved snapshots:
//
//	u := history.MustUndoable(3)
//	u.Save()     // remember 3
//	u.Set(10)
//	u.Undo()     // back to 3
//
// # Redoable
//
// Redoable adds a second stack that captures the value each Undo throws
// away, so Redo can bring it back:
//
//	r := history.MustRedoable("draft",
//	    history.WithPolicy(storage.MustArray[string](16)))
//	r.Save()
//	r.Set("final")
//	r.Undo() // "draft"
//	r.Redo() // "final"
//
// Redo does not push anything back onto the undo stack. Undo and redo
// mirror each other across one cycle only; Save again to make the redone
// value undoable.
//
// # Checkpoints
//
// A Checkpoint marks a point in the undo history so a caller can roll
// back several saves at once:
//
//	cp := r.Checkpoint()
//	// ... several Save/Set pairs ...
//	if _, ok := r.UndoTo(cp); !ok {
//	    // the stack was full and lost the checkpoint's snapshot
//	}
//
// Each stored snapshot carries a sequence number, so UndoTo can tell when
// overflow has overwritten or evicted the snapshot it needs.
//
// Neither type is safe for concurrent use.
package history
