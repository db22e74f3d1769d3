package history

import (
	"errors"

	"github.com/dshills/revert/internal/history/storage"
)

// Common errors for history construction and copying.
var (
	ErrNilPolicy = errors.New("nil storage policy")

	// ErrNotTransferable is returned when the wrapped type can be neither
	// copied nor moved into a snapshot.
	ErrNotTransferable = storage.ErrNotTransferable

	// ErrNotCopyable is returned when copying a history of a move-only type.
	ErrNotCopyable = storage.ErrNotCopyable

	ErrInvalidCapacity = storage.ErrInvalidCapacity
)
