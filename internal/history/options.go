package history

import "github.com/dshills/revert/internal/history/storage"

// Option configures an Undoable or Redoable.
type Option[T any] func(*options[T])

type options[T any] struct {
	policy storage.Policy[T]
}

// WithPolicy sets the storage policy used for every history stack.
// The default is storage.Single.
func WithPolicy[T any](p storage.Policy[T]) Option[T] {
	return func(o *options[T]) {
		o.policy = p
	}
}

func buildOptions[T any](opts []Option[T]) (options[T], error) {
	o := options[T]{policy: storage.Single[T]()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == nil {
		return o, ErrNilPolicy
	}
	return o, nil
}
