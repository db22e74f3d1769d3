package storage

import "iter"

type singlePolicy[T any] struct{}

// Single returns the single-slot policy. Its stacks hold at most one
// entry, and storing while full replaces that entry.
func Single[T any]() Policy[T] {
	return singlePolicy[T]{}
}

func (singlePolicy[T]) Name() string { return NameSingle }
func (singlePolicy[T]) Capacity() int { return 1 }
func (singlePolicy[T]) New() Stack[T] { return &singleStack[T]{} }
func (singlePolicy[T]) String() string { return NameSingle }

// singleStack is an optional value: the slot is only meaningful while
// present is set, and is zeroed whenever it is vacated.
type singleStack[T any] struct {
	sequence
	slot    T
	seq     uint64
	present bool
}

func (s *singleStack[T]) HasData() bool { return s.present }

func (s *singleStack[T]) Capacity() int { return 1 }

func (s *singleStack[T]) Len() int {
	if s.present {
		return 1
	}
	return 0
}

func (s *singleStack[T]) Store(v *T, x Transfer[T]) bool {
	overwrote := s.present
	s.slot = x.Take(v)
	s.seq = s.issue()
	s.present = true
	return overwrote
}

func (s *singleStack[T]) Restore(v *T) bool {
	if !s.present {
		return false
	}
	*v = take(&s.slot)
	s.present = false
	return true
}

func (s *singleStack[T]) Seq() (uint64, bool) {
	return s.seq, s.present
}

func (s *singleStack[T]) Peek() (*T, bool) {
	if !s.present {
		return nil, false
	}
	return &s.slot, true
}

func (s *singleStack[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if s.present {
			yield(0, &s.slot)
		}
	}
}

func (s *singleStack[T]) CopyFrom(src Stack[T], x Transfer[T]) error {
	return copyStack[T](s, src, x)
}

func (s *singleStack[T]) MoveFrom(src Stack[T]) {
	moveStack[T](s, src)
}

func (s *singleStack[T]) Dispose() {
	if s.present {
		release(&s.slot)
		s.present = false
	}
}
