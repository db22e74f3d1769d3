package storage

import (
	"fmt"
	"iter"
)

type ringPolicy[T any] struct {
	n int
}

// Ring returns the ring policy with capacity n. Storing while full evicts
// the oldest entry, keeping the n most recent snapshots.
func Ring[T any](n int) (Policy[T], error) {
	if err := checkCapacity(n); err != nil {
		return nil, err
	}
	return ringPolicy[T]{n: n}, nil
}

// MustRing is like Ring but panics on an invalid capacity.
func MustRing[T any](n int) Policy[T] {
	p, err := Ring[T](n)
	if err != nil {
		panic(err)
	}
	return p
}

func (p ringPolicy[T]) Name() string { return NameRing }
func (p ringPolicy[T]) Capacity() int { return p.n }
func (p ringPolicy[T]) String() string { return fmt.Sprintf("%s(%d)", NameRing, p.n) }

func (p ringPolicy[T]) New() Stack[T] {
	return &ringStack[T]{slots: make([]T, p.n), seqs: make([]uint64, p.n)}
}

// ringStack keeps count entries starting at head, oldest first.
type ringStack[T any] struct {
	sequence
	slots []T
	seqs  []uint64
	head  int
	count int
}

func (r *ringStack[T]) index(i int) int {
	return (r.head + i) % len(r.slots)
}

func (r *ringStack[T]) HasData() bool { return r.count > 0 }

func (r *ringStack[T]) Capacity() int { return len(r.slots) }

func (r *ringStack[T]) Len() int { return r.count }

func (r *ringStack[T]) Store(v *T, x Transfer[T]) bool {
	if r.count == len(r.slots) {
		// The oldest slot becomes the newest.
		r.slots[r.head] = x.Take(v)
		r.seqs[r.head] = r.issue()
		r.head = r.index(1)
		return true
	}
	i := r.index(r.count)
	r.slots[i] = x.Take(v)
	r.seqs[i] = r.issue()
	r.count++
	return false
}

func (r *ringStack[T]) Restore(v *T) bool {
	if r.count == 0 {
		return false
	}
	r.count--
	*v = take(&r.slots[r.index(r.count)])
	return true
}

func (r *ringStack[T]) Seq() (uint64, bool) {
	if r.count == 0 {
		return 0, false
	}
	return r.seqs[r.index(r.count-1)], true
}

func (r *ringStack[T]) Peek() (*T, bool) {
	if r.count == 0 {
		return nil, false
	}
	return &r.slots[r.index(r.count-1)], true
}

func (r *ringStack[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < r.count; i++ {
			if !yield(i, &r.slots[r.index(i)]) {
				return
			}
		}
	}
}

func (r *ringStack[T]) CopyFrom(src Stack[T], x Transfer[T]) error {
	return copyStack[T](r, src, x)
}

func (r *ringStack[T]) MoveFrom(src Stack[T]) {
	moveStack[T](r, src)
}

func (r *ringStack[T]) Dispose() {
	for i := 0; i < r.count; i++ {
		release(&r.slots[r.index(i)])
	}
	r.head = 0
	r.count = 0
}
