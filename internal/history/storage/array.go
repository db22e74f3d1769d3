package storage

import (
	"fmt"
	"iter"
)

type arrayPolicy[T any] struct {
	n int
}

// Array returns the fixed-array policy with capacity n. Each stack
// allocates its n slots once. Storing while full replaces the most recent
// entry, so the stack never grows past n.
func Array[T any](n int) (Policy[T], error) {
	if err := checkCapacity(n); err != nil {
		return nil, err
	}
	return arrayPolicy[T]{n: n}, nil
}

// MustArray is like Array but panics on an invalid capacity.
func MustArray[T any](n int) Policy[T] {
	p, err := Array[T](n)
	if err != nil {
		panic(err)
	}
	return p
}

func (p arrayPolicy[T]) Name() string { return NameArray }
func (p arrayPolicy[T]) Capacity() int { return p.n }
func (p arrayPolicy[T]) String() string { return fmt.Sprintf("%s(%d)", NameArray, p.n) }

func (p arrayPolicy[T]) New() Stack[T] {
	return &arrayStack[T]{slots: make([]T, p.n), seqs: make([]uint64, p.n)}
}

// arrayStack keeps entries in slots[:count], oldest first.
type arrayStack[T any] struct {
	sequence
	slots []T
	seqs  []uint64
	count int
}

func (a *arrayStack[T]) HasData() bool { return a.count > 0 }

func (a *arrayStack[T]) Capacity() int { return len(a.slots) }

func (a *arrayStack[T]) Len() int { return a.count }

func (a *arrayStack[T]) Store(v *T, x Transfer[T]) bool {
	if a.count == len(a.slots) {
		a.slots[a.count-1] = x.Take(v)
		a.seqs[a.count-1] = a.issue()
		return true
	}
	a.slots[a.count] = x.Take(v)
	a.seqs[a.count] = a.issue()
	a.count++
	return false
}

func (a *arrayStack[T]) Restore(v *T) bool {
	if a.count == 0 {
		return false
	}
	a.count--
	*v = take(&a.slots[a.count])
	return true
}

func (a *arrayStack[T]) Seq() (uint64, bool) {
	if a.count == 0 {
		return 0, false
	}
	return a.seqs[a.count-1], true
}

func (a *arrayStack[T]) Peek() (*T, bool) {
	if a.count == 0 {
		return nil, false
	}
	return &a.slots[a.count-1], true
}

func (a *arrayStack[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < a.count; i++ {
			if !yield(i, &a.slots[i]) {
				return
			}
		}
	}
}

func (a *arrayStack[T]) CopyFrom(src Stack[T], x Transfer[T]) error {
	return copyStack[T](a, src, x)
}

func (a *arrayStack[T]) MoveFrom(src Stack[T]) {
	moveStack[T](a, src)
}

func (a *arrayStack[T]) Dispose() {
	for i := 0; i < a.count; i++ {
		release(&a.slots[i])
	}
	a.count = 0
}
