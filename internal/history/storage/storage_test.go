package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/revert/internal/wrap"
)

type tags struct {
	names []string
}

func (t tags) Clone() tags {
	return tags{names: append([]string(nil), t.names...)}
}

type conn struct {
	wrap.NoCopy
	id int
}

func (c *conn) Move() conn {
	out := conn{id: c.id}
	c.id = 0
	return out
}

type frozen struct {
	wrap.NoCopy
}

func collect[T any](s Stack[T]) []T {
	var out []T
	for _, v := range s.All() {
		out = append(out, *v)
	}
	return out
}

func modeOf[T any]() (Mode, error) {
	x, err := Resolve[T]()
	return x.Mode(), err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		mode func() (Mode, error)
		want Mode
	}{
		{"plain", modeOf[int], ModeCopy},
		{"struct", modeOf[struct{ A, B int }], ModeCopy},
		{"pointer to pinned", modeOf[*frozen], ModeCopy},
		{"cloner", modeOf[tags], ModeClone},
		{"mover", modeOf[conn], ModeMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.mode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRejectsPinnedTypes(t *testing.T) {
	_, err := Resolve[frozen]()
	require.ErrorIs(t, err, ErrNotTransferable)

	assert.Panics(t, func() { MustResolve[frozen]() })
}

func TestTransferCopyKeepsSource(t *testing.T) {
	x := MustResolve[tags]()
	src := tags{names: []string{"a"}}

	snap := x.Take(&src)
	snap.names[0] = "b"

	assert.Equal(t, "a", src.names[0])
}

func TestTransferMoveConsumesSource(t *testing.T) {
	x := MustResolve[conn]()
	src := conn{id: 9}

	snap := x.Take(&src)

	assert.Equal(t, 9, snap.id)
	assert.Equal(t, 0, src.id)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "copy", ModeCopy.String())
	assert.Equal(t, "clone", ModeClone.String())
	assert.Equal(t, "move", ModeMove.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestPolicyConstruction(t *testing.T) {
	_, err := Array[int](0)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = Ring[int](-1)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = Array[int](MaxCapacity + 1)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = Ring[int](MaxCapacity << 8)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	p, err := Array[int](MaxCapacity)
	require.NoError(t, err)
	assert.Equal(t, MaxCapacity, p.Capacity())

	assert.Panics(t, func() { MustArray[int](0) })
	assert.Panics(t, func() { MustRing[int](0) })

	assert.Equal(t, 1, Single[int]().Capacity())
	assert.Equal(t, 3, MustArray[int](3).Capacity())
	assert.Equal(t, 4, MustRing[int](4).Capacity())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantName string
		wantCap  int
		wantErr  error
	}{
		{"", 0, NameSingle, 1, nil},
		{NameSingle, 10, NameSingle, 1, nil},
		{NameArray, 3, NameArray, 3, nil},
		{NameRing, 5, NameRing, 5, nil},
		{NameArray, 0, "", 0, ErrInvalidCapacity},
		{NameRing, MaxCapacity + 1, "", 0, ErrInvalidCapacity},
		{"stack", 2, "", 0, ErrUnknownPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Lookup[string](tt.name, tt.capacity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantCap, p.Capacity())
		})
	}

	assert.Equal(t, []string{NameSingle, NameArray, NameRing}, Names())
}

func TestSingleStack(t *testing.T) {
	s := Single[int]().New()
	x := MustResolve[int]()

	assert.False(t, s.HasData())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Capacity())

	v := 1
	assert.False(t, s.Store(&v, x))
	assert.True(t, s.HasData())
	assert.Equal(t, 1, s.Len())

	v = 2
	assert.True(t, s.Store(&v, x), "second store replaces the entry")
	assert.Equal(t, 1, s.Len())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, *top)

	v = 99
	require.True(t, s.Restore(&v))
	assert.Equal(t, 2, v)
	assert.False(t, s.HasData())

	assert.False(t, s.Restore(&v))
	assert.Equal(t, 2, v)

	_, ok = s.Peek()
	assert.False(t, ok)
}

func TestArrayStackLIFO(t *testing.T) {
	s := MustArray[int](3).New()
	x := MustResolve[int]()

	for i := 1; i <= 3; i++ {
		v := i * 10
		assert.False(t, s.Store(&v, x))
		assert.Equal(t, i, s.Len())
	}
	assert.Equal(t, []int{10, 20, 30}, collect(s))

	var v int
	for _, want := range []int{30, 20, 10} {
		require.True(t, s.Restore(&v))
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Restore(&v))
}

func TestArrayStackStoreWhileFullOverwritesTop(t *testing.T) {
	s := MustArray[int](3).New()
	x := MustResolve[int]()

	for _, n := range []int{1, 2, 3} {
		v := n
		s.Store(&v, x)
	}

	v := 4
	assert.True(t, s.Store(&v, x))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 4}, collect(s))

	v = 5
	assert.True(t, s.Store(&v, x))
	assert.Equal(t, []int{1, 2, 5}, collect(s))

	var got int
	require.True(t, s.Restore(&got))
	assert.Equal(t, 5, got)
	require.True(t, s.Restore(&got))
	assert.Equal(t, 2, got)
}

func TestRingStackEvictsOldest(t *testing.T) {
	s := MustRing[int](3).New()
	x := MustResolve[int]()

	for _, n := range []int{1, 2, 3} {
		v := n
		assert.False(t, s.Store(&v, x))
	}

	v := 4
	assert.True(t, s.Store(&v, x))
	assert.Equal(t, []int{2, 3, 4}, collect(s))

	v = 5
	assert.True(t, s.Store(&v, x))
	assert.Equal(t, []int{3, 4, 5}, collect(s))

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, *top)

	var got int
	for _, want := range []int{5, 4, 3} {
		require.True(t, s.Restore(&got))
		assert.Equal(t, want, got)
	}
	assert.False(t, s.HasData())

	v = 6
	s.Store(&v, x)
	assert.Equal(t, []int{6}, collect(s))
}

func TestSequenceNumbers(t *testing.T) {
	x := MustResolve[int]()

	tests := []struct {
		policy Policy[int]
		// sequence numbers on the stack after storing 1..4, oldest first
		want []uint64
	}{
		{Single[int](), []uint64{3}},
		{MustArray[int](3), []uint64{0, 1, 3}},
		{MustRing[int](3), []uint64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name(), func(t *testing.T) {
			s := tt.policy.New()
			_, ok := s.Seq()
			assert.False(t, ok)
			assert.Equal(t, uint64(0), s.NextSeq())

			for n := 1; n <= 4; n++ {
				v := n
				s.Store(&v, x)
			}
			assert.Equal(t, uint64(4), s.NextSeq())

			var got int
			for i := len(tt.want) - 1; i >= 0; i-- {
				seq, ok := s.Seq()
				require.True(t, ok)
				assert.Equal(t, tt.want[i], seq)
				require.True(t, s.Restore(&got))
			}
			_, ok = s.Seq()
			assert.False(t, ok)

			// Numbers are never reused, even after the stack empties.
			v := 9
			s.Store(&v, x)
			seq, _ := s.Seq()
			assert.Equal(t, uint64(4), seq)

			s.Dispose()
			assert.Equal(t, uint64(5), s.NextSeq())
		})
	}
}

func TestRestoreReleasesSlot(t *testing.T) {
	policies := []Policy[[]int]{Single[[]int](), MustArray[[]int](2), MustRing[[]int](2)}
	x := MustResolve[[]int]()

	for _, p := range policies {
		t.Run(p.Name(), func(t *testing.T) {
			s := p.New()
			v := []int{1}
			s.Store(&v, x)

			var got []int
			require.True(t, s.Restore(&got))
			assert.Equal(t, []int{1}, got)

			switch st := s.(type) {
			case *singleStack[[]int]:
				assert.Nil(t, st.slot)
			case *arrayStack[[]int]:
				assert.Nil(t, st.slots[0])
			case *ringStack[[]int]:
				assert.Nil(t, st.slots[0])
			}
		})
	}
}

func TestStoreMovesNoCopyValues(t *testing.T) {
	s := MustArray[conn](2).New()
	x := MustResolve[conn]()

	live := conn{id: 3}
	s.Store(&live, x)
	assert.Equal(t, 0, live.id, "live value is moved-from after store")

	require.True(t, s.Restore(&live))
	assert.Equal(t, 3, live.id)
}

func TestCopyFrom(t *testing.T) {
	x := MustResolve[tags]()
	src := MustArray[tags](3).New()
	for _, n := range []string{"a", "b"} {
		v := tags{names: []string{n}}
		src.Store(&v, x)
	}

	dst := MustArray[tags](3).New()
	require.NoError(t, dst.CopyFrom(src, x))
	assert.Equal(t, 2, dst.Len())

	top, _ := dst.Peek()
	top.names[0] = "changed"
	srcTop, _ := src.Peek()
	assert.Equal(t, "b", srcTop.names[0], "copies must be independent")

	require.NoError(t, dst.CopyFrom(dst, x))
	assert.Equal(t, 2, dst.Len())
}

func TestCopyFromSmallerStackKeepsPolicyRule(t *testing.T) {
	x := MustResolve[int]()
	src := MustArray[int](3).New()
	for _, n := range []int{1, 2, 3} {
		v := n
		src.Store(&v, x)
	}

	single := Single[int]().New()
	require.NoError(t, single.CopyFrom(src, x))
	assert.Equal(t, []int{3}, collect(single))

	ring := MustRing[int](2).New()
	require.NoError(t, ring.CopyFrom(src, x))
	assert.Equal(t, []int{2, 3}, collect(ring))
}

func TestCopyFromRejectsMoveOnly(t *testing.T) {
	x := MustResolve[conn]()
	src := Single[conn]().New()
	dst := Single[conn]().New()
	assert.ErrorIs(t, dst.CopyFrom(src, x), ErrNotCopyable)
}

func TestMoveFrom(t *testing.T) {
	x := MustResolve[int]()
	src := MustRing[int](3).New()
	for _, n := range []int{1, 2, 3, 4} {
		v := n
		src.Store(&v, x)
	}

	dst := MustArray[int](3).New()
	v := 100
	dst.Store(&v, x)

	dst.MoveFrom(src)
	assert.Equal(t, []int{2, 3, 4}, collect(dst))
	assert.False(t, src.HasData())
	assert.Equal(t, 0, src.Len())
}

func TestDispose(t *testing.T) {
	x := MustResolve[string]()
	for _, p := range []Policy[string]{Single[string](), MustArray[string](2), MustRing[string](2)} {
		t.Run(p.Name(), func(t *testing.T) {
			s := p.New()
			for _, v := range []string{"a", "b", "c"} {
				s.Store(&v, x)
			}
			s.Dispose()
			assert.False(t, s.HasData())
			assert.Equal(t, 0, s.Len())
			assert.Empty(t, collect(s))
		})
	}
}
