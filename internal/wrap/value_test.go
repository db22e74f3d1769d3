package wrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type version struct {
	major, minor int
}

func (v version) Equal(o version) bool { return v == o }

func (v version) Compare(o version) int {
	if v.major != o.major {
		return v.major - o.major
	}
	return v.minor - o.minor
}

type lines struct {
	items []string
}

func (l lines) Clone() lines {
	return lines{items: append([]string(nil), l.items...)}
}

type handle struct {
	NoCopy
	fd int
}

func (h *handle) Move() handle {
	out := handle{fd: h.fd}
	h.fd = -1
	return out
}

type pinned struct {
	NoCopy
	n int
}

func TestValueAccess(t *testing.T) {
	v := New(point{X: 1, Y: 2})
	assert.Equal(t, point{X: 1, Y: 2}, v.Get())

	v.Ptr().X = 10
	assert.Equal(t, 10, v.Get().X)

	v.Set(point{X: 3})
	assert.Equal(t, point{X: 3}, v.Get())
}

func TestZeroValueUsable(t *testing.T) {
	var v Value[string]
	assert.Equal(t, "", v.Get())
	v.Set("x")
	assert.Equal(t, "x", v.String())
}

func TestAssignClonesSharedState(t *testing.T) {
	src := New(lines{items: []string{"a", "b"}})
	dst := New(lines{})

	dst.Assign(src)
	dst.Ptr().items[0] = "changed"

	assert.Equal(t, "a", src.Get().items[0], "source must not observe writes to the copy")
	assert.Equal(t, "changed", dst.Get().items[0])
}

func TestAssignSelf(t *testing.T) {
	v := New(5)
	v.Assign(v)
	assert.Equal(t, 5, v.Get())
	v.Take(v)
	assert.Equal(t, 5, v.Get())
}

func TestTakeUsesMover(t *testing.T) {
	src := New(handle{fd: 7})
	dst := New(handle{})

	dst.Take(src)

	assert.Equal(t, 7, dst.Get().fd)
	assert.Equal(t, -1, src.Get().fd)
}

func TestTakeZeroesPlainValues(t *testing.T) {
	src := New([]int{1, 2, 3})
	dst := New[[]int](nil)

	dst.Take(src)

	assert.Equal(t, []int{1, 2, 3}, dst.Get())
	assert.Nil(t, src.Get())
}

func TestSwap(t *testing.T) {
	a := New(1)
	b := New(2)
	a.Swap(b)
	assert.Equal(t, 2, a.Get())
	assert.Equal(t, 1, b.Get())
}

func TestCapabilities(t *testing.T) {
	assert.True(t, CanClone[lines]())
	assert.False(t, CanClone[point]())

	assert.True(t, CanMove[handle]())
	assert.False(t, CanMove[pinned]())

	assert.True(t, IsNoCopy[handle]())
	assert.True(t, IsNoCopy[pinned]())
	assert.False(t, IsNoCopy[int]())
	assert.False(t, IsNoCopy[*pinned]())
}

func TestCopyOfLeavesSource(t *testing.T) {
	src := lines{items: []string{"x"}}
	cp := CopyOf(&src)
	cp.items[0] = "y"
	require.Len(t, src.items, 1)
	assert.Equal(t, "x", src.items[0])
}

func TestOrderedComparisons(t *testing.T) {
	one, two, three := New(1), New(2), New(3)

	assert.True(t, Equal(one, one))
	assert.False(t, Equal(one, two))
	assert.True(t, EqualTo(two, 2))

	assert.True(t, Less(one, two))
	assert.True(t, LessEq(two, two))
	assert.True(t, Greater(three, two))
	assert.True(t, GreaterEq(three, three))
	assert.False(t, Greater(one, three))

	assert.Negative(t, Compare(one, three))
	assert.Zero(t, CompareTo(three, 3))
	assert.Positive(t, CompareTo(three, 1))
}

func TestMethodComparisons(t *testing.T) {
	a := New(version{1, 2})
	b := New(version{1, 3})

	assert.True(t, EqualFunc(a, a))
	assert.False(t, EqualFunc(a, b))
	assert.True(t, EqualFuncTo(b, version{1, 3}))

	assert.Negative(t, CompareFunc(a, b))
	assert.Positive(t, CompareFuncTo(b, version{0, 9}))
}
