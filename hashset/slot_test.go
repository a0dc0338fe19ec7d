package hashset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type freeCounter struct {
	copies int
	frees  int
}

func (c *freeCounter) copyInt(v *int) *int {
	c.copies++
	n := *v
	return &n
}

func (c *freeCounter) freeInt(v **int) {
	c.frees++
	*v = nil
}

func compareIntPtr(a, b *int) int {
	if *a == *b {
		return 1
	}
	return 0
}

func newIntPtrSlot(t *testing.T, c *freeCounter) *Slot[*int] {
	s, err := NewSlot[*int](c.copyInt, compareIntPtr, c.freeInt)
	require.NoError(t, err)
	return s
}

func intPtr(n int) *int {
	return &n
}

func TestNewSlotRequiresCallbacks(t *testing.T) {
	c := &freeCounter{}
	_, err := NewSlot[*int](nil, compareIntPtr, c.freeInt)
	assert.ErrorIs(t, err, ErrNilCallback)
	_, err = NewSlot[*int](c.copyInt, nil, c.freeInt)
	assert.ErrorIs(t, err, ErrNilCallback)
	_, err = NewSlot[*int](c.copyInt, compareIntPtr, nil)
	assert.ErrorIs(t, err, ErrNilCallback)

	s := newIntPtrSlot(t, c)
	assert.False(t, s.Occupied())
	assert.Equal(t, 0, s.HashCount())
}

func TestSlotSetStoresCopy(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)

	orig := intPtr(7)
	require.NoError(t, s.Set(orig))

	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, *v)
	assert.NotSame(t, orig, v, "slot must not alias the caller's value")

	*orig = 8
	v, _ = s.Value()
	assert.Equal(t, 7, *v)
}

func TestSlotSetFreesPrevious(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)

	require.NoError(t, s.Set(intPtr(1)))
	require.NoError(t, s.Set(intPtr(2)))
	assert.Equal(t, 2, c.copies)
	assert.Equal(t, 1, c.frees)

	v, _ := s.Value()
	assert.Equal(t, 2, *v)
}

func TestSlotSetRejectsNil(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)
	assert.ErrorIs(t, s.Set(nil), ErrNilValue)
	assert.False(t, s.Occupied())

	var nilSlot *Slot[*int]
	assert.ErrorIs(t, nilSlot.Set(intPtr(1)), ErrInvalidSlot)
}

func TestSlotClear(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)

	s.Clear()
	assert.Equal(t, 0, c.frees, "clearing an empty slot frees nothing")

	require.NoError(t, s.Set(intPtr(3)))
	s.Clear()
	assert.Equal(t, 1, c.frees)
	assert.False(t, s.Occupied())
	_, ok := s.Value()
	assert.False(t, ok)

	s.Clear()
	assert.Equal(t, 1, c.frees)
}

func TestSlotIsEqualTo(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)

	found, err := s.IsEqualTo(intPtr(4))
	assert.NoError(t, err)
	assert.False(t, found, "empty slot never matches")

	require.NoError(t, s.Set(intPtr(4)))
	found, err = s.IsEqualTo(intPtr(4))
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = s.IsEqualTo(intPtr(5))
	assert.NoError(t, err)
	assert.False(t, found)

	_, err = s.IsEqualTo(nil)
	assert.ErrorIs(t, err, ErrNilValue)

	var nilSlot *Slot[*int]
	_, err = nilSlot.IsEqualTo(intPtr(4))
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Equal(t, -1, nilSlot.HashCount())
}

// A comparator returning zero for equal values inverts every answer.
func TestSlotComparatorDirection(t *testing.T) {
	threeWay := func(a, b int) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	s, err := NewSlot[int](CopyIdentity[int], threeWay, FreeZero[int])
	require.NoError(t, err)
	require.NoError(t, s.Set(10))

	found, err := s.IsEqualTo(10)
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = s.IsEqualTo(11)
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestSlotRelease(t *testing.T) {
	c := &freeCounter{}
	s := newIntPtrSlot(t, c)
	require.NoError(t, s.Set(intPtr(1)))
	s.incHashCount()

	s.release()
	assert.Equal(t, 1, c.frees)
	assert.Equal(t, 0, s.HashCount())
	assert.ErrorIs(t, s.Set(intPtr(2)), ErrNilCallback)
}

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]int
	var sl []byte
	var e error
	assert.True(t, isNil(p))
	assert.True(t, isNil(m))
	assert.True(t, isNil(sl))
	assert.True(t, isNil(e))
	assert.False(t, isNil(0))
	assert.False(t, isNil(""))
	assert.False(t, isNil([]byte{}))
}

func TestSlotSetRejectsNilCopy(t *testing.T) {
	c := &freeCounter{}
	copyFn := func(v *int) *int {
		if *v == 5 {
			return nil
		}
		return c.copyInt(v)
	}
	s, err := NewSlot[*int](copyFn, compareIntPtr, c.freeInt)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Set(intPtr(5)), ErrNilCopy)
	assert.False(t, s.Occupied())
	assert.Equal(t, 0, c.frees)

	require.NoError(t, s.Set(intPtr(1)))
	assert.ErrorIs(t, s.Set(intPtr(5)), ErrNilCopy)
	assert.False(t, s.Occupied(), "the previous value is freed before copying")
	assert.Equal(t, c.copies, c.frees)
}
