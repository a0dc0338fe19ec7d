package hashset

import "reflect"

type (
	HashFunc[T any] func(v T) uint64
	CopyFunc[T any] func(v T) T
	// CompareFunc reports equality with a non-zero result and inequality with
	// zero. This is the reverse of three-way comparators such as cmp.Compare.
	CompareFunc[T any] func(a, b T) int
	FreeFunc[T any]    func(v *T)
)

// Slot is a single bucket of a HashSet: at most one owned value plus the
// number of values whose primary address is this slot.
type Slot[T any] struct {
	value     T
	occupied  bool
	hashCount int

	copy    CopyFunc[T]
	compare CompareFunc[T]
	free    FreeFunc[T]
}

func NewSlot[T any](copy CopyFunc[T], compare CompareFunc[T], free FreeFunc[T]) (*Slot[T], error) {
	if copy == nil || compare == nil || free == nil {
		return nil, ErrNilCallback
	}
	return &Slot[T]{
		copy:    copy,
		compare: compare,
		free:    free,
	}, nil
}

// IsEqualTo reports whether the slot holds a value equal to v. An error means
// the check itself could not be made.
func (s *Slot[T]) IsEqualTo(v T) (bool, error) {
	if s == nil {
		return false, ErrInvalidSlot
	}
	if isNil(v) {
		return false, ErrNilValue
	}
	if s.compare == nil {
		return false, ErrNilCallback
	}
	if !s.occupied || s.compare(s.value, v) == 0 {
		return false, nil
	}
	return true, nil
}

// Set stores a fresh copy of v, freeing whatever the slot held before. When
// the copy callback yields a nil value the slot is left empty.
func (s *Slot[T]) Set(v T) error {
	if s == nil {
		return ErrInvalidSlot
	}
	if isNil(v) {
		return ErrNilValue
	}
	if s.copy == nil || s.free == nil {
		return ErrNilCallback
	}
	if s.occupied {
		s.Clear()
	}
	c := s.copy(v)
	if isNil(c) {
		return ErrNilCopy
	}
	s.value = c
	s.occupied = true
	return nil
}

// Clear frees the owned value. It is a no-op on an empty slot.
func (s *Slot[T]) Clear() {
	if s == nil || s.free == nil || !s.occupied {
		return
	}
	s.free(&s.value)
	var zero T
	s.value = zero
	s.occupied = false
}

// HashCount returns -1 for a nil slot.
func (s *Slot[T]) HashCount() int {
	if s == nil {
		return -1
	}
	return s.hashCount
}

func (s *Slot[T]) Occupied() bool {
	return s != nil && s.occupied
}

// Value returns the stored value. It is still owned by the slot.
func (s *Slot[T]) Value() (T, bool) {
	if s == nil || !s.occupied {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (s *Slot[T]) incHashCount() {
	s.hashCount++
}

func (s *Slot[T]) decHashCount() {
	if s.hashCount > 0 {
		s.hashCount--
	}
}

// release frees the value and unbinds the callbacks; the slot is unusable
// afterwards.
func (s *Slot[T]) release() {
	if s == nil {
		return
	}
	s.Clear()
	s.hashCount = 0
	s.copy, s.compare, s.free = nil, nil, nil
}

// isNil reports whether v is a nil pointer, map, slice, func, chan or
// interface. Values of other kinds are never nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
