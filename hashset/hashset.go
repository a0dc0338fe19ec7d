package hashset

import (
	"fmt"

	"go.uber.org/zap"
)

// HashSet is an open-addressed set of owned copies of caller values.
// It is not safe for concurrent use.
type HashSet[T any] struct {
	slots    []*Slot[T]
	capacity int
	size     int

	hash    HashFunc[T]
	copy    CopyFunc[T]
	compare CompareFunc[T]
	free    FreeFunc[T]

	opts      Options
	logger    *zap.Logger
	destroyed bool

	grows   uint64
	shrinks uint64
}

// Stats is a snapshot of a set's bookkeeping.
type Stats struct {
	Size       int
	Capacity   int
	LoadFactor float64
	Grows      uint64
	Shrinks    uint64
}

func New[T any](hash HashFunc[T], copy CopyFunc[T], compare CompareFunc[T], free FreeFunc[T], opts ...Option) (*HashSet[T], error) {
	if hash == nil || copy == nil || compare == nil || free == nil {
		return nil, ErrNilCallback
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	h := &HashSet[T]{
		hash:    hash,
		copy:    copy,
		compare: compare,
		free:    free,
		opts:    o,
		logger:  o.Logger,
	}
	slots, err := h.newSlots(o.InitialCapacity)
	if err != nil {
		return nil, err
	}
	h.slots = slots
	h.capacity = o.InitialCapacity
	return h, nil
}

func (h *HashSet[T]) newSlots(capacity int) ([]*Slot[T], error) {
	slots := make([]*Slot[T], capacity)
	for i := range slots {
		s, err := NewSlot(h.copy, h.compare, h.free)
		if err != nil {
			return nil, err
		}
		slots[i] = s
	}
	return slots, nil
}

func (h *HashSet[T]) live() bool {
	return h != nil && !h.destroyed
}

// Destroy frees every owned value and the slot array. Any later call on h
// fails as if h were nil.
func (h *HashSet[T]) Destroy() {
	if !h.live() {
		return
	}
	for _, s := range h.slots {
		s.release()
	}
	h.slots = nil
	h.capacity = 0
	h.size = 0
	h.hash, h.copy, h.compare, h.free = nil, nil, nil, nil
	h.destroyed = true
}

// Insert stores a copy of v. The attempt-0 slot of v's probe sequence has its
// hash count bumped even when v lands further along the sequence. On error
// the set is left as it was before the call.
func (h *HashSet[T]) Insert(v T) error {
	if !h.live() {
		return ErrDestroyed
	}
	if isNil(v) {
		return ErrNilValue
	}
	if h.Contains(v) {
		return ErrDuplicate
	}

	hv := h.hash(v)
	for k := 0; k < h.capacity; k++ {
		s := h.slots[probeIndex(hv, k, h.capacity)]
		if k == 0 {
			s.incHashCount()
		}
		if s.Occupied() {
			continue
		}
		if err := s.Set(v); err != nil {
			h.slots[primaryIndex(hv, h.capacity)].decHashCount()
			return fmt.Errorf("insert: %w", err)
		}
		h.size++
		if h.LoadFactor() >= h.opts.MaxLoadFactor {
			if err := h.rehash(h.capacity * h.opts.GrowthFactor); err != nil {
				s.Clear()
				h.size--
				h.slots[primaryIndex(hv, h.capacity)].decHashCount()
				return err
			}
		}
		return nil
	}
	h.slots[primaryIndex(hv, h.capacity)].decHashCount()
	return ErrTableFull
}

// Contains scans every slot in index order. Probe chains are not followed,
// so the answer never depends on the capacity at insertion time.
func (h *HashSet[T]) Contains(v T) bool {
	if !h.live() || isNil(v) {
		return false
	}
	for _, s := range h.slots {
		if ok, _ := s.IsEqualTo(v); ok {
			return true
		}
	}
	return false
}

// Erase removes v. If the shrink that follows fails, v stays removed and the
// set keeps its current capacity.
func (h *HashSet[T]) Erase(v T) error {
	if !h.live() {
		return ErrDestroyed
	}
	if isNil(v) {
		return ErrNilValue
	}
	if !h.Contains(v) {
		return ErrNotFound
	}

	for _, s := range h.slots {
		if ok, _ := s.IsEqualTo(v); !ok {
			continue
		}
		s.Clear()
		h.slots[primaryIndex(h.hash(v), h.capacity)].decHashCount()
		h.size--
		if h.LoadFactor() <= h.opts.MinLoadFactor && h.canShrink() {
			return h.rehash(h.capacity / h.opts.GrowthFactor)
		}
		return nil
	}
	return ErrNotFound
}

func (h *HashSet[T]) canShrink() bool {
	return h.capacity/h.opts.GrowthFactor >= h.opts.MinCapacity
}

// LoadFactor returns size/capacity, or -1 for a nil or destroyed set.
func (h *HashSet[T]) LoadFactor() float64 {
	if !h.live() || h.capacity == 0 {
		return -1
	}
	return float64(h.size) / float64(h.capacity)
}

// Clear frees every stored value and zeroes every hash count. The capacity
// is left unchanged.
func (h *HashSet[T]) Clear() {
	if !h.live() {
		return
	}
	for _, s := range h.slots {
		if s.Occupied() {
			s.Clear()
			h.size--
		}
		// every slot, not only occupied ones: an empty primary slot can still
		// carry counts from values that probed past it
		s.hashCount = 0
	}
}

// At returns the value stored in slot i. It is direct slot access, meant for
// enumeration; the value stays owned by the set.
func (h *HashSet[T]) At(i int) (T, bool) {
	if !h.live() || i < 0 || i >= h.capacity {
		var zero T
		return zero, false
	}
	return h.slots[i].Value()
}

// HashCount returns the hash count of slot i, or -1 when i is out of range.
func (h *HashSet[T]) HashCount(i int) int {
	if !h.live() || i < 0 || i >= h.capacity {
		return -1
	}
	return h.slots[i].HashCount()
}

// Len returns the number of stored values, 0 once destroyed.
func (h *HashSet[T]) Len() int {
	if !h.live() {
		return 0
	}
	return h.size
}

// Cap returns the number of slots, 0 once destroyed.
func (h *HashSet[T]) Cap() int {
	if !h.live() {
		return 0
	}
	return h.capacity
}

// Values returns the stored values in slot order.
func (h *HashSet[T]) Values() []T {
	if !h.live() {
		return nil
	}
	values := make([]T, 0, h.size)
	for _, s := range h.slots {
		if v, ok := s.Value(); ok {
			values = append(values, v)
		}
	}
	return values
}

func (h *HashSet[T]) Stats() Stats {
	if !h.live() {
		return Stats{LoadFactor: -1}
	}
	return Stats{
		Size:       h.size,
		Capacity:   h.capacity,
		LoadFactor: h.LoadFactor(),
		Grows:      h.grows,
		Shrinks:    h.shrinks,
	}
}
