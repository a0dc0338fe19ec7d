package hashset

import (
	"fmt"

	"go.uber.org/zap"
)

// rehash rebuilds the slot array at newCapacity, re-probing every stored
// value against it in old slot order. Hash counts are recomputed from
// scratch the same way Insert counts them.
func (h *HashSet[T]) rehash(newCapacity int) error {
	oldCapacity := h.capacity
	slots, err := h.newSlots(newCapacity)
	if err != nil {
		return err
	}

	for _, old := range h.slots {
		v, ok := old.Value()
		if !ok {
			continue
		}
		hv := h.hash(v)
		placed := false
		for k := 0; k < newCapacity; k++ {
			s := slots[probeIndex(hv, k, newCapacity)]
			if k == 0 {
				s.incHashCount()
			}
			if s.Occupied() {
				continue
			}
			if err := s.Set(v); err != nil {
				releaseSlots(slots)
				return fmt.Errorf("rehash to %d: %w", newCapacity, err)
			}
			placed = true
			break
		}
		if !placed {
			releaseSlots(slots)
			return fmt.Errorf("rehash to %d: %w", newCapacity, ErrTableFull)
		}
	}

	releaseSlots(h.slots)
	h.slots = slots
	h.capacity = newCapacity

	if newCapacity > oldCapacity {
		h.grows++
	} else {
		h.shrinks++
	}
	h.logger.Debug("rehashed",
		zap.Int("from", oldCapacity),
		zap.Int("to", newCapacity),
		zap.Int("size", h.size))
	return nil
}

// releaseSlots frees every value held by slots. On a failed rehash it is
// called on the new array only, so the set keeps its old one intact.
func releaseSlots[T any](slots []*Slot[T]) {
	for _, s := range slots {
		s.release()
	}
}
