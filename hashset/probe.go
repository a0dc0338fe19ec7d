package hashset

// triangular returns the k-th triangular number, the offset of probe
// attempt k from the primary address.
func triangular(k int) uint64 {
	u := uint64(k)
	return (u + u*u) / 2
}

// probeIndex is the slot tried on the given attempt. capacity must be a power
// of two; under that condition attempts 0..capacity-1 visit every index once.
func probeIndex(hash uint64, attempt, capacity int) int {
	return int((hash + triangular(attempt)) & uint64(capacity-1))
}

// primaryIndex is the attempt-0 address of hash for capacity.
func primaryIndex(hash uint64, capacity int) int {
	return probeIndex(hash, 0, capacity)
}
