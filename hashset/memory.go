package hashset

import (
	"sync/atomic"
	"unsafe"
)

// Accounting keeps an estimate of the bytes held by the value copies a set
// owns. The counter may be read from another goroutine, e.g. a metrics
// scrape.
type Accounting struct {
	used int64
}

func (a *Accounting) increase(v any) {
	atomic.AddInt64(&a.used, EstimateSize(v))
}

func (a *Accounting) decrease(v any) {
	atomic.AddInt64(&a.used, -EstimateSize(v))
}

// Used returns the current estimate in bytes.
func (a *Accounting) Used() int64 {
	if a == nil {
		return 0
	}
	return atomic.LoadInt64(&a.used)
}

// Wrap returns copy and free callbacks that keep acct up to date around the
// given ones.
func Wrap[T any](acct *Accounting, copy CopyFunc[T], free FreeFunc[T]) (CopyFunc[T], FreeFunc[T]) {
	wrappedCopy := func(v T) T {
		c := copy(v)
		acct.increase(c)
		return c
	}
	wrappedFree := func(v *T) {
		acct.decrease(*v)
		free(v)
	}
	return wrappedCopy, wrappedFree
}

// EstimateSize approximates the bytes held by v on a 64-bit platform; unknown
// types count as 0.
func EstimateSize(v any) int64 {
	switch value := v.(type) {
	case int, int64, uint, uint64, uintptr:
		return 8
	case int32, uint32, float32:
		return 4
	case int16, uint16:
		return 2
	case int8, uint8, bool:
		return 1
	case float64:
		return int64(unsafe.Sizeof(value))
	case string:
		// 16 bytes for string header on 64-bit system + actual string content
		return int64(16 + len(value))
	case []byte:
		// 24 bytes for slice header on 64-bit system + content
		return int64(24 + len(value))
	case []int:
		return int64(24 + len(value)*int(unsafe.Sizeof(int(0))))
	default:
		return 0
	}
}
