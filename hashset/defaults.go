package hashset

import (
	"fmt"
	"hash/fnv"
)

// HashFNV hashes the %v rendering of v with FNV-1a. It works for any type
// whose formatting is stable, at the cost of an allocation per call.
func HashFNV[T any](v T) uint64 {
	keyString := fmt.Sprintf("%v", v)
	hasher := fnv.New64a()
	hasher.Write([]byte(keyString))
	return hasher.Sum64()
}

func HashString(s string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(s))
	return hasher.Sum64()
}

func HashBytes(b []byte) uint64 {
	hasher := fnv.New64a()
	hasher.Write(b)
	return hasher.Sum64()
}

// CopyIdentity is the copy callback for value types that own nothing.
func CopyIdentity[T any](v T) T {
	return v
}

// CopyBytes returns an independent copy of b.
func CopyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// CompareEqual is the comparator for comparable types: 1 when equal, 0 when
// not.
func CompareEqual[T comparable](a, b T) int {
	if a == b {
		return 1
	}
	return 0
}

func CompareBytes(a, b []byte) int {
	if string(a) == string(b) {
		return 1
	}
	return 0
}

// FreeZero resets *v to the zero value of T.
func FreeZero[T any](v *T) {
	var zero T
	*v = zero
}

// NewComparable creates a set of a comparable type with the default callbacks.
func NewComparable[T comparable](opts ...Option) (*HashSet[T], error) {
	return New[T](HashFNV[T], CopyIdentity[T], CompareEqual[T], FreeZero[T], opts...)
}

// NewStrings creates a set of strings, optionally accounting the bytes it owns.
func NewStrings(acct *Accounting, opts ...Option) (*HashSet[string], error) {
	copyFn, freeFn := CopyFunc[string](CopyIdentity[string]), FreeFunc[string](FreeZero[string])
	if acct != nil {
		copyFn, freeFn = Wrap(acct, copyFn, freeFn)
	}
	return New[string](HashString, copyFn, CompareEqual[string], freeFn, opts...)
}
