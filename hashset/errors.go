package hashset

import (
	"errors"
	"strings"
)

var (
	ErrNilCallback    = errors.New("hashset: nil callback")
	ErrNilValue       = errors.New("hashset: nil value")
	ErrNilCopy        = errors.New("hashset: copy callback returned nil")
	ErrInvalidSlot    = errors.New("hashset: invalid slot")
	ErrDestroyed      = errors.New("hashset: set destroyed")
	ErrDuplicate      = errors.New("hashset: value already present")
	ErrNotFound       = errors.New("hashset: value not present")
	ErrTableFull      = errors.New("hashset: no empty slot on probe sequence")
	ErrInvalidOptions = errors.New("hashset: invalid options")
)

type MultiError []error

func (m MultiError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range m {
		b.WriteString("\n- " + err.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is and errors.As see every collected error.
func (m MultiError) Unwrap() []error {
	return m
}
