package store

import (
	"errors"
	"fmt"
)

// CorruptDataError indicates the persisted snapshot exists but cannot
// be parsed into the expected shape. Callers surface it to the
// operator instead of discarding user data.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// IsCorruptData reports whether err is a CorruptDataError.
func IsCorruptData(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}

// PersistenceError indicates an I/O failure while loading or saving a
// snapshot. When Save returns one, nothing was committed.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
