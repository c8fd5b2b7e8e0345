package tracker

import (
	"errors"
	"fmt"
)

// InvalidArgumentError reports a semantically invalid input at the
// service boundary: an empty name, a negative deadline, or a weekday
// index outside 0-6.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// NotFoundError reports a mutation that referenced an entity absent
// from its collection, usually because it was already deleted.
type NotFoundError struct {
	Kind string // "goal" or "daily task"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ie *InvalidArgumentError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
