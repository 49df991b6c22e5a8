package helper

import "fmt"

// Error wraps an error with the operation that produced it.
type Error struct {
	Original error
	Trace    string
}

// NewError creates a new Error for the given operation.
func NewError(trace string, original error) *Error {
	return &Error{
		Original: original,
		Trace:    trace,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Trace, e.Original)
}

func (e *Error) Unwrap() error {
	return e.Original
}
