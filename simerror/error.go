package simerror

import "fmt"

// Error is the error type returned by the freerun packages for malformed configuration,
// scenarios and snapshots.
type Error struct {
	Err   string
	cause error
}

// New returns an Error formatted with the given arguments. When the last argument is an
// error it is kept as the cause, so errors.Is and errors.As see through it.
func New(format string, args ...any) *Error {
	e := &Error{Err: fmt.Sprintf(format, args...)}
	if len(args) > 0 {
		if cause, ok := args[len(args)-1].(error); ok {
			e.cause = cause
		}
	}
	return e
}

func (e *Error) Error() string {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.cause
}
