package usecase

import "fmt"

// ErrorCode is the client-facing failure class. The handler maps
// ErrorInvalidRequest to 400 and everything else to 500.
type ErrorCode string

const (
	ErrorInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCompletionFailed ErrorCode = "COMPLETION_FAILED"
)

// Error carries a Code for status mapping, a snake_case Reason for logs and
// the underlying cause. Reason and Err never reach the caller.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
