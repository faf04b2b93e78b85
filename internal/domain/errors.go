package domain

import "fmt"

// ErrorCode discriminates the failure classes the service can return.
type ErrorCode string

const (
	ErrorUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrorExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrorSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrorUpstream          ErrorCode = "UPSTREAM_ERROR"
	ErrorInvalidInput      ErrorCode = "INVALID_INPUT"
)

// Error is the typed failure every core operation returns instead of
// stringified panics. Message is safe to surface to the caller verbatim.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a typed Error wrapping an optional cause.
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}
