package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error type tags, used by transports to render structured errors.
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeBackend    = "backend_error"
)

// ValidationError is a caller contract violation (e.g. missing version). It
// is raised before any backend call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// BackendError wraps a failure of the backend query client. The engine never
// retries or swallows these; retry policy belongs to the caller.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ErrorType returns the type tag for err, or "" for untyped errors.
func ErrorType(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrorTypeValidation
	}
	var be *BackendError
	if errors.As(err, &be) {
		return ErrorTypeBackend
	}
	return ""
}
