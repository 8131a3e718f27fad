package plans

import "errors"

var (
	ErrNotFound          = errors.New("plan not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrExportUnavailable = errors.New("plan export unavailable")
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
