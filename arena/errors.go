package arena

import "fmt"

// BencError is a structured error carrying the operation that failed and
// its underlying cause, adapted from the H5Error/WrapError pair in
// internal/utils/errors.go.
type BencError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *BencError) Error() string {
	if e.Cause == nil {
		return e.Context
	}
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Is/errors.As.
func (e *BencError) Unwrap() error {
	return e.Cause
}

// WrapError creates a contextual error, or returns nil if cause is nil.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &BencError{Context: context, Cause: cause}
}
