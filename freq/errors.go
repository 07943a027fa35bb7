package freq

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when the input leaves a model undetermined,
// for example fitting an autoregressive model to a constant series.
var ErrDegenerate = errors.New("degenerate input")

// InsufficientDataError is returned when a series is shorter than the
// configured minimum sample count.
type InsufficientDataError struct {
	Got int
	Min int
}

// Error returns the error message string.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("Too little data (%d), dataset has to be larger than %d", e.Got, e.Min)
}

// ValidationError is returned when a parameter is out of its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func newValidationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
