package store

import "fmt"

// ValidationError is caught before any network call; no state mutation has
// happened when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotLoggedIn guards every authenticated mutation.
var ErrNotLoggedIn = &ValidationError{Message: "please log in"}
