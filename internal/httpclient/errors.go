package httpclient

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned after a 401 response. Both tokens have already
// been evicted from storage by the time callers see it.
var ErrUnauthorized = errors.New("unauthorized")

// NetworkError wraps a transport failure that survived the retry budget.
type NetworkError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error after %d attempt(s) to %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError carries a non-2xx response with the server's message field
// when one was present, so business errors surface verbatim.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// DecodeError marks a 2xx response whose body did not match the expected
// schema. Malformed responses become typed failures, never silently
// defaulted fields.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
