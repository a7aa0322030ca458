package httpclient

import "time"

// RetryPolicy is passed explicitly instead of tagging retried requests with
// hidden flags. Retries only apply to network-class failures; HTTP error
// statuses are never retried.
type RetryPolicy struct {
	// Retries is the number of additional attempts after the first failure.
	Retries int
	// Backoff is the base delay; attempt n waits n×Backoff.
	Backoff time.Duration
}

// Delay returns the wait before retry attempt n (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.Backoff
}
