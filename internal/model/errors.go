package model

import (
	"fmt"
	"time"
)

// HTTPError marks a fetch that came back with a non-success status. The
// retry layer branches on StatusCode to classify the failure as transient
// or permanent; RetryAfter carries the server's requested delay when the
// response included one.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }
