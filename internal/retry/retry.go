// Package retry decorates a source adapter with bounded retries for
// transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jobsweep/jobsweep/internal/model"
)

// Ensure Adapter implements model.SourceAdapter.
var _ model.SourceAdapter = (*Adapter)(nil)

// Adapter retries transient fetch failures with exponential backoff and
// jitter before delegating to the wrapped source.
type Adapter struct {
	inner      model.SourceAdapter
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// Wrap decorates a source with retry logic. maxRetries is the number of
// additional attempts after the first failure; baseDelay is the delay before
// the first retry, doubled on each subsequent one.
func Wrap(inner model.SourceAdapter, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

func (a *Adapter) Name() string { return a.inner.Name() }

// Fetch attempts the wrapped fetch, retrying on transient errors.
func (a *Adapter) Fetch(ctx context.Context) ([]model.Job, error) {
	jobs, err := a.inner.Fetch(ctx)
	if err == nil {
		return jobs, nil
	}
	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		delay := a.backoffDelay(attempt, lastErr)

		a.logger.Warn("retrying after transient error",
			"source", a.inner.Name(),
			"attempt", attempt,
			"max_retries", a.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		jobs, err = a.inner.Fetch(ctx)
		if err == nil {
			return jobs, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After carried by the error (HTTP 429) takes precedence.
func (a *Adapter) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := a.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether the error is a transient failure worth
// retrying. 429 and 5xx are; other HTTP statuses and context cancellation
// are not; everything else (network, DNS) is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}
	return true
}
