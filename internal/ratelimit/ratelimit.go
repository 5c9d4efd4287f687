package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum delay between consecutive requests to the same
// origin. Adapters that fan out over several boards or search keywords call
// Wait between sub-requests so one run does not hammer a single host.
type Limiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: origin name
	minDelay time.Duration
}

// NewLimiter creates a limiter that enforces minDelay between consecutive
// requests to the same origin. A zero minDelay never waits.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given origin. Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context, origin string) error {
	l.mu.Lock()
	last, ok := l.lastCall[origin]
	now := time.Now()

	if !ok || now.Sub(last) >= l.minDelay {
		l.lastCall[origin] = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minDelay - now.Sub(last)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", origin, ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastCall[origin] = time.Now()
	l.mu.Unlock()

	return nil
}
