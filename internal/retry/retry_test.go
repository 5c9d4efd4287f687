package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jobsweep/jobsweep/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSource calls a function on each invocation, tracking call count.
type mockSource struct {
	calls int
	fn    func(attempt int) ([]model.Job, error)
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Fetch(_ context.Context) ([]model.Job, error) {
	m.calls++
	return m.fn(m.calls)
}

func TestRetrySucceedsOnFirstAttempt(t *testing.T) {
	jobs := []model.Job{{Title: "Cloud Engineer"}}
	mock := &mockSource{fn: func(_ int) ([]model.Job, error) {
		return jobs, nil
	}}

	ra := Wrap(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := ra.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Cloud Engineer" {
		t.Fatalf("unexpected jobs: %v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetryRetriesOn5xx(t *testing.T) {
	jobs := []model.Job{{Title: "Cloud Engineer"}}
	mock := &mockSource{fn: func(attempt int) ([]model.Job, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return jobs, nil
	}}

	ra := Wrap(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := ra.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 job, got %d", len(got))
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetryDoesNotRetryOn4xx(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.Job, error) {
		return nil, &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	ra := Wrap(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := ra.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 404 {
		t.Fatalf("expected HTTPError with status 404, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.calls)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.Job, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ra := Wrap(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := ra.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error after max retries, got nil")
	}
	// 1 initial + 2 retries = 3
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetryHonorsRetryAfter(t *testing.T) {
	mock := &mockSource{fn: func(attempt int) ([]model.Job, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 429, RetryAfter: 20 * time.Millisecond, Err: errors.New("rate limited")}
		}
		return nil, nil
	}}

	ra := Wrap(mock, 1, time.Hour, discardLogger())
	start := time.Now()
	_, err := ra.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Retry-After overrides the huge base delay.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected Retry-After to take precedence over backoff, waited %v", elapsed)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.Job, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel immediately so the backoff sleep is interrupted.
	cancel()

	ra := Wrap(mock, 2, time.Second, discardLogger())
	_, err := ra.Fetch(ctx)
	if err == nil {
		t.Fatal("expected error from context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.calls)
	}
}

func TestRetryNamePassthrough(t *testing.T) {
	ra := Wrap(&mockSource{}, 0, 0, discardLogger())
	if ra.Name() != "mock" {
		t.Fatalf("expected wrapped name, got %q", ra.Name())
	}
}
