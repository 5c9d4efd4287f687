package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jobsweep/jobsweep/internal/config"
	"github.com/jobsweep/jobsweep/internal/history"
	"github.com/jobsweep/jobsweep/internal/model"
)

type staticSource struct {
	name string
	jobs []model.Job
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(context.Context) ([]model.Job, error) {
	return s.jobs, nil
}

type failingDeliverer struct{ err error }

func (d failingDeliverer) Deliver(context.Context, []model.Job) error {
	return d.err
}

type recordingStore struct {
	history.NopStore
	runs []history.Run
}

func (s *recordingStore) Record(run history.Run) error {
	s.runs = append(s.runs, run)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// A sweep that fails to deliver still exits like any other run; the failure
// lands in the log and the run history, not the exit code.
func TestSweepDeliveryFailureDoesNotChangeOutcome(t *testing.T) {
	sources := []model.SourceAdapter{
		staticSource{name: "Static", jobs: []model.Job{{Title: "Cloud Engineer", URL: "https://example.com/1"}}},
	}
	store := &recordingStore{}
	boom := errors.New("post sweep summary: slack returned 500")

	err := sweep(context.Background(), config.Default(), sources, failingDeliverer{err: boom}, store, testLogger())
	if err != nil {
		t.Fatalf("expected nil despite delivery failure, got %v", err)
	}

	if len(store.runs) != 1 {
		t.Fatalf("expected the run recorded, got %d", len(store.runs))
	}
	if store.runs[0].DeliveryError != boom.Error() {
		t.Errorf("expected the delivery error in run history, got %q", store.runs[0].DeliveryError)
	}
	if store.runs[0].TotalJobs != 1 {
		t.Errorf("expected the aggregated total recorded, got %d", store.runs[0].TotalJobs)
	}
}

func TestSweepSuccessRecordsRun(t *testing.T) {
	sources := []model.SourceAdapter{
		staticSource{name: "A", jobs: []model.Job{{Title: "Cloud Engineer"}, {Title: "DevOps Engineer"}}},
		staticSource{name: "B", jobs: []model.Job{{Title: "Platform Engineer"}}},
	}
	store := &recordingStore{}
	cfg := config.Default()
	cfg.Delivery.PageSize = 2

	err := sweep(context.Background(), cfg, sources, failingDeliverer{err: nil}, store, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run := store.runs[0]
	if run.TotalJobs != 3 || run.Pages != 2 {
		t.Errorf("unexpected run stats: %+v", run)
	}
	if run.Sources != "A:2 B:1" {
		t.Errorf("unexpected source summary: %q", run.Sources)
	}
	if run.DeliveryError != "" {
		t.Errorf("expected no delivery error, got %q", run.DeliveryError)
	}
}
