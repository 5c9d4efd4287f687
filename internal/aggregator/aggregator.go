// Package aggregator runs every configured source adapter and merges their
// contributions into a single job list. A failing source never aborts the
// sweep; it is logged and contributes nothing.
package aggregator

import (
	"context"
	"log/slog"

	"github.com/jobsweep/jobsweep/internal/model"
)

// SourceResult records the outcome of one adapter within a sweep.
type SourceResult struct {
	Source string
	Count  int
	Err    error
}

// Aggregator sequences the configured adapters in registration order.
type Aggregator struct {
	adapters []model.SourceAdapter
	logger   *slog.Logger
}

// New creates an Aggregator over the given adapters. Their registration order
// is the order their jobs appear in the merged output.
func New(adapters []model.SourceAdapter, logger *slog.Logger) *Aggregator {
	return &Aggregator{adapters: adapters, logger: logger}
}

// Collect fetches from every adapter sequentially and returns the merged job
// list plus one SourceResult per adapter, in registration order. Adapter
// errors are captured in the results, never returned; an errored adapter
// contributes zero jobs. Collect stops early only when ctx is cancelled.
func (a *Aggregator) Collect(ctx context.Context) ([]model.Job, []SourceResult) {
	var (
		merged  []model.Job
		results = make([]SourceResult, 0, len(a.adapters))
	)

	for _, src := range a.adapters {
		if ctx.Err() != nil {
			results = append(results, SourceResult{Source: src.Name(), Err: ctx.Err()})
			continue
		}

		jobs, err := src.Fetch(ctx)
		if err != nil {
			a.logger.Warn("source failed, skipping",
				"source", src.Name(),
				"error", err,
			)
			results = append(results, SourceResult{Source: src.Name(), Err: err})
			continue
		}

		a.logger.Info("source complete",
			"source", src.Name(),
			"jobs", len(jobs),
		)
		merged = append(merged, jobs...)
		results = append(results, SourceResult{Source: src.Name(), Count: len(jobs)})
	}

	return merged, results
}
