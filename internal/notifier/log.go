package notifier

import (
	"context"
	"log/slog"

	"github.com/jobsweep/jobsweep/internal/model"
)

// Ensure LogDelivery implements model.Deliverer.
var _ model.Deliverer = (*LogDelivery)(nil)

// LogDelivery writes the aggregated batch to the given logger as structured
// messages. Used when Slack is not configured or for dry runs.
type LogDelivery struct {
	logger *slog.Logger
}

// NewLogDelivery returns a deliverer that logs each job via slog.
func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger}
}

// Deliver logs each job with title, company, location, URL, and source.
// Returns nil (stdout logging does not fail).
func (d *LogDelivery) Deliver(ctx context.Context, jobs []model.Job) error {
	if len(jobs) == 0 {
		d.logger.Info("no matching jobs")
		return nil
	}
	for _, j := range jobs {
		args := []any{"title", j.Title, "company", j.Company, "location", j.Location, "url", j.URL, "source", j.Source}
		if j.PostedAt != nil {
			args = append(args, "posted_at", *j.PostedAt)
		}
		d.logger.Info("matched job", args...)
	}
	return nil
}
