package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
	"github.com/jobsweep/jobsweep/internal/ratelimit"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// greenhouseJob represents a single job in the Greenhouse API response.
type greenhouseJob struct {
	Title       string             `json:"title"`
	Location    greenhouseLocation `json:"location"`
	AbsoluteURL string             `json:"absolute_url"`
	UpdatedAt   string             `json:"updated_at"`
}

type greenhouseLocation struct {
	Name string `json:"name"`
}

// greenhouseResponse is the top-level Greenhouse jobs API response.
type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// GreenhouseAdapter fetches jobs from the Greenhouse public boards API, one
// request per configured company board.
type GreenhouseAdapter struct {
	boards   []Board
	criteria filter.Criteria
	client   *http.Client
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	baseURL  string
}

// NewGreenhouseAdapter creates an adapter covering the given Greenhouse boards.
func NewGreenhouseAdapter(boards []Board, criteria filter.Criteria, client *http.Client, limiter *ratelimit.Limiter, logger *slog.Logger) *GreenhouseAdapter {
	return &GreenhouseAdapter{
		boards:   boards,
		criteria: criteria,
		client:   client,
		limiter:  limiter,
		logger:   logger,
		baseURL:  greenhouseBaseURL,
	}
}

func (a *GreenhouseAdapter) Name() string { return "Greenhouse" }

// Fetch iterates the configured boards in order. A board that fails is logged
// and skipped; its siblings still contribute.
func (a *GreenhouseAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for _, board := range a.boards {
		if err := a.limiter.Wait(ctx, "greenhouse"); err != nil {
			return jobs, err
		}

		boardJobs, err := a.fetchBoard(ctx, board)
		if err != nil {
			a.logger.Warn("greenhouse board failed", "board", board.Slug, "error", err)
			continue
		}
		jobs = append(jobs, boardJobs...)
	}
	return jobs, nil
}

func (a *GreenhouseAdapter) fetchBoard(ctx context.Context, board Board) ([]model.Job, error) {
	url := fmt.Sprintf("%s/%s/jobs", a.baseURL, board.Slug)

	var ghResp greenhouseResponse
	if err := getJSON(ctx, a.client, url, &ghResp); err != nil {
		return nil, fmt.Errorf("greenhouse fetch for %s: %w", board.Slug, err)
	}

	var jobs []model.Job
	for _, gj := range ghResp.Jobs {
		// The boards listing has no description; the title alone decides role.
		if !a.criteria.MatchesRole(gj.Title, "") ||
			!a.criteria.MatchesLocation(gj.Location.Name) ||
			!a.criteria.WithinWindow(gj.UpdatedAt) {
			continue
		}
		if gj.AbsoluteURL == "" {
			continue
		}

		employment := model.TypeUnknown
		if strings.Contains(strings.ToLower(gj.Location.Name), "remote") {
			employment = model.TypeRemote
		}

		jobs = append(jobs, model.Job{
			Title:      gj.Title,
			Company:    orUnknown(board.Name),
			Location:   gj.Location.Name,
			Type:       employment,
			Experience: "Not specified",
			Skills:     "N/A",
			URL:        gj.AbsoluteURL,
			Source:     a.Name(),
			PostedAt:   parseWhen(gj.UpdatedAt),
		})
	}

	return jobs, nil
}
