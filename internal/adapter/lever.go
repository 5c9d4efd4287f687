package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
	"github.com/jobsweep/jobsweep/internal/ratelimit"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// Board identifies one company board on a multi-tenant ATS.
type Board struct {
	Slug string // board token / company slug in the ATS URL
	Name string // display name used for the Company field
}

// leverCategories represents the categories object in a Lever job.
type leverCategories struct {
	Team         string   `json:"team"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Commitment   string   `json:"commitment"`
	AllLocations []string `json:"allLocations"`
}

// leverJob represents a single job in the Lever API response.
type leverJob struct {
	Text             string          `json:"text"`
	DescriptionPlain string          `json:"descriptionPlain"`
	Categories       leverCategories `json:"categories"`
	CreatedAt        int64           `json:"createdAt"`
	WorkplaceType    string          `json:"workplaceType"`
	HostedURL        string          `json:"hostedUrl"`
}

// LeverAdapter fetches jobs from the Lever public postings API, one request
// per configured company board.
type LeverAdapter struct {
	boards   []Board
	criteria filter.Criteria
	client   *http.Client
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	baseURL  string
}

// NewLeverAdapter creates an adapter covering the given Lever boards.
func NewLeverAdapter(boards []Board, criteria filter.Criteria, client *http.Client, limiter *ratelimit.Limiter, logger *slog.Logger) *LeverAdapter {
	return &LeverAdapter{
		boards:   boards,
		criteria: criteria,
		client:   client,
		limiter:  limiter,
		logger:   logger,
		baseURL:  leverBaseURL,
	}
}

func (a *LeverAdapter) Name() string { return "Lever" }

// Fetch iterates the configured boards in order. A board that fails is logged
// and skipped; its siblings still contribute.
func (a *LeverAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for _, board := range a.boards {
		if err := a.limiter.Wait(ctx, "lever"); err != nil {
			return jobs, err
		}

		boardJobs, err := a.fetchBoard(ctx, board)
		if err != nil {
			a.logger.Warn("lever board failed", "board", board.Slug, "error", err)
			continue
		}
		jobs = append(jobs, boardJobs...)
	}
	return jobs, nil
}

func (a *LeverAdapter) fetchBoard(ctx context.Context, board Board) ([]model.Job, error) {
	url := fmt.Sprintf("%s/%s?mode=json", a.baseURL, board.Slug)

	var leverJobs []leverJob
	if err := getJSON(ctx, a.client, url, &leverJobs); err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", board.Slug, err)
	}

	var jobs []model.Job
	for _, lj := range leverJobs {
		// Prefer allLocations when available, fall back to location.
		location := lj.Categories.Location
		if len(lj.Categories.AllLocations) > 0 {
			location = strings.Join(lj.Categories.AllLocations, ", ")
		}

		// createdAt is unix milliseconds; zero fails the recency check closed.
		var postedAt *time.Time
		if lj.CreatedAt > 0 {
			t := time.UnixMilli(lj.CreatedAt).UTC()
			postedAt = &t
		}

		if !a.criteria.MatchesRole(lj.Text, lj.DescriptionPlain) ||
			!a.criteria.MatchesLocation(location) ||
			postedAt == nil || !a.criteria.WithinWindowAt(*postedAt) {
			continue
		}
		if lj.HostedURL == "" {
			continue
		}

		jobs = append(jobs, model.Job{
			Title:      lj.Text,
			Company:    orUnknown(board.Name),
			Location:   location,
			Type:       leverEmploymentType(lj.WorkplaceType),
			Experience: "Not specified",
			Skills:     leverSkills(lj.Categories),
			URL:        lj.HostedURL,
			Source:     a.Name(),
			PostedAt:   postedAt,
		})
	}

	return jobs, nil
}

func leverEmploymentType(workplaceType string) model.EmploymentType {
	switch strings.ToLower(workplaceType) {
	case "remote":
		return model.TypeRemote
	case "hybrid", "onsite", "on-site":
		return model.TypeHybridOnSite
	default:
		return model.TypeUnknown
	}
}

// leverSkills approximates a tag list from Lever's category metadata.
func leverSkills(c leverCategories) string {
	var tags []string
	for _, t := range []string{c.Department, c.Team, c.Commitment} {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return joinTags(tags)
}
