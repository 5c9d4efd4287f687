package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
)

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// remotiveJob represents a single job in the Remotive API response.
type remotiveJob struct {
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	PublicationDate           string   `json:"publication_date"`
	Description               string   `json:"description"`
	Tags                      []string `json:"tags"`
	URL                       string   `json:"url"`
}

// remotiveResponse is the top-level Remotive API response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveAdapter fetches remote jobs from the Remotive public API.
type RemotiveAdapter struct {
	criteria filter.Criteria
	client   *http.Client
	baseURL  string
}

// NewRemotiveAdapter creates an adapter for the Remotive job board.
func NewRemotiveAdapter(criteria filter.Criteria, client *http.Client) *RemotiveAdapter {
	return &RemotiveAdapter{
		criteria: criteria,
		client:   client,
		baseURL:  remotiveBaseURL,
	}
}

func (a *RemotiveAdapter) Name() string { return "Remotive" }

// Fetch retrieves the full board, filters by role, location and recency, and
// normalizes passing items. Everything on Remotive is remote by definition.
func (a *RemotiveAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	var resp remotiveResponse
	if err := getJSON(ctx, a.client, a.baseURL, &resp); err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}

	var jobs []model.Job
	for _, rj := range resp.Jobs {
		desc := extractText(rj.Description)
		if !a.criteria.MatchesRole(rj.Title, desc) ||
			!a.criteria.MatchesLocation(rj.CandidateRequiredLocation) ||
			!a.criteria.WithinWindow(rj.PublicationDate) {
			continue
		}
		if rj.URL == "" {
			continue
		}

		jobs = append(jobs, model.Job{
			Title:      rj.Title,
			Company:    orUnknown(rj.CompanyName),
			Location:   rj.CandidateRequiredLocation,
			Type:       model.TypeRemote,
			Experience: "Entry-level (filtered)",
			Skills:     joinTags(rj.Tags),
			URL:        rj.URL,
			Source:     a.Name(),
			PostedAt:   parseWhen(rj.PublicationDate),
		})
	}

	return jobs, nil
}
