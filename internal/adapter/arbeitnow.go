package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
)

const arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// arbeitnowJob represents a single job in the ArbeitNow API response.
// created_at has shipped both as unix seconds and as an ISO string, so it is
// kept raw and normalized below.
type arbeitnowJob struct {
	Title           string          `json:"title"`
	CompanyName     string          `json:"company_name"`
	Location        string          `json:"location"`
	Remote          bool            `json:"remote"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	URL             string          `json:"url"`
	ExperienceLevel string          `json:"experience_level"`
	CreatedAt       json.RawMessage `json:"created_at"`
}

// arbeitnowResponse is the top-level ArbeitNow API response.
type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// ArbeitNowAdapter fetches jobs from the ArbeitNow public job board API.
type ArbeitNowAdapter struct {
	criteria filter.Criteria
	client   *http.Client
	baseURL  string
}

// NewArbeitNowAdapter creates an adapter for the ArbeitNow job board.
func NewArbeitNowAdapter(criteria filter.Criteria, client *http.Client) *ArbeitNowAdapter {
	return &ArbeitNowAdapter{
		criteria: criteria,
		client:   client,
		baseURL:  arbeitnowBaseURL,
	}
}

func (a *ArbeitNowAdapter) Name() string { return "ArbeitNow" }

// Fetch retrieves the board, filters by role, location and recency, and
// normalizes passing items.
func (a *ArbeitNowAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	var resp arbeitnowResponse
	if err := getJSON(ctx, a.client, a.baseURL, &resp); err != nil {
		return nil, fmt.Errorf("arbeitnow fetch: %w", err)
	}

	var jobs []model.Job
	for _, aj := range resp.Data {
		desc := extractText(aj.Description)
		created := normalizeTimestamp(aj.CreatedAt)
		if !a.criteria.MatchesRole(aj.Title, desc) ||
			!a.criteria.MatchesLocation(aj.Location) ||
			!a.criteria.WithinWindow(created) {
			continue
		}
		if aj.URL == "" {
			continue
		}

		employment := model.TypeHybridOnSite
		if aj.Remote {
			employment = model.TypeRemote
		}

		jobs = append(jobs, model.Job{
			Title:      aj.Title,
			Company:    orUnknown(aj.CompanyName),
			Location:   aj.Location,
			Type:       employment,
			Experience: orNotSpecified(aj.ExperienceLevel),
			Skills:     joinTags(aj.Tags),
			URL:        aj.URL,
			Source:     a.Name(),
			PostedAt:   parseWhen(created),
		})
	}

	return jobs, nil
}

// normalizeTimestamp maps ArbeitNow's created_at variants to an ISO string:
// unix seconds become RFC3339, string values pass through, anything else is
// empty (and fails the recency filter closed).
func normalizeTimestamp(raw json.RawMessage) string {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return ""
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC().Format(time.RFC3339)
	}
	return s
}
