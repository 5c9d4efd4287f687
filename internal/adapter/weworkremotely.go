package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
)

const weWorkRemotelyFeedURL = "https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss"

// WeWorkRemotelyAdapter fetches the We Work Remotely category feed. The feed
// lists remote-only roles, so location is fixed and the employment type is
// always remote. Item titles follow the "Company: Role" convention.
type WeWorkRemotelyAdapter struct {
	criteria filter.Criteria
	parser   *gofeed.Parser
	feedURL  string
}

// NewWeWorkRemotelyAdapter creates an adapter for the We Work Remotely feed.
func NewWeWorkRemotelyAdapter(criteria filter.Criteria, client *http.Client) *WeWorkRemotelyAdapter {
	parser := gofeed.NewParser()
	parser.Client = client
	return &WeWorkRemotelyAdapter{
		criteria: criteria,
		parser:   parser,
		feedURL:  weWorkRemotelyFeedURL,
	}
}

func (a *WeWorkRemotelyAdapter) Name() string { return "WeWorkRemotely" }

// Fetch parses the feed, filters by role, recency and (when configured)
// experience keywords, and normalizes passing items.
func (a *WeWorkRemotelyAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	feed, err := a.parser.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely fetch: %w", err)
	}

	var jobs []model.Job
	for _, item := range feed.Items {
		company, role := splitFeedTitle(item.Title)
		desc := extractText(item.Description)

		if !a.criteria.MatchesRole(role, desc) {
			continue
		}
		// No pubDate means no recency evidence; fail closed.
		if item.PublishedParsed == nil || !a.criteria.WithinWindowAt(*item.PublishedParsed) {
			continue
		}
		if a.criteria.HasExperienceKeywords() && !a.criteria.MatchesExperience(role+" "+desc) {
			continue
		}
		if item.Link == "" {
			continue
		}

		jobs = append(jobs, model.Job{
			Title:      role,
			Company:    orUnknown(company),
			Location:   "Remote",
			Type:       model.TypeRemote,
			Experience: "Not specified",
			Skills:     joinTags(item.Categories),
			URL:        item.Link,
			Source:     a.Name(),
			PostedAt:   item.PublishedParsed,
		})
	}

	return jobs, nil
}

// splitFeedTitle splits the "Company: Role" convention; a title without the
// separator is all role, with the company left unknown.
func splitFeedTitle(title string) (company, role string) {
	if i := strings.Index(title, ": "); i >= 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+2:])
	}
	return "", strings.TrimSpace(title)
}
