package adapter

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/model"
	"github.com/jobsweep/jobsweep/internal/ratelimit"
)

const (
	linkedinSearchURL = "https://www.linkedin.com/jobs/search?keywords="
	linkedinViewURL   = "https://www.linkedin.com/jobs/view/"
)

// Extraction contract v1 for the LinkedIn guest search page. These markers
// are the fragile boundary of this adapter: when LinkedIn changes its markup
// the patterns stop matching and the adapter degrades to empty output.
const (
	linkedinTitleStart   = `<h3 class="base-search-card__title">`
	linkedinTitleEnd     = `</h3>`
	linkedinCompanyStart = `<h4 class="base-search-card__subtitle">`
	linkedinCompanyEnd   = `</h4>`
)

var linkedinJobIDRegex = regexp.MustCompile(`data-entity-urn="urn:li:jobPosting:(\d+)"`)

// LinkedInAdapter scrapes the public LinkedIn jobs search page, one request
// per configured search keyword. Unlike the structured sources it has no
// location or date fields to filter on; only the role filter applies.
type LinkedInAdapter struct {
	keywords []string
	criteria filter.Criteria
	client   *http.Client
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	baseURL  string
}

// NewLinkedInAdapter creates a scrape adapter for the given search keywords.
func NewLinkedInAdapter(keywords []string, criteria filter.Criteria, client *http.Client, limiter *ratelimit.Limiter, logger *slog.Logger) *LinkedInAdapter {
	return &LinkedInAdapter{
		keywords: keywords,
		criteria: criteria,
		client:   client,
		limiter:  limiter,
		logger:   logger,
		baseURL:  linkedinSearchURL,
	}
}

func (a *LinkedInAdapter) Name() string { return "LinkedIn" }

// Fetch iterates the configured search keywords in order. A keyword whose
// request fails is logged and skipped; its siblings still run.
func (a *LinkedInAdapter) Fetch(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for _, keyword := range a.keywords {
		if err := a.limiter.Wait(ctx, "linkedin"); err != nil {
			return jobs, err
		}

		body, err := getBody(ctx, a.client, a.baseURL+url.QueryEscape(keyword))
		if err != nil {
			a.logger.Warn("linkedin search failed", "keyword", keyword, "error", err)
			continue
		}
		jobs = append(jobs, a.extract(body)...)
	}
	return jobs, nil
}

// extract pulls title, company and job id lists out of the raw page and pairs
// them positionally. The lists are truncated to the shortest one: when one
// pattern under-matches, pairing beyond that point would attach fields to the
// wrong posting.
func (a *LinkedInAdapter) extract(body string) []model.Job {
	titles := between(body, linkedinTitleStart, linkedinTitleEnd)
	companies := between(body, linkedinCompanyStart, linkedinCompanyEnd)

	var ids []string
	for _, m := range linkedinJobIDRegex.FindAllStringSubmatch(body, -1) {
		ids = append(ids, m[1])
	}

	n := len(titles)
	if len(companies) < n {
		n = len(companies)
	}
	if len(ids) < n {
		n = len(ids)
	}

	var jobs []model.Job
	for i := 0; i < n; i++ {
		title := extractText(titles[i])
		if !a.criteria.MatchesRole(title, "") {
			continue
		}

		jobs = append(jobs, model.Job{
			Title:      title,
			Company:    orUnknown(extractText(companies[i])),
			Location:   "",
			Type:       model.TypeUnknown,
			Experience: "Not specified",
			Skills:     "N/A",
			URL:        linkedinViewURL + ids[i],
			Source:     a.Name(),
		})
	}
	return jobs
}
