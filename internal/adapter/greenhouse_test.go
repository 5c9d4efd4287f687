package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobsweep/jobsweep/internal/model"
)

func TestGreenhouseFetchFiltersAndMaps(t *testing.T) {
	payload := fmt.Sprintf(`{
		"jobs": [
			{
				"title": "Cloud Engineer",
				"location": {"name": "Remote, India"},
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/1",
				"updated_at": %q
			},
			{
				"title": "Cloud Engineer",
				"location": {"name": "Chennai"},
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/2",
				"updated_at": %q
			},
			{
				"title": "Staff Accountant",
				"location": {"name": "Chennai"},
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/3",
				"updated_at": %q
			}
		]
	}`, recentISO(5), recentISO(60), recentISO(5))

	srv := jsonServer(payload)
	defer srv.Close()

	a := NewGreenhouseAdapter([]Board{{Slug: "acme", Name: "Acme"}}, testCriteria(), srv.Client(), testLimiter(), testLogger())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second job is outside the window, third fails the role filter.
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Type != model.TypeRemote {
		t.Errorf("expected remote type for remote-labelled location, got %s", jobs[0].Type)
	}
	if jobs[0].Company != "Acme" || jobs[0].Source != "Greenhouse" {
		t.Errorf("unexpected job identity: %+v", jobs[0])
	}
}

func TestGreenhouseBoardFailureDoesNotAbortSiblings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jobs": [{
			"title": "DevOps Engineer",
			"location": {"name": "Bengaluru"},
			"absolute_url": "https://boards.greenhouse.io/ok/jobs/1",
			"updated_at": %q
		}]}`, recentISO(1))
	}))
	defer srv.Close()

	boards := []Board{
		{Slug: "broken", Name: "Broken Co"},
		{Slug: "ok", Name: "OK Co"},
	}
	a := NewGreenhouseAdapter(boards, testCriteria(), srv.Client(), testLimiter(), testLogger())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Company != "OK Co" {
		t.Fatalf("expected the healthy board to contribute, got %+v", jobs)
	}
}
