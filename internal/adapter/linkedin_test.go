package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const linkedinSample = `
<ul>
  <li data-entity-urn="urn:li:jobPosting:1111">
    <h3 class="base-search-card__title">
      Cloud Engineer
    </h3>
    <h4 class="base-search-card__subtitle">
      Acme Corp
    </h4>
  </li>
  <li data-entity-urn="urn:li:jobPosting:2222">
    <h3 class="base-search-card__title">
      Senior Accountant
    </h3>
    <h4 class="base-search-card__subtitle">
      Beancounters Ltd
    </h4>
  </li>
</ul>`

func newTestLinkedInAdapter(srv *httptest.Server, keywords ...string) *LinkedInAdapter {
	a := NewLinkedInAdapter(keywords, testCriteria(), srv.Client(), testLimiter(), testLogger())
	a.baseURL = srv.URL + "/?keywords="
	return a
}

func TestLinkedInFetchExtractsAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(linkedinSample))
	}))
	defer srv.Close()

	a := newTestLinkedInAdapter(srv, "cloud engineer")

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after role filtering, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Cloud Engineer" || j.Company != "Acme Corp" {
		t.Errorf("unexpected job: %+v", j)
	}
	if j.URL != "https://www.linkedin.com/jobs/view/1111" {
		t.Errorf("unexpected URL: %q", j.URL)
	}
	if j.Source != "LinkedIn" {
		t.Errorf("unexpected source: %q", j.Source)
	}
}

func TestLinkedInExtractTruncatesToShortestList(t *testing.T) {
	// Three titles and ids but only one company: the second and third
	// postings must be dropped, not mispaired.
	body := `
	<li data-entity-urn="urn:li:jobPosting:1"><h3 class="base-search-card__title">Cloud Engineer A</h3>
	<h4 class="base-search-card__subtitle">OnlyCompany</h4></li>
	<li data-entity-urn="urn:li:jobPosting:2"><h3 class="base-search-card__title">Cloud Engineer B</h3></li>
	<li data-entity-urn="urn:li:jobPosting:3"><h3 class="base-search-card__title">Cloud Engineer C</h3></li>`

	a := NewLinkedInAdapter(nil, testCriteria(), http.DefaultClient, testLimiter(), testLogger())
	jobs := a.extract(body)

	if len(jobs) != 1 {
		t.Fatalf("expected truncation to the shortest extracted list, got %d jobs", len(jobs))
	}
	if jobs[0].Title != "Cloud Engineer A" || jobs[0].Company != "OnlyCompany" {
		t.Errorf("unexpected pairing: %+v", jobs[0])
	}
}

func TestLinkedInExtractChangedMarkupDegradesToEmpty(t *testing.T) {
	a := NewLinkedInAdapter(nil, testCriteria(), http.DefaultClient, testLimiter(), testLogger())
	jobs := a.extract(`<div class="totally-different-markup">Cloud Engineer</div>`)
	if len(jobs) != 0 {
		t.Fatalf("expected empty output for unrecognized markup, got %d", len(jobs))
	}
}

func TestLinkedInKeywordFailureDoesNotAbortSiblings(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(linkedinSample))
	}))
	defer srv.Close()

	a := newTestLinkedInAdapter(srv, "first keyword", "second keyword")

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both keywords attempted, got %d calls", calls)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected the second keyword to contribute, got %d jobs", len(jobs))
	}
}
