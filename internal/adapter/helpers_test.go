package adapter

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/ratelimit"
)

func testCriteria() filter.Criteria {
	return filter.NewCriteria(
		[]string{"cloud engineer", "devops engineer"},
		[]string{"chennai", "bengaluru"},
		nil,
		48*time.Hour,
	)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLimiter() *ratelimit.Limiter {
	return ratelimit.NewLimiter(0)
}

func jsonServer(payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
}

// recentISO formats a timestamp the given number of hours in the past.
func recentISO(hoursAgo int) string {
	return time.Now().UTC().Add(-time.Duration(hoursAgo) * time.Hour).Format(time.RFC3339)
}
