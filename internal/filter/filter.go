package filter

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Criteria holds the run-wide matching configuration: keyword sets and the
// recency window. Built once at startup and passed by value; never mutated.
// All keyword matching is case-insensitive substring matching.
type Criteria struct {
	roleKeywords       []string
	locationKeywords   []string
	experienceKeywords []string
	window             time.Duration

	now func() time.Time
}

// NewCriteria builds an immutable Criteria. Keywords are lowercased once here
// so the predicates stay allocation-free on the hot path.
func NewCriteria(roles, locations, experience []string, window time.Duration) Criteria {
	return Criteria{
		roleKeywords:       lowered(roles),
		locationKeywords:   lowered(locations),
		experienceKeywords: lowered(experience),
		window:             window,
		now:                time.Now,
	}
}

// Window returns the configured recency window.
func (c Criteria) Window() time.Duration {
	return c.window
}

// MatchesRole reports whether any role keyword occurs in the concatenation of
// title and description.
func (c Criteria) MatchesRole(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	return containsAny(text, c.roleKeywords)
}

// MatchesLocation reports whether the location is acceptable. Any location
// mentioning "remote" passes unconditionally; otherwise one of the configured
// location keywords must occur. An empty location fails.
func (c Criteria) MatchesLocation(location string) bool {
	if location == "" {
		return false
	}
	loc := strings.ToLower(location)
	if strings.Contains(loc, "remote") {
		return true
	}
	return containsAny(loc, c.locationKeywords)
}

// MatchesExperience reports whether any experience keyword occurs in text.
// An empty text fails.
func (c Criteria) MatchesExperience(text string) bool {
	if text == "" {
		return false
	}
	return containsAny(strings.ToLower(text), c.experienceKeywords)
}

// HasExperienceKeywords reports whether an experience keyword set was
// configured at all. Adapters that gate on experience check this first so an
// empty set means "no gating" rather than "drop everything".
func (c Criteria) HasExperienceKeywords() bool {
	return len(c.experienceKeywords) > 0
}

// WithinWindow reports whether timestamp falls inside the recency window.
// The timestamp is expected to be ISO-8601-like; offset-less values are read
// as UTC and a trailing "Z" is honored. Missing or unparseable timestamps
// fail closed: better to under-report than to alert on stale postings.
func (c Criteria) WithinWindow(timestamp string) bool {
	if timestamp == "" {
		return false
	}
	t, err := dateparse.ParseIn(timestamp, time.UTC)
	if err != nil {
		return false
	}
	return c.WithinWindowAt(t)
}

// WithinWindowAt is WithinWindow for origins that provide a parsed time
// (epoch fields and RSS pubDates).
func (c Criteria) WithinWindowAt(t time.Time) bool {
	return c.now().UTC().Sub(t) <= c.window
}

func lowered(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, strings.ToLower(k))
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
