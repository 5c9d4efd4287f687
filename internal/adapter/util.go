package adapter

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities, strips all tags, then collapses
// whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// between returns every occurrence of the text between start and end markers
// in body, in document order. Used by the scrape adapters; when a marker stops
// matching the origin changed its markup and the adapter degrades to empty
// output rather than crashing.
func between(body, start, end string) []string {
	var out []string
	for {
		i := strings.Index(body, start)
		if i < 0 {
			return out
		}
		body = body[i+len(start):]
		j := strings.Index(body, end)
		if j < 0 {
			return out
		}
		out = append(out, strings.TrimSpace(html.UnescapeString(body[:j])))
		body = body[j+len(end):]
	}
}

// joinTags renders a tag list as the canonical comma-joined skills string.
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "N/A"
	}
	return strings.Join(tags, ", ")
}

// orUnknown substitutes the placeholder for origins that omit a company name.
func orUnknown(company string) string {
	if strings.TrimSpace(company) == "" {
		return "Unknown"
	}
	return company
}

// orNotSpecified substitutes the placeholder for origins that omit an
// experience level.
func orNotSpecified(experience string) string {
	if strings.TrimSpace(experience) == "" {
		return "Not specified"
	}
	return experience
}

// parseWhen turns an origin timestamp into a *time.Time for display purposes
// only; filtering goes through filter.Criteria. Returns nil when the value is
// absent or unparseable.
func parseWhen(timestamp string) *time.Time {
	if timestamp == "" {
		return nil
	}
	t, err := dateparse.ParseIn(timestamp, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
