// Package render builds the Slack Block Kit representation of a job list.
// It is pure data construction; delivery lives in notifier.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/jobsweep/jobsweep/internal/model"
)

// BlocksPerJob is the number of blocks each rendered job occupies: a section,
// an actions row and a divider. Chunking in the notifier counts on this being
// constant.
const BlocksPerJob = 3

// Block Kit payload types, shared with the notifier.

type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Element struct {
	Type  string `json:"type"`
	Text  Text   `json:"text"`
	URL   string `json:"url"`
	Style string `json:"style"`
}

// Jobs renders up to max jobs as Block Kit blocks, BlocksPerJob apiece, in
// input order. Jobs beyond max are dropped silently; callers surface the cap
// through the summary text. max <= 0 means no cap.
func Jobs(jobs []model.Job, max int) []Block {
	if max > 0 && len(jobs) > max {
		jobs = jobs[:max]
	}

	blocks := make([]Block, 0, len(jobs)*BlocksPerJob)
	for _, j := range jobs {
		blocks = append(blocks,
			Block{
				Type: "section",
				Text: &Text{Type: "mrkdwn", Text: jobText(j)},
			},
			Block{
				Type: "actions",
				Elements: []Element{
					{
						Type:  "button",
						Text:  Text{Type: "plain_text", Text: "Apply"},
						URL:   j.URL,
						Style: "primary",
					},
				},
			},
			Block{Type: "divider"},
		)
	}
	return blocks
}

func jobText(j model.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", j.Title)
	fmt.Fprintf(&b, "🏢 %s  |  📍 %s\n", j.Company, j.Location)
	fmt.Fprintf(&b, "🧭 %s  |  🎯 %s\n", j.Type, j.Experience)
	fmt.Fprintf(&b, "🛠 %s\n", j.Skills)
	fmt.Fprintf(&b, "via %s", j.Source)
	if j.PostedAt != nil {
		fmt.Fprintf(&b, ", posted %s", j.PostedAt.UTC().Format("Jan 2 15:04 UTC"))
	}
	return b.String()
}

// Summary is the text of the sweep header message. It doubles as the
// fallback notification text for clients that do not render blocks.
func Summary(total int, window time.Duration) string {
	noun := "jobs"
	if total == 1 {
		noun = "job"
	}
	return fmt.Sprintf("🔎 Found %d matching %s in the last %s.", total, noun, windowText(window))
}

// Empty is the text posted when a sweep matches nothing.
func Empty(window time.Duration) string {
	return fmt.Sprintf("No matching jobs found in the last %s.", windowText(window))
}

func windowText(window time.Duration) string {
	if h := window.Hours(); h == float64(int(h)) {
		return fmt.Sprintf("%d hours", int(h))
	}
	return window.String()
}
