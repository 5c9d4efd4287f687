package model

import (
	"context"
	"time"
)

// EmploymentType classifies how a role is worked.
type EmploymentType string

const (
	TypeRemote       EmploymentType = "Remote"
	TypeHybridOnSite EmploymentType = "On-site/Hybrid"
	TypeUnknown      EmploymentType = "Unknown"
)

// Unified representation of a job posting from any source. Constructed once
// by a source adapter and never mutated afterwards.
type Job struct {
	Title      string         // job title
	Company    string         // company name, "Unknown" when the origin omits it
	Location   string         // free text, may be empty
	Type       EmploymentType // remote / on-site-hybrid / unknown
	Experience string         // free text, "Not specified" when absent
	Skills     string         // comma-joined tags, "N/A" when none
	URL        string         // posting URL; a record without one is unusable
	Source     string         // originating adapter name
	PostedAt   *time.Time     // nullable (not all origins provide this)
}

// SourceAdapter fetches postings from one external origin, already filtered
// and normalized. A returned error means the whole origin contributed
// nothing this run; the aggregator decides what to do with that.
type SourceAdapter interface {
	Name() string
	Fetch(ctx context.Context) ([]Job, error)
}

// Deliverer sends an aggregated batch of jobs to the downstream channel.
type Deliverer interface {
	Deliver(ctx context.Context, jobs []Job) error
}
