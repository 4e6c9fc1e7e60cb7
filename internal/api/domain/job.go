package domain

import (
	"errors"
)

// Job posting status values. Only published jobs are searchable.
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
)

// Job type values as stored in jobs.job_type. The column may carry a
// delimiter-separated multi-value encoding, so filters match by substring.
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeTemporary  = "temporary"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeFresher    = "fresher"
)

// LocationTypeRemote marks fully remote postings.
const LocationTypeRemote = "remote"

// User roles counted by the hero stats endpoint.
const (
	RoleSeeker   = "seeker"
	RoleEmployer = "employer"
)

var (
	// ErrJobNotFound is returned when a published job cannot be found by id
	ErrJobNotFound = errors.New("job not found")
)

// Viewer is the optional authenticated identity attached to a request.
// A viewer may or may not have an associated job-seeker profile; the
// seeker id is resolved by the aggregation layer and a missing profile
// is never an error.
type Viewer struct {
	UserID int64
}

// HeroStats holds the landing-page counters.
type HeroStats struct {
	TotalJobs       int64
	TotalSeekers    int64
	TotalEmployers  int64
	CompaniesHiring int64
}
