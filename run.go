package wptransfer

import (
	"context"
	"time"
)

// Run records one execution of the batch driver.
type Run struct {
	ID         string         `json:"id"`
	SourceURL  string         `json:"sourceUrl"`
	OutputDir  string         `json:"outputDir"`
	Total      int            `json:"total"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Successful int            `json:"successful"`
	Failures   int            `json:"failed"`
	Results    []RenderResult `json:"results,omitempty"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	return nil
}

// Tally sets Successful and Failures from Results.
func (r *Run) Tally() {
	r.Successful, r.Failures = 0, 0
	for i := range r.Results {
		if r.Results[i].Success() {
			r.Successful++
		} else {
			r.Failures++
		}
	}
}

// RunService represents a service for recording runs.
type RunService interface {
	// CreateRun stores a run and its results, assigning the run an ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its results.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, most recent first, without their results.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
