package scraper

import (
	"context"
	"sort"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the result of acquiring one organization during a run.
type Outcome struct {
	Status   Status
	Attempts int
	// Posts counts post items newly stored for the organization.
	Posts int
	Err   error
}

// Report maps organization identifiers to their outcome.
type Report map[string]Outcome

// Failed returns the identifiers that did not succeed, sorted.
func (r Report) Failed() []string {
	var ids []string
	for id, o := range r {
		if o.Status != StatusSucceeded {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r Report) Succeeded() []string {
	var ids []string
	for id, o := range r {
		if o.Status == StatusSucceeded {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

//go:generate go run go.uber.org/mock/mockgen -source=scraper.go -destination=mocks/mock.go
type Client interface {
	// Scrape acquires every organization across at most workers sessions.
	// It never fails as a whole; per-organization failures are in the report.
	Scrape(ctx context.Context, ids []string, workers int) Report
}
