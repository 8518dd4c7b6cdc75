package pipeline

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
)

// ErrAlreadyRunning is returned when a run is requested while another one is in flight.
var ErrAlreadyRunning = errors.New("pipeline run already in progress")

// OrganizationResult is what the extraction and assembly stages did for one organization.
type OrganizationResult struct {
	Extraction extractor.Summary
	// Entries is the size of the calendar after assembly.
	Entries int
	Err     error
}

// Report summarizes one batch run. It is returned even when organizations fail.
type Report struct {
	StartedAt     time.Time
	FinishedAt    time.Time
	Targets       []string
	Scrape        scraper.Report
	Organizations map[string]OrganizationResult
}

func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed lists organizations that failed acquisition or a later stage, sorted.
func (r Report) Failed() []string {
	failed := map[string]struct{}{}
	for _, id := range r.Scrape.Failed() {
		failed[id] = struct{}{}
	}
	for id, res := range r.Organizations {
		if res.Err != nil {
			failed[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(failed))
	for id := range failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type Client interface {
	// Run acquires, extracts and assembles the given organizations. An empty ids list means
	// every organization of the manifest, or every stored organization without a manifest.
	// workers <= 0 uses the configured worker count.
	Run(ctx context.Context, ids []string, workers int) (Report, error)

	// Schedule runs the pipeline periodically until ctx is done.
	Schedule(ctx context.Context) error
}
