package pipelineimpl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
)

func TestFormatReport(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	r := pipeline.Report{
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Targets:    []string{"club.uci", "ghost"},
		Scrape: scraper.Report{
			"club.uci": {Status: scraper.StatusSucceeded},
			"ghost":    {Status: scraper.StatusFailed, Err: errors.New("profile not found")},
		},
		Organizations: map[string]pipeline.OrganizationResult{
			"club.uci": {Extraction: extractor.Summary{Processed: 1200, Events: 3}, Entries: 7},
		},
	}

	msg := FormatReport(r)
	for _, want := range []string{
		"Organizations: 2, failed: 1",
		"Posts extracted: 1,200, new events: 3, calendar entries: 7",
		"Duration: 1m30s",
		`• ghost: profile not found`,
		`• club\.uci \+3`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report is missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(errors.New("open manifest.yaml: permission denied")); !strings.Contains(got, `manifest\.yaml`) {
		t.Fatalf("error text not escaped: %q", got)
	}
}
