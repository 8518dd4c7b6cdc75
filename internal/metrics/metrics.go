package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PipelineRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insta_calendar_pipeline_runs_total",
		Help: "Pipeline runs by result (completed, skipped)",
	}, []string{"result"})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "insta_calendar_pipeline_duration_seconds",
		Help:    "Pipeline run duration seconds",
		Buckets: []float64{10, 30, 60, 120, 300, 600, 1200, 2400},
	})
	ScrapeOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insta_calendar_scrape_outcomes_total",
		Help: "Organization acquisition outcomes by status",
	}, []string{"status"})
	SessionReplacements = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insta_calendar_session_replacements_total",
		Help: "Acquisition sessions torn down and re-authenticated",
	})
	ExtractionAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insta_calendar_extraction_attempts_total",
		Help: "Completion attempts by outcome (success, transport, decode, validation)",
	}, []string{"outcome"})
	CalendarEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insta_calendar_entries_added_total",
		Help: "Calendar entries appended per organization",
	}, []string{"organization"})
)

func init() {
	prometheus.MustRegister(
		PipelineRuns,
		PipelineDuration,
		ScrapeOutcomes,
		SessionReplacements,
		ExtractionAttempts,
		CalendarEntries,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObservePipelineDuration(start time.Time) {
	PipelineDuration.Observe(time.Since(start).Seconds())
}

func IncExtractionAttempt(outcome string) { ExtractionAttempts.WithLabelValues(outcome).Inc() }

func IncScrapeOutcome(status string) { ScrapeOutcomes.WithLabelValues(status).Inc() }
