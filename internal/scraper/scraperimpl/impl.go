package scraperimpl

import (
	"context"
	"sync"

	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/organization"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const maxAttempts = 3

type Opts struct {
	fx.In

	Sessions instagram.SessionFactory
	OrgRepo  organization.Repository
	PostRepo post.Repository
	Config   *config.Config
	Logger   logger.Logger
}

type ScraperImpl struct {
	sessions instagram.SessionFactory
	orgRepo  organization.Repository
	postRepo post.Repository
	config   *config.Config
	logger   logger.Logger
}

func New(opts Opts) *ScraperImpl {
	return &ScraperImpl{
		sessions: opts.Sessions,
		orgRepo:  opts.OrgRepo,
		postRepo: opts.PostRepo,
		config:   opts.Config,
		logger:   opts.Logger.WithComponent("Scraper"),
	}
}

var _ scraper.Client = (*ScraperImpl)(nil)

func (s *ScraperImpl) Scrape(ctx context.Context, ids []string, workers int) scraper.Report {
	report := newReportBuilder(len(ids))
	if len(ids) == 0 {
		return report.build()
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	chunks := Chunk(ids, workers)
	s.logger.Info("Starting acquisition", "organizations", len(ids), "workers", workers)

	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		s.logger.Error("Failed to create worker pool, running chunks inline", "error", err)
		for _, chunk := range chunks {
			s.runChunk(ctx, chunk, report)
		}
		return report.build()
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		chunkToProcess, worker := chunk, i

		err := pool.Submit(func() {
			defer wg.Done()
			s.logger.Debug("Worker started", "worker", worker, "organizations", len(chunkToProcess))
			s.runChunk(ctx, chunkToProcess, report)
		})
		if err != nil {
			wg.Done()
			s.logger.Error("Failed to submit chunk to ants pool", "worker", worker, "error", err)
			report.failAll(chunkToProcess, err)
		}
	}
	wg.Wait()

	result := report.build()
	for _, o := range result {
		metrics.IncScrapeOutcome(string(o.Status))
	}
	s.logger.Info("Acquisition finished", "succeeded", len(result.Succeeded()), "failed", len(result.Failed()))
	return result
}

type reportBuilder struct {
	mu       sync.Mutex
	outcomes scraper.Report
}

func newReportBuilder(n int) *reportBuilder {
	return &reportBuilder{outcomes: make(scraper.Report, n)}
}

func (r *reportBuilder) set(id string, o scraper.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[id] = o
}

func (r *reportBuilder) failAll(ids []string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.outcomes[id] = scraper.Outcome{Status: scraper.StatusFailed, Err: err}
	}
}

func (r *reportBuilder) build() scraper.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(scraper.Report, len(r.outcomes))
	for id, o := range r.outcomes {
		out[id] = o
	}
	return out
}
