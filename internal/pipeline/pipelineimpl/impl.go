package pipelineimpl

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/calendar"
	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"github.com/orgball2608/insta-event-calendar/internal/manifest"
	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/organization"
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
	"github.com/orgball2608/insta-event-calendar/internal/telegram"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Scraper   scraper.Client
	Extractor extractor.Client
	Assembler calendar.Assembler
	OrgRepo   organization.Repository
	Telegram  telegram.Client
	Guard     *Guard
	Config    *config.Config
	Logger    logger.Logger
}

type PipelineImpl struct {
	scraper   scraper.Client
	extractor extractor.Client
	assembler calendar.Assembler
	orgRepo   organization.Repository
	telegram  telegram.Client
	guard     *Guard
	cfg       *config.Config
	logger    logger.Logger
}

func New(opts Opts) *PipelineImpl {
	return &PipelineImpl{
		scraper:   opts.Scraper,
		extractor: opts.Extractor,
		assembler: opts.Assembler,
		orgRepo:   opts.OrgRepo,
		telegram:  opts.Telegram,
		guard:     opts.Guard,
		cfg:       opts.Config,
		logger:    opts.Logger.WithComponent("Pipeline"),
	}
}

var _ pipeline.Client = (*PipelineImpl)(nil)

func (p *PipelineImpl) Run(ctx context.Context, ids []string, workers int) (pipeline.Report, error) {
	if !p.guard.TryAcquire() {
		metrics.PipelineRuns.WithLabelValues("skipped").Inc()
		p.logger.Warn("Run requested while another run is in progress, skipping")
		return pipeline.Report{}, pipeline.ErrAlreadyRunning
	}
	defer p.guard.Release()

	report := pipeline.Report{
		StartedAt:     time.Now().UTC(),
		Organizations: map[string]pipeline.OrganizationResult{},
	}
	defer metrics.ObservePipelineDuration(report.StartedAt)

	if len(ids) == 0 {
		targets, err := p.resolveTargets(ctx)
		if err != nil {
			return report, err
		}
		ids = targets
	}
	if workers <= 0 {
		workers = p.cfg.Scraper.Workers
	}
	report.Targets = ids

	p.logger.Info("Pipeline run started", "organizations", len(ids), "workers", workers)

	report.Scrape = p.scraper.Scrape(ctx, ids, workers)
	p.processOrganizations(ctx, ids, &report)

	report.FinishedAt = time.Now().UTC()
	metrics.PipelineRuns.WithLabelValues("completed").Inc()
	p.logger.Info("Pipeline run finished",
		"organizations", len(ids),
		"failed", len(report.Failed()),
		"duration", report.Duration().String(),
	)

	p.notify(report)
	return report, nil
}

// resolveTargets prefers the manifest and falls back to every stored organization.
func (p *PipelineImpl) resolveTargets(ctx context.Context) ([]string, error) {
	m, err := manifest.Load(p.cfg.Scraper.ManifestPath)
	switch {
	case err == nil:
		return m.Handles(), nil
	case errors.Is(err, os.ErrNotExist):
		p.logger.Info("No manifest found, using stored organizations", "path", p.cfg.Scraper.ManifestPath)
	default:
		return nil, err
	}

	ids, err := p.orgRepo.ListIDs(ctx)
	if err != nil {
		return nil, errors.Repository("failed to list organizations", err)
	}
	return ids, nil
}

// processOrganizations extracts and assembles every known organization on a worker pool.
func (p *PipelineImpl) processOrganizations(ctx context.Context, ids []string, report *pipeline.Report) {
	size := p.cfg.Extractor.Workers
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size, ants.WithPreAlloc(true))
	if err != nil {
		p.logger.Error("Failed to create extraction pool", "error", err)
		return
	}
	defer pool.Release()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	record := func(id string, res pipeline.OrganizationResult) {
		mu.Lock()
		report.Organizations[id] = res
		mu.Unlock()
	}

	for _, id := range ids {
		orgID := id
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			res, ok := p.processOrganization(ctx, orgID)
			if ok {
				record(orgID, res)
			}
		})
		if err != nil {
			wg.Done()
			p.logger.Error("Failed to submit organization to pool", "organization", orgID, "error", err)
			record(orgID, pipeline.OrganizationResult{Err: err})
		}
	}

	wg.Wait()
}

// processOrganization returns false for organizations that were never acquired.
func (p *PipelineImpl) processOrganization(ctx context.Context, orgID string) (pipeline.OrganizationResult, bool) {
	exists, err := p.orgRepo.Exists(ctx, orgID)
	if err != nil {
		return pipeline.OrganizationResult{Err: errors.Repository("failed to check organization", err)}, true
	}
	if !exists {
		p.logger.Debug("Organization has no stored profile, skipping extraction", "organization", orgID)
		return pipeline.OrganizationResult{}, false
	}

	var res pipeline.OrganizationResult
	res.Extraction, err = p.extractor.ExtractOrganization(ctx, orgID)
	if err != nil {
		p.logger.Error("Extraction failed", "organization", orgID, "error", err)
		res.Err = err
		return res, true
	}

	artifact, err := p.assembler.Assemble(ctx, orgID)
	if err != nil {
		p.logger.Error("Calendar assembly failed", "organization", orgID, "error", err)
		res.Err = err
		return res, true
	}
	res.Entries = len(artifact.Entries)

	if res.Extraction.Events > 0 {
		p.telegram.SendDocumentToUser(orgID+".ics", calendar.Encode(artifact), orgID)
	}
	return res, true
}

func (p *PipelineImpl) notify(report pipeline.Report) {
	if !p.telegram.Enabled() {
		return
	}
	p.telegram.SendMessageToUser(FormatReport(report))
}
