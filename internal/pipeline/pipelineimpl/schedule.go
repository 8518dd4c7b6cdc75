package pipelineimpl

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
)

// Schedule runs the pipeline every SCRAPER_INTERVAL, starting immediately.
func (p *PipelineImpl) Schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(p.cfg.Location()))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.cfg.Scraper.Interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.logger.Info("Context cancelled, skipping scheduled run")
				return
			}

			p.logger.Info("Starting scheduled pipeline run")
			if _, err := p.Run(ctx, nil, 0); err != nil {
				if errors.Is(err, pipeline.ErrAlreadyRunning) {
					p.logger.Info("Previous run still in progress, skipping this tick")
					return
				}
				p.logger.Error("Scheduled pipeline run failed", "error", err)
				p.telegram.SendMessageToUser(FormatError(err))
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule pipeline: %w", err)
	}

	scheduler.Start()
	p.logger.Info("Pipeline scheduled", "interval", p.cfg.Scraper.Interval.String(), "timezone", p.cfg.Location().String())

	go func() {
		<-ctx.Done()
		p.logger.Info("Stopping pipeline scheduler")
		if err := scheduler.Shutdown(); err != nil {
			p.logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}
