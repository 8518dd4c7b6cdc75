package app

import (
	"context"

	"github.com/orgball2608/insta-event-calendar/internal/calendar/calendarimpl"
	"github.com/orgball2608/insta-event-calendar/internal/completion/completionimpl"
	"github.com/orgball2608/insta-event-calendar/internal/extractor/extractorimpl"
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-event-calendar/internal/migrations"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline/pipelineimpl"
	repositories "github.com/orgball2608/insta-event-calendar/internal/repositories/fx"
	"github.com/orgball2608/insta-event-calendar/internal/scraper/scraperimpl"
	"github.com/orgball2608/insta-event-calendar/internal/telegram"
	"github.com/orgball2608/insta-event-calendar/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"
)

// Core wires everything a pipeline run needs. Migrations are applied before any repository is used.
func Core(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(logger.FxOption),
		fx.Invoke(func(c *config.Config) error {
			return migrations.UpConfigured(context.Background(), c)
		}),
		storage(cfg),
		instagramimpl.Module,
		scraperimpl.Module,
		completionimpl.Module,
		extractorimpl.Module,
		calendarimpl.Module,
		telegramimpl.Module,
		pipelineimpl.Module,
	)
}

// Serve adds the health server and the scheduler on top of Core.
func Serve(cfg *config.Config) fx.Option {
	return fx.Options(
		Core(cfg),
		fx.Invoke(run),
	)
}

func storage(cfg *config.Config) fx.Option {
	if cfg.Storage.Driver == config.StorageDriverSQLite {
		return repositories.SQLiteModule
	}
	return repositories.PgxModule
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	sessions instagram.SessionFactory, pClient pipeline.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	server := newHttpServer(log, cfg)

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			go startHttpServer(log, server)

			if cfg.Instagram.ValidateOnStart {
				if err := validateSession(startCtx, sessions); err != nil {
					log.Error("Instagram login error", "error", err)
					tgClient.SendMessageToUser(pipelineimpl.FormatError(err))
					return err
				}
			}

			if err := pClient.Schedule(ctx); err != nil {
				log.Error("Schedule pipeline error", "error", err)
				tgClient.SendMessageToUser(pipelineimpl.FormatError(err))
				return err
			}
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return server.Shutdown(stopCtx)
		},
	})
}

// validateSession authenticates one throwaway session so bad credentials stop startup.
func validateSession(ctx context.Context, sessions instagram.SessionFactory) error {
	session, err := sessions.NewSession(ctx)
	if err != nil {
		return errors.Wrap(err, "instagram credentials rejected at startup")
	}
	return session.Close()
}
