package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/insta-event-calendar/internal/app"
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var runCmd = &cobra.Command{
	Use:   "run [instagram-id...]",
	Short: "Run the pipeline once",
	Long: `Run acquires, extracts and assembles the given organizations once.
Without arguments it targets every organization of the manifest, or every stored
organization when no manifest exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")

		cfg := loadConfig()
		log := logger.New(logger.Opts{Env: cfg.App.Env})

		var client pipeline.Client
		application := fx.New(
			fx.Logger(log),
			app.Core(cfg),
			fx.Populate(&client),
		)
		if err := application.Start(context.Background()); err != nil {
			log.Error("Failed to start application", "error", err)
			return err
		}
		defer func() {
			if err := application.Stop(context.Background()); err != nil {
				log.Error("Failed to stop application", "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := client.Run(ctx, args, workers)
		if err != nil {
			return err
		}

		for _, id := range report.Targets {
			res := report.Organizations[id]
			log.Info("Organization done",
				"organization", id,
				"scrape", string(report.Scrape[id].Status),
				"processed", res.Extraction.Processed,
				"events", res.Extraction.Events,
				"entries", res.Entries,
			)
		}
		log.Info("Run finished",
			"organizations", len(report.Targets),
			"failed", len(report.Failed()),
			"duration", report.Duration().String(),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().IntP("workers", "w", 0, "concurrent acquisition sessions (default SCRAPER_WORKERS)")
	rootCmd.AddCommand(runCmd)
}
