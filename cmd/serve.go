package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/insta-event-calendar/internal/app"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline on a schedule and serve /healthz and /metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := logger.New(logger.Opts{Env: cfg.App.Env})

		application := fx.New(
			fx.Logger(log),
			app.Serve(cfg),
		)

		// Start the application
		if err := application.Start(context.Background()); err != nil {
			log.Error("Failed to start application", "error", err)
			return err
		}

		// Wait for interrupt signal
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		// Gracefully shutdown the application
		if err := application.Stop(context.Background()); err != nil {
			log.Error("Failed to stop application", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
