package main

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|reset]",
	Short:     "Manage the storage schema",
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{"up", "down", "status", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx := context.Background()

		db, dialect, err := migrations.Connect(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		switch args[0] {
		case "up":
			if err := migrations.Up(ctx, dialect, db); err != nil {
				return err
			}
			fmt.Println("Migrations applied successfully")
		case "down":
			if err := migrations.Down(ctx, dialect, db); err != nil {
				return err
			}
			fmt.Println("Migration rollback successful")
		case "reset":
			if err := migrations.Reset(ctx, dialect, db); err != nil {
				return err
			}
			fmt.Println("All migrations have been rolled back")
		case "status":
			statuses, err := migrations.Status(ctx, dialect, db)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				applied := "pending"
				if !s.AppliedAt.IsZero() {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%d\t%s\t%s\n", s.Source.Version, s.State, applied)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
