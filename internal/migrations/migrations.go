package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// NewProvider returns a goose provider carrying every schema migration.
// The SQL is portable between postgres and sqlite.
func NewProvider(dialect goose.Dialect, db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(dialect, db, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(
			goose.NewGoMigration(20251018090000,
				&goose.GoFunc{RunTx: upInit},
				&goose.GoFunc{RunTx: downInit},
			),
			goose.NewGoMigration(20251018093000,
				&goose.GoFunc{RunTx: upCalendars},
				&goose.GoFunc{RunTx: downCalendars},
			),
		),
	)
}

// Up applies all pending migrations.
func Up(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	provider, err := NewProvider(dialect, db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	provider, err := NewProvider(dialect, db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Down(ctx); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Reset rolls back every applied migration.
func Reset(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	provider, err := NewProvider(dialect, db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to reset migrations: %w", err)
	}
	return nil
}

func Status(ctx context.Context, dialect goose.Dialect, db *sql.DB) ([]*goose.MigrationStatus, error) {
	provider, err := NewProvider(dialect, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider.Status(ctx)
}

func exec(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
