package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/sqlite"
	"github.com/pressly/goose/v3"
)

// Connect opens a dedicated connection to the configured storage for running migrations.
func Connect(cfg *config.Config) (*sql.DB, goose.Dialect, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		return db.DB, goose.DialectSQLite3, nil
	case config.StorageDriverPostgres, "":
		db, err := sql.Open("postgres", cfg.GetDSN())
		if err != nil {
			return nil, "", err
		}
		return db, goose.DialectPostgres, nil
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// UpConfigured applies pending migrations to the configured storage.
func UpConfigured(ctx context.Context, cfg *config.Config) error {
	db, dialect, err := Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return Up(ctx, dialect, db)
}
