package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle so fx can tell it apart from the postgres *sql.DB used by goose.
type DB struct {
	*sql.DB
}

type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// Open opens the database at path with a single connection and a busy timeout.
// ":memory:" is accepted for throwaway databases.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand sqlite path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		dsn = "file:" + expanded + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" coherent and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db}, nil
}

// New opens the configured sqlite database and closes it on shutdown.
func New(opts Opts) (*DB, error) {
	db, err := Open(opts.Config.Storage.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			opts.Logger.Info("Opened sqlite database", "path", opts.Config.Storage.SQLitePath)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}
