package artifact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orgball2608/insta-event-calendar/internal/repositories"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/orgball2608/insta-event-calendar/pkg/sqlite"
)

type SQLite struct {
	db     *sqlite.DB
	logger logger.Logger
}

func NewSQLite(db *sqlite.DB, logger logger.Logger) *SQLite {
	return &SQLite{
		db:     db,
		logger: logger.WithComponent("ArtifactRepo"),
	}
}

var _ Repository = (*SQLite)(nil)

func (s *SQLite) Get(ctx context.Context, orgID string) (*Record, error) {
	query, args, err := getQuery(repositories.SQLiteBuilder, orgID)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *SQLite) Put(ctx context.Context, record Record) error {
	query, args, err := putQuery(repositories.SQLiteBuilder, record)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	s.logger.Debug("Calendar saved", "organization", record.OrganizationID, "entries", record.EntryCount)
	return nil
}
