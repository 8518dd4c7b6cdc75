package organization

import (
	"context"
	"database/sql"
	"errors"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
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
		logger: logger.WithComponent("OrganizationRepo"),
	}
}

var _ Repository = (*SQLite)(nil)

func (s *SQLite) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := existsQuery(repositories.SQLiteBuilder, id)
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*domain.Organization, error) {
	query, args, err := getQuery(repositories.SQLiteBuilder, id)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	org, err := scanOrganization(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *SQLite) Upsert(ctx context.Context, org domain.Organization) error {
	query, args, err := upsertQuery(repositories.SQLiteBuilder, org)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	s.logger.Debug("Organization saved", "id", org.ID)
	return nil
}

func (s *SQLite) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := listIDsQuery(repositories.SQLiteBuilder)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
