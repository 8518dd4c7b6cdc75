package post

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
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*SQLite)(nil)

func (s *SQLite) List(ctx context.Context, orgID string) ([]domain.PostItem, error) {
	items, err := s.list(ctx, orgID, false)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	query, args, err := organizationExistsQuery(repositories.SQLiteBuilder, orgID)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	ok, err := s.exists(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return items, nil
}

func (s *SQLite) ListUnprocessed(ctx context.Context, orgID string) ([]domain.PostItem, error) {
	return s.list(ctx, orgID, true)
}

func (s *SQLite) Create(ctx context.Context, item domain.PostItem) error {
	query, args, err := createQuery(repositories.SQLiteBuilder, item)
	if err != nil {
		return repositories.ErrBadQuery
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLite) MarkProcessed(ctx context.Context, orgID, postID string, events []domain.EventRecord) error {
	query, args, err := markProcessedQuery(repositories.SQLiteBuilder, orgID, postID, events)
	if err != nil {
		return repositories.ErrBadQuery
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Debug("Post marked processed", "organization", orgID, "post", postID, "events", len(events))
		return nil
	}

	query, args, err = postExistsQuery(repositories.SQLiteBuilder, orgID, postID)
	if err != nil {
		return repositories.ErrBadQuery
	}

	ok, err := s.exists(ctx, query, args)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return ErrAlreadyProcessed
}

func (s *SQLite) ExistsURL(ctx context.Context, orgID, url string) (bool, error) {
	query, args, err := existsURLQuery(repositories.SQLiteBuilder, orgID, url)
	if err != nil {
		return false, repositories.ErrBadQuery
	}
	return s.exists(ctx, query, args)
}

func (s *SQLite) list(ctx context.Context, orgID string, onlyUnprocessed bool) ([]domain.PostItem, error) {
	query, args, err := listQuery(repositories.SQLiteBuilder, orgID, onlyUnprocessed)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PostItem{}
	for rows.Next() {
		item, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLite) exists(ctx context.Context, query string, args []any) (bool, error) {
	var one int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
