package post

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/repositories"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) List(ctx context.Context, orgID string) ([]domain.PostItem, error) {
	items, err := p.list(ctx, orgID, false)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	query, args, err := organizationExistsQuery(repositories.PgBuilder, orgID)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	ok, err := p.exists(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return items, nil
}

func (p *Pgx) ListUnprocessed(ctx context.Context, orgID string) ([]domain.PostItem, error) {
	return p.list(ctx, orgID, true)
}

func (p *Pgx) Create(ctx context.Context, item domain.PostItem) error {
	query, args, err := createQuery(repositories.PgBuilder, item)
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (p *Pgx) MarkProcessed(ctx context.Context, orgID, postID string, events []domain.EventRecord) error {
	query, args, err := markProcessedQuery(repositories.PgBuilder, orgID, postID, events)
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		p.logger.Debug("Post marked processed", "organization", orgID, "post", postID, "events", len(events))
		return nil
	}

	query, args, err = postExistsQuery(repositories.PgBuilder, orgID, postID)
	if err != nil {
		return repositories.ErrBadQuery
	}

	ok, err := p.exists(ctx, query, args)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return ErrAlreadyProcessed
}

func (p *Pgx) ExistsURL(ctx context.Context, orgID, url string) (bool, error) {
	query, args, err := existsURLQuery(repositories.PgBuilder, orgID, url)
	if err != nil {
		return false, repositories.ErrBadQuery
	}
	return p.exists(ctx, query, args)
}

func (p *Pgx) list(ctx context.Context, orgID string, onlyUnprocessed bool) ([]domain.PostItem, error) {
	query, args, err := listQuery(repositories.PgBuilder, orgID, onlyUnprocessed)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
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

func (p *Pgx) exists(ctx context.Context, query string, args []any) (bool, error) {
	var one int
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
