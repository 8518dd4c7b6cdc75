package organization

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
		logger: logger.WithComponent("OrganizationRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := existsQuery(repositories.PgBuilder, id)
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *Pgx) Get(ctx context.Context, id string) (*domain.Organization, error) {
	query, args, err := getQuery(repositories.PgBuilder, id)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	org, err := scanOrganization(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (p *Pgx) Upsert(ctx context.Context, org domain.Organization) error {
	query, args, err := upsertQuery(repositories.PgBuilder, org)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	p.logger.Debug("Organization saved", "id", org.ID)
	return nil
}

func (p *Pgx) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := listIDsQuery(repositories.PgBuilder)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
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
