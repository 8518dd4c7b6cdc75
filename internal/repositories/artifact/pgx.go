package artifact

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
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
		logger: logger.WithComponent("ArtifactRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, orgID string) (*Record, error) {
	query, args, err := getQuery(repositories.PgBuilder, orgID)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	record, err := scanRecord(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (p *Pgx) Put(ctx context.Context, record Record) error {
	query, args, err := putQuery(repositories.PgBuilder, record)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	p.logger.Debug("Calendar saved", "organization", record.OrganizationID, "entries", record.EntryCount)
	return nil
}
