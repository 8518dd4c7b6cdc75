package migrations

import (
	"context"
	"database/sql"
)

func upCalendars(ctx context.Context, tx *sql.Tx) error {
	return exec(ctx, tx,
		`CREATE TABLE calendars (
			organization_id TEXT PRIMARY KEY,
			body            TEXT NOT NULL,
			entry_count     INTEGER NOT NULL DEFAULT 0,
			updated_at      TEXT NOT NULL
		)`,
	)
}

func downCalendars(ctx context.Context, tx *sql.Tx) error {
	return exec(ctx, tx, `DROP TABLE calendars`)
}
