package migrations

import (
	"context"
	"database/sql"
)

func upInit(ctx context.Context, tx *sql.Tx) error {
	return exec(ctx, tx,
		`CREATE TABLE organizations (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			avatar_url  TEXT NOT NULL DEFAULT '',
			links       TEXT NOT NULL DEFAULT '[]',
			followers   INTEGER NOT NULL DEFAULT 0,
			following   INTEGER NOT NULL DEFAULT 0,
			post_count  INTEGER NOT NULL DEFAULT 0,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE posts (
			organization_id TEXT NOT NULL,
			post_id         TEXT NOT NULL,
			url             TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			published_at    TEXT NOT NULL,
			picture         TEXT NOT NULL DEFAULT '',
			parsed          TEXT,
			PRIMARY KEY (organization_id, post_id)
		)`,
		`CREATE INDEX idx_posts_unparsed ON posts (organization_id) WHERE parsed IS NULL`,
		`CREATE INDEX idx_posts_url ON posts (organization_id, url)`,
	)
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	return exec(ctx, tx,
		`DROP TABLE posts`,
		`DROP TABLE organizations`,
	)
}
