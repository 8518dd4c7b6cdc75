package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// PgBuilder emits $n placeholders for pgx.
var PgBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// SQLiteBuilder emits ? placeholders for database/sql over modernc sqlite.
var SQLiteBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var ErrBadQuery = errors.New("bad query")

// Row is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type Row interface {
	Scan(dest ...any) error
}
