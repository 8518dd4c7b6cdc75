// Package sqlitetest opens a migrated sqlite database for repository and pipeline tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/orgball2608/insta-event-calendar/internal/migrations"
	"github.com/orgball2608/insta-event-calendar/pkg/sqlite"
	"github.com/pressly/goose/v3"
)

func New(t testing.TB) *sqlite.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "calendar.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), goose.DialectSQLite3, db.DB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
