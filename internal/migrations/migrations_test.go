package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/orgball2608/insta-event-calendar/pkg/sqlite"
	"github.com/pressly/goose/v3"
)

func TestSQLiteUpDownReset(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "calendar.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Up(ctx, goose.DialectSQLite3, db.DB); err != nil {
		t.Fatalf("Up: %v", err)
	}
	// applying twice is a no-op
	if err := Up(ctx, goose.DialectSQLite3, db.DB); err != nil {
		t.Fatalf("second Up: %v", err)
	}

	statuses, err := Status(ctx, goose.DialectSQLite3, db.DB)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d migrations", len(statuses))
	}
	for _, s := range statuses {
		if s.State != goose.StateApplied {
			t.Fatalf("migration %d is %s", s.Source.Version, s.State)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO organizations (id, name, description, avatar_url, links, followers, following, post_count, updated_at) VALUES ('club', '', '', '', '[]', 0, 0, 0, '2024-03-04T10:00:00Z')`); err != nil {
		t.Fatalf("schema not usable: %v", err)
	}

	if err := Down(ctx, goose.DialectSQLite3, db.DB); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if err := Reset(ctx, goose.DialectSQLite3, db.DB); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := db.ExecContext(ctx, `SELECT 1 FROM organizations`); err == nil {
		t.Fatal("organizations table should be dropped after reset")
	}
}
