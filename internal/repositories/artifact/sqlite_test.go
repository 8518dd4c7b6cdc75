package artifact

import (
	"context"
	"errors"
	"testing"

	"github.com/orgball2608/insta-event-calendar/internal/repositories/sqlitetest"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

func TestSQLitePutReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLite(sqlitetest.New(t), logger.NewNop())

	if _, err := repo.Get(ctx, "club"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := repo.Put(ctx, Record{OrganizationID: "club", Body: []byte("first"), EntryCount: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, Record{OrganizationID: "club", Body: []byte("second"), EntryCount: 2}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, err := repo.Get(ctx, "club")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Body) != "second" || got.EntryCount != 2 || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected record: %+v", got)
	}
}
