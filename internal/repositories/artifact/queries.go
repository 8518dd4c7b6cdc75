package artifact

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-event-calendar/internal/repositories"
)

const table = "calendars"

func getQuery(b sq.StatementBuilderType, orgID string) (string, []any, error) {
	return b.Select("organization_id", "body", "entry_count", "updated_at").
		From(table).
		Where(sq.Eq{"organization_id": orgID}).
		ToSql()
}

func putQuery(b sq.StatementBuilderType, record Record) (string, []any, error) {
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return b.Insert(table).
		Columns("organization_id", "body", "entry_count", "updated_at").
		Values(record.OrganizationID, string(record.Body), record.EntryCount, updatedAt.UTC().Format(time.RFC3339)).
		Suffix(`ON CONFLICT (organization_id) DO UPDATE SET
			body = EXCLUDED.body,
			entry_count = EXCLUDED.entry_count,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}

func scanRecord(row repositories.Row) (*Record, error) {
	var (
		record    Record
		body      string
		updatedAt string
	)
	if err := row.Scan(&record.OrganizationID, &body, &record.EntryCount, &updatedAt); err != nil {
		return nil, err
	}
	record.Body = []byte(body)
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		record.UpdatedAt = t
	}
	return &record, nil
}
