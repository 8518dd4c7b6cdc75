package post

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/repositories"
)

const table = "posts"

var columns = []string{"organization_id", "post_id", "url", "description", "published_at", "picture", "parsed"}

func listQuery(b sq.StatementBuilderType, orgID string, onlyUnprocessed bool) (string, []any, error) {
	q := b.Select(columns...).From(table).Where(sq.Eq{"organization_id": orgID})
	if onlyUnprocessed {
		q = q.Where(sq.Eq{"parsed": nil})
	}
	return q.OrderBy("published_at ASC").ToSql()
}

func organizationExistsQuery(b sq.StatementBuilderType, orgID string) (string, []any, error) {
	return b.Select("1").From("organizations").Where(sq.Eq{"id": orgID}).Limit(1).ToSql()
}

func createQuery(b sq.StatementBuilderType, item domain.PostItem) (string, []any, error) {
	id := item.ID
	if id == "" {
		id = domain.PostID(item.Date)
	}
	return b.Insert(table).
		Columns("organization_id", "post_id", "url", "description", "published_at", "picture").
		Values(item.OrganizationID, id, item.URL, item.Description, item.Date.UTC().Format(time.RFC3339), item.Picture).
		Suffix("ON CONFLICT (organization_id, post_id) DO NOTHING").
		ToSql()
}

func markProcessedQuery(b sq.StatementBuilderType, orgID, postID string, events []domain.EventRecord) (string, []any, error) {
	if events == nil {
		events = []domain.EventRecord{}
	}
	parsed, err := json.Marshal(events)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode events: %w", err)
	}
	return b.Update(table).
		Set("parsed", string(parsed)).
		Where(sq.Eq{"organization_id": orgID, "post_id": postID, "parsed": nil}).
		ToSql()
}

func postExistsQuery(b sq.StatementBuilderType, orgID, postID string) (string, []any, error) {
	return b.Select("1").From(table).Where(sq.Eq{"organization_id": orgID, "post_id": postID}).Limit(1).ToSql()
}

func existsURLQuery(b sq.StatementBuilderType, orgID, url string) (string, []any, error) {
	return b.Select("1").From(table).Where(sq.Eq{"organization_id": orgID, "url": url}).Limit(1).ToSql()
}

func scanPost(row repositories.Row) (domain.PostItem, error) {
	var (
		item        domain.PostItem
		publishedAt string
		parsed      *string
	)
	if err := row.Scan(
		&item.OrganizationID, &item.ID, &item.URL, &item.Description, &publishedAt, &item.Picture, &parsed,
	); err != nil {
		return item, err
	}

	date, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return item, fmt.Errorf("bad published_at %q for post %s: %w", publishedAt, item.ID, err)
	}
	item.Date = date

	if parsed != nil {
		item.Processed = true
		if err := json.Unmarshal([]byte(*parsed), &item.Events); err != nil {
			return item, fmt.Errorf("failed to decode events of post %s: %w", item.ID, err)
		}
	}
	return item, nil
}
