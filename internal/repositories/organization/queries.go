package organization

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/repositories"
)

const table = "organizations"

var columns = []string{"id", "name", "description", "avatar_url", "links", "followers", "following", "post_count", "updated_at"}

func existsQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select("1").From(table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
}

func getQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
}

func listIDsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("id").From(table).OrderBy("id ASC").ToSql()
}

func upsertQuery(b sq.StatementBuilderType, org domain.Organization) (string, []any, error) {
	links := org.Links
	if links == nil {
		links = []domain.Link{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode links: %w", err)
	}

	updatedAt := org.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return b.Insert(table).
		Columns(columns...).
		Values(
			org.ID,
			org.Name,
			org.Description,
			org.AvatarURL,
			string(linksJSON),
			org.Followers,
			org.Following,
			org.PostCount,
			updatedAt.UTC().Format(time.RFC3339),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			avatar_url = EXCLUDED.avatar_url,
			links = EXCLUDED.links,
			followers = EXCLUDED.followers,
			following = EXCLUDED.following,
			post_count = EXCLUDED.post_count,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}

func scanOrganization(row repositories.Row) (*domain.Organization, error) {
	var (
		org       domain.Organization
		links     string
		updatedAt string
	)
	if err := row.Scan(
		&org.ID, &org.Name, &org.Description, &org.AvatarURL, &links,
		&org.Followers, &org.Following, &org.PostCount, &updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(links), &org.Links); err != nil {
		return nil, fmt.Errorf("failed to decode links for %s: %w", org.ID, err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		org.UpdatedAt = t
	}
	return &org, nil
}
