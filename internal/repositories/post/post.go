package post

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

var (
	ErrNotFound         = errors.New("post not found")
	ErrAlreadyExists    = errors.New("post already exists")
	ErrAlreadyProcessed = errors.New("post already processed")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// List returns all posts of an organization ordered by date.
	// ErrNotFound is returned when the organization is unknown.
	List(ctx context.Context, orgID string) ([]domain.PostItem, error)

	// Create stores a new, unprocessed post. Existing posts are never overwritten.
	Create(ctx context.Context, item domain.PostItem) error

	// MarkProcessed records the extracted events and flips the post to processed exactly once
	MarkProcessed(ctx context.Context, orgID, postID string, events []domain.EventRecord) error

	ListUnprocessed(ctx context.Context, orgID string) ([]domain.PostItem, error)

	ExistsURL(ctx context.Context, orgID, url string) (bool, error)
}
