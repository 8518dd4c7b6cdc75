package organization

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

var ErrNotFound = errors.New("organization not found")

//go:generate go run go.uber.org/mock/mockgen -source=organization.go -destination=mocks/mock.go
type Repository interface {
	// Exists reports whether the organization has been acquired at least once
	Exists(ctx context.Context, id string) (bool, error)

	// Get returns the stored organization or ErrNotFound
	Get(ctx context.Context, id string) (*domain.Organization, error)

	// Upsert creates or overwrites the organization record
	Upsert(ctx context.Context, org domain.Organization) error

	// ListIDs returns every known organization identifier
	ListIDs(ctx context.Context) ([]string, error)
}
