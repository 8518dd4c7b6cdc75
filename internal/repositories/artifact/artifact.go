package artifact

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound means no calendar has been written for the organization yet.
var ErrNotFound = errors.New("calendar artifact not found")

// Record is the stored calendar file of one organization.
type Record struct {
	OrganizationID string
	Body           []byte
	EntryCount     int
	UpdatedAt      time.Time
}

//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=mocks/mock.go
type Repository interface {
	Get(ctx context.Context, orgID string) (*Record, error)

	// Put replaces the whole artifact in a single statement
	Put(ctx context.Context, record Record) error
}
