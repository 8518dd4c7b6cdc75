package extractor

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

// ErrDecode means the completion output was not JSON at all.
var ErrDecode = errors.New("completion output is not valid JSON")

type FailureKind string

const (
	FailureTransport  FailureKind = "transport"
	FailureDecode     FailureKind = "decode"
	FailureValidation FailureKind = "validation"
)

// Failure describes the last failed attempt of an exhausted extraction.
type Failure struct {
	Kind FailureKind
	Err  error
}

// Result is the outcome of extracting one post.
// Exhausted extractions carry a Failure and an empty, non-nil Events slice.
type Result struct {
	Events   []domain.EventRecord
	Attempts int
	// Skipped is set when the post had already been processed.
	Skipped bool
	Failure *Failure
}

func (r Result) Exhausted() bool {
	return r.Failure != nil
}

// Summary aggregates one organization's extraction pass.
type Summary struct {
	OrganizationID string
	Processed      int
	Skipped        int
	Exhausted      int
	Events         int
	Errors         int
}

//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock.go
type Client interface {
	// ExtractOrganization extracts every unprocessed post of the organization.
	// Only failing to list the posts is returned as an error.
	ExtractOrganization(ctx context.Context, orgID string) (Summary, error)

	// ExtractPost extracts item at most once and records the result on item.
	// The returned error is a persistence failure.
	ExtractPost(ctx context.Context, item *domain.PostItem) (Result, error)
}
