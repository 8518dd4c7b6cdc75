package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

// ErrMalformedEvent marks an event record that cannot become a calendar entry.
var ErrMalformedEvent = errors.New("malformed event")

//go:generate go run go.uber.org/mock/mockgen -source=calendar.go -destination=mocks/mock.go
type Assembler interface {
	// Assemble merges every extracted event of the organization into its stored calendar
	// and writes the full calendar back.
	Assemble(ctx context.Context, orgID string) (domain.Artifact, error)
}

// EntryFromEvent converts an extracted event into a calendar entry.
func EntryFromEvent(ev domain.EventRecord) (domain.CalendarEntry, error) {
	switch {
	case ev.Name == "":
		return domain.CalendarEntry{}, errors.Join(ErrMalformedEvent, errors.New("empty name"))
	case ev.Date.IsZero():
		return domain.CalendarEntry{}, errors.Join(ErrMalformedEvent, errors.New("missing date"))
	case ev.Duration.Estimated.Days < 0 || ev.Duration.Estimated.Hours < 0:
		return domain.CalendarEntry{}, errors.Join(ErrMalformedEvent, errors.New("negative duration"))
	}

	return domain.CalendarEntry{
		Name:     ev.Name,
		Start:    ev.Date.UTC().Truncate(time.Second),
		Details:  ev.Details,
		Duration: ev.Duration.Elapsed(),
	}, nil
}
