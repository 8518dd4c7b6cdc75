package calendarimpl

import (
	"context"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/calendar"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/artifact"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	PostRepo     post.Repository
	ArtifactRepo artifact.Repository
	Logger       logger.Logger
}

type AssemblerImpl struct {
	postRepo     post.Repository
	artifactRepo artifact.Repository
	logger       logger.Logger
	now          func() time.Time
}

func New(opts Opts) *AssemblerImpl {
	return &AssemblerImpl{
		postRepo:     opts.PostRepo,
		artifactRepo: opts.ArtifactRepo,
		logger:       opts.Logger.WithComponent("CalendarAssembler"),
		now:          time.Now,
	}
}

var _ calendar.Assembler = (*AssemblerImpl)(nil)

func (a *AssemblerImpl) Assemble(ctx context.Context, orgID string) (domain.Artifact, error) {
	current, err := a.load(ctx, orgID)
	if err != nil {
		return domain.Artifact{}, err
	}

	items, err := a.postRepo.List(ctx, orgID)
	if err != nil {
		return domain.Artifact{}, errors.Repository("failed to list posts of "+orgID, err)
	}

	merged, added := a.merge(current, items)

	record := artifact.Record{
		OrganizationID: orgID,
		Body:           calendar.Encode(merged),
		EntryCount:     len(merged.Entries),
		UpdatedAt:      a.now().UTC(),
	}
	if err := a.artifactRepo.Put(ctx, record); err != nil {
		return domain.Artifact{}, errors.Repository("failed to save calendar of "+orgID, err)
	}

	metrics.CalendarEntries.WithLabelValues(orgID).Add(float64(added))
	a.logger.Info("Calendar assembled", "organization", orgID, "entries", len(merged.Entries), "added", added)
	return merged, nil
}

// load returns the stored calendar, or an empty one when none was written yet.
func (a *AssemblerImpl) load(ctx context.Context, orgID string) (domain.Artifact, error) {
	record, err := a.artifactRepo.Get(ctx, orgID)
	if errors.Is(err, artifact.ErrNotFound) {
		return domain.Artifact{OrganizationID: orgID, Entries: []domain.CalendarEntry{}}, nil
	}
	if err != nil {
		return domain.Artifact{}, errors.Repository("failed to read calendar of "+orgID, err)
	}
	return calendar.Decode(orgID, record.Body)
}

// merge appends the events of processed posts whose key is not in the calendar yet.
// Entries already present are kept as they are.
func (a *AssemblerImpl) merge(current domain.Artifact, items []domain.PostItem) (domain.Artifact, int) {
	seen := make(map[domain.EntryKey]struct{}, len(current.Entries))
	for _, entry := range current.Entries {
		seen[entry.Key()] = struct{}{}
	}

	added := 0
	for _, item := range items {
		if !item.Processed {
			continue
		}
		for _, ev := range item.Events {
			entry, err := calendar.EntryFromEvent(ev)
			if err != nil {
				a.logger.Warn("Skipping malformed event",
					"organization", current.OrganizationID,
					"post", item.ID,
					"name", ev.Name,
					"error", err,
				)
				continue
			}

			key := entry.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			current.Entries = append(current.Entries, entry)
			added++
		}
	}
	return current, added
}
