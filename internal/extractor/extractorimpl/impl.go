package extractorimpl

import (
	"context"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/completion"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"
)

const maxAttempts = 3

type Opts struct {
	fx.In

	Completion completion.Client
	PostRepo   post.Repository
	Config     *config.Config
	Logger     logger.Logger
}

type ExtractorImpl struct {
	completion completion.Client
	postRepo   post.Repository
	retryDelay time.Duration
	logger     logger.Logger
}

func New(opts Opts) *ExtractorImpl {
	return &ExtractorImpl{
		completion: opts.Completion,
		postRepo:   opts.PostRepo,
		retryDelay: opts.Config.Extractor.RetryDelay,
		logger:     opts.Logger.WithComponent("Extractor"),
	}
}

var _ extractor.Client = (*ExtractorImpl)(nil)

func (e *ExtractorImpl) ExtractOrganization(ctx context.Context, orgID string) (extractor.Summary, error) {
	summary := extractor.Summary{OrganizationID: orgID}

	items, err := e.postRepo.ListUnprocessed(ctx, orgID)
	if err != nil {
		return summary, errors.Repository("failed to list unprocessed posts of "+orgID, err)
	}

	for i := range items {
		item := &items[i]
		result, err := e.ExtractPost(ctx, item)
		if err != nil {
			summary.Errors++
			e.logger.Error("Failed to record extraction", "organization", orgID, "post", item.ID, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		switch {
		case result.Skipped:
			summary.Skipped++
		case result.Exhausted():
			summary.Processed++
			summary.Exhausted++
		default:
			summary.Processed++
			summary.Events += len(result.Events)
		}
	}

	e.logger.Info("Extraction finished",
		"organization", orgID,
		"processed", summary.Processed,
		"exhausted", summary.Exhausted,
		"events", summary.Events,
	)
	return summary, nil
}

func (e *ExtractorImpl) ExtractPost(ctx context.Context, item *domain.PostItem) (extractor.Result, error) {
	if item.Processed {
		return extractor.Result{Skipped: true, Events: item.Events}, nil
	}

	result := e.run(ctx, item)
	if err := ctx.Err(); err != nil && result.Exhausted() {
		// interrupted rather than exhausted; leave the post for the next run
		return result, err
	}

	if err := e.postRepo.MarkProcessed(ctx, item.OrganizationID, item.ID, result.Events); err != nil {
		if errors.Is(err, post.ErrAlreadyProcessed) {
			return e.reloadProcessed(ctx, item)
		}
		return result, errors.Repository("failed to mark post processed", err)
	}

	item.Processed = true
	item.Events = result.Events
	return result, nil
}

// reloadProcessed refreshes item from the stored copy after another run processed it first.
func (e *ExtractorImpl) reloadProcessed(ctx context.Context, item *domain.PostItem) (extractor.Result, error) {
	items, err := e.postRepo.List(ctx, item.OrganizationID)
	if err != nil {
		return extractor.Result{Skipped: true}, errors.Repository("failed to reload processed post", err)
	}
	for _, stored := range items {
		if stored.ID == item.ID {
			item.Processed = true
			item.Events = stored.Events
			return extractor.Result{Skipped: true, Events: stored.Events}, nil
		}
	}
	return extractor.Result{Skipped: true}, errors.Repository("processed post disappeared", post.ErrNotFound)
}

// attemptState is the bounded retry state of one extraction.
type attemptState struct {
	attempt  int
	lastKind extractor.FailureKind
	lastErr  error
}

func (s *attemptState) exhausted() bool {
	return s.attempt >= maxAttempts
}

func (e *ExtractorImpl) run(ctx context.Context, item *domain.PostItem) extractor.Result {
	state := attemptState{}
	req := buildRequest(item)

	for !state.exhausted() {
		state.attempt++

		events, kind, err := e.attempt(ctx, req)
		if err == nil {
			metrics.IncExtractionAttempt("success")
			return extractor.Result{Events: events, Attempts: state.attempt}
		}

		metrics.IncExtractionAttempt(string(kind))
		state.lastKind, state.lastErr = kind, err
		e.logger.Warn("Extraction attempt failed",
			"organization", item.OrganizationID,
			"post", item.ID,
			"attempt", state.attempt,
			"kind", string(kind),
			"error", err,
		)

		if state.exhausted() || !sleep(ctx, e.retryDelay) {
			break
		}
	}

	e.logger.Warn("Extraction exhausted, recording post with no events",
		"organization", item.OrganizationID,
		"post", item.ID,
		"attempts", state.attempt,
	)
	return extractor.Result{
		Events:   []domain.EventRecord{},
		Attempts: state.attempt,
		Failure:  &extractor.Failure{Kind: state.lastKind, Err: state.lastErr},
	}
}

func (e *ExtractorImpl) attempt(ctx context.Context, req completion.Request) ([]domain.EventRecord, extractor.FailureKind, error) {
	raw, err := e.completion.Complete(ctx, req)
	if err != nil {
		return nil, extractor.FailureTransport, err
	}

	events, err := ParseEvents(raw)
	switch {
	case err == nil:
		return events, "", nil
	case errors.Is(err, extractor.ErrDecode):
		return nil, extractor.FailureDecode, err
	default:
		return nil, extractor.FailureValidation, err
	}
}

// sleep waits d and reports whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
