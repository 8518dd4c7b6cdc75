package scraperimpl

import (
	"context"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/retry"
)

// worker drives one chunk on one session at a time.
type worker struct {
	*ScraperImpl
	session instagram.Session
}

// runChunk processes ids sequentially. A session whose organization exhausted
// its attempts is replaced before the next organization is attempted.
func (s *ScraperImpl) runChunk(ctx context.Context, ids []string, report *reportBuilder) {
	w := &worker{ScraperImpl: s}
	defer w.closeSession()

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			report.failAll(ids[i:], err)
			return
		}

		if w.session == nil {
			if err := w.openSession(ctx); err != nil {
				s.logger.Error("Could not open a session, failing rest of chunk", "remaining", len(ids)-i, "error", err)
				report.failAll(ids[i:], err)
				return
			}
		}

		outcome := w.scrapeOrganization(ctx, id)
		report.set(id, outcome)

		if outcome.Status == scraper.StatusFailed {
			s.logger.Warn("Organization failed, replacing session", "organization", id, "attempts", outcome.Attempts, "error", outcome.Err)
			w.closeSession()
			metrics.SessionReplacements.Inc()
		}
	}
}

func (w *worker) openSession(ctx context.Context) error {
	session, err := w.sessions.NewSession(ctx)
	if err != nil {
		return err
	}
	w.session = session
	return nil
}

func (w *worker) closeSession() {
	if w.session == nil {
		return
	}
	if err := w.session.Close(); err != nil {
		w.logger.Warn("Failed to close session", "error", err)
	}
	w.session = nil
}

func (w *worker) scrapeOrganization(ctx context.Context, id string) scraper.Outcome {
	var org domain.Organization

	attempts, err := retry.Do(ctx, w.logger, "scrape "+id, func() error {
		if w.session == nil {
			// a previous attempt lost authentication
			if err := w.openSession(ctx); err != nil {
				return retry.Permanent(err)
			}
		}

		fetched, err := w.session.FetchOrganizationProfile(ctx, id)
		if err != nil {
			if errors.IsAuthentication(err) {
				w.closeSession()
			}
			return err
		}

		if err := w.orgRepo.Upsert(ctx, fetched); err != nil {
			return retry.Permanent(errors.Repository("failed to save organization "+id, err))
		}
		org = fetched
		return nil
	}, retry.Config{MaxAttempts: maxAttempts, Interval: w.config.Scraper.RetryDelay})

	if err != nil {
		return scraper.Outcome{Status: scraper.StatusFailed, Attempts: attempts, Err: err}
	}

	return scraper.Outcome{
		Status:   scraper.StatusSucceeded,
		Attempts: attempts,
		Posts:    w.storePosts(ctx, org),
	}
}

// storePosts fetches and stores posts not seen before. A failing post is skipped.
func (w *worker) storePosts(ctx context.Context, org domain.Organization) int {
	urls := org.PostURLs
	if limit := w.config.Scraper.MaxPosts; limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}

	stored := 0
	for _, url := range urls {
		if w.session == nil || ctx.Err() != nil {
			break
		}

		exists, err := w.postRepo.ExistsURL(ctx, org.ID, url)
		if err != nil {
			w.logger.Error("Failed to check post existence", "organization", org.ID, "url", url, "error", err)
			continue
		}
		if exists {
			continue
		}

		item, err := w.session.FetchPostContent(ctx, url)
		if err != nil {
			w.logger.Warn("Failed to fetch post, skipping", "organization", org.ID, "url", url, "error", err)
			if errors.IsAuthentication(err) {
				w.closeSession()
			}
			continue
		}
		item.OrganizationID = org.ID
		item.URL = url

		if err := w.postRepo.Create(ctx, item); err != nil {
			if !errors.Is(err, post.ErrAlreadyExists) {
				w.logger.Error("Failed to save post", "organization", org.ID, "post", item.ID, "error", err)
			}
			continue
		}
		stored++
	}

	if stored > 0 {
		w.logger.Info("Stored new posts", "organization", org.ID, "count", stored)
	}
	return stored
}
