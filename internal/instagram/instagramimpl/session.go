package instagramimpl

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

// settleDelay gives client-side rendering time to fill the page after DOM ready.
const settleDelay = 2 * time.Second

type session struct {
	config *config.Config
	logger logger.Logger

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu    sync.Mutex
	state instagram.State
}

var _ instagram.Session = (*session)(nil)

func newSession(cfg *config.Config, log logger.Logger) *session {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Instagram.Headless),
		chromedp.UserAgent(randomUserAgent()),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)

	// the browser outlives any single request, so it hangs off a background context
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &session{
		config:        cfg,
		logger:        log,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		state:         instagram.StateUnauthenticated,
	}
}

func (s *session) State() instagram.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) setState(state instagram.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == instagram.StateTerminated {
		return
	}
	if s.state != state {
		s.logger.Debug("Session state changed", "from", s.state.String(), "to", state.String())
	}
	s.state = state
}

func (s *session) Close() error {
	s.mu.Lock()
	if s.browserCancel == nil {
		s.mu.Unlock()
		return nil
	}
	s.state = instagram.StateTerminated
	browserCancel, allocCancel := s.browserCancel, s.allocCancel
	s.browserCancel, s.allocCancel = nil, nil
	s.mu.Unlock()

	if browserCancel != nil {
		browserCancel()
	}
	if allocCancel != nil {
		allocCancel()
	}
	s.logger.Debug("Session closed")
	return nil
}

func (s *session) FetchOrganizationProfile(ctx context.Context, id string) (domain.Organization, error) {
	html, err := s.loadPage(ctx, instagram.ProfileURL(id))
	if err != nil {
		return domain.Organization{}, err
	}

	org, err := ParseProfile(html, id)
	if err != nil {
		return domain.Organization{}, err
	}
	org.UpdatedAt = time.Now()
	return org, nil
}

func (s *session) FetchPostContent(ctx context.Context, url string) (domain.PostItem, error) {
	html, err := s.loadPage(ctx, url)
	if err != nil {
		return domain.PostItem{}, err
	}
	return ParsePost(html, url)
}

// loadPage navigates the session tab and returns the rendered document.
func (s *session) loadPage(ctx context.Context, url string) (string, error) {
	if s.State() == instagram.StateTerminated {
		return "", errors.Authentication("session is terminated", nil)
	}

	runCtx, cancel := s.runContext(ctx, s.config.Instagram.PageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		s.setState(instagram.StateDegraded)
		return "", errors.Transport("failed to load "+url, err)
	}
	s.recovered()
	return html, nil
}

// recovered moves a degraded session back to authenticated after a successful load.
func (s *session) recovered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == instagram.StateDegraded {
		s.logger.Debug("Session recovered from a transport fault")
		s.state = instagram.StateAuthenticated
	}
}

// runContext derives a chromedp context bounded by timeout that is also
// cancelled when the caller's ctx is done.
func (s *session) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}
