package instagramimpl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/mitchellh/go-homedir"
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
)

const (
	loginErrorSelector = "._ab2z"
	usernameSelector   = `input[name="username"]`
	passwordSelector   = `input[name="password"]`
)

// StoredCookie matches the cookie export format of common browser drivers,
// so tokens captured elsewhere can be reused.
type StoredCookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Expiry   int64  `json:"expiry,omitempty"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
}

// DecodeCookieToken reads a base64 encoded JSON cookie list.
func DecodeCookieToken(token string) ([]StoredCookie, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("cookie token is not base64: %w", err)
	}
	var cookies []StoredCookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		return nil, fmt.Errorf("cookie token is not a cookie list: %w", err)
	}
	return cookies, nil
}

func (s *session) authenticate(ctx context.Context) error {
	s.setState(instagram.StateAuthenticating)

	// start the browser on the long-lived context so request timeouts never kill it
	if err := chromedp.Run(s.browserCtx); err != nil {
		s.setState(instagram.StateTerminated)
		return errors.Authentication("failed to start browser", err)
	}

	cookies, source := s.cachedCookies()
	if len(cookies) > 0 {
		ok, err := s.loginWithCookies(ctx, cookies)
		if err != nil {
			s.setState(instagram.StateTerminated)
			return errors.Authentication("failed to apply cached credentials", err)
		}
		if ok {
			s.logger.Info("Authenticated with cached cookies", "source", source)
			s.setState(instagram.StateAuthenticated)
			return nil
		}
		s.logger.Warn("Cached cookies rejected, falling back to credentials", "source", source)
	}

	if err := s.loginInteractive(ctx); err != nil {
		s.setState(instagram.StateTerminated)
		return err
	}

	s.logger.Info("Authenticated with credentials", "user", s.config.Instagram.User)
	s.setState(instagram.StateAuthenticated)

	if err := s.saveCookies(ctx); err != nil {
		s.logger.Warn("Failed to save session cookies", "error", err)
	}
	return nil
}

func (s *session) cachedCookies() ([]StoredCookie, string) {
	if token := s.config.Instagram.Cookie; token != "" {
		cookies, err := DecodeCookieToken(token)
		if err != nil {
			s.logger.Warn("Ignoring malformed cookie token", "error", err)
			return nil, ""
		}
		return cookies, "token"
	}

	path, err := homedir.Expand(s.config.Instagram.SessionPath)
	if err != nil || path == "" {
		return nil, ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ""
	}
	var cookies []StoredCookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		s.logger.Warn("Ignoring malformed cookie file", "path", path, "error", err)
		return nil, ""
	}
	return cookies, path
}

// loginWithCookies installs cookies and reports whether the home page still
// asks for a password afterwards.
func (s *session) loginWithCookies(ctx context.Context, cookies []StoredCookie) (bool, error) {
	runCtx, cancel := s.runContext(ctx, s.config.Instagram.PageTimeout)
	defer cancel()

	var loginVisible bool
	err := chromedp.Run(runCtx,
		chromedp.Navigate(instagram.BaseURL+"/"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				params := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithHTTPOnly(c.HTTPOnly).
					WithSecure(c.Secure)
				if c.Expiry > 0 {
					expires := cdp.TimeSinceEpoch(time.Unix(c.Expiry, 0))
					params = params.WithExpires(&expires)
				}
				if err := params.Do(ctx); err != nil {
					return fmt.Errorf("set cookie %s: %w", c.Name, err)
				}
			}
			return nil
		}),
		chromedp.Reload(),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, passwordSelector), &loginVisible),
	)
	if err != nil {
		return false, err
	}
	return !loginVisible, nil
}

func (s *session) loginInteractive(ctx context.Context) error {
	user, pass := s.config.Instagram.User, s.config.Instagram.Pass
	if user == "" || pass == "" {
		return errors.Authentication("no usable cookies and no credentials configured", nil)
	}

	runCtx, cancel := s.runContext(ctx, s.config.Instagram.PageTimeout+s.config.Instagram.LoginWait)
	defer cancel()

	var loginError string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(instagram.BaseURL+"/"),
		chromedp.Evaluate(`(() => {
			const b = [...document.querySelectorAll('button')].find(e => e.textContent.includes('Allow all cookies'));
			if (b) b.click();
			return true;
		})()`, nil),
		chromedp.WaitVisible(usernameSelector, chromedp.ByQuery),
		chromedp.SendKeys(usernameSelector, user, chromedp.ByQuery),
		chromedp.SendKeys(passwordSelector, pass+"\n", chromedp.ByQuery),
		chromedp.Sleep(s.config.Instagram.LoginWait),
		chromedp.Evaluate(fmt.Sprintf(`(document.querySelector('%s') || {}).innerText || ''`, loginErrorSelector), &loginError),
	)
	if err != nil {
		return errors.Authentication("interactive login failed", err)
	}
	if msg := strings.TrimSpace(loginError); msg != "" {
		return errors.Authentication("credentials rejected: "+msg, nil)
	}
	return nil
}

func (s *session) saveCookies(ctx context.Context) error {
	path, err := homedir.Expand(s.config.Instagram.SessionPath)
	if err != nil || path == "" {
		return err
	}

	runCtx, cancel := s.runContext(ctx, s.config.Instagram.PageTimeout)
	defer cancel()

	var cookies []*network.Cookie
	err = chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return err
	}

	stored := make([]StoredCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, StoredCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expiry:   int64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
