package instagram

import (
	"context"
	"strings"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

const BaseURL = "https://www.instagram.com"

// State is the lifecycle position of a Session.
type State int32

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	// StateDegraded follows a transport fault. The session may still serve requests.
	StateDegraded
	// StateTerminated sessions are unusable and must be discarded.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateDegraded:
		return "degraded"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session owns one authenticated browsing context. It is not safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Session interface {
	FetchOrganizationProfile(ctx context.Context, id string) (domain.Organization, error)
	FetchPostContent(ctx context.Context, url string) (domain.PostItem, error)
	State() State

	// Close releases the browser. It is safe to call more than once.
	Close() error
}

// SessionFactory builds authenticated sessions. A failed authentication
// returns an error matching errors.ErrAuthentication and no session.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

func ProfileURL(id string) string {
	return BaseURL + "/" + strings.Trim(id, "/") + "/"
}
