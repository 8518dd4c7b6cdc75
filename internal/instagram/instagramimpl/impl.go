package instagramimpl

import (
	"context"

	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// Factory launches one headless browser per session.
type Factory struct {
	config *config.Config
	logger logger.Logger
}

func New(opts Opts) *Factory {
	return &Factory{
		config: opts.Config,
		logger: opts.Logger.WithComponent("InstagramSession"),
	}
}

var _ instagram.SessionFactory = (*Factory)(nil)

// NewSession starts a browser and authenticates it. On failure the browser is
// released before returning.
func (f *Factory) NewSession(ctx context.Context) (instagram.Session, error) {
	s := newSession(f.config, f.logger)

	if err := s.authenticate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
