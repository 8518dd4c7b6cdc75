package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"go.uber.org/fx"
)

// FxOption provides the application Logger. Buffered Sentry events are flushed on shutdown.
var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) *Impl {
		log := New(Opts{
			Env:       cfg.App.Env,
			SentryDSN: cfg.App.SentryUrl,
		})

		if cfg.App.SentryUrl != "" {
			lc.Append(fx.StopHook(func() {
				sentry.Flush(2 * time.Second)
			}))
		}
		return log
	},
	fx.As(new(Logger)),
)
