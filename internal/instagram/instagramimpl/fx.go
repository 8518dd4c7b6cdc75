package instagramimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/instagram"
	"go.uber.org/fx"
)

var Module = fx.Module("instagram",
	fx.Provide(
		fx.Annotate(New, fx.As(new(instagram.SessionFactory))),
	),
)
