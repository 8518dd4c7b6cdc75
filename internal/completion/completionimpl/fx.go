package completionimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/completion"
	"go.uber.org/fx"
)

var Module = fx.Module("completion",
	fx.Provide(
		fx.Annotate(New, fx.As(new(completion.Client))),
	),
)
