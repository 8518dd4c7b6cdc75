package extractorimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"go.uber.org/fx"
)

var Module = fx.Module("extractor",
	fx.Provide(
		fx.Annotate(New, fx.As(new(extractor.Client))),
	),
)
