package scraperimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/scraper"
	"go.uber.org/fx"
)

var Module = fx.Module("scraper",
	fx.Provide(
		fx.Annotate(New, fx.As(new(scraper.Client))),
	),
)
