package calendarimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/calendar"
	"go.uber.org/fx"
)

var Module = fx.Module("calendar",
	fx.Provide(
		fx.Annotate(New, fx.As(new(calendar.Assembler))),
	),
)
