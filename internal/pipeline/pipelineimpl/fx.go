package pipelineimpl

import (
	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"go.uber.org/fx"
)

var Module = fx.Module("pipeline",
	fx.Provide(
		NewGuard,
		fx.Annotate(New, fx.As(new(pipeline.Client))),
	),
)
