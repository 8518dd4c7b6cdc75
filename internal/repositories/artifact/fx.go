package artifact

import (
	"go.uber.org/fx"
)

var PgxModule = fx.Module("artifact_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)

var SQLiteModule = fx.Module("artifact_repository",
	fx.Provide(
		fx.Annotate(
			NewSQLite,
			fx.As(new(Repository)),
		),
	),
)
