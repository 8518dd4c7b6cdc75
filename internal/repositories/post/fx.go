package post

import (
	"go.uber.org/fx"
)

var PgxModule = fx.Module("post_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)

var SQLiteModule = fx.Module("post_repository",
	fx.Provide(
		fx.Annotate(
			NewSQLite,
			fx.As(new(Repository)),
		),
	),
)
