package fx

import (
	"github.com/orgball2608/insta-event-calendar/internal/repositories/artifact"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/organization"
	"github.com/orgball2608/insta-event-calendar/internal/repositories/post"
	"github.com/orgball2608/insta-event-calendar/pkg/pgx"
	"github.com/orgball2608/insta-event-calendar/pkg/sqlite"
	"go.uber.org/fx"
)

// PgxModule stores everything in postgres through the shared pgx pool.
var PgxModule = fx.Options(
	fx.Provide(pgx.New),
	organization.PgxModule,
	post.PgxModule,
	artifact.PgxModule,
)

// SQLiteModule stores everything in a single sqlite file.
var SQLiteModule = fx.Options(
	fx.Provide(sqlite.New),
	organization.SQLiteModule,
	post.SQLiteModule,
	artifact.SQLiteModule,
)
