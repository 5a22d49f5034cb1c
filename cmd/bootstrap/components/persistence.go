package components

import (
	"navbat/internal/infra/db"
	"navbat/internal/infra/readstore"
	"navbat/internal/infra/uow"
	"navbat/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Read stores outside transactions run straight against the pool;
		// the unit of work builds its own tx-bound instances.
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewShopReadStore,
			fx.As(new(queries.ShopReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
