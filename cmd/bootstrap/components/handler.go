package components

import (
	"navbat/internal/handler"
	"navbat/internal/handler/api"
	"navbat/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewShopHandler,
		api.NewBookingHandler,
		api.NewBarberHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	shop *api.ShopHandler,
	booking *api.BookingHandler,
	barber *api.BarberHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Shop:    shop,
		Booking: booking,
		Barber:  barber,
		Admin:   admin,
	}
}
