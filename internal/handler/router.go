package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"navbat/internal/domain/user"
	"navbat/internal/handler/api"
	"navbat/internal/handler/middleware"
	"navbat/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Shop    *api.ShopHandler
	Booking *api.BookingHandler
	Barber  *api.BarberHandler
	Admin   *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		profile := apiGroup.Group("/profile")
		profile.Use(authMiddleware.RequireAuth())
		{
			addRoutes(profile, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Auth.Me},
			})
		}

		shops := apiGroup.Group("/shops")
		{
			addRoutes(shops, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Shop.ListShops},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Shop.GetShop},
			})

			staff := shops.Group("")
			staff.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleBarber))
			addRoutes(staff, []route{
				{Method: http.MethodPost, Path: "/:id/staff", Handler: h.Barber.AddStaff},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.MyBookings},
				{Method: http.MethodGet, Path: "/history", Handler: h.Booking.History},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.CompleteBooking},
				{Method: http.MethodPost, Path: "/:id/move-tomorrow", Handler: h.Booking.MoveBookingToTomorrow},
			})
		}

		barber := apiGroup.Group("/barber")
		barber.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleBarber))
		{
			addRoutes(barber, []route{
				{Method: http.MethodGet, Path: "/shop", Handler: h.Barber.GetOwnShop},
				{Method: http.MethodPut, Path: "/shop", Handler: h.Barber.UpdateOwnShop},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Barber.Queue},
				{Method: http.MethodGet, Path: "/bookings/history", Handler: h.Barber.History},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/shops", Handler: h.Admin.CreateShop},
				{Method: http.MethodPut, Path: "/shops/:id", Handler: h.Admin.UpdateShop},
				{Method: http.MethodDelete, Path: "/shops/:id", Handler: h.Admin.DeactivateShop},
				{Method: http.MethodGet, Path: "/users", Handler: h.Admin.ListUsers},
				{Method: http.MethodPatch, Path: "/users/:id/role", Handler: h.Admin.ChangeRole},
				{Method: http.MethodPatch, Path: "/users/:id/status", Handler: h.Admin.ToggleStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
