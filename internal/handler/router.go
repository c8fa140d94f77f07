package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayhub/internal/domain/user"
	"stayhub/internal/handler/api"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	roomHandler *api.RoomHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, roomHandler, reservationHandler, paymentHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	roomHandler *api.RoomHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPut, Path: "/profile", Handler: authHandler.UpdateProfile},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: roomHandler.List},
				{Method: http.MethodGet, Path: "/available", Handler: roomHandler.ListAvailable},
				{Method: http.MethodGet, Path: "/:id", Handler: roomHandler.GetByID},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: roomHandler.CheckAvailability},
			})

			staffRooms := rooms.Group("")
			staffRooms.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleManager))
			addRoutes(staffRooms, []route{
				{Method: http.MethodPost, Path: "", Handler: roomHandler.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: roomHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: roomHandler.Delete},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create},
				{Method: http.MethodGet, Path: "/my-reservations", Handler: reservationHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetByID},
				{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.Update},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
			})

			staffReservations := reservations.Group("")
			staffReservations.Use(authMiddleware.RequireRoleAtLeast(user.RoleManager))
			addRoutes(staffReservations, []route{
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListAll},
				{Method: http.MethodGet, Path: "/date-range", Handler: reservationHandler.ListByDateRange},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/create-intent", Handler: paymentHandler.CreateIntent},
				{Method: http.MethodPost, Path: "/confirm", Handler: paymentHandler.Confirm},
				{Method: http.MethodGet, Path: "/history", Handler: paymentHandler.History},
				{Method: http.MethodGet, Path: "/:id", Handler: paymentHandler.GetByID},
			})

			staffPayments := payments.Group("")
			staffPayments.Use(authMiddleware.RequireRoleAtLeast(user.RoleManager))
			addRoutes(staffPayments, []route{
				{Method: http.MethodGet, Path: "", Handler: paymentHandler.ListAll},
				{Method: http.MethodPost, Path: "/:id/refund", Handler: paymentHandler.Refund},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleManager))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/dashboard", Handler: adminHandler.Dashboard},
				{Method: http.MethodGet, Path: "/rooms/statistics", Handler: adminHandler.RoomStats},
				{Method: http.MethodGet, Path: "/reservations/statistics", Handler: adminHandler.ReservationStats},
				{Method: http.MethodPut, Path: "/reservations/:id/status", Handler: adminHandler.OverrideReservationStatus},
				{Method: http.MethodGet, Path: "/users", Handler: adminHandler.ListUsers},
				{Method: http.MethodGet, Path: "/users/:id", Handler: adminHandler.GetUser},
			})

			adminOnly := admin.Group("")
			adminOnly.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
			addRoutes(adminOnly, []route{
				{Method: http.MethodPut, Path: "/users/:id/status", Handler: adminHandler.SetUserActive},
				{Method: http.MethodDelete, Path: "/users/:id", Handler: adminHandler.DeleteUser},
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
