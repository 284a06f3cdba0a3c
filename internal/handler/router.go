package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tour-booking/internal/domain/user"
	"tour-booking/internal/handler/api"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Voucher *api.VoucherHandler
	Pricing *api.PricingHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	Idempotency *middleware.Idempotency
	Logger      *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw.Logger)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := mw.Auth.RequireRole(user.RoleAdmin)
	staffOnly := mw.Auth.RequireRole(user.RoleAdmin, user.RoleOperator)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(mw.Auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking, Mw: []gin.HandlerFunc{mw.Idempotency.Replay()}},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.TransitionBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.DeleteBooking},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(mw.Auth.RequireAuth())
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: h.Voucher.ValidateVoucher},
				{Method: http.MethodGet, Path: "", Handler: h.Voucher.ListVouchers, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Voucher.GetVoucher, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "", Handler: h.Voucher.CreateVoucher, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Voucher.UpdateVoucher, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Voucher.DeleteVoucher, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		pricing := apiGroup.Group("/pricing")
		pricing.Use(mw.Auth.RequireAuth())
		{
			addRoutes(pricing, []route{
				{Method: http.MethodPost, Path: "/quote", Handler: h.Pricing.Quote},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"status": "ok"},
		"message": "Service is healthy",
	})
}

// addRoutes registers route middleware as real gin handlers so that c.Next
// inside them reaches the route handler.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			g.Handle(r.Method, r.Path, handlers...)
		default:
			g.Any(r.Path, handlers...)
		}
	}
}
