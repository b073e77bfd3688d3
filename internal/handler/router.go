package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/api"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/metrics"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Spot        *api.SpotHandler
	Reservation *api.ReservationHandler
	Vehicle     *api.VehicleHandler
	User        *api.UserHandler
	Report      *api.ReportHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, loginLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
) {
	metrics.Register()

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	operatorOnly := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{loginLimiter.Middleware()}},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		spots := apiGroup.Group("/spots")
		spots.Use(requireAuth)
		{
			addRoutes(spots, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Spot.ListAvailable},
				{Method: http.MethodGet, Path: "/mine", Handler: h.Spot.ListMine, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodGet, Path: "/all", Handler: h.Spot.ListAll, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Spot.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Spot.Create, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Spot.Update, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Spot.Delete, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodGet, Path: "/:id/ticket", Handler: h.Reservation.Ticket},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Cancel},
				{Method: http.MethodPost, Path: "/:id/entry", Handler: h.Reservation.RegisterEntry, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/exit", Handler: h.Reservation.RegisterExit, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.Complete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		vehicles.Use(requireAuth)
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Vehicle.List},
				{Method: http.MethodPost, Path: "", Handler: h.Vehicle.Register},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Vehicle.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Vehicle.Delete},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(requireAuth, operatorOnly)
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/income", Handler: h.Report.Income},
				{Method: http.MethodGet, Path: "/income/export", Handler: h.Report.IncomeExport},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(requireAuth, adminOnly)
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: h.User.List},
				{Method: http.MethodPatch, Path: "/:id/role", Handler: h.User.ChangeRole},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.User.Deactivate},
				{Method: http.MethodPost, Path: "/:id/activate", Handler: h.User.Activate},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.User.Delete},
			})
		}
	}
}

// @Summary Health check
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
