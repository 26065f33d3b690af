package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/daybook-api/internal/config"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/internal/presentation/http/handler"
	"github.com/sangkips/daybook-api/internal/presentation/http/middleware"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Sale     *handler.SaleHandler
	Expense  *handler.ExpenseHandler
	Purchase *handler.PurchaseHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Auth guards /api when non-nil
	Auth        middleware.TokenValidator
	RateLimiter *middleware.ClientRateLimiter
	// Store names the active store driver; Degraded is set when the
	// configured store could not be opened.
	Store    string
	Degraded bool
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if deps.Degraded {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
			"store":   deps.Store,
		})
	})

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	protected := api.Group("")
	if deps.Auth != nil {
		// Public routes
		api.POST("/auth/token", h.Auth.Token)

		protected.Use(middleware.AuthMiddleware(deps.Auth))
	}

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
		Log:  deps.Log,
	})

	registerSaleRoutes(protected, h, idempotent)
	registerExpenseRoutes(protected, h, idempotent)
	registerPurchaseRoutes(protected, h, idempotent)
	registerReportRoutes(protected, h)

	return router
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := protected.Group("/daily-sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:date", h.Sale.GetByDate)
		sales.PUT("/:id", h.Sale.Update)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", idempotent, h.Expense.Create)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotent, h.Purchase.Create)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/dashboard", h.Report.Dashboard)

	reports := protected.Group("/reports")
	{
		reports.GET("", h.Report.Report)
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/export", h.Report.Export)
	}
}
