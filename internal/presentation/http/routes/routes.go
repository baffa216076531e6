package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/config"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/logger"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Bill        *handler.BillHandler
	PendingBill *handler.PendingBillHandler
	ManualEntry *handler.ManualEntryHandler
	Report      *handler.ReportHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	request.RegisterValidators()

	router := gin.New()

	// Global middleware
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().WithField("panic", recovered).Error("recovered from panic")
		response.InternalServerError(c, "Internal server error")
		c.Abort()
	}))
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")
	{
		// Login and registration sit outside the key gate
		registerUserRoutes(api, h)

		protected := api.Group("")
		protected.Use(middleware.APIKeyMiddleware(&deps.Cfg.Security))

		rateLimiter := middleware.NewClientRateLimiter(
			middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		)
		protected.Use(rateLimiter.Middleware())

		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			TTL:  deps.Cfg.Maintenance.IdempotencyTTL,
		})

		registerProductRoutes(protected, h)
		registerBillRoutes(protected, h, idempotent)
		registerPendingBillRoutes(protected, h, idempotent)
		registerManualEntryRoutes(protected, h)
		registerReportRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return router
}

func registerUserRoutes(api *gin.RouterGroup, h *Handlers) {
	users := api.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.GET("/status", h.Auth.Status)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/export", h.Bill.Export)
		bills.POST("", idempotent, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/:id/pdf", h.Bill.PDF)
		bills.POST("/:id/print", h.Printer.PrintBill)
		bills.DELETE("/:id", h.Bill.Delete)
	}
}

func registerPendingBillRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	pending := protected.Group("/pending-bills")
	{
		pending.GET("", h.PendingBill.List)
		pending.GET("/stale", h.PendingBill.Stale)
		pending.POST("", idempotent, h.PendingBill.Create)
		pending.GET("/:id", h.PendingBill.Get)
		pending.PUT("/:id", h.PendingBill.Update)
		pending.DELETE("/:id", h.PendingBill.Delete)
		pending.POST("/:id/mark-paid", idempotent, h.PendingBill.MarkPaid)
		pending.GET("/:id/whatsapp", h.PendingBill.WhatsApp)
	}
}

func registerManualEntryRoutes(protected *gin.RouterGroup, h *Handlers) {
	entries := protected.Group("/manual-entries")
	{
		entries.GET("", h.ManualEntry.List)
		entries.POST("", h.ManualEntry.Create)
		entries.DELETE("/:id", h.ManualEntry.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/reports/summary", h.Report.Summary)
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/printer/status", h.Printer.GetStatus)
}
