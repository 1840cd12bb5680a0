package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/config"
	"github.com/sangkips/fuelinvoice-api/internal/domain/enum"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/handler"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/middleware"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Company      *handler.CompanyHandler
	Fuel         *handler.FuelHandler
	DailyInvoice *handler.DailyInvoiceHandler
	TaxInvoice   *handler.TaxInvoiceHandler
	Summary      *handler.SummaryHandler
	CashSale     *handler.CashSaleHandler
	Settings     *handler.SettingsHandler
	Cache        *handler.CacheHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		registerAuthRoutes(public, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := middleware.RequireRole(enum.UserRoleAdmin.String())

	protected.GET("/auth/me", h.Auth.Me)

	// Companies and vehicles
	registerCompanyRoutes(protected, h)

	// Fuel catalogue and VAT
	registerFuelRoutes(protected, h)

	// Daily invoices
	registerDailyInvoiceRoutes(protected, h)

	// Tax invoices
	registerTaxInvoiceRoutes(protected, h, deps)

	// Summary
	summary := protected.Group("/summary")
	{
		summary.GET("", h.Summary.Search)
		summary.GET("/export", h.Summary.Export)
	}

	// Cash sale
	cashSale := protected.Group("/cash-sale")
	{
		cashSale.PUT("/income", h.CashSale.SaveIncome)
		cashSale.GET("/income", h.CashSale.RecentIncome)
		cashSale.GET("/income/:year/:month", h.CashSale.GetIncome)
		cashSale.GET("/statement/:year/:month", h.CashSale.Statement)
	}

	// Settings
	settings := protected.Group("/settings")
	{
		settings.GET("/profile", h.Settings.GetProfile)
		settings.PUT("/profile", admin, h.Settings.UpdateProfile)
		settings.GET("/payment-methods", h.Settings.PaymentMethods)
	}

	// Users (Admin)
	registerUserRoutes(protected, h, admin)

	// Reference cache (Admin)
	cache := protected.Group("/admin/cache")
	cache.Use(admin)
	{
		cache.POST("/warm", h.Cache.Warm)
		cache.POST("/flush", h.Cache.Flush)
	}
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.GET("/all", h.Company.All)
		companies.POST("", h.Company.Create)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
		companies.GET("/:id/vehicles", h.Company.Vehicles)
	}

	vehicles := protected.Group("/vehicles")
	{
		vehicles.GET("", h.Company.ListVehicles)
		vehicles.POST("", h.Company.CreateVehicle)
		vehicles.GET("/:id", h.Company.GetVehicle)
		vehicles.PUT("/:id", h.Company.UpdateVehicle)
		vehicles.DELETE("/:id", h.Company.DeleteVehicle)
	}
}

func registerFuelRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/fuel-categories", h.Fuel.Categories)
	protected.GET("/fuel-categories/:id/fuel-types", h.Fuel.FuelTypesByCategory)

	fuelTypes := protected.Group("/fuel-types")
	{
		fuelTypes.GET("", h.Fuel.FuelTypes)
		fuelTypes.PUT("/:id/price", h.Fuel.UpdatePrice)
		fuelTypes.GET("/:id/price-history", h.Fuel.PriceHistory)
	}

	vat := protected.Group("/vat")
	{
		vat.GET("", h.Fuel.CurrentVat)
		vat.PUT("", h.Fuel.UpdateVat)
		vat.GET("/history", h.Fuel.VatHistory)
	}
}

func registerDailyInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	daily := protected.Group("/daily-invoices")
	{
		daily.GET("", h.DailyInvoice.Recent)
		daily.GET("/deleted", h.DailyInvoice.Deleted)
		daily.POST("/preview", h.DailyInvoice.Preview)
		daily.POST("", h.DailyInvoice.Create)
		daily.GET("/:id", h.DailyInvoice.Get)
		daily.PUT("/:id", h.DailyInvoice.Update)
		daily.DELETE("/:id", h.DailyInvoice.Delete)
		daily.POST("/:id/recover", h.DailyInvoice.Recover)
		daily.POST("/:id/print", h.DailyInvoice.Print)
	}

	protected.GET("/printer/status", h.DailyInvoice.PrinterStatus)
}

func registerTaxInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	tax := protected.Group("/tax-invoices")
	{
		tax.GET("", h.TaxInvoice.List)
		tax.GET("/records", h.TaxInvoice.Records)
		tax.GET("/next-number/:company_id", h.TaxInvoice.NextNumber)
		// Generation replays a stored response when the client retries with the same key
		tax.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.TaxInvoice.Generate)
		tax.GET("/:id", h.TaxInvoice.Get)
		tax.GET("/:id/lines", h.TaxInvoice.Lines)
		tax.GET("/:id/document", h.TaxInvoice.Document)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers, admin gin.HandlerFunc) {
	users := protected.Group("/users")
	users.Use(admin)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
