package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/config"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/repository"
	"github.com/sangkips/fuelinvoice-api/internal/logger"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/handler"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/routes"
	"github.com/sangkips/fuelinvoice-api/pkg/printer"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

// cacheSweepInterval is how often expired reference entries are dropped
const cacheSweepInterval = 5 * time.Minute

// app wires repositories and services over one database connection
type app struct {
	cfg        *config.Config
	refCache   *cache.MemoryCache
	jwtManager *utils.JWTManager

	idempotencyRepo domainRepo.IdempotencyRepository

	auth     *service.AuthService
	users    *service.UserService
	vat      *service.VatService
	fuel     *service.FuelService
	company  *service.CompanyService
	daily    *service.DailyInvoiceService
	tax      *service.TaxInvoiceService
	summary  *service.SummaryService
	cashSale *service.CashSaleService
	settings *service.SettingsService
	warmer   *service.CacheWarmer
	slips    *service.SlipService
}

func newApp(cfg *config.Config, db *gorm.DB) *app {
	clock := service.SystemClock(cfg.Invoice.Location)
	refCache := cache.NewMemoryCache(cacheSweepInterval)

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	categoryRepo := repository.NewFuelCategoryRepository(db)
	fuelTypeRepo := repository.NewFuelTypeRepository(db)
	vatRepo := repository.NewVatRateRepository(db)
	dailyRepo := repository.NewDailyInvoiceRepository(db)
	taxRepo := repository.NewTaxInvoiceRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	profileRepo := repository.NewBusinessProfileRepository(db)
	incomeRepo := repository.NewMonthlyIncomeRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	vatService := service.NewVatService(vatRepo, refCache, cfg.Cache.TTL, clock)
	fuelService := service.NewFuelService(categoryRepo, fuelTypeRepo, vatService, refCache, cfg.Cache.TTL, clock)
	companyService := service.NewCompanyService(companyRepo, vehicleRepo, categoryRepo, refCache, cfg.Cache.TTL)

	// Initialize thermal printer
	slipPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, slips will not be printed")
		slipPrinter = printer.NewNullPrinter()
	}

	return &app{
		cfg:             cfg,
		refCache:        refCache,
		jwtManager:      jwtManager,
		idempotencyRepo: idempotencyRepo,
		auth:            service.NewAuthService(userRepo, jwtManager, clock),
		users:           service.NewUserService(userRepo),
		vat:             vatService,
		fuel:            fuelService,
		company:         companyService,
		daily:           service.NewDailyInvoiceService(dailyRepo, vehicleRepo, fuelTypeRepo, vatService, clock),
		tax: service.NewTaxInvoiceService(
			taxRepo, dailyRepo, companyRepo, vehicleRepo, paymentRepo, profileRepo,
			cfg.Invoice.CurrencySuffix, clock,
		),
		summary:  service.NewSummaryService(taxRepo, companyRepo),
		cashSale: service.NewCashSaleService(incomeRepo, vatService),
		settings: service.NewSettingsService(profileRepo, paymentRepo),
		warmer:   service.NewCacheWarmer(refCache, vatService, companyService, fuelService, logger.WithComponent("cache")),
		slips:    service.NewSlipService(dailyRepo, profileRepo, slipPrinter, cfg.Printer.Width, logger.WithComponent("printer")),
	}
}

func (a *app) handlers() *routes.Handlers {
	loc := a.cfg.Invoice.Location
	return &routes.Handlers{
		Auth:         handler.NewAuthHandler(a.auth),
		User:         handler.NewUserHandler(a.users, loc),
		Company:      handler.NewCompanyHandler(a.company),
		Fuel:         handler.NewFuelHandler(a.fuel, a.vat),
		DailyInvoice: handler.NewDailyInvoiceHandler(a.daily, a.slips, loc),
		TaxInvoice:   handler.NewTaxInvoiceHandler(a.tax, a.company, loc),
		Summary:      handler.NewSummaryHandler(a.summary, loc),
		CashSale:     handler.NewCashSaleHandler(a.cashSale),
		Settings:     handler.NewSettingsHandler(a.settings),
		Cache:        handler.NewCacheHandler(a.warmer),
	}
}

func (a *app) close() {
	a.refCache.Close()
}
