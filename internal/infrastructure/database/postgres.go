package database

import (
	"errors"
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/fuelinvoice-api/internal/config"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/enum"
	applog "github.com/sangkips/fuelinvoice-api/internal/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection. SQL is logged
// at info level when debug is on, otherwise only warnings and errors.
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	gormLog := applog.WithComponent("gorm")
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.New(stdlog.New(gormLog, "", 0), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// Close releases the connection pool
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Accounts
		&entity.User{},

		// Reference data
		&entity.Company{},
		&entity.FuelCategory{},
		&entity.Vehicle{},
		&entity.FuelType{},
		&entity.FuelPriceHistory{},
		&entity.VatRate{},
		&entity.PaymentMethod{},
		&entity.BusinessProfile{},

		// Invoices
		&entity.DailyInvoice{},
		&entity.TaxInvoice{},
		&entity.TaxInvoiceLine{},
		&entity.MonthlyIncome{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

type seedFuelType struct {
	category string
	name     string
	price    string
}

var (
	seedCategories     = []string{"Petrol", "Diesel"}
	seedPaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer", "Cheque"}
	seedFuelTypes      = []seedFuelType{
		{category: "Petrol", name: "92 Petrol", price: "292"},
		{category: "Petrol", name: "95 Petrol", price: "340"},
		{category: "Diesel", name: "Auto Diesel", price: "277"},
		{category: "Diesel", name: "Super Diesel", price: "323"},
	}
)

// SeedDefaultData seeds fuel categories, fuel types, payment methods and,
// when configured, the first administrator. Existing rows are left alone.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	log.Info().Msg("seeding default data")

	categories := make(map[string]entity.FuelCategory, len(seedCategories))
	for _, name := range seedCategories {
		category := entity.FuelCategory{Name: name}
		if err := db.Where(entity.FuelCategory{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("seed fuel category %s: %w", name, err)
		}
		categories[name] = category
	}

	for _, ft := range seedFuelTypes {
		category := categories[ft.category]
		fuelType := entity.FuelType{
			FuelCategoryID: category.ID,
			Name:           ft.name,
			Price:          decimal.RequireFromString(ft.price),
		}
		err := db.Where("name = ? AND fuel_category_id = ?", ft.name, category.ID).
			Attrs(fuelType).
			FirstOrCreate(&fuelType).Error
		if err != nil {
			return fmt.Errorf("seed fuel type %s: %w", ft.name, err)
		}
	}

	for _, name := range seedPaymentMethods {
		method := entity.PaymentMethod{Name: name}
		if err := db.Where(entity.PaymentMethod{Name: name}).FirstOrCreate(&method).Error; err != nil {
			return fmt.Errorf("seed payment method %s: %w", name, err)
		}
	}

	if err := seedAdmin(db, admin); err != nil {
		return err
	}

	log.Info().Msg("default data seeding completed")
	return nil
}

func seedAdmin(db *gorm.DB, admin config.AdminConfig) error {
	if admin.Name == "" || admin.Password == "" {
		log.Info().Msg("ADMIN_NAME or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var existing entity.User
	err := db.Where("name = ?", admin.Name).First(&existing).Error
	if err == nil {
		log.Info().Str("name", admin.Name).Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := entity.User{
		Name:     admin.Name,
		Password: string(hashedPassword),
		Role:     enum.UserRoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info().Str("name", admin.Name).Msg("admin user created")
	return nil
}
