package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// FuelCategoryRepository defines the interface for fuel category data operations
type FuelCategoryRepository interface {
	List(ctx context.Context) ([]entity.FuelCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelCategory, error)
}

// FuelTypeRepository defines the interface for fuel type data operations
type FuelTypeRepository interface {
	// GetByID loads the fuel type with its category
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error)
	List(ctx context.Context) ([]entity.FuelType, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.FuelType, error)
	// UpdatePrice stores the new price and appends a history row atomically
	UpdatePrice(ctx context.Context, fuelType *entity.FuelType, history *entity.FuelPriceHistory) error
	ListPriceHistory(ctx context.Context, fuelTypeID uuid.UUID, params *pagination.PaginationParams) ([]entity.FuelPriceHistory, int64, error)
}

// VatRateRepository defines the interface for VAT rate data operations
type VatRateRepository interface {
	// EffectiveOn returns the rate covering day, newest from_date first
	EffectiveOn(ctx context.Context, day time.Time) (*entity.VatRate, error)
	// Latest returns the most recently created rate regardless of dates
	Latest(ctx context.Context) (*entity.VatRate, error)
	// Replace closes the latest rate at closeAt and inserts rate in one transaction
	Replace(ctx context.Context, rate *entity.VatRate, closeAt time.Time) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.VatRate, int64, error)
}

// VatPercentageLookup resolves the VAT percentage in force today, or zero
// when no rate covers today
type VatPercentageLookup interface {
	CurrentVatPercentage(ctx context.Context) (decimal.Decimal, error)
}
