package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
)

// BusinessProfileRepository defines the interface for the seller profile
type BusinessProfileRepository interface {
	// Get returns the profile, or nil when none has been saved
	Get(ctx context.Context) (*entity.BusinessProfile, error)
	Save(ctx context.Context, profile *entity.BusinessProfile) error
}

// PaymentMethodRepository defines the interface for payment method lookups
type PaymentMethodRepository interface {
	List(ctx context.Context) ([]entity.PaymentMethod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
}

// MonthlyIncomeRepository defines the interface for cash sale income
type MonthlyIncomeRepository interface {
	GetByPeriod(ctx context.Context, year, month int) (*entity.MonthlyIncome, error)
	// Upsert inserts or overwrites the income for the row's year and month
	Upsert(ctx context.Context, income *entity.MonthlyIncome) error
	ListRecent(ctx context.Context, limit int) ([]entity.MonthlyIncome, error)
}
