package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type businessProfileRepository struct {
	db *gorm.DB
}

// NewBusinessProfileRepository creates a new business profile repository
func NewBusinessProfileRepository(db *gorm.DB) repository.BusinessProfileRepository {
	return &businessProfileRepository{db: db}
}

// Get retrieves the single profile row
func (r *businessProfileRepository) Get(ctx context.Context) (*entity.BusinessProfile, error) {
	var profile entity.BusinessProfile
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save creates the profile or updates it in place
func (r *businessProfileRepository) Save(ctx context.Context, profile *entity.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) List(ctx context.Context) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.db.WithContext(ctx).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

type monthlyIncomeRepository struct {
	db *gorm.DB
}

// NewMonthlyIncomeRepository creates a new monthly income repository
func NewMonthlyIncomeRepository(db *gorm.DB) repository.MonthlyIncomeRepository {
	return &monthlyIncomeRepository{db: db}
}

func (r *monthlyIncomeRepository) GetByPeriod(ctx context.Context, year, month int) (*entity.MonthlyIncome, error) {
	var income entity.MonthlyIncome
	err := r.db.WithContext(ctx).First(&income, "year = ? AND month = ?", year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &income, err
}

func (r *monthlyIncomeRepository) Upsert(ctx context.Context, income *entity.MonthlyIncome) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"income", "updated_at"}),
	}).Create(income).Error
}

func (r *monthlyIncomeRepository) ListRecent(ctx context.Context, limit int) ([]entity.MonthlyIncome, error) {
	var incomes []entity.MonthlyIncome
	err := r.db.WithContext(ctx).
		Order("year DESC, month DESC").
		Limit(limit).
		Find(&incomes).Error
	return incomes, err
}
