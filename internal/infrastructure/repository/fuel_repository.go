package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"gorm.io/gorm"
)

type fuelCategoryRepository struct {
	db *gorm.DB
}

// NewFuelCategoryRepository creates a new fuel category repository
func NewFuelCategoryRepository(db *gorm.DB) domainRepo.FuelCategoryRepository {
	return &fuelCategoryRepository{db: db}
}

func (r *fuelCategoryRepository) List(ctx context.Context) ([]entity.FuelCategory, error) {
	var categories []entity.FuelCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *fuelCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelCategory, error) {
	var category entity.FuelCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

type fuelTypeRepository struct {
	db *gorm.DB
}

// NewFuelTypeRepository creates a new fuel type repository
func NewFuelTypeRepository(db *gorm.DB) domainRepo.FuelTypeRepository {
	return &fuelTypeRepository{db: db}
}

func (r *fuelTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error) {
	var fuelType entity.FuelType
	err := r.db.WithContext(ctx).Preload("FuelCategory").First(&fuelType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fuelType, err
}

func (r *fuelTypeRepository) List(ctx context.Context) ([]entity.FuelType, error) {
	var fuelTypes []entity.FuelType
	err := r.db.WithContext(ctx).Preload("FuelCategory").Order("name ASC").Find(&fuelTypes).Error
	return fuelTypes, err
}

func (r *fuelTypeRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.FuelType, error) {
	var fuelTypes []entity.FuelType
	err := r.db.WithContext(ctx).
		Where("fuel_category_id = ?", categoryID).
		Order("name ASC").
		Find(&fuelTypes).Error
	return fuelTypes, err
}

func (r *fuelTypeRepository) UpdatePrice(ctx context.Context, fuelType *entity.FuelType, history *entity.FuelPriceHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(fuelType).Update("price", fuelType.Price).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
}

func (r *fuelTypeRepository) ListPriceHistory(ctx context.Context, fuelTypeID uuid.UUID, params *pagination.PaginationParams) ([]entity.FuelPriceHistory, int64, error) {
	var rows []entity.FuelPriceHistory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FuelPriceHistory{}).Where("fuel_type_id = ?", fuelTypeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("from_date DESC").Find(&rows).Error
	return rows, total, err
}

type vatRateRepository struct {
	db *gorm.DB
}

// NewVatRateRepository creates a new VAT rate repository
func NewVatRateRepository(db *gorm.DB) domainRepo.VatRateRepository {
	return &vatRateRepository{db: db}
}

func (r *vatRateRepository) EffectiveOn(ctx context.Context, day time.Time) (*entity.VatRate, error) {
	var rate entity.VatRate
	d := startOfDay(day)
	err := r.db.WithContext(ctx).
		Where("from_date <= ? AND to_date >= ?", d, d).
		Order("from_date DESC, created_at DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *vatRateRepository) Latest(ctx context.Context) (*entity.VatRate, error) {
	return latestVatRate(r.db.WithContext(ctx))
}

func latestVatRate(db *gorm.DB) (*entity.VatRate, error) {
	var rate entity.VatRate
	err := db.Order("created_at DESC").First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *vatRateRepository) Replace(ctx context.Context, rate *entity.VatRate, closeAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		latest, err := latestVatRate(tx)
		if err != nil {
			return err
		}
		if latest != nil {
			if err := tx.Model(latest).Update("to_date", startOfDay(closeAt)).Error; err != nil {
				return err
			}
		}
		return tx.Create(rate).Error
	})
}

func (r *vatRateRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.VatRate, int64, error) {
	var rates []entity.VatRate
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.VatRate{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("created_at DESC").Find(&rates).Error
	return rates, total, err
}
