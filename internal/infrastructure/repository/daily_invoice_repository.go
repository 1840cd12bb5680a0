package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"gorm.io/gorm"
)

type dailyInvoiceRepository struct {
	db *gorm.DB
}

// NewDailyInvoiceRepository creates a new daily invoice repository
func NewDailyInvoiceRepository(db *gorm.DB) domainRepo.DailyInvoiceRepository {
	return &dailyInvoiceRepository{db: db}
}

func (r *dailyInvoiceRepository) Create(ctx context.Context, invoice *entity.DailyInvoice) error {
	return r.db.WithContext(ctx).Omit("Vehicle", "FuelType").Create(invoice).Error
}

func (r *dailyInvoiceRepository) Update(ctx context.Context, invoice *entity.DailyInvoice) error {
	return r.db.WithContext(ctx).Omit("Vehicle", "FuelType").Save(invoice).Error
}

func (r *dailyInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyInvoice, error) {
	var invoice entity.DailyInvoice
	err := r.withDetails(r.db.WithContext(ctx)).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *dailyInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DailyInvoice{}, "id = ?", id).Error
}

func (r *dailyInvoiceRepository) Restore(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Model(&entity.DailyInvoice{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return result.RowsAffected > 0, result.Error
}

func (r *dailyInvoiceRepository) ListSince(ctx context.Context, since time.Time, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error) {
	var invoices []entity.DailyInvoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailyInvoice{}).
		Where("date_added >= ?", startOfDay(since))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withDetails(query.Scopes(Paginate(params))).
		Order("date_added DESC, created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *dailyInvoiceRepository) ListDeleted(ctx context.Context, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error) {
	var invoices []entity.DailyInvoice
	var total int64

	query := r.db.WithContext(ctx).Unscoped().Model(&entity.DailyInvoice{}).
		Where("deleted_at IS NOT NULL")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withDetails(query.Scopes(Paginate(params))).
		Order("deleted_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *dailyInvoiceRepository) Search(ctx context.Context, filter domainRepo.DailyInvoiceFilter, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, decimal.Decimal, error) {
	var invoices []entity.DailyInvoice
	var total int64
	grandTotal := decimal.Zero

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, grandTotal, err
	}

	var sum decimal.NullDecimal
	if err := r.filtered(ctx, filter).
		Select("SUM(invoice_daily.total)").
		Row().Scan(&sum); err != nil {
		return nil, 0, grandTotal, err
	}
	if sum.Valid {
		grandTotal = sum.Decimal
	}

	err := r.withDetails(r.filtered(ctx, filter).Scopes(Paginate(params))).
		Order("invoice_daily.date_added DESC, invoice_daily.created_at DESC").
		Find(&invoices).Error

	return invoices, total, grandTotal, err
}

func (r *dailyInvoiceRepository) FindForTaxInvoice(ctx context.Context, filter domainRepo.DailyInvoiceFilter) ([]entity.DailyInvoice, error) {
	var invoices []entity.DailyInvoice
	err := r.withDetails(r.filtered(ctx, filter)).
		Order("invoice_daily.date_added ASC, invoice_daily.created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

// filtered builds a fresh query so counts, sums and pages do not share state
func (r *dailyInvoiceRepository) filtered(ctx context.Context, filter domainRepo.DailyInvoiceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.DailyInvoice{}).
		Joins("JOIN vehicles ON vehicles.id = invoice_daily.vehicle_id").
		Where("vehicles.company_id = ?", filter.CompanyID).
		Scopes(DayRange("invoice_daily.date_added", &filter.From, &filter.To))
	if filter.VehicleID != nil {
		query = query.Where("invoice_daily.vehicle_id = ?", *filter.VehicleID)
	}
	return query
}

func (r *dailyInvoiceRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Vehicle", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("Vehicle.Company", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("FuelType")
}
