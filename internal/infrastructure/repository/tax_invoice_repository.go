package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"gorm.io/gorm"
)

type taxInvoiceRepository struct {
	db *gorm.DB
}

// NewTaxInvoiceRepository creates a new tax invoice repository
func NewTaxInvoiceRepository(db *gorm.DB) domainRepo.TaxInvoiceRepository {
	return &taxInvoiceRepository{db: db}
}

// latestNumberOrder sorts by the numeric five-digit suffix. Numbers without
// one sort as zero, behind every well-formed number.
const latestNumberOrder = "CASE WHEN tax_invoice_no ~ '[0-9]{5}$' " +
	"THEN CAST(RIGHT(tax_invoice_no, 5) AS INTEGER) ELSE 0 END DESC"

// FindLatestInvoiceNumberForCompany orders by the numeric suffix so the
// month token in front of it never affects which number is latest.
func (r *taxInvoiceRepository) FindLatestInvoiceNumberForCompany(ctx context.Context, companyName string) (string, bool, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&entity.TaxInvoice{}).
		Where("company_name = ?", companyName).
		Order(latestNumberOrder).
		Limit(1).
		Pluck("tax_invoice_no", &numbers).Error
	if err != nil {
		return "", false, err
	}
	if len(numbers) == 0 {
		return "", false, nil
	}
	return numbers[0], true, nil
}

func (r *taxInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return numberTaken(r.db.WithContext(ctx), number)
}

func numberTaken(db *gorm.DB, number string) (bool, error) {
	var count int64
	err := db.Model(&entity.TaxInvoice{}).Where("tax_invoice_no = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *taxInvoiceRepository) CreateIfNumberUnique(ctx context.Context, invoice *entity.TaxInvoice, dailyInvoiceIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := numberTaken(tx, invoice.TaxInvoiceNo)
		if err != nil {
			return err
		}
		if taken {
			return domainRepo.ErrDuplicateInvoiceNumber
		}

		// the unique index catches a concurrent insert the pre-check missed
		if err := tx.Omit("PaymentMethod", "Lines").Create(invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainRepo.ErrDuplicateInvoiceNumber
			}
			return err
		}

		if len(dailyInvoiceIDs) == 0 {
			return nil
		}
		lines := make([]entity.TaxInvoiceLine, len(dailyInvoiceIDs))
		for i, id := range dailyInvoiceIDs {
			lines[i] = entity.TaxInvoiceLine{TaxInvoiceID: invoice.ID, InvoiceDailyID: id}
		}
		return tx.CreateInBatches(lines, 200).Error
	})
}

func (r *taxInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxInvoice, error) {
	var invoice entity.TaxInvoice
	err := r.db.WithContext(ctx).Preload("PaymentMethod").First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *taxInvoiceRepository) List(ctx context.Context, filter domainRepo.TaxInvoiceFilter, params *pagination.PaginationParams) ([]entity.TaxInvoice, int64, error) {
	var invoices []entity.TaxInvoice
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).Scopes(Paginate(params)).
		Preload("PaymentMethod").
		Order("invoice_date DESC, created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *taxInvoiceRepository) ListAll(ctx context.Context, filter domainRepo.TaxInvoiceFilter) ([]entity.TaxInvoice, error) {
	var invoices []entity.TaxInvoice
	err := r.filtered(ctx, filter).
		Preload("PaymentMethod").
		Order("invoice_date ASC, created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *taxInvoiceRepository) Totals(ctx context.Context, filter domainRepo.TaxInvoiceFilter) (domainRepo.TaxInvoiceTotals, error) {
	var totals domainRepo.TaxInvoiceTotals
	err := r.filtered(ctx, filter).
		Select("COALESCE(SUM(subtotal), 0) AS sum_net, " +
			"COALESCE(SUM(vat_amount), 0) AS sum_vat, " +
			"COALESCE(SUM(total_amount), 0) AS sum_total").
		Scan(&totals).Error
	return totals, err
}

func (r *taxInvoiceRepository) ListLines(ctx context.Context, taxInvoiceID uuid.UUID) ([]entity.DailyInvoice, error) {
	var invoices []entity.DailyInvoice
	err := r.db.WithContext(ctx).Unscoped().
		Joins("JOIN tax_invoice_invoice_nos ON tax_invoice_invoice_nos.invoice_daily_id = invoice_daily.id").
		Where("tax_invoice_invoice_nos.tax_invoice_id = ?", taxInvoiceID).
		Preload("Vehicle", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("FuelType").
		Order("invoice_daily.date_added ASC, invoice_daily.created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *taxInvoiceRepository) filtered(ctx context.Context, filter domainRepo.TaxInvoiceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.TaxInvoice{}).
		Scopes(
			DayRange("invoice_date", filter.From, filter.To),
			Search(filter.Search, "tax_invoice_no"),
		)
	if filter.CompanyName != "" {
		query = query.Where("company_name = ?", filter.CompanyName)
	}
	if filter.PaymentMethodID != nil {
		query = query.Where("payment_method_id = ?", *filter.PaymentMethodID)
	}
	return query
}
