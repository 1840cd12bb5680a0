package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// ErrDuplicateInvoiceNumber is returned when a tax invoice number is already taken
var ErrDuplicateInvoiceNumber = errors.New("tax invoice number already exists")

// DailyInvoiceFilter selects a company's daily invoices over an inclusive date range
type DailyInvoiceFilter struct {
	CompanyID uuid.UUID
	VehicleID *uuid.UUID
	From      time.Time
	To        time.Time
}

// DailyInvoiceRepository defines the interface for daily invoice data operations
type DailyInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.DailyInvoice) error
	Update(ctx context.Context, invoice *entity.DailyInvoice) error
	// GetByID loads the invoice with vehicle, company and fuel type
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyInvoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Restore clears the soft delete; false when no deleted row matched
	Restore(ctx context.Context, id uuid.UUID) (bool, error)
	ListSince(ctx context.Context, since time.Time, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error)
	ListDeleted(ctx context.Context, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error)
	// Search pages through matches newest first and sums total over all of them
	Search(ctx context.Context, filter DailyInvoiceFilter, params *pagination.PaginationParams) ([]entity.DailyInvoice, int64, decimal.Decimal, error)
	// FindForTaxInvoice returns every match in chronological order
	FindForTaxInvoice(ctx context.Context, filter DailyInvoiceFilter) ([]entity.DailyInvoice, error)
}

// TaxInvoiceFilter narrows tax invoice listings
type TaxInvoiceFilter struct {
	CompanyName     string
	PaymentMethodID *uuid.UUID
	Search          string
	From            *time.Time
	To              *time.Time
}

// TaxInvoiceTotals are the sums over every tax invoice a filter matches
type TaxInvoiceTotals struct {
	SumNet   decimal.Decimal `json:"sum_net"`
	SumVat   decimal.Decimal `json:"sum_vat"`
	SumTotal decimal.Decimal `json:"sum_total"`
}

// TaxInvoiceRepository defines the interface for tax invoice data operations
type TaxInvoiceRepository interface {
	// FindLatestInvoiceNumberForCompany returns the company's number with the
	// highest five digit suffix
	FindLatestInvoiceNumberForCompany(ctx context.Context, companyName string) (string, bool, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// CreateIfNumberUnique stores the invoice and its links, or returns
	// ErrDuplicateInvoiceNumber without writing anything
	CreateIfNumberUnique(ctx context.Context, invoice *entity.TaxInvoice, dailyInvoiceIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxInvoice, error)
	List(ctx context.Context, filter TaxInvoiceFilter, params *pagination.PaginationParams) ([]entity.TaxInvoice, int64, error)
	ListAll(ctx context.Context, filter TaxInvoiceFilter) ([]entity.TaxInvoice, error)
	Totals(ctx context.Context, filter TaxInvoiceFilter) (TaxInvoiceTotals, error)
	// ListLines returns the daily invoices billed by a tax invoice in date order
	ListLines(ctx context.Context, taxInvoiceID uuid.UUID) ([]entity.DailyInvoice, error)
}
