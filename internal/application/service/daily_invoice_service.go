package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/pricing"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

const (
	// RecentInvoiceDays is how far back the manage screen looks
	RecentInvoiceDays = 30
	// RecentInvoicesPerPage is the page size of the recent list
	RecentInvoicesPerPage = 20
	// DeletedInvoicesPerPage is the page size of the deleted list
	DeletedInvoicesPerPage = 10
	// MaxSerialNoLength is the longest accepted delivery note number
	MaxSerialNoLength = 15
)

// DailyInvoiceService records fuel sales and prices them server-side
type DailyInvoiceService struct {
	dailyRepo    repository.DailyInvoiceRepository
	vehicleRepo  repository.VehicleRepository
	fuelTypeRepo repository.FuelTypeRepository
	vat          repository.VatPercentageLookup
	clock        Clock
}

// NewDailyInvoiceService creates a new daily invoice service
func NewDailyInvoiceService(
	dailyRepo repository.DailyInvoiceRepository,
	vehicleRepo repository.VehicleRepository,
	fuelTypeRepo repository.FuelTypeRepository,
	vat repository.VatPercentageLookup,
	clock Clock,
) *DailyInvoiceService {
	return &DailyInvoiceService{
		dailyRepo:    dailyRepo,
		vehicleRepo:  vehicleRepo,
		fuelTypeRepo: fuelTypeRepo,
		vat:          vat,
		clock:        clock,
	}
}

// DailyInvoiceInput represents a fuelling entered at the pump
type DailyInvoiceInput struct {
	SerialNo   string
	DateAdded  time.Time
	VehicleID  uuid.UUID
	FuelTypeID uuid.UUID
	Volume     decimal.Decimal
}

// PreviewInput selects a fuel type and volume to price
type PreviewInput struct {
	FuelTypeID uuid.UUID
	Volume     decimal.Decimal
}

// Preview prices a line at the fuel type's current price and today's VAT
// without storing anything
func (s *DailyInvoiceService) Preview(ctx context.Context, input *PreviewInput) (*pricing.LineItem, error) {
	fuelType, err := s.fuelType(ctx, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	item, err := s.price(ctx, fuelType, input.Volume)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create validates the input, prices it, and stores the line
func (s *DailyInvoiceService) Create(ctx context.Context, input *DailyInvoiceInput) (*entity.DailyInvoice, error) {
	invoice := &entity.DailyInvoice{}
	if err := s.fill(ctx, invoice, input); err != nil {
		return nil, err
	}
	if err := s.dailyRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return s.Get(ctx, invoice.ID)
}

// Update re-prices an existing line at the current fuel price and VAT
func (s *DailyInvoiceService) Update(ctx context.Context, id uuid.UUID, input *DailyInvoiceInput) (*entity.DailyInvoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fill(ctx, invoice, input); err != nil {
		return nil, err
	}
	invoice.Vehicle = nil
	invoice.FuelType = nil
	if err := s.dailyRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *DailyInvoiceService) fill(ctx context.Context, invoice *entity.DailyInvoice, input *DailyInvoiceInput) error {
	serialNo := strings.TrimSpace(input.SerialNo)
	var fieldErrors []apperror.FieldError
	if serialNo == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "serial_no", Message: "Serial number is required"})
	} else if len(serialNo) > MaxSerialNoLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "serial_no", Message: "Serial number must be at most 15 characters"})
	}
	if input.DateAdded.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date_added", Message: "Date is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperror.NewNotFoundError("Vehicle")
	}

	fuelType, err := s.fuelType(ctx, input.FuelTypeID)
	if err != nil {
		return err
	}
	if fuelType.FuelCategoryID != vehicle.FuelCategoryID {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "fuel_type_id", Message: "Fuel type does not match the vehicle's fuel category"},
		})
	}

	item, err := s.price(ctx, fuelType, input.Volume)
	if err != nil {
		return err
	}

	invoice.SerialNo = serialNo
	invoice.DateAdded = input.DateAdded
	invoice.VehicleID = vehicle.ID
	invoice.FuelTypeID = fuelType.ID
	invoice.Volume = item.Volume
	invoice.FuelNetPrice = item.NetUnitPrice
	invoice.SubTotal = item.Subtotal
	invoice.VatPercentage = item.VatPercentage
	invoice.VatAmount = item.VatAmount
	invoice.Total = item.Total
	return nil
}

func (s *DailyInvoiceService) fuelType(ctx context.Context, id uuid.UUID) (*entity.FuelType, error) {
	fuelType, err := s.fuelTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fuelType == nil {
		return nil, apperror.NewNotFoundError("Fuel type")
	}
	return fuelType, nil
}

func (s *DailyInvoiceService) price(ctx context.Context, fuelType *entity.FuelType, volume decimal.Decimal) (pricing.LineItem, error) {
	vat, err := s.vat.CurrentVatPercentage(ctx)
	if err != nil {
		return pricing.LineItem{}, err
	}
	item, err := pricing.ComputeLineItem(fuelType.Price, vat, volume)
	if err != nil {
		return pricing.LineItem{}, pricingError(err)
	}
	return item, nil
}

// pricingError turns engine validation failures into 422 responses
func pricingError(err error) error {
	if errors.Is(err, pricing.ErrInvalidInput) {
		return apperror.Wrap(http.StatusUnprocessableEntity, err.Error(), err)
	}
	return err
}

// Get retrieves a line with its vehicle, company and fuel type
func (s *DailyInvoiceService) Get(ctx context.Context, id uuid.UUID) (*entity.DailyInvoice, error) {
	invoice, err := s.dailyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// Delete soft-deletes a line
func (s *DailyInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.dailyRepo.Delete(ctx, id)
}

// Recover restores a soft-deleted line
func (s *DailyInvoiceService) Recover(ctx context.Context, id uuid.UUID) error {
	restored, err := s.dailyRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !restored {
		return apperror.NewNotFoundError("Deleted invoice")
	}
	return nil
}

// ListRecent pages through lines dated within the last 30 days
func (s *DailyInvoiceService) ListRecent(ctx context.Context, page int) (*pagination.PaginatedResult[entity.DailyInvoice], error) {
	params := &pagination.PaginationParams{Page: page, PerPage: RecentInvoicesPerPage}
	params.Validate()

	since := s.clock.today().AddDate(0, 0, -RecentInvoiceDays)
	invoices, total, err := s.dailyRepo.ListSince(ctx, since, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListDeleted pages through soft-deleted lines, most recently deleted first
func (s *DailyInvoiceService) ListDeleted(ctx context.Context, page int) (*pagination.PaginatedResult[entity.DailyInvoice], error) {
	params := &pagination.PaginationParams{Page: page, PerPage: DeletedInvoicesPerPage}
	params.Validate()

	invoices, total, err := s.dailyRepo.ListDeleted(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}
