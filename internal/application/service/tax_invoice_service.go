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
	"github.com/sangkips/fuelinvoice-api/internal/domain/invoiceno"
	"github.com/sangkips/fuelinvoice-api/internal/domain/pricing"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/numwords"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

const (
	// TaxInvoiceRecordsPerPage is the page size of the records query
	TaxInvoiceRecordsPerPage = 20
	// DuplicateInvoiceNumberMessage asks the client to fetch a fresh number
	DuplicateInvoiceNumberMessage = "Tax invoice number already exists. Please refresh the page and try again."
)

// TaxInvoiceService bills a company's daily invoices on a tax invoice
type TaxInvoiceService struct {
	taxRepo       repository.TaxInvoiceRepository
	dailyRepo     repository.DailyInvoiceRepository
	companyRepo   repository.CompanyRepository
	vehicleRepo   repository.VehicleRepository
	paymentRepo   repository.PaymentMethodRepository
	profileRepo   repository.BusinessProfileRepository
	generator     *invoiceno.Generator
	currencyWords string
	clock         Clock
}

// NewTaxInvoiceService creates a new tax invoice service
func NewTaxInvoiceService(
	taxRepo repository.TaxInvoiceRepository,
	dailyRepo repository.DailyInvoiceRepository,
	companyRepo repository.CompanyRepository,
	vehicleRepo repository.VehicleRepository,
	paymentRepo repository.PaymentMethodRepository,
	profileRepo repository.BusinessProfileRepository,
	currencySuffix string,
	clock Clock,
) *TaxInvoiceService {
	return &TaxInvoiceService{
		taxRepo:       taxRepo,
		dailyRepo:     dailyRepo,
		companyRepo:   companyRepo,
		vehicleRepo:   vehicleRepo,
		paymentRepo:   paymentRepo,
		profileRepo:   profileRepo,
		generator:     invoiceno.NewGenerator(taxRepo).WithClock(clock),
		currencyWords: strings.TrimSpace(currencySuffix),
		clock:         clock,
	}
}

// RecordsInput selects the daily invoices a tax invoice would bill.
// A nil VehicleID means every vehicle of the company.
type RecordsInput struct {
	CompanyID uuid.UUID
	VehicleID *uuid.UUID
	FromDate  time.Time
	ToDate    time.Time
	Page      int
}

// RecordsResult is one page of matching daily invoices plus the total of
// every match
type RecordsResult struct {
	*pagination.PaginatedResult[entity.DailyInvoice]
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Records pages through the daily invoices in range, newest first
func (s *TaxInvoiceService) Records(ctx context.Context, input *RecordsInput) (*RecordsResult, error) {
	if err := validateRange(input.FromDate, input.ToDate); err != nil {
		return nil, err
	}
	if _, err := s.company(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	params := &pagination.PaginationParams{Page: input.Page, PerPage: TaxInvoiceRecordsPerPage}
	params.Validate()

	filter := repository.DailyInvoiceFilter{
		CompanyID: input.CompanyID,
		VehicleID: input.VehicleID,
		From:      input.FromDate,
		To:        input.ToDate,
	}
	invoices, total, grandTotal, err := s.dailyRepo.Search(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return &RecordsResult{
		PaginatedResult: pagination.NewPaginatedResult(invoices, pag),
		GrandTotal:      grandTotal,
	}, nil
}

// NextNumber proposes the company's next invoice number for invoiceDate.
// A zero date means today.
func (s *TaxInvoiceService) NextNumber(ctx context.Context, companyID uuid.UUID, invoiceDate time.Time) (string, error) {
	company, err := s.company(ctx, companyID)
	if err != nil {
		return "", err
	}

	number, err := s.generator.Next(ctx, company.Name, company.NickName, invoiceDate)
	switch {
	case errors.Is(err, invoiceno.ErrSequenceExhausted):
		return "", apperror.Wrap(http.StatusConflict, "Invoice number sequence exhausted for this company", err)
	case errors.Is(err, invoiceno.ErrMalformedInvoiceNumber):
		return "", apperror.Wrap(http.StatusConflict, "The company's latest invoice number has no numeric suffix; enter the number manually", err)
	case err != nil:
		return "", err
	}
	return number, nil
}

// GenerateInput is a request to issue a tax invoice
type GenerateInput struct {
	CompanyID        uuid.UUID
	VehicleID        *uuid.UUID
	FromDate         time.Time
	ToDate           time.Time
	TaxInvoiceNumber string
	InvoiceDate      time.Time
	PaymentMethodID  uuid.UUID
}

// Party is a seller or customer block on the printed invoice
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	VatNo   string `json:"vatNo"`
}

// DocumentRecord is one billed fuelling on the printed invoice
type DocumentRecord struct {
	Date          string          `json:"date"`
	SerialNo      string          `json:"serialNo"`
	VehicleNo     string          `json:"vehicleNo"`
	FuelType      string          `json:"fuelType"`
	Volume        decimal.Decimal `json:"volume"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VatPercentage decimal.Decimal `json:"vatPercentage"`
	VatAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
}

// Document is everything the renderer needs to print a tax invoice
type Document struct {
	ID            uuid.UUID        `json:"id"`
	InvoiceNumber string           `json:"invoiceNumber"`
	InvoiceDate   string           `json:"invoiceDate"`
	FromDate      string           `json:"fromDate"`
	ToDate        string           `json:"toDate"`
	VehicleNo     string           `json:"vehicleNo"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	VatPercentage decimal.Decimal  `json:"vatPercentage"`
	VatAmount     decimal.Decimal  `json:"vatAmount"`
	Total         decimal.Decimal  `json:"total"`
	TotalInWords  string           `json:"totalInWords"`
	Seller        Party            `json:"seller"`
	Customer      Party            `json:"customer"`
	Records       []DocumentRecord `json:"records"`
	PaymentMode   string           `json:"paymentMode"`
	PlaceOfSupply string           `json:"placeOfSupply"`
}

// Generate aggregates the selected daily invoices, stores the tax invoice
// with its links, and returns the printable document. A taken number is a
// retryable conflict.
func (s *TaxInvoiceService) Generate(ctx context.Context, input *GenerateInput) (*Document, error) {
	if err := validateRange(input.FromDate, input.ToDate); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(input.TaxInvoiceNumber)
	if number == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "tax_invoice_number", Message: "Tax invoice number is required"},
		})
	}
	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = s.clock.today()
	}

	company, err := s.company(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := s.paymentRepo.GetByID(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if paymentMethod == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	vehicleLabel := entity.AllVehiclesLabel
	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, apperror.NewNotFoundError("Vehicle")
		}
		if vehicle.CompanyID != company.ID {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "vehicle_id", Message: "Vehicle does not belong to the selected company"},
			})
		}
		vehicleLabel = vehicle.VehicleNo
	}

	lines, err := s.dailyRepo.FindForTaxInvoice(ctx, repository.DailyInvoiceFilter{
		CompanyID: company.ID,
		VehicleID: input.VehicleID,
		From:      input.FromDate,
		To:        input.ToDate,
	})
	if err != nil {
		return nil, err
	}
	if input.VehicleID != nil && len(lines) > 0 && lines[0].VehicleNo() != "" {
		vehicleLabel = lines[0].VehicleNo()
	}

	totals := aggregate(lines)
	invoice := &entity.TaxInvoice{
		TaxInvoiceNo:    number,
		InvoiceDate:     invoiceDate,
		CompanyName:     company.Name,
		VehicleNo:       vehicleLabel,
		PaymentMethodID: paymentMethod.ID,
		FromDate:        input.FromDate,
		ToDate:          input.ToDate,
		Subtotal:        totals.Subtotal,
		VatPercentage:   totals.VatPercentage,
		VatAmount:       totals.VatAmount,
		TotalAmount:     totals.GrandTotal,
	}

	ids := make([]uuid.UUID, len(lines))
	for i := range lines {
		ids[i] = lines[i].ID
	}
	if err := s.taxRepo.CreateIfNumberUnique(ctx, invoice, ids); err != nil {
		if errors.Is(err, repository.ErrDuplicateInvoiceNumber) {
			return nil, apperror.NewRetryableConflictError(DuplicateInvoiceNumberMessage, err)
		}
		return nil, err
	}
	invoice.PaymentMethod = paymentMethod

	return s.document(ctx, invoice, company, lines)
}

// Document rebuilds the printable document of a stored tax invoice
func (s *TaxInvoiceService) Document(ctx context.Context, id uuid.UUID) (*Document, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.taxRepo.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByName(ctx, invoice.CompanyName)
	if err != nil {
		return nil, err
	}
	return s.document(ctx, invoice, company, lines)
}

func (s *TaxInvoiceService) document(ctx context.Context, invoice *entity.TaxInvoice, company *entity.Company, lines []entity.DailyInvoice) (*Document, error) {
	words, err := numwords.Convert(invoice.TotalAmount)
	if err != nil {
		return nil, apperror.Wrap(http.StatusUnprocessableEntity, err.Error(), err)
	}
	if s.currencyWords != "" {
		words = strings.TrimSpace(words + " " + s.currencyWords)
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.BusinessProfile{}
	}

	customer := Party{Name: invoice.CompanyName}
	if company != nil {
		customer = Party{
			Name:    company.Name,
			Address: company.Address,
			Contact: company.ContactNumber,
			VatNo:   company.VatNo,
		}
	}

	paymentMode := ""
	if invoice.PaymentMethod != nil {
		paymentMode = invoice.PaymentMethod.Name
	}

	records := make([]DocumentRecord, len(lines))
	for i, line := range lines {
		fuelType := ""
		if line.FuelType != nil {
			fuelType = line.FuelType.Name
		}
		records[i] = DocumentRecord{
			Date:          line.DateAdded.Format(utils.DateLayout),
			SerialNo:      line.SerialNo,
			VehicleNo:     line.VehicleNo(),
			FuelType:      fuelType,
			Volume:        line.Volume,
			UnitPrice:     line.FuelNetPrice,
			Subtotal:      line.SubTotal,
			VatPercentage: line.VatPercentage,
			VatAmount:     line.VatAmount,
			Total:         line.Total,
		}
	}

	return &Document{
		ID:            invoice.ID,
		InvoiceNumber: invoice.TaxInvoiceNo,
		InvoiceDate:   invoice.InvoiceDate.Format(utils.DateLayout),
		FromDate:      invoice.FromDate.Format(utils.DateLayout),
		ToDate:        invoice.ToDate.Format(utils.DateLayout),
		VehicleNo:     invoice.VehicleNo,
		Subtotal:      invoice.Subtotal,
		VatPercentage: invoice.VatPercentage,
		VatAmount:     invoice.VatAmount,
		Total:         invoice.TotalAmount,
		TotalInWords:  words,
		Seller: Party{
			Name:    profile.CompanyName,
			Address: profile.CompanyAddress,
			Contact: profile.CompanyContact,
			VatNo:   profile.CompanyVatNo,
		},
		Customer:      customer,
		Records:       records,
		PaymentMode:   paymentMode,
		PlaceOfSupply: profile.PlaceOfSupply,
	}, nil
}

// Get retrieves a tax invoice with its payment method
func (s *TaxInvoiceService) Get(ctx context.Context, id uuid.UUID) (*entity.TaxInvoice, error) {
	invoice, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Tax invoice")
	}
	return invoice, nil
}

// List pages through issued tax invoices, newest first
func (s *TaxInvoiceService) List(ctx context.Context, filter repository.TaxInvoiceFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.TaxInvoice], error) {
	invoices, total, err := s.taxRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// Lines returns the daily invoices billed by a tax invoice
func (s *TaxInvoiceService) Lines(ctx context.Context, id uuid.UUID) ([]entity.DailyInvoice, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.taxRepo.ListLines(ctx, id)
}

func (s *TaxInvoiceService) company(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

func aggregate(lines []entity.DailyInvoice) pricing.InvoiceTotals {
	in := make([]pricing.InvoiceLine, len(lines))
	for i, l := range lines {
		in[i] = pricing.InvoiceLine{Subtotal: l.SubTotal, Total: l.Total, VatPercentage: l.VatPercentage}
	}
	return pricing.AggregateTaxInvoice(in)
}

func validateRange(from, to time.Time) error {
	var fieldErrors []apperror.FieldError
	if from.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "from_date", Message: "From date is required"})
	}
	if to.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "to_date", Message: "To date is required"})
	}
	if len(fieldErrors) == 0 && to.Before(from) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "to_date", Message: "To date must be on or after the from date"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
