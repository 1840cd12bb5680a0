package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/export"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// SummaryPerPage is the page size of the invoice summary
const SummaryPerPage = 20

// SummaryService reports issued tax invoices over a date range
type SummaryService struct {
	taxRepo     repository.TaxInvoiceRepository
	companyRepo repository.CompanyRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(taxRepo repository.TaxInvoiceRepository, companyRepo repository.CompanyRepository) *SummaryService {
	return &SummaryService{
		taxRepo:     taxRepo,
		companyRepo: companyRepo,
	}
}

// SummaryInput selects tax invoices by invoice date with optional company
// and payment method
type SummaryInput struct {
	FromDate        time.Time
	ToDate          time.Time
	CompanyID       *uuid.UUID
	PaymentMethodID *uuid.UUID
	Page            int
}

// SummaryResult is one page of tax invoices plus totals over every match
type SummaryResult struct {
	*pagination.PaginatedResult[entity.TaxInvoice]
	Totals repository.TaxInvoiceTotals `json:"totals"`
}

// Search pages through matching tax invoices, newest first
func (s *SummaryService) Search(ctx context.Context, input *SummaryInput) (*SummaryResult, error) {
	filter, err := s.filter(ctx, input)
	if err != nil {
		return nil, err
	}

	params := &pagination.PaginationParams{Page: input.Page, PerPage: SummaryPerPage}
	params.Validate()

	invoices, total, err := s.taxRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	totals, err := s.taxRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return &SummaryResult{
		PaginatedResult: pagination.NewPaginatedResult(invoices, pag),
		Totals:          totals,
	}, nil
}

// Export writes every matching tax invoice, oldest first, as an XLSX workbook
func (s *SummaryService) Export(ctx context.Context, input *SummaryInput, w io.Writer) error {
	filter, err := s.filter(ctx, input)
	if err != nil {
		return err
	}

	invoices, err := s.taxRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	totals, err := s.taxRepo.Totals(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteSummary(w, invoices, totals)
}

func (s *SummaryService) filter(ctx context.Context, input *SummaryInput) (repository.TaxInvoiceFilter, error) {
	if err := validateRange(input.FromDate, input.ToDate); err != nil {
		return repository.TaxInvoiceFilter{}, err
	}

	from, to := input.FromDate, input.ToDate
	filter := repository.TaxInvoiceFilter{
		PaymentMethodID: input.PaymentMethodID,
		From:            &from,
		To:              &to,
	}
	if input.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *input.CompanyID)
		if err != nil {
			return filter, err
		}
		if company == nil {
			return filter, apperror.NewNotFoundError("Company")
		}
		filter.CompanyName = company.Name
	}
	return filter, nil
}
