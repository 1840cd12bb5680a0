package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/export"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

func TestSummaryService_Search(t *testing.T) {
	taxRepo := new(mockTaxInvoiceRepo)
	companies := new(mockCompanyRepo)
	svc := NewSummaryService(taxRepo, companies)

	company := &entity.Company{ID: uuid.New(), Name: "Acme Logistics"}
	companies.On("GetByID", mock.Anything, company.ID).Return(company, nil)

	byCompany := mock.MatchedBy(func(f repository.TaxInvoiceFilter) bool {
		return f.CompanyName == "Acme Logistics" && f.From != nil && f.To != nil
	})
	taxRepo.On("List", mock.Anything, byCompany, mock.Anything).
		Return([]entity.TaxInvoice{{TaxInvoiceNo: "26MAR_ACM_00001"}}, int64(1), nil)
	taxRepo.On("Totals", mock.Anything, byCompany).
		Return(repository.TaxInvoiceTotals{SumNet: dec("100"), SumVat: dec("18"), SumTotal: dec("118")}, nil)

	result, err := svc.Search(context.Background(), &SummaryInput{
		FromDate:  day(2026, 3, 1),
		ToDate:    day(2026, 3, 31),
		CompanyID: &company.ID,
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.True(t, result.Totals.SumTotal.Equal(dec("118")))
	assert.Equal(t, SummaryPerPage, result.Pagination.PerPage)
}

func TestSummaryService_SearchUnknownCompany(t *testing.T) {
	companies := new(mockCompanyRepo)
	svc := NewSummaryService(new(mockTaxInvoiceRepo), companies)
	id := uuid.New()
	companies.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Search(context.Background(), &SummaryInput{FromDate: day(2026, 3, 1), ToDate: day(2026, 3, 31), CompanyID: &id})
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestSummaryService_Export(t *testing.T) {
	taxRepo := new(mockTaxInvoiceRepo)
	svc := NewSummaryService(taxRepo, new(mockCompanyRepo))

	taxRepo.On("ListAll", mock.Anything, mock.Anything).Return([]entity.TaxInvoice{
		{TaxInvoiceNo: "26MAR_ACM_00001", CompanyName: "Acme Logistics", InvoiceDate: day(2026, 3, 2), TotalAmount: dec("118")},
	}, nil)
	taxRepo.On("Totals", mock.Anything, mock.Anything).Return(repository.TaxInvoiceTotals{SumTotal: dec("118")}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &SummaryInput{FromDate: day(2026, 3, 1), ToDate: day(2026, 3, 31)}, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(export.SummarySheet)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 3)
}
