package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/invoiceno"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

type taxFixture struct {
	svc       *TaxInvoiceService
	tax       *mockTaxInvoiceRepo
	daily     *mockDailyInvoiceRepo
	companies *mockCompanyRepo
	vehicles  *mockVehicleRepo
	payments  *mockPaymentMethodRepo
	profile   *mockProfileRepo
	company   *entity.Company
	cash      *entity.PaymentMethod
}

func newTaxFixture(t *testing.T) *taxFixture {
	t.Helper()
	f := &taxFixture{
		tax:       new(mockTaxInvoiceRepo),
		daily:     new(mockDailyInvoiceRepo),
		companies: new(mockCompanyRepo),
		vehicles:  new(mockVehicleRepo),
		payments:  new(mockPaymentMethodRepo),
		profile:   new(mockProfileRepo),
		company: &entity.Company{
			ID: uuid.New(), Name: "Acme Logistics", NickName: "ACM",
			Address: "12 Harbour Rd", VatNo: "VAT-77", ContactNumber: "0771234567",
		},
		cash: &entity.PaymentMethod{ID: uuid.New(), Name: "Cash"},
	}
	f.svc = NewTaxInvoiceService(f.tax, f.daily, f.companies, f.vehicles, f.payments, f.profile, "Rupees Only", fixedClock)
	f.companies.On("GetByID", mock.Anything, f.company.ID).Return(f.company, nil)
	return f
}

func (f *taxFixture) lines() []entity.DailyInvoice {
	vehicle := &entity.Vehicle{VehicleNo: "CAB-1234"}
	return []entity.DailyInvoice{
		{ID: uuid.New(), SerialNo: "1", DateAdded: day(2026, 3, 1), SubTotal: dec("2594"), Total: dec("3066"), VatPercentage: dec("18"), Vehicle: vehicle},
		{ID: uuid.New(), SerialNo: "2", DateAdded: day(2026, 3, 2), SubTotal: dec("1000"), Total: dec("1180"), VatPercentage: dec("18"), Vehicle: vehicle},
	}
}

func (f *taxFixture) input() *GenerateInput {
	return &GenerateInput{
		CompanyID:        f.company.ID,
		FromDate:         day(2026, 3, 1),
		ToDate:           day(2026, 3, 31),
		TaxInvoiceNumber: "26MAR_ACM_00008",
		InvoiceDate:      day(2026, 3, 31),
		PaymentMethodID:  f.cash.ID,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTaxInvoiceService_Generate(t *testing.T) {
	f := newTaxFixture(t)
	lines := f.lines()

	f.payments.On("GetByID", mock.Anything, f.cash.ID).Return(f.cash, nil)
	f.daily.On("FindForTaxInvoice", mock.Anything, mock.MatchedBy(func(filter repository.DailyInvoiceFilter) bool {
		return filter.CompanyID == f.company.ID && filter.VehicleID == nil
	})).Return(lines, nil)
	f.profile.On("Get", mock.Anything).Return(&entity.BusinessProfile{
		CompanyName: "Lanka Filling Station", PlaceOfSupply: "Colombo",
	}, nil)

	var saved *entity.TaxInvoice
	f.tax.On("CreateIfNumberUnique", mock.Anything, mock.AnythingOfType("*entity.TaxInvoice"), []uuid.UUID{lines[0].ID, lines[1].ID}).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.TaxInvoice) }).
		Return(nil)

	doc, err := f.svc.Generate(context.Background(), f.input())
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, entity.AllVehiclesLabel, saved.VehicleNo)
	assert.Equal(t, "Acme Logistics", saved.CompanyName)
	assert.True(t, saved.Subtotal.Equal(dec("3594")))
	assert.True(t, saved.VatAmount.Equal(dec("652")))
	assert.True(t, saved.TotalAmount.Equal(dec("4246")))

	assert.Equal(t, "26MAR_ACM_00008", doc.InvoiceNumber)
	assert.Equal(t, "Four Thousand Two Hundred Forty Six Rupees Only", doc.TotalInWords)
	assert.Equal(t, "Cash", doc.PaymentMode)
	assert.Equal(t, "Colombo", doc.PlaceOfSupply)
	assert.Equal(t, "Lanka Filling Station", doc.Seller.Name)
	assert.Equal(t, "VAT-77", doc.Customer.VatNo)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "2026-03-01", doc.Records[0].Date)
}

func TestTaxInvoiceService_GenerateDuplicateNumber(t *testing.T) {
	f := newTaxFixture(t)
	f.payments.On("GetByID", mock.Anything, f.cash.ID).Return(f.cash, nil)
	f.daily.On("FindForTaxInvoice", mock.Anything, mock.Anything).Return(f.lines(), nil)
	f.tax.On("CreateIfNumberUnique", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateInvoiceNumber)

	_, err := f.svc.Generate(context.Background(), f.input())
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.True(t, appErr.ShouldRefresh)
	assert.Equal(t, DuplicateInvoiceNumberMessage, appErr.Message)
	assert.True(t, errors.Is(err, repository.ErrDuplicateInvoiceNumber))
	f.profile.AssertNotCalled(t, "Get", mock.Anything)
}

func TestTaxInvoiceService_GenerateSingleVehicle(t *testing.T) {
	f := newTaxFixture(t)
	vehicle := &entity.Vehicle{ID: uuid.New(), CompanyID: f.company.ID, VehicleNo: "CAB-1234"}
	f.vehicles.On("GetByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	f.payments.On("GetByID", mock.Anything, f.cash.ID).Return(f.cash, nil)
	f.daily.On("FindForTaxInvoice", mock.Anything, mock.Anything).Return([]entity.DailyInvoice{}, nil)
	f.profile.On("Get", mock.Anything).Return(nil, nil)

	var saved *entity.TaxInvoice
	f.tax.On("CreateIfNumberUnique", mock.Anything, mock.Anything, []uuid.UUID{}).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.TaxInvoice) }).
		Return(nil)

	in := f.input()
	in.VehicleID = &vehicle.ID
	doc, err := f.svc.Generate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "CAB-1234", saved.VehicleNo)
	assert.True(t, doc.Total.IsZero())
	assert.Equal(t, "Zero Rupees Only", doc.TotalInWords)
	assert.Empty(t, doc.Records)
}

func TestTaxInvoiceService_GenerateValidation(t *testing.T) {
	f := newTaxFixture(t)

	in := f.input()
	in.FromDate, in.ToDate = in.ToDate, in.FromDate
	_, err := f.svc.Generate(context.Background(), in)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

	in = f.input()
	in.TaxInvoiceNumber = "  "
	_, err = f.svc.Generate(context.Background(), in)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

	f.tax.AssertNotCalled(t, "CreateIfNumberUnique", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxInvoiceService_NextNumber(t *testing.T) {
	f := newTaxFixture(t)
	f.tax.On("FindLatestInvoiceNumberForCompany", mock.Anything, "Acme Logistics").
		Return("26FEB_ACM_00007", true, nil)

	number, err := f.svc.NextNumber(context.Background(), f.company.ID, day(2026, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, "26MAR_ACM_00008", number)

	number, err = f.svc.NextNumber(context.Background(), f.company.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "26MAR_ACM_00008", number)
}

func TestTaxInvoiceService_NextNumberExhausted(t *testing.T) {
	f := newTaxFixture(t)
	f.tax.On("FindLatestInvoiceNumberForCompany", mock.Anything, "Acme Logistics").
		Return("26FEB_ACM_99999", true, nil)

	_, err := f.svc.NextNumber(context.Background(), f.company.ID, day(2026, 3, 2))
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestTaxInvoiceService_NextNumberMalformedLatest(t *testing.T) {
	f := newTaxFixture(t)
	f.tax.On("FindLatestInvoiceNumberForCompany", mock.Anything, "Acme Logistics").
		Return("ACME-MARCH", true, nil)

	_, err := f.svc.NextNumber(context.Background(), f.company.ID, day(2026, 3, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, invoiceno.ErrMalformedInvoiceNumber)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestTaxInvoiceService_Records(t *testing.T) {
	f := newTaxFixture(t)
	f.daily.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(f.lines(), int64(2), dec("4246"), nil)

	result, err := f.svc.Records(context.Background(), &RecordsInput{
		CompanyID: f.company.ID,
		FromDate:  day(2026, 3, 1),
		ToDate:    day(2026, 3, 31),
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.GrandTotal.Equal(dec("4246")))
	assert.Equal(t, TaxInvoiceRecordsPerPage, result.Pagination.PerPage)
}

func TestTaxInvoiceService_Document(t *testing.T) {
	f := newTaxFixture(t)
	invoice := &entity.TaxInvoice{
		ID: uuid.New(), TaxInvoiceNo: "26MAR_ACM_00008", CompanyName: "Acme Logistics",
		InvoiceDate: day(2026, 3, 31), TotalAmount: dec("1205"), PaymentMethod: f.cash,
	}
	f.tax.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)
	f.tax.On("ListLines", mock.Anything, invoice.ID).Return(f.lines(), nil)
	f.companies.On("GetByName", mock.Anything, "Acme Logistics").Return(nil, nil)
	f.profile.On("Get", mock.Anything).Return(nil, nil)

	doc, err := f.svc.Document(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "One Thousand Two Hundred Five Rupees Only", doc.TotalInWords)
	assert.Equal(t, "Acme Logistics", doc.Customer.Name)
	assert.Len(t, doc.Records, 2)
}
