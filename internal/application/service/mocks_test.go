package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

var fixedNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// pointer returns the mocked pointer result at index i, tolerating nil
func pointer[T any](args mock.Arguments, i int) *T {
	v := args.Get(i)
	if v == nil {
		return nil
	}
	return v.(*T)
}

func slice[T any](args mock.Arguments, i int) []T {
	v := args.Get(i)
	if v == nil {
		return nil
	}
	return v.([]T)
}

type staticVat struct {
	pct decimal.Decimal
	err error
}

func (s staticVat) CurrentVatPercentage(context.Context) (decimal.Decimal, error) {
	return s.pct, s.err
}

type mockCompanyRepo struct{ mock.Mock }

func (m *mockCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	args := m.Called(ctx, id)
	return pointer[entity.Company](args, 0), args.Error(1)
}
func (m *mockCompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	args := m.Called(ctx, name)
	return pointer[entity.Company](args, 0), args.Error(1)
}
func (m *mockCompanyRepo) GetByNickName(ctx context.Context, nick string) (*entity.Company, error) {
	args := m.Called(ctx, nick)
	return pointer[entity.Company](args, 0), args.Error(1)
}
func (m *mockCompanyRepo) GetByVatNo(ctx context.Context, vatNo string) (*entity.Company, error) {
	args := m.Called(ctx, vatNo)
	return pointer[entity.Company](args, 0), args.Error(1)
}
func (m *mockCompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCompanyRepo) List(ctx context.Context, p *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	args := m.Called(ctx, p, search)
	return slice[entity.Company](args, 0), args.Get(1).(int64), args.Error(2)
}
func (m *mockCompanyRepo) ListAll(ctx context.Context) ([]entity.Company, error) {
	args := m.Called(ctx)
	return slice[entity.Company](args, 0), args.Error(1)
}

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	args := m.Called(ctx, id)
	return pointer[entity.Vehicle](args, 0), args.Error(1)
}
func (m *mockVehicleRepo) GetByVehicleNo(ctx context.Context, no string) (*entity.Vehicle, error) {
	args := m.Called(ctx, no)
	return pointer[entity.Vehicle](args, 0), args.Error(1)
}
func (m *mockVehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockVehicleRepo) List(ctx context.Context, p *pagination.PaginationParams, search string) ([]entity.Vehicle, int64, error) {
	args := m.Called(ctx, p, search)
	return slice[entity.Vehicle](args, 0), args.Get(1).(int64), args.Error(2)
}
func (m *mockVehicleRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Vehicle, error) {
	args := m.Called(ctx, companyID)
	return slice[entity.Vehicle](args, 0), args.Error(1)
}

type mockFuelCategoryRepo struct{ mock.Mock }

func (m *mockFuelCategoryRepo) List(ctx context.Context) ([]entity.FuelCategory, error) {
	args := m.Called(ctx)
	return slice[entity.FuelCategory](args, 0), args.Error(1)
}
func (m *mockFuelCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelCategory, error) {
	args := m.Called(ctx, id)
	return pointer[entity.FuelCategory](args, 0), args.Error(1)
}

type mockFuelTypeRepo struct{ mock.Mock }

func (m *mockFuelTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.FuelType, error) {
	args := m.Called(ctx, id)
	return pointer[entity.FuelType](args, 0), args.Error(1)
}
func (m *mockFuelTypeRepo) List(ctx context.Context) ([]entity.FuelType, error) {
	args := m.Called(ctx)
	return slice[entity.FuelType](args, 0), args.Error(1)
}
func (m *mockFuelTypeRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.FuelType, error) {
	args := m.Called(ctx, categoryID)
	return slice[entity.FuelType](args, 0), args.Error(1)
}
func (m *mockFuelTypeRepo) UpdatePrice(ctx context.Context, ft *entity.FuelType, h *entity.FuelPriceHistory) error {
	return m.Called(ctx, ft, h).Error(0)
}
func (m *mockFuelTypeRepo) ListPriceHistory(ctx context.Context, id uuid.UUID, p *pagination.PaginationParams) ([]entity.FuelPriceHistory, int64, error) {
	args := m.Called(ctx, id, p)
	return slice[entity.FuelPriceHistory](args, 0), args.Get(1).(int64), args.Error(2)
}

type mockVatRateRepo struct{ mock.Mock }

func (m *mockVatRateRepo) EffectiveOn(ctx context.Context, day time.Time) (*entity.VatRate, error) {
	args := m.Called(ctx, day)
	return pointer[entity.VatRate](args, 0), args.Error(1)
}
func (m *mockVatRateRepo) Latest(ctx context.Context) (*entity.VatRate, error) {
	args := m.Called(ctx)
	return pointer[entity.VatRate](args, 0), args.Error(1)
}
func (m *mockVatRateRepo) Replace(ctx context.Context, rate *entity.VatRate, closeAt time.Time) error {
	return m.Called(ctx, rate, closeAt).Error(0)
}
func (m *mockVatRateRepo) List(ctx context.Context, p *pagination.PaginationParams) ([]entity.VatRate, int64, error) {
	args := m.Called(ctx, p)
	return slice[entity.VatRate](args, 0), args.Get(1).(int64), args.Error(2)
}

type mockDailyInvoiceRepo struct{ mock.Mock }

func (m *mockDailyInvoiceRepo) Create(ctx context.Context, inv *entity.DailyInvoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *mockDailyInvoiceRepo) Update(ctx context.Context, inv *entity.DailyInvoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *mockDailyInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyInvoice, error) {
	args := m.Called(ctx, id)
	return pointer[entity.DailyInvoice](args, 0), args.Error(1)
}
func (m *mockDailyInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockDailyInvoiceRepo) Restore(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockDailyInvoiceRepo) ListSince(ctx context.Context, since time.Time, p *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error) {
	args := m.Called(ctx, since, p)
	return slice[entity.DailyInvoice](args, 0), args.Get(1).(int64), args.Error(2)
}
func (m *mockDailyInvoiceRepo) ListDeleted(ctx context.Context, p *pagination.PaginationParams) ([]entity.DailyInvoice, int64, error) {
	args := m.Called(ctx, p)
	return slice[entity.DailyInvoice](args, 0), args.Get(1).(int64), args.Error(2)
}
func (m *mockDailyInvoiceRepo) Search(ctx context.Context, f repository.DailyInvoiceFilter, p *pagination.PaginationParams) ([]entity.DailyInvoice, int64, decimal.Decimal, error) {
	args := m.Called(ctx, f, p)
	return slice[entity.DailyInvoice](args, 0), args.Get(1).(int64), args.Get(2).(decimal.Decimal), args.Error(3)
}
func (m *mockDailyInvoiceRepo) FindForTaxInvoice(ctx context.Context, f repository.DailyInvoiceFilter) ([]entity.DailyInvoice, error) {
	args := m.Called(ctx, f)
	return slice[entity.DailyInvoice](args, 0), args.Error(1)
}

type mockTaxInvoiceRepo struct{ mock.Mock }

func (m *mockTaxInvoiceRepo) FindLatestInvoiceNumberForCompany(ctx context.Context, name string) (string, bool, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *mockTaxInvoiceRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *mockTaxInvoiceRepo) CreateIfNumberUnique(ctx context.Context, inv *entity.TaxInvoice, ids []uuid.UUID) error {
	return m.Called(ctx, inv, ids).Error(0)
}
func (m *mockTaxInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxInvoice, error) {
	args := m.Called(ctx, id)
	return pointer[entity.TaxInvoice](args, 0), args.Error(1)
}
func (m *mockTaxInvoiceRepo) List(ctx context.Context, f repository.TaxInvoiceFilter, p *pagination.PaginationParams) ([]entity.TaxInvoice, int64, error) {
	args := m.Called(ctx, f, p)
	return slice[entity.TaxInvoice](args, 0), args.Get(1).(int64), args.Error(2)
}
func (m *mockTaxInvoiceRepo) ListAll(ctx context.Context, f repository.TaxInvoiceFilter) ([]entity.TaxInvoice, error) {
	args := m.Called(ctx, f)
	return slice[entity.TaxInvoice](args, 0), args.Error(1)
}
func (m *mockTaxInvoiceRepo) Totals(ctx context.Context, f repository.TaxInvoiceFilter) (repository.TaxInvoiceTotals, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(repository.TaxInvoiceTotals), args.Error(1)
}
func (m *mockTaxInvoiceRepo) ListLines(ctx context.Context, id uuid.UUID) ([]entity.DailyInvoice, error) {
	args := m.Called(ctx, id)
	return slice[entity.DailyInvoice](args, 0), args.Error(1)
}

type mockPaymentMethodRepo struct{ mock.Mock }

func (m *mockPaymentMethodRepo) List(ctx context.Context) ([]entity.PaymentMethod, error) {
	args := m.Called(ctx)
	return slice[entity.PaymentMethod](args, 0), args.Error(1)
}
func (m *mockPaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	args := m.Called(ctx, id)
	return pointer[entity.PaymentMethod](args, 0), args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Get(ctx context.Context) (*entity.BusinessProfile, error) {
	args := m.Called(ctx)
	return pointer[entity.BusinessProfile](args, 0), args.Error(1)
}
func (m *mockProfileRepo) Save(ctx context.Context, p *entity.BusinessProfile) error {
	return m.Called(ctx, p).Error(0)
}

type mockIncomeRepo struct{ mock.Mock }

func (m *mockIncomeRepo) GetByPeriod(ctx context.Context, year, month int) (*entity.MonthlyIncome, error) {
	args := m.Called(ctx, year, month)
	return pointer[entity.MonthlyIncome](args, 0), args.Error(1)
}
func (m *mockIncomeRepo) Upsert(ctx context.Context, income *entity.MonthlyIncome) error {
	return m.Called(ctx, income).Error(0)
}
func (m *mockIncomeRepo) ListRecent(ctx context.Context, limit int) ([]entity.MonthlyIncome, error) {
	args := m.Called(ctx, limit)
	return slice[entity.MonthlyIncome](args, 0), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	return pointer[entity.User](args, 0), args.Error(1)
}
func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	args := m.Called(ctx, name)
	return pointer[entity.User](args, 0), args.Error(1)
}
func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) List(ctx context.Context, p *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	args := m.Called(ctx, p, search)
	return slice[entity.User](args, 0), args.Get(1).(int64), args.Error(2)
}
