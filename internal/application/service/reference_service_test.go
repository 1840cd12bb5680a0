package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

func newTestCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache(0)
	t.Cleanup(c.Close)
	return c
}

func TestVatService_CurrentVatPercentageIsCached(t *testing.T) {
	repo := new(mockVatRateRepo)
	svc := NewVatService(repo, newTestCache(t), time.Hour, fixedClock)

	repo.On("EffectiveOn", mock.Anything, day(2026, 3, 14)).
		Return(&entity.VatRate{VatPercentage: dec("18")}, nil).Once()

	for i := 0; i < 3; i++ {
		pct, err := svc.CurrentVatPercentage(context.Background())
		require.NoError(t, err)
		assert.True(t, pct.Equal(dec("18")))
	}
	repo.AssertNumberOfCalls(t, "EffectiveOn", 1)
}

func TestVatService_NoRateMeansZero(t *testing.T) {
	repo := new(mockVatRateRepo)
	svc := NewVatService(repo, newTestCache(t), time.Hour, fixedClock)
	repo.On("EffectiveOn", mock.Anything, mock.Anything).Return(nil, nil)

	pct, err := svc.CurrentVatPercentage(context.Background())
	require.NoError(t, err)
	assert.True(t, pct.IsZero())
}

func TestVatService_UpdateVat(t *testing.T) {
	repo := new(mockVatRateRepo)
	refCache := newTestCache(t)
	svc := NewVatService(repo, refCache, time.Hour, fixedClock)

	repo.On("EffectiveOn", mock.Anything, mock.Anything).Return(&entity.VatRate{VatPercentage: dec("15")}, nil).Once()
	_, err := svc.CurrentVatPercentage(context.Background())
	require.NoError(t, err)

	repo.On("Replace", mock.Anything, mock.MatchedBy(func(r *entity.VatRate) bool {
		return r.VatPercentage.Equal(dec("18")) && r.FromDate.Equal(day(2026, 3, 14)) && r.ToDate.Equal(entity.OpenEndDate)
	}), day(2026, 3, 14)).Return(nil)
	_, err = svc.UpdateVat(context.Background(), dec("18"))
	require.NoError(t, err)

	repo.On("EffectiveOn", mock.Anything, mock.Anything).Return(&entity.VatRate{VatPercentage: dec("18")}, nil).Once()
	pct, err := svc.CurrentVatPercentage(context.Background())
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("18")), "cache must be invalidated on update")
}

func TestVatService_UpdateVatOutOfRange(t *testing.T) {
	repo := new(mockVatRateRepo)
	svc := NewVatService(repo, newTestCache(t), time.Hour, fixedClock)

	for _, pct := range []string{"-1", "100.01"} {
		_, err := svc.UpdateVat(context.Background(), dec(pct))
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code, pct)
	}
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestFuelService_FuelTypePrices(t *testing.T) {
	types := new(mockFuelTypeRepo)
	svc := NewFuelService(new(mockFuelCategoryRepo), types, staticVat{pct: dec("18")}, newTestCache(t), time.Hour, fixedClock)

	types.On("List", mock.Anything).Return([]entity.FuelType{{Name: "92 Petrol", Price: dec("292")}}, nil)

	prices, err := svc.FuelTypePrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, prices[0].NetPrice.Equal(dec("247")))
	assert.True(t, prices[0].VatAmount.Equal(dec("45")))
}

func TestFuelService_UpdateFuelPrice(t *testing.T) {
	types := new(mockFuelTypeRepo)
	refCache := newTestCache(t)
	svc := NewFuelService(new(mockFuelCategoryRepo), types, staticVat{pct: dec("18")}, refCache, time.Hour, fixedClock)

	petrol := &entity.FuelType{ID: uuid.New(), Name: "92 Petrol", Price: dec("292")}
	types.On("List", mock.Anything).Return([]entity.FuelType{*petrol}, nil)
	_, err := svc.FuelTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, refCache.Len())

	types.On("GetByID", mock.Anything, petrol.ID).Return(petrol, nil)
	types.On("UpdatePrice", mock.Anything, petrol, mock.MatchedBy(func(h *entity.FuelPriceHistory) bool {
		return h.FuelPrice.Equal(dec("305")) && h.VatPercentage.Equal(dec("18")) && h.FromDate.Equal(day(2026, 3, 14))
	})).Return(nil)

	updated, err := svc.UpdateFuelPrice(context.Background(), &UpdateFuelPriceInput{FuelTypeID: petrol.ID, Price: dec("305")})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(dec("305")))
	assert.Equal(t, 0, refCache.Len())
}

type companyFixture struct {
	svc        *CompanyService
	companies  *mockCompanyRepo
	vehicles   *mockVehicleRepo
	categories *mockFuelCategoryRepo
	cache      *cache.MemoryCache
}

func newCompanyFixture(t *testing.T) *companyFixture {
	f := &companyFixture{
		companies:  new(mockCompanyRepo),
		vehicles:   new(mockVehicleRepo),
		categories: new(mockFuelCategoryRepo),
		cache:      newTestCache(t),
	}
	f.svc = NewCompanyService(f.companies, f.vehicles, f.categories, f.cache, time.Hour)
	return f
}

func TestCompanyService_CreateCompanyConflicts(t *testing.T) {
	existing := &entity.Company{ID: uuid.New()}
	tests := []struct {
		name    string
		setup   func(m *mockCompanyRepo)
		message string
	}{
		{
			name: "name taken",
			setup: func(m *mockCompanyRepo) {
				m.On("GetByName", mock.Anything, "Acme").Return(existing, nil)
			},
			message: "Company name already exists",
		},
		{
			name: "nick name taken",
			setup: func(m *mockCompanyRepo) {
				m.On("GetByName", mock.Anything, "Acme").Return(nil, nil)
				m.On("GetByNickName", mock.Anything, "ACM").Return(existing, nil)
			},
			message: "Company nick name already exists",
		},
		{
			name: "vat number taken",
			setup: func(m *mockCompanyRepo) {
				m.On("GetByName", mock.Anything, "Acme").Return(nil, nil)
				m.On("GetByNickName", mock.Anything, "ACM").Return(nil, nil)
				m.On("GetByVatNo", mock.Anything, "V1").Return(existing, nil)
			},
			message: "Company VAT number already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCompanyFixture(t)
			tt.setup(f.companies)

			_, err := f.svc.CreateCompany(context.Background(), &CompanyInput{Name: " Acme ", NickName: "ACM", VatNo: "V1"})
			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusConflict, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			f.companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCompanyService_AllCompaniesInvalidatedOnCreate(t *testing.T) {
	f := newCompanyFixture(t)
	f.companies.On("ListAll", mock.Anything).Return([]entity.Company{{Name: "Acme"}}, nil)
	f.companies.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("GetByNickName", mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("GetByVatNo", mock.Anything, mock.Anything).Return(nil, nil)
	f.companies.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.AllCompanies(context.Background())
	require.NoError(t, err)
	_, err = f.svc.AllCompanies(context.Background())
	require.NoError(t, err)
	f.companies.AssertNumberOfCalls(t, "ListAll", 1)

	_, err = f.svc.CreateCompany(context.Background(), &CompanyInput{Name: "Beta", NickName: "BET", VatNo: "V2"})
	require.NoError(t, err)

	_, err = f.svc.AllCompanies(context.Background())
	require.NoError(t, err)
	f.companies.AssertNumberOfCalls(t, "ListAll", 2)
}

func TestCompanyService_CreateVehicle(t *testing.T) {
	companyID, categoryID := uuid.New(), uuid.New()

	t.Run("duplicate number", func(t *testing.T) {
		f := newCompanyFixture(t)
		f.vehicles.On("GetByVehicleNo", mock.Anything, "CAB-1234").Return(&entity.Vehicle{ID: uuid.New()}, nil)
		f.companies.On("GetByID", mock.Anything, companyID).Return(&entity.Company{ID: companyID}, nil)
		f.categories.On("GetByID", mock.Anything, categoryID).Return(&entity.FuelCategory{ID: categoryID}, nil)

		_, err := f.svc.CreateVehicle(context.Background(), &VehicleInput{CompanyID: companyID, VehicleNo: "cab-1234", FuelCategoryID: categoryID})
		appErr := apperror.GetAppError(err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
		assert.Equal(t, "A vehicle with this number already exists", appErr.Errors[0].Message)
	})

	t.Run("stores upper-case number", func(t *testing.T) {
		f := newCompanyFixture(t)
		f.vehicles.On("GetByVehicleNo", mock.Anything, "CAB-1234").Return(nil, nil)
		f.companies.On("GetByID", mock.Anything, companyID).Return(&entity.Company{ID: companyID}, nil)
		f.categories.On("GetByID", mock.Anything, categoryID).Return(&entity.FuelCategory{ID: categoryID}, nil)
		f.vehicles.On("Create", mock.Anything, mock.MatchedBy(func(v *entity.Vehicle) bool {
			return v.VehicleNo == "CAB-1234" && v.CompanyID == companyID
		})).Return(nil)

		vehicle, err := f.svc.CreateVehicle(context.Background(), &VehicleInput{CompanyID: companyID, VehicleNo: " cab-1234 ", FuelCategoryID: categoryID})
		require.NoError(t, err)
		assert.Equal(t, "CAB-1234", vehicle.VehicleNo)
	})
}
