package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/pricing"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// FuelService handles fuel categories, fuel types and their prices
type FuelService struct {
	categoryRepo repository.FuelCategoryRepository
	fuelTypeRepo repository.FuelTypeRepository
	vat          repository.VatPercentageLookup
	refCache     cache.ReferenceCache
	ttl          time.Duration
	clock        Clock
}

// NewFuelService creates a new fuel service
func NewFuelService(
	categoryRepo repository.FuelCategoryRepository,
	fuelTypeRepo repository.FuelTypeRepository,
	vat repository.VatPercentageLookup,
	refCache cache.ReferenceCache,
	ttl time.Duration,
	clock Clock,
) *FuelService {
	return &FuelService{
		categoryRepo: categoryRepo,
		fuelTypeRepo: fuelTypeRepo,
		vat:          vat,
		refCache:     refCache,
		ttl:          ttl,
		clock:        clock,
	}
}

// Categories lists every fuel category
func (s *FuelService) Categories(ctx context.Context) ([]entity.FuelCategory, error) {
	return s.categoryRepo.List(ctx)
}

// FuelTypes lists every fuel type with its category
func (s *FuelService) FuelTypes(ctx context.Context) ([]entity.FuelType, error) {
	return cache.Remember(ctx, s.refCache, cache.KeyFuelTypes, s.ttl, s.fuelTypeRepo.List)
}

// FuelTypesByCategory lists the fuel types a vehicle of the category can take
func (s *FuelService) FuelTypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.FuelType, error) {
	return cache.Remember(ctx, s.refCache, cache.FuelTypesKey(categoryID), s.ttl, func(ctx context.Context) ([]entity.FuelType, error) {
		return s.fuelTypeRepo.ListByCategory(ctx, categoryID)
	})
}

// FuelTypePrice is a fuel type with its price split into net and VAT
type FuelTypePrice struct {
	entity.FuelType
	VatPercentage decimal.Decimal `json:"vat_percentage"`
	NetPrice      decimal.Decimal `json:"net_price"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
}

// FuelTypePrices lists every fuel type with the split at today's VAT
func (s *FuelService) FuelTypePrices(ctx context.Context) ([]FuelTypePrice, error) {
	fuelTypes, err := s.FuelTypes(ctx)
	if err != nil {
		return nil, err
	}
	vat, err := s.vat.CurrentVatPercentage(ctx)
	if err != nil {
		return nil, err
	}

	prices := make([]FuelTypePrice, 0, len(fuelTypes))
	for _, ft := range fuelTypes {
		display, err := pricing.ComputeFuelTypeDisplay(ft.Price, vat)
		if err != nil {
			return nil, apperror.Wrap(http.StatusUnprocessableEntity, "Stored fuel price cannot be split", err)
		}
		prices = append(prices, FuelTypePrice{
			FuelType:      ft,
			VatPercentage: vat,
			NetPrice:      display.NetPrice,
			VatAmount:     display.VatAmount,
		})
	}
	return prices, nil
}

// UpdateFuelPriceInput represents the input for changing a fuel price
type UpdateFuelPriceInput struct {
	FuelTypeID uuid.UUID
	Price      decimal.Decimal
}

// UpdateFuelPrice stores a new gross price and records it in the history
// together with today's VAT
func (s *FuelService) UpdateFuelPrice(ctx context.Context, input *UpdateFuelPriceInput) (*entity.FuelType, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "price", Message: "Price must not be negative"},
		})
	}

	fuelType, err := s.fuelTypeRepo.GetByID(ctx, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	if fuelType == nil {
		return nil, apperror.NewNotFoundError("Fuel type")
	}

	vat, err := s.vat.CurrentVatPercentage(ctx)
	if err != nil {
		return nil, err
	}

	fuelType.Price = input.Price
	history := &entity.FuelPriceHistory{
		FuelTypeID:    fuelType.ID,
		FuelPrice:     input.Price,
		VatPercentage: vat,
		FromDate:      s.clock.today(),
		ToDate:        entity.OpenEndDate,
	}
	if err := s.fuelTypeRepo.UpdatePrice(ctx, fuelType, history); err != nil {
		return nil, err
	}

	s.refCache.InvalidatePrefix(cache.PrefixFuelLookup)
	return fuelType, nil
}

// PriceHistory lists past prices of a fuel type, newest first
func (s *FuelService) PriceHistory(ctx context.Context, fuelTypeID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.FuelPriceHistory], error) {
	rows, total, err := s.fuelTypeRepo.ListPriceHistory(ctx, fuelTypeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(rows, pag), nil
}
