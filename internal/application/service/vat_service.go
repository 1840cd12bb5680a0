package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

var hundred = decimal.NewFromInt(100)

// VatService manages the effective-dated VAT rate
type VatService struct {
	vatRepo  repository.VatRateRepository
	refCache cache.ReferenceCache
	ttl      time.Duration
	clock    Clock
}

// NewVatService creates a new VAT service
func NewVatService(vatRepo repository.VatRateRepository, refCache cache.ReferenceCache, ttl time.Duration, clock Clock) *VatService {
	return &VatService{
		vatRepo:  vatRepo,
		refCache: refCache,
		ttl:      ttl,
		clock:    clock,
	}
}

// CurrentVatPercentage returns the percentage in force today, zero when
// no rate covers today
func (s *VatService) CurrentVatPercentage(ctx context.Context) (decimal.Decimal, error) {
	return cache.Remember(ctx, s.refCache, cache.KeyCurrentVat, s.ttl, func(ctx context.Context) (decimal.Decimal, error) {
		rate, err := s.vatRepo.EffectiveOn(ctx, s.clock.today())
		if err != nil {
			return decimal.Zero, err
		}
		if rate == nil {
			return decimal.Zero, nil
		}
		return rate.VatPercentage, nil
	})
}

// CurrentRate returns the rate record in force today, or nil
func (s *VatService) CurrentRate(ctx context.Context) (*entity.VatRate, error) {
	return s.vatRepo.EffectiveOn(ctx, s.clock.today())
}

// UpdateVat closes the latest rate today and opens a new one from today
func (s *VatService) UpdateVat(ctx context.Context, percentage decimal.Decimal) (*entity.VatRate, error) {
	if err := validateVatPercentage(percentage); err != nil {
		return nil, err
	}

	today := s.clock.today()
	rate := &entity.VatRate{
		VatPercentage: percentage,
		FromDate:      today,
		ToDate:        entity.OpenEndDate,
	}
	if err := s.vatRepo.Replace(ctx, rate, today); err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.KeyCurrentVat)
	s.refCache.InvalidatePrefix(cache.PrefixFuelLookup)
	return rate, nil
}

// ListVatRates returns the rate history, newest first
func (s *VatService) ListVatRates(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.VatRate], error) {
	rates, total, err := s.vatRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(rates, pag), nil
}

func validateVatPercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "vat_percentage", Message: "VAT percentage must be between 0 and 100"},
		})
	}
	return nil
}
