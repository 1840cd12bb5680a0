package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
)

// CacheWarmer preloads every reference cache key
type CacheWarmer struct {
	refCache  cache.ReferenceCache
	vats      *VatService
	companies *CompanyService
	fuel      *FuelService
	log       zerolog.Logger
}

// NewCacheWarmer creates a new cache warmer
func NewCacheWarmer(refCache cache.ReferenceCache, vats *VatService, companies *CompanyService, fuel *FuelService, log zerolog.Logger) *CacheWarmer {
	return &CacheWarmer{
		refCache:  refCache,
		vats:      vats,
		companies: companies,
		fuel:      fuel,
		log:       log,
	}
}

// WarmResult counts what was loaded
type WarmResult struct {
	Companies  int
	Vehicles   int
	Categories int
	FuelTypes  int
}

// Warm loads current VAT, companies, their vehicles and fuel types by category
func (w *CacheWarmer) Warm(ctx context.Context) (*WarmResult, error) {
	var result WarmResult

	vat, err := w.vats.CurrentVatPercentage(ctx)
	if err != nil {
		return nil, fmt.Errorf("warm vat: %w", err)
	}

	companies, err := w.companies.AllCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("warm companies: %w", err)
	}
	result.Companies = len(companies)
	for _, company := range companies {
		vehicles, err := w.companies.CompanyVehicles(ctx, company.ID)
		if err != nil {
			return nil, fmt.Errorf("warm vehicles of %s: %w", company.Name, err)
		}
		result.Vehicles += len(vehicles)
	}

	if _, err := w.fuel.FuelTypes(ctx); err != nil {
		return nil, fmt.Errorf("warm fuel types: %w", err)
	}
	categories, err := w.fuel.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("warm fuel categories: %w", err)
	}
	result.Categories = len(categories)
	for _, category := range categories {
		types, err := w.fuel.FuelTypesByCategory(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("warm fuel types of %s: %w", category.Name, err)
		}
		result.FuelTypes += len(types)
	}

	w.log.Info().
		Str("vat", vat.String()).
		Int("companies", result.Companies).
		Int("vehicles", result.Vehicles).
		Int("fuel_types", result.FuelTypes).
		Msg("reference cache warmed")
	return &result, nil
}

// Flush drops every cached entry
func (w *CacheWarmer) Flush() {
	w.refCache.Flush()
	w.log.Info().Msg("reference cache flushed")
}
