package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/pricing"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

const (
	// RecentIncomeEntries is how many months the cash sale screen lists
	RecentIncomeEntries = 5
	minIncomeYear       = 2000
	maxIncomeYear       = 2100
)

// CashSaleService records monthly cash takings and splits out their VAT
type CashSaleService struct {
	incomeRepo repository.MonthlyIncomeRepository
	vat        repository.VatPercentageLookup
}

// NewCashSaleService creates a new cash sale service
func NewCashSaleService(incomeRepo repository.MonthlyIncomeRepository, vat repository.VatPercentageLookup) *CashSaleService {
	return &CashSaleService{
		incomeRepo: incomeRepo,
		vat:        vat,
	}
}

// MonthlyIncomeInput is the gross income for one month
type MonthlyIncomeInput struct {
	Year   int
	Month  int
	Income decimal.Decimal
}

// Statement is the VAT breakdown of one month's cash sales
type Statement struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	pricing.CashSale
}

// SaveIncome inserts or overwrites a month's income
func (s *CashSaleService) SaveIncome(ctx context.Context, input *MonthlyIncomeInput) (*entity.MonthlyIncome, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}
	if input.Income.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "income", Message: "Income must not be negative"},
		})
	}

	income := &entity.MonthlyIncome{
		Year:   input.Year,
		Month:  input.Month,
		Income: input.Income,
	}
	if err := s.incomeRepo.Upsert(ctx, income); err != nil {
		return nil, err
	}
	return s.GetIncome(ctx, input.Year, input.Month)
}

// GetIncome returns the income stored for a month
func (s *CashSaleService) GetIncome(ctx context.Context, year, month int) (*entity.MonthlyIncome, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if income == nil {
		return nil, apperror.NewNotFoundError("Monthly income")
	}
	return income, nil
}

// RecentIncome lists the latest months, newest first
func (s *CashSaleService) RecentIncome(ctx context.Context) ([]entity.MonthlyIncome, error) {
	return s.incomeRepo.ListRecent(ctx, RecentIncomeEntries)
}

// Statement splits a month's income into net and VAT at the current rate
func (s *CashSaleService) Statement(ctx context.Context, year, month int) (*Statement, error) {
	income, err := s.GetIncome(ctx, year, month)
	if err != nil {
		return nil, err
	}
	vat, err := s.vat.CurrentVatPercentage(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := pricing.ComputeCashSale(income.Income, vat)
	if err != nil {
		return nil, pricingError(err)
	}
	return &Statement{
		Year:      year,
		Month:     month,
		MonthName: time.Month(month).String(),
		CashSale:  sale,
	}, nil
}

func validatePeriod(year, month int) error {
	var fieldErrors []apperror.FieldError
	if year < minIncomeYear || year > maxIncomeYear {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "Year must be between 2000 and 2100"})
	}
	if month < 1 || month > 12 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "Month must be between 1 and 12"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
