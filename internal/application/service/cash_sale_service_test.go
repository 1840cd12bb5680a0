package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

func TestCashSaleService_SaveIncomeValidation(t *testing.T) {
	tests := []struct {
		name  string
		input MonthlyIncomeInput
		field string
	}{
		{"year too early", MonthlyIncomeInput{Year: 1999, Month: 1, Income: dec("10")}, "year"},
		{"year too late", MonthlyIncomeInput{Year: 2101, Month: 1, Income: dec("10")}, "year"},
		{"month zero", MonthlyIncomeInput{Year: 2026, Month: 0, Income: dec("10")}, "month"},
		{"month thirteen", MonthlyIncomeInput{Year: 2026, Month: 13, Income: dec("10")}, "month"},
		{"negative income", MonthlyIncomeInput{Year: 2026, Month: 3, Income: dec("-1")}, "income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockIncomeRepo)
			svc := NewCashSaleService(repo, staticVat{pct: dec("18")})

			_, err := svc.SaveIncome(context.Background(), &tt.input)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestCashSaleService_SaveIncome(t *testing.T) {
	repo := new(mockIncomeRepo)
	svc := NewCashSaleService(repo, staticVat{pct: dec("18")})

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(m *entity.MonthlyIncome) bool {
		return m.Year == 2026 && m.Month == 3 && m.Income.Equal(dec("118000"))
	})).Return(nil)
	repo.On("GetByPeriod", mock.Anything, 2026, 3).Return(&entity.MonthlyIncome{Year: 2026, Month: 3, Income: dec("118000")}, nil)

	income, err := svc.SaveIncome(context.Background(), &MonthlyIncomeInput{Year: 2026, Month: 3, Income: dec("118000")})
	require.NoError(t, err)
	assert.True(t, income.Income.Equal(dec("118000")))
}

func TestCashSaleService_Statement(t *testing.T) {
	repo := new(mockIncomeRepo)
	svc := NewCashSaleService(repo, staticVat{pct: dec("18")})
	repo.On("GetByPeriod", mock.Anything, 2026, 3).Return(&entity.MonthlyIncome{Year: 2026, Month: 3, Income: dec("118000")}, nil)

	statement, err := svc.Statement(context.Background(), 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, "March", statement.MonthName)
	assert.True(t, statement.VatAmount.Equal(dec("18000")))
	assert.True(t, statement.NetAmount.Equal(dec("100000")))
}

func TestCashSaleService_StatementWithoutVatRate(t *testing.T) {
	repo := new(mockIncomeRepo)
	svc := NewCashSaleService(repo, staticVat{pct: dec("0")})
	repo.On("GetByPeriod", mock.Anything, 2026, 3).Return(&entity.MonthlyIncome{Year: 2026, Month: 3, Income: dec("118000")}, nil)

	statement, err := svc.Statement(context.Background(), 2026, 3)
	require.NoError(t, err)
	assert.True(t, statement.VatPercentage.IsZero())
	assert.True(t, statement.VatAmount.IsZero())
	assert.True(t, statement.NetAmount.Equal(dec("118000")))
}

func TestCashSaleService_StatementMissingMonth(t *testing.T) {
	repo := new(mockIncomeRepo)
	svc := NewCashSaleService(repo, staticVat{pct: dec("18")})
	repo.On("GetByPeriod", mock.Anything, 2026, 4).Return(nil, nil)

	_, err := svc.Statement(context.Background(), 2026, 4)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCashSaleService_RecentIncome(t *testing.T) {
	repo := new(mockIncomeRepo)
	svc := NewCashSaleService(repo, staticVat{})
	repo.On("ListRecent", mock.Anything, RecentIncomeEntries).Return([]entity.MonthlyIncome{{Year: 2026, Month: 3}}, nil)

	rows, err := svc.RecentIncome(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
