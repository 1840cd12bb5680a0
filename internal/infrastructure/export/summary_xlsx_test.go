package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
)

func TestWriteSummary(t *testing.T) {
	invoices := []entity.TaxInvoice{
		{
			TaxInvoiceNo:  "26JAN_ACM_00001",
			InvoiceDate:   time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
			CompanyName:   "Acme Transport",
			VehicleNo:     entity.AllVehiclesLabel,
			PaymentMethod: &entity.PaymentMethod{Name: "Cash"},
			Subtotal:      decimal.NewFromInt(2960),
			VatPercentage: decimal.NewFromInt(15),
			VatAmount:     decimal.NewFromInt(440),
			TotalAmount:   decimal.NewFromInt(3400),
		},
	}
	totals := repository.TaxInvoiceTotals{
		SumNet:   decimal.NewFromInt(2960),
		SumVat:   decimal.NewFromInt(440),
		SumTotal: decimal.NewFromInt(3400),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, invoices, totals))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, []string{"26JAN_ACM_00001", "2026-01-31", "Acme Transport", "All Vehicles", "Cash", "2960", "15", "440", "3400"}, rows[1])
	assert.Equal(t, "Total", rows[2][0])
	assert.Equal(t, "3400", rows[2][8])
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, nil, repository.TaxInvoiceTotals{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[1][5])
}
