// Package export renders invoice summaries as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
)

// SummarySheet is the name of the worksheet holding the summary
const SummarySheet = "Summary"

// XLSXContentType is the media type of the produced workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var summaryHeader = []interface{}{
	"Invoice No", "Invoice Date", "Company", "Vehicle", "Payment Method",
	"Net Amount", "VAT %", "VAT Amount", "Total",
}

// WriteSummary writes one row per tax invoice followed by a totals row
func WriteSummary(w io.Writer, invoices []entity.TaxInvoice, totals repository.TaxInvoiceTotals) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "I1", bold); err != nil {
		return err
	}

	row := 2
	for _, inv := range invoices {
		values := []interface{}{
			inv.TaxInvoiceNo,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.CompanyName,
			inv.VehicleNo,
			paymentMethodName(inv),
			number(inv.Subtotal),
			number(inv.VatPercentage),
			number(inv.VatAmount),
			number(inv.TotalAmount),
		}
		if err := f.SetSheetRow(SummarySheet, cell("A", row), &values); err != nil {
			return err
		}
		row++
	}

	footer := []interface{}{"Total", "", "", "", "", number(totals.SumNet), "", number(totals.SumVat), number(totals.SumTotal)}
	if err := f.SetSheetRow(SummarySheet, cell("A", row), &footer); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, cell("A", row), cell("I", row), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "F2", cell("I", row), money); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "E", 20); err != nil {
		return err
	}

	return f.Write(w)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func paymentMethodName(inv entity.TaxInvoice) string {
	if inv.PaymentMethod == nil {
		return ""
	}
	return inv.PaymentMethod.Name
}
