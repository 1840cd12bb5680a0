package pricing

import "github.com/shopspring/decimal"

// InvoiceLine carries the stored figures of one daily sale that a tax
// invoice aggregates.
type InvoiceLine struct {
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	VatPercentage decimal.Decimal
}

// InvoiceTotals are the printed totals of a tax invoice.
type InvoiceTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	VatPercentage decimal.Decimal `json:"vat_percentage"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// AggregateTaxInvoice totals lines given in chronological order. The
// VAT amount is the difference of the rounded sums, and the VAT
// percentage is that of the last line rather than the current rate.
func AggregateTaxInvoice(lines []InvoiceLine) InvoiceTotals {
	if len(lines) == 0 {
		return InvoiceTotals{
			Subtotal:      decimal.Zero,
			VatPercentage: decimal.Zero,
			VatAmount:     decimal.Zero,
			GrandTotal:    decimal.Zero,
		}
	}

	sumTotal := decimal.Zero
	sumSubtotal := decimal.Zero
	for _, l := range lines {
		sumTotal = sumTotal.Add(l.Total)
		sumSubtotal = sumSubtotal.Add(l.Subtotal)
	}

	grand := sumTotal.Round(0)
	subtotal := sumSubtotal.Round(0)

	return InvoiceTotals{
		Subtotal:      subtotal,
		VatPercentage: lines[len(lines)-1].VatPercentage,
		VatAmount:     grand.Sub(subtotal),
		GrandTotal:    grand,
	}
}
