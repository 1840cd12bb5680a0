// Package pricing derives VAT-exclusive figures from VAT-inclusive fuel
// prices.
//
// The line-item, cash-sale and fuel-type display computations round at
// different stages and derive net amounts differently. Printed invoices
// depend on those exact figures, so the three paths are kept separate
// and must not be folded into a shared helper.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for negative amounts, VAT percentages
// outside [0, 100] and non-finite numbers.
var ErrInvalidInput = errors.New("invalid pricing input")

// VolumePlaces is the precision volumes are recorded at (liters).
const VolumePlaces = 3

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// LineItem is a daily fuel sale priced from a gross unit price.
type LineItem struct {
	Volume         decimal.Decimal `json:"volume"`
	GrossUnitPrice decimal.Decimal `json:"gross_unit_price"`
	VatPercentage  decimal.Decimal `json:"vat_percentage"`
	NetUnitPrice   decimal.Decimal `json:"net_unit_price"`
	VatPerUnit     decimal.Decimal `json:"vat_per_unit"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	VatAmount      decimal.Decimal `json:"vat_amount"`
	Total          decimal.Decimal `json:"total"`
}

// CashSale is the VAT breakdown of a monthly lump-sum income.
type CashSale struct {
	GrossTotal    decimal.Decimal `json:"gross_total"`
	VatPercentage decimal.Decimal `json:"vat_percentage"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

// FuelTypeDisplay is the reference breakdown shown next to a fuel price.
type FuelTypeDisplay struct {
	GrossPrice    decimal.Decimal `json:"gross_price"`
	VatPercentage decimal.Decimal `json:"vat_percentage"`
	NetPrice      decimal.Decimal `json:"net_price"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
}

// ComputeLineItem prices volume liters at a gross unit price.
//
// Net unit price and VAT per unit are rounded independently, and total
// is taken from the gross price, so net+vat and subtotal+vatAmount may
// be off by one from the gross figures.
func ComputeLineItem(grossUnitPrice, vatPercentage, volume decimal.Decimal) (LineItem, error) {
	if err := checkAmount("gross unit price", grossUnitPrice); err != nil {
		return LineItem{}, err
	}
	if err := checkVat(vatPercentage); err != nil {
		return LineItem{}, err
	}
	if err := checkAmount("volume", volume); err != nil {
		return LineItem{}, err
	}
	if !volume.Equal(volume.Truncate(VolumePlaces)) {
		return LineItem{}, fmt.Errorf("%w: volume has more than %d decimal places", ErrInvalidInput, VolumePlaces)
	}

	divisor := hundred.Add(vatPercentage)
	netUnit := grossUnitPrice.Mul(hundred).Div(divisor).Round(0)
	vatUnit := grossUnitPrice.Mul(vatPercentage).Div(divisor).Round(0)

	return LineItem{
		Volume:         volume,
		GrossUnitPrice: grossUnitPrice,
		VatPercentage:  vatPercentage,
		NetUnitPrice:   netUnit,
		VatPerUnit:     vatUnit,
		Subtotal:       netUnit.Mul(volume).Round(0),
		VatAmount:      vatUnit.Mul(volume).Round(0),
		Total:          grossUnitPrice.Mul(volume).Round(0),
	}, nil
}

// ComputeCashSale backs VAT out of a gross monthly income. The net
// figure is the remainder after the rounded VAT.
func ComputeCashSale(grossTotal, vatPercentage decimal.Decimal) (CashSale, error) {
	if err := checkAmount("gross total", grossTotal); err != nil {
		return CashSale{}, err
	}
	if err := checkVat(vatPercentage); err != nil {
		return CashSale{}, err
	}

	vat := grossTotal.Mul(vatPercentage).Div(hundred.Add(vatPercentage)).Round(0)

	return CashSale{
		GrossTotal:    grossTotal,
		VatPercentage: vatPercentage,
		VatAmount:     vat,
		NetAmount:     grossTotal.Sub(vat),
	}, nil
}

// ComputeFuelTypeDisplay splits a fuel type's gross price for the
// settings screen. The VAT figure is the remainder after the rounded net.
func ComputeFuelTypeDisplay(grossPrice, vatPercentage decimal.Decimal) (FuelTypeDisplay, error) {
	if err := checkAmount("gross price", grossPrice); err != nil {
		return FuelTypeDisplay{}, err
	}
	if err := checkVat(vatPercentage); err != nil {
		return FuelTypeDisplay{}, err
	}

	factor := one.Add(vatPercentage.Div(hundred))
	net := grossPrice.Div(factor).Round(0)

	return FuelTypeDisplay{
		GrossPrice:    grossPrice,
		VatPercentage: vatPercentage,
		NetPrice:      net,
		VatAmount:     grossPrice.Sub(net),
	}, nil
}

// FromFloat converts a float to a decimal, rejecting NaN and infinities.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not a finite number", ErrInvalidInput, f)
	}
	return decimal.NewFromFloat(f), nil
}

func checkAmount(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
	}
	return nil
}

func checkVat(v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%w: vat percentage must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}
