package request

import "github.com/shopspring/decimal"

// UpdateFuelPriceRequest sets a fuel type's VAT-inclusive price
type UpdateFuelPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// UpdateVatRequest opens a new VAT rate from today
type UpdateVatRequest struct {
	VatPercentage decimal.Decimal `json:"vat_percentage"`
}
