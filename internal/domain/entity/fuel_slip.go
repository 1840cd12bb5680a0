package entity

import "github.com/shopspring/decimal"

// FuelSlip is the pump slip printed for a daily invoice. It is composed at
// print time and never stored.
type FuelSlip struct {
	StationName   string          `json:"station_name"`
	Address       string          `json:"address,omitempty"`
	Contact       string          `json:"contact,omitempty"`
	VatNo         string          `json:"vat_no,omitempty"`
	SerialNo      string          `json:"serial_no"`
	Date          string          `json:"date"`
	VehicleNo     string          `json:"vehicle_no"`
	Company       string          `json:"company,omitempty"`
	FuelType      string          `json:"fuel_type"`
	Volume        decimal.Decimal `json:"volume"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	VatPercentage decimal.Decimal `json:"vat_percentage"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
	Total         decimal.Decimal `json:"total"`
}
