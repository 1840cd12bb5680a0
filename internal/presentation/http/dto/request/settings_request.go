package request

import "github.com/shopspring/decimal"

// BusinessProfileRequest represents the seller block printed on invoices
type BusinessProfileRequest struct {
	CompanyName    string `json:"company_name" binding:"required,max=255"`
	CompanyAddress string `json:"company_address"`
	CompanyContact string `json:"company_contact" binding:"max=45"`
	CompanyVatNo   string `json:"company_vat_no" binding:"max=45"`
	PlaceOfSupply  string `json:"place_of_supply" binding:"max=255"`
}

// MonthlyIncomeRequest records a month's cash takings
type MonthlyIncomeRequest struct {
	Year   int             `json:"year" binding:"required"`
	Month  int             `json:"month" binding:"required"`
	Income decimal.Decimal `json:"income"`
}
