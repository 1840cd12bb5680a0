package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyInvoiceRequest represents a fuelling entered at the pump
type DailyInvoiceRequest struct {
	SerialNo   string          `json:"serial_no" binding:"required,max=15"`
	DateAdded  string          `json:"date_added" binding:"required"`
	VehicleID  uuid.UUID       `json:"vehicle_id" binding:"required"`
	FuelTypeID uuid.UUID       `json:"fuel_type_id" binding:"required"`
	Volume     decimal.Decimal `json:"volume"`
}

// PreviewRequest prices a volume of a fuel type without storing it
type PreviewRequest struct {
	FuelTypeID uuid.UUID       `json:"fuel_type_id" binding:"required"`
	Volume     decimal.Decimal `json:"volume"`
}

// TaxInvoiceRecordsQuery selects the daily invoices a tax invoice would bill
type TaxInvoiceRecordsQuery struct {
	CompanyID string `form:"company_id" binding:"required"`
	VehicleID string `form:"vehicle_id"` // a vehicle UUID, "all" or empty
	FromDate  string `form:"from_date" binding:"required"`
	ToDate    string `form:"to_date" binding:"required"`
	Page      int    `form:"page"`
}

// GenerateTaxInvoiceRequest issues a tax invoice
type GenerateTaxInvoiceRequest struct {
	CompanyID        uuid.UUID `json:"company_id" binding:"required"`
	VehicleID        string    `json:"vehicle_id" binding:"required"` // a vehicle UUID or "all"
	FromDate         string    `json:"from_date" binding:"required"`
	ToDate           string    `json:"to_date" binding:"required"`
	TaxInvoiceNumber string    `json:"tax_invoice_number" binding:"required,max=45"`
	InvoiceDate      string    `json:"invoice_date" binding:"required"`
	PaymentMethodID  uuid.UUID `json:"payment_method_id" binding:"required"`
}

// TaxInvoiceListQuery filters the tax invoice history
type TaxInvoiceListQuery struct {
	CompanyID string `form:"company_id"`
	Search    string `form:"search"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// SummaryQuery selects tax invoices for the summary and its export
type SummaryQuery struct {
	FromDate        string `form:"from_date" binding:"required"`
	ToDate          string `form:"to_date" binding:"required"`
	CompanyID       string `form:"company_id"`
	PaymentMethodID string `form:"payment_method_id"`
	Page            int    `form:"page"`
}
