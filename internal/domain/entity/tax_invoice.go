package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllVehiclesLabel is stored as the vehicle number of invoices that cover
// every vehicle of a company
const AllVehiclesLabel = "All Vehicles"

// TaxInvoice is an issued invoice covering a date range of daily invoices.
// The company name is denormalised: sequences are scoped by it.
type TaxInvoice struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TaxInvoiceNo    string          `gorm:"size:45;uniqueIndex;not null" json:"tax_invoice_no"`
	InvoiceDate     time.Time       `gorm:"not null;index" json:"invoice_date"`
	CompanyName     string          `gorm:"size:255;not null;index" json:"company_name"`
	VehicleNo       string          `gorm:"size:255" json:"vehicle_no"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	FromDate        time.Time       `gorm:"type:date" json:"from_date"`
	ToDate          time.Time       `gorm:"type:date" json:"to_date"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"subtotal"`
	VatPercentage   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"vat_percentage"`
	VatAmount       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"vat_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	PaymentMethod *PaymentMethod   `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Lines         []TaxInvoiceLine `gorm:"foreignKey:TaxInvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax invoice
func (t *TaxInvoice) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxInvoice model
func (TaxInvoice) TableName() string {
	return "tax_invoice"
}

// TaxInvoiceLine links a tax invoice to one of the daily invoices it bills
type TaxInvoiceLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TaxInvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"tax_invoice_id"`
	InvoiceDailyID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_daily_id"`

	DailyInvoice *DailyInvoice `gorm:"foreignKey:InvoiceDailyID" json:"daily_invoice,omitempty"`
}

// BeforeCreate generates a UUID before creating a new link row
func (l *TaxInvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxInvoiceLine model
func (TaxInvoiceLine) TableName() string {
	return "tax_invoice_invoice_nos"
}

// PaymentMethod is how a tax invoice was settled
type PaymentMethod struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:45;uniqueIndex;not null" json:"name"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_method"
}
