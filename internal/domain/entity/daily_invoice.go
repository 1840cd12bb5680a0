package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyInvoice is a single fuelling of one vehicle. The price columns are
// computed server-side when the row is written and never recomputed.
type DailyInvoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SerialNo      string          `gorm:"size:15" json:"serial_no"`
	DateAdded     time.Time       `gorm:"type:date;not null;index" json:"date_added"`
	VehicleID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	FuelTypeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_type_id"`
	Volume        decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"volume"`
	FuelNetPrice  decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"fuel_net_price"`
	SubTotal      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"sub_total"`
	VatPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"vat_percentage"`
	VatAmount     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"vat_amount"`
	Total         decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Vehicle  *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	FuelType *FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new daily invoice
func (d *DailyInvoice) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyInvoice model
func (DailyInvoice) TableName() string {
	return "invoice_daily"
}

// VehicleNo returns the loaded vehicle's number, or "" when not preloaded
func (d *DailyInvoice) VehicleNo() string {
	if d.Vehicle == nil {
		return ""
	}
	return d.Vehicle.VehicleNo
}
