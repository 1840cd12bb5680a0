package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OpenEndDate is the to_date given to rates and prices with no planned end
var OpenEndDate = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

// VatRate is a VAT percentage effective over [FromDate, ToDate]
type VatRate struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	VatPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_percentage"`
	FromDate      time.Time       `gorm:"type:date;not null;index" json:"from_date"`
	ToDate        time.Time       `gorm:"type:date;not null;index" json:"to_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new VAT rate
func (v *VatRate) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VatRate model
func (VatRate) TableName() string {
	return "vat_rates"
}

// Covers reports whether day falls inside the rate's date range
func (v *VatRate) Covers(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(v.FromDate)) && !d.After(truncateDay(v.ToDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
