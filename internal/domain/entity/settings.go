package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BusinessProfile is the seller block printed on every tax invoice. There
// is at most one row.
type BusinessProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName    string    `gorm:"size:255" json:"company_name"`
	CompanyAddress string    `gorm:"type:text" json:"company_address"`
	CompanyContact string    `gorm:"size:45" json:"company_contact"`
	CompanyVatNo   string    `gorm:"size:45" json:"company_vat_no"`
	PlaceOfSupply  string    `gorm:"size:255" json:"place_of_supply"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the profile
func (b *BusinessProfile) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessProfile model
func (BusinessProfile) TableName() string {
	return "settings"
}

// MonthlyIncome is the gross cash-sale takings for one calendar month
type MonthlyIncome struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Year      int             `gorm:"not null;uniqueIndex:idx_monthly_income_period" json:"year"`
	Month     int             `gorm:"not null;uniqueIndex:idx_monthly_income_period" json:"month"`
	Income    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"income"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new monthly income
func (m *MonthlyIncome) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MonthlyIncome model
func (MonthlyIncome) TableName() string {
	return "monthly_income"
}
