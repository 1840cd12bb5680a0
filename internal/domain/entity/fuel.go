package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FuelCategory groups fuel types a vehicle can take (Petrol, Diesel, ...)
type FuelCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:45;uniqueIndex;not null" json:"name"`

	FuelTypes []FuelType `gorm:"foreignKey:FuelCategoryID" json:"fuel_types,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fuel category
func (fc *FuelCategory) BeforeCreate(tx *gorm.DB) error {
	if fc.ID == uuid.Nil {
		fc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelCategory model
func (FuelCategory) TableName() string {
	return "fuel_categories"
}

// FuelType is a sellable grade with its current VAT-inclusive price
type FuelType struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FuelCategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_category_id"`
	Name           string          `gorm:"size:45;not null" json:"name"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	UpdatedAt      time.Time       `json:"updated_at"`

	FuelCategory *FuelCategory `gorm:"foreignKey:FuelCategoryID" json:"fuel_category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fuel type
func (ft *FuelType) BeforeCreate(tx *gorm.DB) error {
	if ft.ID == uuid.Nil {
		ft.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelType model
func (FuelType) TableName() string {
	return "fuel_types"
}

// FuelPriceHistory records each price change with the VAT rate in force
type FuelPriceHistory struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FuelTypeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"fuel_type_id"`
	FuelPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"fuel_price"`
	VatPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_percentage"`
	FromDate      time.Time       `gorm:"type:date;not null" json:"from_date"`
	ToDate        time.Time       `gorm:"type:date;not null" json:"to_date"`
}

// BeforeCreate generates a UUID before creating a new history row
func (h *FuelPriceHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FuelPriceHistory model
func (FuelPriceHistory) TableName() string {
	return "fuel_price_history"
}
