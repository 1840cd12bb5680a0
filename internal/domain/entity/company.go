package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a fleet customer billed through tax invoices
type Company struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	NickName      string         `gorm:"size:50;uniqueIndex" json:"nick_name"`
	Address       string         `gorm:"size:500" json:"address"`
	VatNo         string         `gorm:"size:50;uniqueIndex" json:"vat_no"`
	ContactNumber string         `gorm:"size:20" json:"contact_number"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vehicles []Vehicle `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// Vehicle belongs to a company and burns fuel of a single category
type Vehicle struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	VehicleNo      string         `gorm:"size:15;not null" json:"vehicle_no"`
	Type           string         `gorm:"size:50" json:"type"`
	FuelCategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"fuel_category_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company      *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	FuelCategory *FuelCategory `gorm:"foreignKey:FuelCategoryID" json:"fuel_category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
