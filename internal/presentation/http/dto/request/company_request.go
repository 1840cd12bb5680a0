package request

import "github.com/google/uuid"

// CompanyRequest represents the fields of a company
type CompanyRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	NickName      string `json:"nick_name" binding:"required,max=50"`
	Address       string `json:"address" binding:"required,max=500"`
	VatNo         string `json:"vat_no" binding:"required,max=50"`
	ContactNumber string `json:"contact_number" binding:"required,max=20"`
}

// VehicleRequest represents the fields of a vehicle
type VehicleRequest struct {
	CompanyID      uuid.UUID `json:"company_id" binding:"required"`
	VehicleNo      string    `json:"vehicle_no" binding:"required,max=15"`
	Type           string    `json:"type" binding:"max=50"`
	FuelCategoryID uuid.UUID `json:"fuel_category_id" binding:"required"`
}
