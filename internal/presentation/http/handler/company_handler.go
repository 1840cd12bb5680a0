package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles company and vehicle HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List handles listing companies with pagination
// @Summary List Companies
// @Tags companies
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search by name, nickname or VAT number"
// @Success 200 {object} response.APIResponse
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyService.ListCompanies(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Companies retrieved successfully", result)
}

// All returns every company for selection lists
func (h *CompanyHandler) All(c *gin.Context) {
	companies, err := h.companyService.AllCompanies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Companies retrieved successfully", companies)
}

// Get handles retrieving a single company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// Create handles creating a company
// @Summary Create Company
// @Tags companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CompanyRequest true "Company data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), companyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// Update handles updating a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, companyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// Delete handles deleting a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company deleted successfully", nil)
}

// Vehicles returns the vehicles registered under a company
func (h *CompanyHandler) Vehicles(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	vehicles, err := h.companyService.CompanyVehicles(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicles retrieved successfully", vehicles)
}

// ListVehicles handles listing vehicles with pagination
// @Summary List Vehicles
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by vehicle number"
// @Success 200 {object} response.APIResponse
// @Router /vehicles [get]
func (h *CompanyHandler) ListVehicles(c *gin.Context) {
	result, err := h.companyService.ListVehicles(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Vehicles retrieved successfully", result)
}

// GetVehicle handles retrieving a single vehicle
func (h *CompanyHandler) GetVehicle(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	vehicle, err := h.companyService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

// CreateVehicle handles registering a vehicle
func (h *CompanyHandler) CreateVehicle(c *gin.Context) {
	var req request.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.companyService.CreateVehicle(c.Request.Context(), vehicleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle created successfully", vehicle)
}

// UpdateVehicle handles updating a vehicle
func (h *CompanyHandler) UpdateVehicle(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.companyService.UpdateVehicle(c.Request.Context(), id, vehicleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle handles deleting a vehicle
func (h *CompanyHandler) DeleteVehicle(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.companyService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle deleted successfully", nil)
}

func companyInput(req *request.CompanyRequest) *service.CompanyInput {
	return &service.CompanyInput{
		Name:          req.Name,
		NickName:      req.NickName,
		Address:       req.Address,
		VatNo:         req.VatNo,
		ContactNumber: req.ContactNumber,
	}
}

func vehicleInput(req *request.VehicleRequest) *service.VehicleInput {
	return &service.VehicleInput{
		CompanyID:      req.CompanyID,
		VehicleNo:      req.VehicleNo,
		Type:           req.Type,
		FuelCategoryID: req.FuelCategoryID,
	}
}
