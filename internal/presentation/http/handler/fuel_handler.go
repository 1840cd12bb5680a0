package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// FuelHandler handles fuel catalogue and VAT HTTP requests
type FuelHandler struct {
	fuelService *service.FuelService
	vatService  *service.VatService
}

// NewFuelHandler creates a new fuel handler
func NewFuelHandler(fuelService *service.FuelService, vatService *service.VatService) *FuelHandler {
	return &FuelHandler{fuelService: fuelService, vatService: vatService}
}

// Categories lists fuel categories
func (h *FuelHandler) Categories(c *gin.Context) {
	categories, err := h.fuelService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel categories retrieved successfully", categories)
}

// FuelTypes lists every fuel type with its price split at today's VAT
// @Summary List Fuel Prices
// @Tags fuel
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /fuel-types [get]
func (h *FuelHandler) FuelTypes(c *gin.Context) {
	prices, err := h.fuelService.FuelTypePrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel types retrieved successfully", prices)
}

// FuelTypesByCategory lists the fuel types a vehicle category can take
func (h *FuelHandler) FuelTypesByCategory(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	fuelTypes, err := h.fuelService.FuelTypesByCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel types retrieved successfully", fuelTypes)
}

// UpdatePrice handles changing a fuel type's gross price
// @Summary Update Fuel Price
// @Tags fuel
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Fuel type ID"
// @Param request body request.UpdateFuelPriceRequest true "New price"
// @Success 200 {object} response.APIResponse
// @Router /fuel-types/{id}/price [put]
func (h *FuelHandler) UpdatePrice(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateFuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	fuelType, err := h.fuelService.UpdateFuelPrice(c.Request.Context(), &service.UpdateFuelPriceInput{
		FuelTypeID: id,
		Price:      req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fuel price updated successfully", fuelType)
}

// PriceHistory pages through a fuel type's price changes
func (h *FuelHandler) PriceHistory(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.fuelService.PriceHistory(c.Request.Context(), id, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Price history retrieved successfully", result)
}

// CurrentVat returns the VAT rate in force today
func (h *FuelHandler) CurrentVat(c *gin.Context) {
	rate, err := h.vatService.CurrentRate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if rate == nil {
		response.NotFound(c, "No VAT rate is in force today")
		return
	}

	response.OK(c, "VAT rate retrieved successfully", rate)
}

// UpdateVat opens a new VAT rate from today
// @Summary Update VAT
// @Tags vat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.UpdateVatRequest true "VAT percentage"
// @Success 200 {object} response.APIResponse
// @Router /vat [put]
func (h *FuelHandler) UpdateVat(c *gin.Context) {
	var req request.UpdateVatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rate, err := h.vatService.UpdateVat(c.Request.Context(), req.VatPercentage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT rate updated successfully", rate)
}

// VatHistory pages through VAT rates, newest first
func (h *FuelHandler) VatHistory(c *gin.Context) {
	result, err := h.vatService.ListVatRates(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "VAT rates retrieved successfully", result)
}
