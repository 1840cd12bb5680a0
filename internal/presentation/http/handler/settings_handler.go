package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles the business profile and payment methods
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetProfile returns the seller block printed on tax invoices
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	profile, err := h.settingsService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile retrieved successfully", profile)
}

// UpdateProfile replaces the business profile
// @Summary Update Business Profile
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.BusinessProfileRequest true "Business profile"
// @Success 200 {object} response.APIResponse
// @Router /settings/profile [put]
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req request.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.settingsService.UpdateProfile(c.Request.Context(), &service.ProfileInput{
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyContact: req.CompanyContact,
		CompanyVatNo:   req.CompanyVatNo,
		PlaceOfSupply:  req.PlaceOfSupply,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile updated successfully", profile)
}

// PaymentMethods lists the ways a tax invoice can be settled
func (h *SettingsHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.PaymentMethods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}
