package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// DailyInvoiceHandler handles daily fuelling HTTP requests
type DailyInvoiceHandler struct {
	dailyService *service.DailyInvoiceService
	slipService  *service.SlipService
	loc          *time.Location
}

// NewDailyInvoiceHandler creates a new daily invoice handler
func NewDailyInvoiceHandler(dailyService *service.DailyInvoiceService, slipService *service.SlipService, loc *time.Location) *DailyInvoiceHandler {
	return &DailyInvoiceHandler{dailyService: dailyService, slipService: slipService, loc: loc}
}

// Preview prices a fuelling without storing it
// @Summary Preview Daily Invoice
// @Tags daily-invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PreviewRequest true "Fuel type and volume"
// @Success 200 {object} response.APIResponse
// @Router /daily-invoices/preview [post]
func (h *DailyInvoiceHandler) Preview(c *gin.Context) {
	var req request.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	line, err := h.dailyService.Preview(c.Request.Context(), &service.PreviewInput{
		FuelTypeID: req.FuelTypeID,
		Volume:     req.Volume,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice priced successfully", line)
}

// Create records a fuelling
// @Summary Create Daily Invoice
// @Tags daily-invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.DailyInvoiceRequest true "Fuelling"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /daily-invoices [post]
func (h *DailyInvoiceHandler) Create(c *gin.Context) {
	var req request.DailyInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input, err := h.input(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.dailyService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update re-prices and stores an edited fuelling
func (h *DailyInvoiceHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.DailyInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input, err := h.input(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.dailyService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Get handles retrieving a single daily invoice
func (h *DailyInvoiceHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.dailyService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Delete soft-deletes a daily invoice
func (h *DailyInvoiceHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.dailyService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// Recover restores a soft-deleted daily invoice
func (h *DailyInvoiceHandler) Recover(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.dailyService.Recover(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice recovered successfully", nil)
}

// Recent lists the last month of fuellings, newest first
func (h *DailyInvoiceHandler) Recent(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.dailyService.ListRecent(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Invoices retrieved successfully", result)
}

// Deleted lists soft-deleted fuellings
func (h *DailyInvoiceHandler) Deleted(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.dailyService.ListDeleted(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Deleted invoices retrieved successfully", result)
}

// Print sends the pump slip of a daily invoice to the thermal printer
// @Summary Print Pump Slip
// @Tags daily-invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Daily invoice ID"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /daily-invoices/{id}/print [post]
func (h *DailyInvoiceHandler) Print(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	slip, err := h.slipService.Print(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Slip printed successfully", slip)
}

// PrinterStatus reports whether the slip printer is reachable
func (h *DailyInvoiceHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", gin.H{
		"available": h.slipService.PrinterAvailable(c.Request.Context()),
	})
}

func (h *DailyInvoiceHandler) input(req *request.DailyInvoiceRequest) (*service.DailyInvoiceInput, error) {
	p := newFieldParser(h.loc)
	dateAdded := p.date("date_added", req.DateAdded)
	if err := p.err(); err != nil {
		return nil, err
	}

	return &service.DailyInvoiceInput{
		SerialNo:   req.SerialNo,
		DateAdded:  dateAdded,
		VehicleID:  req.VehicleID,
		FuelTypeID: req.FuelTypeID,
		Volume:     req.Volume,
	}, nil
}
