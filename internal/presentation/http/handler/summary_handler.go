package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/export"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// SummaryHandler handles the tax invoice summary and its export
type SummaryHandler struct {
	summaryService *service.SummaryService
	loc            *time.Location
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService *service.SummaryService, loc *time.Location) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, loc: loc}
}

// Search pages through tax invoices issued over a date range with totals
// @Summary Invoice Summary
// @Tags summary
// @Security BearerAuth
// @Produce json
// @Param from_date query string true "From date (YYYY-MM-DD)"
// @Param to_date query string true "To date (YYYY-MM-DD)"
// @Param company_id query string false "Company ID"
// @Param payment_method_id query string false "Payment method ID"
// @Success 200 {object} response.APIResponse
// @Router /summary [get]
func (h *SummaryHandler) Search(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	result, err := h.summaryService.Search(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", result)
}

// Export streams the matching tax invoices as an XLSX workbook
// @Summary Export Invoice Summary
// @Tags summary
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /summary/export [get]
func (h *SummaryHandler) Export(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.summaryService.Export(c.Request.Context(), input, &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoice_summary_%s_%s.xlsx",
		input.FromDate.Format("20060102"), input.ToDate.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

func (h *SummaryHandler) input(c *gin.Context) (*service.SummaryInput, bool) {
	var query request.SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return nil, false
	}

	p := newFieldParser(h.loc)
	input := &service.SummaryInput{
		FromDate:        p.date("from_date", query.FromDate),
		ToDate:          p.date("to_date", query.ToDate),
		CompanyID:       p.optionalUUID("company_id", query.CompanyID),
		PaymentMethodID: p.optionalUUID("payment_method_id", query.PaymentMethodID),
		Page:            query.Page,
	}
	if err := p.err(); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return input, true
}
