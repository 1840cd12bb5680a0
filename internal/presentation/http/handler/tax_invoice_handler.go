package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// TaxInvoiceHandler handles tax invoice HTTP requests
type TaxInvoiceHandler struct {
	taxService     *service.TaxInvoiceService
	companyService *service.CompanyService
	loc            *time.Location
}

// NewTaxInvoiceHandler creates a new tax invoice handler
func NewTaxInvoiceHandler(taxService *service.TaxInvoiceService, companyService *service.CompanyService, loc *time.Location) *TaxInvoiceHandler {
	return &TaxInvoiceHandler{
		taxService:     taxService,
		companyService: companyService,
		loc:            loc,
	}
}

// Records lists the daily invoices in range that a tax invoice would cover.
// Lines already billed on another tax invoice are included.
// @Summary Tax Invoice Records
// @Tags tax-invoices
// @Security BearerAuth
// @Produce json
// @Param company_id query string true "Company ID"
// @Param vehicle_id query string false "Vehicle ID or all"
// @Param from_date query string true "From date (YYYY-MM-DD)"
// @Param to_date query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /tax-invoices/records [get]
func (h *TaxInvoiceHandler) Records(c *gin.Context) {
	var query request.TaxInvoiceRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	p := newFieldParser(h.loc)
	input := &service.RecordsInput{
		CompanyID: p.uuid("company_id", query.CompanyID),
		VehicleID: p.vehicle("vehicle_id", query.VehicleID),
		FromDate:  p.date("from_date", query.FromDate),
		ToDate:    p.date("to_date", query.ToDate),
		Page:      query.Page,
	}
	if err := p.err(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.taxService.Records(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Records retrieved successfully", result)
}

// NextNumber suggests the next tax invoice number for a company
// @Summary Next Tax Invoice Number
// @Tags tax-invoices
// @Security BearerAuth
// @Produce json
// @Param company_id path string true "Company ID"
// @Param invoice_date query string false "Invoice date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /tax-invoices/next-number/{company_id} [get]
func (h *TaxInvoiceHandler) NextNumber(c *gin.Context) {
	companyID, err := pathUUID(c, "company_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p := newFieldParser(h.loc)
	invoiceDate := p.optionalDate("invoice_date", c.Query("invoice_date"))
	if err := p.err(); err != nil {
		response.Error(c, err)
		return
	}

	var date time.Time
	if invoiceDate != nil {
		date = *invoiceDate
	}

	number, err := h.taxService.NextNumber(c.Request.Context(), companyID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice number generated successfully", gin.H{"tax_invoice_number": number})
}

// Generate issues a tax invoice over the selected daily invoices
// @Summary Generate Tax Invoice
// @Tags tax-invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.GenerateTaxInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /tax-invoices [post]
func (h *TaxInvoiceHandler) Generate(c *gin.Context) {
	var req request.GenerateTaxInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p := newFieldParser(h.loc)
	input := &service.GenerateInput{
		CompanyID:        req.CompanyID,
		VehicleID:        p.vehicle("vehicle_id", req.VehicleID),
		FromDate:         p.date("from_date", req.FromDate),
		ToDate:           p.date("to_date", req.ToDate),
		TaxInvoiceNumber: req.TaxInvoiceNumber,
		InvoiceDate:      p.date("invoice_date", req.InvoiceDate),
		PaymentMethodID:  req.PaymentMethodID,
	}
	if err := p.err(); err != nil {
		response.Error(c, err)
		return
	}

	document, err := h.taxService.Generate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax invoice generated successfully", document)
}

// List pages through issued tax invoices
func (h *TaxInvoiceHandler) List(c *gin.Context) {
	var query request.TaxInvoiceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	p := newFieldParser(h.loc)
	companyID := p.optionalUUID("company_id", query.CompanyID)
	filter := repository.TaxInvoiceFilter{
		Search: query.Search,
		From:   p.optionalDate("from_date", query.FromDate),
		To:     p.optionalDate("to_date", query.ToDate),
	}
	if err := p.err(); err != nil {
		response.Error(c, err)
		return
	}

	if companyID != nil {
		company, err := h.companyService.GetCompany(c.Request.Context(), *companyID)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.CompanyName = company.Name
	}

	params := &pagination.PaginationParams{Page: query.Page, PerPage: query.PerPage}
	params.Validate()

	result, err := h.taxService.List(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Tax invoices retrieved successfully", result)
}

// Get handles retrieving a single tax invoice header
func (h *TaxInvoiceHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.taxService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax invoice retrieved successfully", invoice)
}

// Lines lists the daily invoices billed by a tax invoice
func (h *TaxInvoiceHandler) Lines(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	lines, err := h.taxService.Lines(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax invoice lines retrieved successfully", lines)
}

// Document rebuilds the printable document of an issued tax invoice
func (h *TaxInvoiceHandler) Document(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	document, err := h.taxService.Document(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax invoice retrieved successfully", document)
}
