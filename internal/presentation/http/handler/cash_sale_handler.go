package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

// CashSaleHandler handles monthly cash income and its VAT statement
type CashSaleHandler struct {
	cashSaleService *service.CashSaleService
}

// NewCashSaleHandler creates a new cash sale handler
func NewCashSaleHandler(cashSaleService *service.CashSaleService) *CashSaleHandler {
	return &CashSaleHandler{cashSaleService: cashSaleService}
}

// SaveIncome stores a month's gross cash income
// @Summary Save Monthly Income
// @Tags cash-sale
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.MonthlyIncomeRequest true "Monthly income"
// @Success 200 {object} response.APIResponse
// @Router /cash-sale/income [put]
func (h *CashSaleHandler) SaveIncome(c *gin.Context) {
	var req request.MonthlyIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	income, err := h.cashSaleService.SaveIncome(c.Request.Context(), &service.MonthlyIncomeInput{
		Year:   req.Year,
		Month:  req.Month,
		Income: req.Income,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly income saved successfully", income)
}

// GetIncome returns the income stored for a month
func (h *CashSaleHandler) GetIncome(c *gin.Context) {
	year, month, err := period(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	income, err := h.cashSaleService.GetIncome(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly income retrieved successfully", income)
}

// RecentIncome lists the latest stored months
func (h *CashSaleHandler) RecentIncome(c *gin.Context) {
	incomes, err := h.cashSaleService.RecentIncome(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly income retrieved successfully", incomes)
}

// Statement splits a month's income into net and VAT
// @Summary Cash Sale Statement
// @Tags cash-sale
// @Security BearerAuth
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {object} response.APIResponse
// @Router /cash-sale/statement/{year}/{month} [get]
func (h *CashSaleHandler) Statement(c *gin.Context) {
	year, month, err := period(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	statement, err := h.cashSaleService.Statement(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement generated successfully", statement)
}

func period(c *gin.Context) (int, int, error) {
	var fieldErrors []apperror.FieldError
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "Year must be a number"})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "Month must be a number"})
	}
	if len(fieldErrors) > 0 {
		return 0, 0, apperror.NewValidationError(fieldErrors)
	}
	return year, month, nil
}
