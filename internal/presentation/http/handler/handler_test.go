package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/request"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	ShouldRefresh bool `json:"should_refresh"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiBody {
	t.Helper()
	var body apiBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (b apiBody) fields() []string {
	fields := make([]string, 0, len(b.Errors))
	for _, e := range b.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBindError_ValidationFieldsAreSnakeCase(t *testing.T) {
	router := gin.New()
	router.POST("/daily", func(c *gin.Context) {
		var req request.DailyInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := serve(router, http.MethodPost, "/daily", `{"date_added":"2026-03-14","volume":"10"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode(t, w)
	assert.False(t, body.Success)
	assert.ElementsMatch(t, []string{"serial_no", "vehicle_id", "fuel_type_id"}, body.fields())

	w = serve(router, http.MethodPost, "/daily", `{"serial_no":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "serial_no", toSnake("SerialNo"))
	assert.Equal(t, "vehicle_id", toSnake("VehicleID"))
	assert.Equal(t, "fuel_type_id", toSnake("FuelTypeID"))
	assert.Equal(t, "name", toSnake("Name"))
}

func TestFieldParser(t *testing.T) {
	p := newFieldParser(time.UTC)

	from := p.date("from_date", "2026-03-01")
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Nil(t, p.vehicle("vehicle_id", "all"))
	assert.Nil(t, p.vehicle("vehicle_id", "ALL"))
	assert.Nil(t, p.optionalDate("to_date", ""))
	assert.NoError(t, p.err())

	p.date("to_date", "14/03/2026")
	p.vehicle("vehicle_id", "bus-1")
	err := p.err()
	require.Error(t, err)
	assert.Len(t, p.errors, 2)
}

func TestTaxInvoiceHandler_GenerateRejectsMalformedFields(t *testing.T) {
	h := NewTaxInvoiceHandler(nil, nil, time.UTC)
	router := gin.New()
	router.POST("/tax-invoices", h.Generate)

	w := serve(router, http.MethodPost, "/tax-invoices", `{
		"company_id": "5d0c8d6e-3b59-4f0e-9a4e-3c2f1b0a9d8e",
		"vehicle_id": "bus-1",
		"from_date": "2026-03-01",
		"to_date": "31/03/2026",
		"tax_invoice_number": "ACM-000001",
		"invoice_date": "2026-03-31",
		"payment_method_id": "0b1c2d3e-4f50-6172-8394-a5b6c7d8e9f0"
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.ElementsMatch(t, []string{"vehicle_id", "to_date"}, decode(t, w).fields())
}

func TestSummaryHandler_RequiresDateRange(t *testing.T) {
	h := NewSummaryHandler(nil, time.UTC)
	router := gin.New()
	router.GET("/summary", h.Search)

	w := serve(router, http.MethodGet, "/summary?to_date=2026-03-31", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"from_date"}, decode(t, w).fields())
}

func TestPathUUID_Invalid(t *testing.T) {
	h := NewDailyInvoiceHandler(nil, nil, time.UTC)
	router := gin.New()
	router.GET("/daily/:id", h.Get)

	w := serve(router, http.MethodGet, "/daily/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type memoryIncomeRepo struct {
	rows map[[2]int]*entity.MonthlyIncome
}

func (r *memoryIncomeRepo) GetByPeriod(_ context.Context, year, month int) (*entity.MonthlyIncome, error) {
	return r.rows[[2]int{year, month}], nil
}

func (r *memoryIncomeRepo) Upsert(_ context.Context, income *entity.MonthlyIncome) error {
	r.rows[[2]int{income.Year, income.Month}] = income
	return nil
}

func (r *memoryIncomeRepo) ListRecent(_ context.Context, limit int) ([]entity.MonthlyIncome, error) {
	out := make([]entity.MonthlyIncome, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

type fixedVat decimal.Decimal

func (v fixedVat) CurrentVatPercentage(context.Context) (decimal.Decimal, error) {
	return decimal.Decimal(v), nil
}

func cashSaleRouter() *gin.Engine {
	repo := &memoryIncomeRepo{rows: map[[2]int]*entity.MonthlyIncome{}}
	h := NewCashSaleHandler(service.NewCashSaleService(repo, fixedVat(decimal.NewFromInt(18))))

	router := gin.New()
	router.PUT("/cash-sale/income", h.SaveIncome)
	router.GET("/cash-sale/income/:year/:month", h.GetIncome)
	router.GET("/cash-sale/statement/:year/:month", h.Statement)
	return router
}

func TestCashSaleHandler_Statement(t *testing.T) {
	router := cashSaleRouter()

	w := serve(router, http.MethodPut, "/cash-sale/income", `{"year":2026,"month":2,"income":"118000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(router, http.MethodGet, "/cash-sale/statement/2026/2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var statement struct {
		MonthName string          `json:"month_name"`
		VatAmount decimal.Decimal `json:"vat_amount"`
		NetAmount decimal.Decimal `json:"net_amount"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &statement))
	assert.Equal(t, "February", statement.MonthName)
	assert.True(t, statement.VatAmount.Equal(decimal.NewFromInt(18000)), statement.VatAmount.String())
	assert.True(t, statement.NetAmount.Equal(decimal.NewFromInt(100000)), statement.NetAmount.String())
}

func TestCashSaleHandler_PeriodErrors(t *testing.T) {
	router := cashSaleRouter()

	w := serve(router, http.MethodGet, "/cash-sale/income/twenty/2", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"year"}, decode(t, w).fields())

	w = serve(router, http.MethodGet, "/cash-sale/income/2026/13", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(router, http.MethodGet, "/cash-sale/statement/2026/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
