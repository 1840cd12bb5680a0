package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")
	fn(c)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		code          int
		message       string
		shouldRefresh bool
	}{
		{"retryable conflict", apperror.NewRetryableConflictError("Tax invoice number already used", errors.New("dup")), http.StatusConflict, "Tax invoice number already used", true},
		{"plain conflict", apperror.NewConflictError("Vehicle already exists"), http.StatusConflict, "Vehicle already exists", false},
		{"not found", apperror.NewNotFoundError("Company"), http.StatusNotFound, "Company not found", false},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := record(func(c *gin.Context) { Error(c, tt.err) })

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, false, body["success"])
			if tt.message != "" {
				assert.Equal(t, tt.message, body["message"])
			}
			if tt.shouldRefresh {
				assert.Equal(t, true, body["should_refresh"])
			} else {
				assert.NotContains(t, body, "should_refresh")
			}
		})
	}
}

func TestError_ValidationFields(t *testing.T) {
	err := apperror.NewValidationError([]apperror.FieldError{{Field: "volume", Message: "Volume must be positive"}})
	w, body := record(func(c *gin.Context) { Error(c, err) })

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "volume", fields[0].(map[string]interface{})["field"])
}

func TestSuccessWithPagination(t *testing.T) {
	result := pagination.NewPaginatedResult([]string(nil), pagination.NewPagination(1, 15, 0))
	w, body := record(func(c *gin.Context) { SuccessWithPagination(c, http.StatusOK, "ok", result) })

	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, data["items"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "req-1", meta["request_id"])
}
