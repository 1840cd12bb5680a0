package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError_PassesThroughWrapped(t *testing.T) {
	appErr := NewNotFoundError("Company")
	wrapped := fmt.Errorf("load company: %w", appErr)

	got := GetAppError(wrapped)
	assert.Same(t, appErr, got)
	assert.Equal(t, "Company not found", got.Message)
	assert.True(t, IsAppError(wrapped))
}

func TestGetAppError_HidesInternalMessage(t *testing.T) {
	cause := errors.New("pq: connection refused")

	got := GetAppError(cause)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "Internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestNewRetryableConflictError(t *testing.T) {
	cause := errors.New("duplicate")
	err := NewRetryableConflictError("Invoice number already used", cause)

	assert.Equal(t, http.StatusConflict, err.Code)
	assert.True(t, err.ShouldRefresh)
	assert.ErrorIs(t, err, cause)
}

func TestWrap(t *testing.T) {
	cause := errors.New("bad vat")
	err := Wrap(http.StatusUnprocessableEntity, "VAT must be between 0 and 100", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, err.ShouldRefresh)
	assert.Equal(t, "VAT must be between 0 and 100", err.Error())
}
