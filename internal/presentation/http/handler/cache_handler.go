package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fuelinvoice-api/internal/application/service"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
)

// CacheHandler exposes reference cache maintenance to administrators
type CacheHandler struct {
	warmer *service.CacheWarmer
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(warmer *service.CacheWarmer) *CacheHandler {
	return &CacheHandler{warmer: warmer}
}

// Warm reloads reference data into the cache
// @Summary Warm Cache
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param clear query bool false "Flush before warming"
// @Success 200 {object} response.APIResponse
// @Router /admin/cache/warm [post]
func (h *CacheHandler) Warm(c *gin.Context) {
	if c.Query("clear") == "true" {
		h.warmer.Flush()
	}

	result, err := h.warmer.Warm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cache warmed successfully", result)
}

// Flush drops every cached reference entry
func (h *CacheHandler) Flush(c *gin.Context) {
	h.warmer.Flush()
	response.OK(c, "Cache flushed successfully", nil)
}
