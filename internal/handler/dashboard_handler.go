package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kadpoly-ict/ards-api/internal/models"
	"github.com/kadpoly-ict/ards-api/pkg/response"
)

type statsProvider interface {
	Stats(ctx context.Context) (*models.DashboardStats, bool, error)
}

// DashboardHandler exposes the delivery register summary.
type DashboardHandler struct {
	dashboard statsProvider
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard statsProvider) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats godoc
// @Summary Summarise the result register by lifecycle state
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, cacheHit, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, map[string]interface{}{"cache_hit": cacheHit})
}
