package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"debentra/internal/services"
)

// DashboardHandler handles aggregate dashboard requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetRetention handles the retention dashboard
// @Summary     Retention rate
// @Description Retention over the trailing window: churn and early redemptions against the full investor base
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Retention summary"
// @Router      /dashboard/retention [get]
func (h *DashboardHandler) GetRetention(c *gin.Context) {
	summary, err := h.dashboardService.Retention(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"retention": summary})
}
