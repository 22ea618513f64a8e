package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debentra/internal/errors"
	"debentra/internal/models"
	"debentra/internal/services"
)

// ComplianceHandler handles compliance bucket requests.
type ComplianceHandler struct {
	complianceService services.ComplianceServicer
	auditService      services.AuditServicer
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService services.ComplianceServicer, auditService services.AuditServicer) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService, auditService: auditService}
}

// UpdateBucketRequest represents the request payload for updating one
// compliance bucket.
type UpdateBucketRequest struct {
	Phase     string `json:"phase" binding:"required,compliance_phase"`
	Completed int    `json:"completed" binding:"gte=0"`
	Total     int    `json:"total" binding:"gte=0"`
}

// UpdateBucket handles updating a compliance bucket
// @Summary     Update a compliance bucket
// @Description Upsert the completed/total counts for one series phase
// @Tags        compliance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Param       request body UpdateBucketRequest true "Bucket counts"
// @Success     200 {object} map[string]interface{} "Updated bucket"
// @Failure     400 {object} ErrorResponse "Invalid counts or phase"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Router      /series/{id}/compliance [put]
func (h *ComplianceHandler) UpdateBucket(c *gin.Context) {
	seriesID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.complianceService.UpdateBucket(seriesID, models.CompliancePhase(req.Phase), req.Completed, req.Total)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "UPDATE_COMPLIANCE", "series", seriesID, c.ClientIP(),
		map[string]interface{}{"phase": req.Phase, "completed": req.Completed, "total": req.Total})

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// GetSeriesCompliance handles fetching one series' compliance picture
// @Summary     Get series compliance
// @Description Get the bucket percentages, average and category for one series
// @Tags        compliance
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Compliance summary"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Router      /series/{id}/compliance [get]
func (h *ComplianceHandler) GetSeriesCompliance(c *gin.Context) {
	seriesID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.complianceService.SeriesCompliance(seriesID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"compliance": summary})
}

// GetComplianceDashboard handles the categorized dashboard
// @Summary     Compliance dashboard
// @Description Categorize every series into submitted, pending and yet-to-be-submitted
// @Tags        compliance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Categorized series"
// @Router      /compliance/dashboard [get]
func (h *ComplianceHandler) GetComplianceDashboard(c *gin.Context) {
	dashboard, err := h.complianceService.Dashboard(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
