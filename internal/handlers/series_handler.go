package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debentra/internal/errors"
	"debentra/internal/pagination"
	"debentra/internal/services"
)

// SeriesHandler handles debenture series lifecycle requests.
type SeriesHandler struct {
	seriesService services.SeriesServicer
	auditService  services.AuditServicer
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(seriesService services.SeriesServicer, auditService services.AuditServicer) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService, auditService: auditService}
}

// CreateSeriesRequest represents the request payload for creating a series.
// Dates accept DD/MM/YYYY or ISO 8601.
type CreateSeriesRequest struct {
	Name                  string  `json:"name" binding:"required,min=1,max=100"`
	SeriesCode            string  `json:"series_code" binding:"max=20"`
	IssueDate             string  `json:"issue_date" binding:"required"`
	MaturityDate          string  `json:"maturity_date" binding:"required"`
	LockInDate            string  `json:"lock_in_date" binding:"omitempty,flexdate"`
	SubscriptionStartDate string  `json:"subscription_start_date" binding:"omitempty,flexdate"`
	SubscriptionEndDate   string  `json:"subscription_end_date" binding:"omitempty,flexdate"`
	FaceValue             int64   `json:"face_value" binding:"gte=0"`
	MinInvestment         int64   `json:"min_investment" binding:"gte=0"`
	TargetAmount          int64   `json:"target_amount" binding:"gte=0"`
	TotalIssueSize        int64   `json:"total_issue_size" binding:"gte=0"`
	InterestRate          float64 `json:"interest_rate" binding:"gte=0,lte=100"`
}

// RenameSeriesRequest represents the request payload for renaming a series.
type RenameSeriesRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateSeries handles series creation
// @Summary     Create a series
// @Description Create a new debenture series in the draft state
// @Tags        series
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSeriesRequest true "Series details"
// @Success     201 {object} map[string]interface{} "Series created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate series name"
// @Router      /series [post]
func (h *SeriesHandler) CreateSeries(c *gin.Context) {
	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	series, err := h.seriesService.CreateSeries(services.SeriesInput{
		Name:                  req.Name,
		SeriesCode:            req.SeriesCode,
		IssueDate:             req.IssueDate,
		MaturityDate:          req.MaturityDate,
		LockInDate:            req.LockInDate,
		SubscriptionStartDate: req.SubscriptionStartDate,
		SubscriptionEndDate:   req.SubscriptionEndDate,
		FaceValue:             req.FaceValue,
		MinInvestment:         req.MinInvestment,
		TargetAmount:          req.TargetAmount,
		TotalIssueSize:        req.TotalIssueSize,
		InterestRate:          req.InterestRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "CREATE_SERIES", "series", series.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"series": series})
}

// ListSeries handles listing series
// @Summary     List series
// @Description List all series with resolved lifecycle statuses
// @Tags        series
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated series"
// @Router      /series [get]
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.seriesService.ListSeries(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSeries handles fetching one series
// @Summary     Get a series
// @Description Get a series with its resolved status, progress and payout
// @Tags        series
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Series"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Router      /series/{id} [get]
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.seriesService.GetSeriesByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// ApproveSeries handles series approval
// @Summary     Approve a series
// @Description Approve a draft series and set its release date
// @Tags        series
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Approved series"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Failure     409 {object} ErrorResponse "Series rejected"
// @Router      /series/{id}/approve [post]
func (h *SeriesHandler) ApproveSeries(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.seriesService.ApproveSeries(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "APPROVE_SERIES", "series", series.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// RejectSeries handles series rejection
// @Summary     Reject a series
// @Description Move a series to the terminal rejected state
// @Tags        series
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Rejected series"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Router      /series/{id}/reject [post]
func (h *SeriesHandler) RejectSeries(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.seriesService.RejectSeries(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "REJECT_SERIES", "series", series.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// RenameSeries handles series renaming
// @Summary     Rename a series
// @Description Rename a series and propagate the new name to all holdings
// @Tags        series
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Param       request body RenameSeriesRequest true "New name"
// @Success     200 {object} map[string]interface{} "Renamed series"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Failure     409 {object} ErrorResponse "Duplicate series name"
// @Router      /series/{id} [put]
func (h *SeriesHandler) RenameSeries(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	series, err := h.seriesService.RenameSeries(id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "RENAME_SERIES", "series", series.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// DeleteSeries handles series deletion
// @Summary     Delete a series
// @Description Delete a series that has not yet accepted money
// @Tags        series
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Series ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Series not found"
// @Failure     409 {object} ErrorResponse "Series not deletable"
// @Router      /series/{id} [delete]
func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.seriesService.DeleteSeries(id); err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "DELETE_SERIES", "series", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Series deleted"})
}
