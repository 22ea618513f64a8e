package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debentra/internal/errors"
	"debentra/internal/pagination"
	"debentra/internal/services"
)

// InvestorHandler handles investor onboarding and read requests.
type InvestorHandler struct {
	investorService services.InvestorServicer
	auditService    services.AuditServicer
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService services.InvestorServicer, auditService services.AuditServicer) *InvestorHandler {
	return &InvestorHandler{investorService: investorService, auditService: auditService}
}

// OnboardInvestorRequest represents the request payload for onboarding an investor.
type OnboardInvestorRequest struct {
	InvestorID string `json:"investor_id" binding:"required,min=1,max=50"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=255"`
	Phone      string `json:"phone" binding:"max=20"`
}

// OnboardInvestor handles investor creation
// @Summary     Onboard an investor
// @Description Register a new investor with a unique business key
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OnboardInvestorRequest true "Investor details"
// @Success     201 {object} map[string]interface{} "Investor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate investor ID"
// @Router      /investors [post]
func (h *InvestorHandler) OnboardInvestor(c *gin.Context) {
	var req OnboardInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.OnboardInvestor(req.InvestorID, req.Name, req.Email, req.Phone)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "ONBOARD_INVESTOR", "investor", investor.ID, c.ClientIP(),
		map[string]interface{}{"investor_id": req.InvestorID})

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// ListInvestors handles listing investors
// @Summary     List investors
// @Description List all investors with their derived series lists
// @Tags        investors
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated investors"
// @Router      /investors [get]
func (h *InvestorHandler) ListInvestors(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investorService.ListInvestors(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestor handles fetching one investor
// @Summary     Get an investor
// @Description Get an investor with holdings; deleted investors stay readable
// @Tags        investors
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} map[string]interface{} "Investor"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Router      /investors/{id} [get]
func (h *InvestorHandler) GetInvestor(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investor, err := h.investorService.GetInvestorByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}
