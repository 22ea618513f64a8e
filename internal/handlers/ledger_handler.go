package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debentra/internal/errors"
	"debentra/internal/services"
)

// LedgerHandler handles money-movement requests: subscriptions, exit quotes
// and committed exits. Every mutation routes through the ledger service.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// AddInvestmentRequest represents the request payload for recording a subscription.
type AddInvestmentRequest struct {
	SeriesID string `json:"series_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Date     string `json:"date" binding:"omitempty,flexdate"`
}

// AddInvestment handles recording a subscription entry
// @Summary     Record an investment
// @Description Record a subscription entry for an investor in a series
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Param       request body AddInvestmentRequest true "Investment details"
// @Success     201 {object} map[string]interface{} "Updated investor and series"
// @Failure     400 {object} ErrorResponse "Invalid input or below minimum"
// @Failure     404 {object} ErrorResponse "Investor or series not found"
// @Failure     409 {object} ErrorResponse "Investor deleted"
// @Router      /investors/{id}/investments [post]
func (h *LedgerHandler) AddInvestment(c *gin.Context) {
	investorID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, series, err := h.ledgerService.AddInvestment(investorID, req.SeriesID, req.Amount, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "ADD_INVESTMENT", "investor", investorID, c.ClientIP(),
		map[string]interface{}{"series_id": req.SeriesID, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"investor": investor, "series": series})
}

// PreviewExit handles quoting a partial exit
// @Summary     Preview an exit
// @Description Quote the refund and penalty for exiting one series, without committing
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Param       seriesId path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Exit quote"
// @Failure     400 {object} ErrorResponse "Not invested"
// @Failure     404 {object} ErrorResponse "Investor or series not found"
// @Router      /investors/{id}/investments/{seriesId}/preview [get]
func (h *LedgerHandler) PreviewExit(c *gin.Context) {
	investorID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	seriesID, err := pathID(c, "seriesId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	line, err := h.ledgerService.PreviewExit(investorID, seriesID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exit": line})
}

// RemoveInvestment handles a committed partial exit
// @Summary     Remove an investment
// @Description Exit an investor from one series at the quoted refund
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Param       seriesId path string true "Series ID"
// @Success     200 {object} map[string]interface{} "Exit result"
// @Failure     400 {object} ErrorResponse "Not invested"
// @Failure     404 {object} ErrorResponse "Investor or series not found"
// @Failure     409 {object} ErrorResponse "Investor deleted"
// @Router      /investors/{id}/investments/{seriesId} [delete]
func (h *LedgerHandler) RemoveInvestment(c *gin.Context) {
	investorID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	seriesID, err := pathID(c, "seriesId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledgerService.RemoveInvestment(investorID, seriesID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "REMOVE_INVESTMENT", "investor", investorID, c.ClientIP(),
		map[string]interface{}{
			"series_id": seriesID,
			"refund":    result.Line.Quote.RefundAmount,
			"penalty":   result.Line.Quote.PenaltyAmount,
		})

	c.JSON(http.StatusOK, result)
}

// PreviewAccountExit handles quoting a full account deletion
// @Summary     Preview account deletion
// @Description Quote the per-series refunds and penalties for deleting an account
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} map[string]interface{} "Account exit quote"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     409 {object} ErrorResponse "Investor deleted"
// @Router      /investors/{id}/preview-delete [get]
func (h *LedgerHandler) PreviewAccountExit(c *gin.Context) {
	investorID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	exit, err := h.ledgerService.PreviewAccountExit(investorID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exit": exit})
}

// DeleteInvestor handles a committed account deletion
// @Summary     Delete an investor
// @Description Exit every holding and move the investor to the terminal deleted state
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} map[string]interface{} "Account exit result"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     409 {object} ErrorResponse "Investor already deleted"
// @Router      /investors/{id} [delete]
func (h *LedgerHandler) DeleteInvestor(c *gin.Context) {
	investorID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	exit, err := h.ledgerService.DeleteInvestor(investorID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	name, role := getActor(c)
	h.auditService.Log(name, role, "DELETE_INVESTOR", "investor", investorID, c.ClientIP(),
		map[string]interface{}{
			"refund":  exit.RefundAmount,
			"penalty": exit.PenaltyAmount,
		})

	c.JSON(http.StatusOK, exit)
}
