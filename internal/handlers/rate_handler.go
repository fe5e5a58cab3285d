package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
	"milyem/internal/services"
)

// RateRefresher fetches a live quote and records it as a snapshot for a
// user. Implemented by marketdata.Refresher.
type RateRefresher interface {
	RefreshFor(ctx context.Context, userID uint) (*models.MarketRate, error)
}

// RateHandler handles market-rate snapshot requests.
type RateHandler struct {
	rateService  services.RateServicer
	refresher    RateRefresher
	auditService services.AuditServicer
}

// NewRateHandler creates a new RateHandler. refresher may be nil when no
// live provider is configured.
func NewRateHandler(rateService services.RateServicer, refresher RateRefresher, auditService services.AuditServicer) *RateHandler {
	return &RateHandler{rateService: rateService, refresher: refresher, auditService: auditService}
}

// RecordRateRequest represents the payload for recording a manual snapshot.
type RecordRateRequest struct {
	CurrencyPerUSD    float64 `json:"currency_per_usd" binding:"required,gt=0"`
	GoldPricePerGram  float64 `json:"gold_price_per_gram" binding:"required,gt=0"`
	GoldPriceCurrency string  `json:"gold_price_currency" binding:"required,iso4217"`
}

// RateResponse represents a market-rate snapshot in the response.
type RateResponse struct {
	ID                uint              `json:"id"`
	CurrencyPerUSD    float64           `json:"currency_per_usd"`
	GoldPricePerGram  float64           `json:"gold_price_per_gram"`
	GoldPriceCurrency string            `json:"gold_price_currency"`
	Source            models.RateSource `json:"source"`
}

// RecordRate handles recording a manual market-rate snapshot
// @Summary     Record a market rate
// @Description Record a manual market-rate snapshot for the authenticated user
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordRateRequest true "Rate values"
// @Success     201 {object} RateResponse "Snapshot recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [post]
func (h *RateHandler) RecordRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.rateService.RecordSnapshot(
		userID,
		req.CurrencyPerUSD,
		req.GoldPricePerGram,
		req.GoldPriceCurrency,
		models.RateSourceManual,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_RATE", "market_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"gold_price_currency": req.GoldPriceCurrency})

	c.JSON(http.StatusCreated, gin.H{"rate": rate})
}

// GetLatestRate handles the retrieval of the most recent snapshot
// @Summary     Get latest rate
// @Description Get the authenticated user's most recent market-rate snapshot
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} RateResponse "Latest snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No snapshot recorded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates/latest [get]
func (h *RateHandler) GetLatestRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rate, err := h.rateService.LatestSnapshot(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

// GetRates handles the retrieval of the snapshot history
// @Summary     Get rate history
// @Description Get a paginated history of the authenticated user's snapshots, newest first
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {array} RateResponse "Snapshot history"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [get]
func (h *RateHandler) GetRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rates, err := h.rateService.GetSnapshots(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// RefreshRate handles fetching a fresh quote on demand
// @Summary     Refresh market rate
// @Description Fetch a live quote and record it as a snapshot for the authenticated user
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} RateResponse "Fetched snapshot recorded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Rate fetch failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates/refresh [post]
func (h *RateHandler) RefreshRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if h.refresher == nil {
		respondWithError(c, apperrors.ErrRateFetchFailed)
		return
	}

	rate, err := h.refresher.RefreshFor(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REFRESH_RATE", "market_rate", rate.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"rate": rate})
}
