package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/services"
)

// ReferenceHandler handles requests for the rate reference tables consulted
// by the cost calculator. Listings include shared rows; writes always
// produce rows owned by the caller, and shared rows are read-only.
type ReferenceHandler struct {
	referenceService services.ReferenceServicer
	auditService     services.AuditServicer
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(referenceService services.ReferenceServicer, auditService services.AuditServicer) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService, auditService: auditService}
}

// LaborRateRequest represents the payload for creating or updating a labor rate.
type LaborRateRequest struct {
	ProductType  string  `json:"product_type" binding:"required,max=100"`
	PricePerGram float64 `json:"price_per_gram" binding:"required,gt=0"`
}

// PolishRateRequest represents the payload for creating or updating a polish rate.
type PolishRateRequest struct {
	ProductType string  `json:"product_type" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// SettingRateRequest represents the payload for creating or updating a setting-rate tier.
type SettingRateRequest struct {
	Category models.StoneCategory `json:"category" binding:"required,stone_category"`
	MinCarat float64              `json:"min_carat" binding:"gte=0"`
	MaxCarat float64              `json:"max_carat" binding:"required,gtefield=MinCarat"`
	Mode     models.PricingMode   `json:"mode" binding:"required,pricing_mode"`
	Price    float64              `json:"price" binding:"required,gt=0"`
}

// GemstonePriceRequest represents the payload for creating or updating a gemstone list price.
type GemstonePriceRequest struct {
	StoneType     string  `json:"stone_type" binding:"required,max=100"`
	Quality       string  `json:"quality" binding:"max=50"`
	MinCarat      float64 `json:"min_carat" binding:"gte=0"`
	MaxCarat      float64 `json:"max_carat" binding:"omitempty,gtefield=MinCarat"`
	PricePerCarat float64 `json:"price_per_carat" binding:"required,gt=0"`
}

// DiamondPriceRequest represents the payload for creating or updating a diamond grid cell.
type DiamondPriceRequest struct {
	Shape         string  `json:"shape" binding:"required,max=50"`
	MinCarat      float64 `json:"min_carat" binding:"gte=0"`
	MaxCarat      float64 `json:"max_carat" binding:"required,gtefield=MinCarat"`
	Color         string  `json:"color" binding:"required,max=10"`
	Clarity       string  `json:"clarity" binding:"required,max=10"`
	PricePerCarat float64 `json:"price_per_carat" binding:"required,gt=0"`
}

// DiamondDiscountRequest represents the payload for creating or updating a discount tier.
type DiamondDiscountRequest struct {
	MinCarat        float64 `json:"min_carat" binding:"gte=0"`
	MaxCarat        float64 `json:"max_carat" binding:"required,gtefield=MinCarat"`
	DiscountPercent float64 `json:"discount_percent" binding:"gte=0,lte=100"`
}

// CreateLaborRate handles creating a labor rate
// @Summary     Create a labor rate
// @Description Create an owned labor rate for a product type
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LaborRateRequest true "Labor rate"
// @Success     201 {object} models.LaborRate "Labor rate created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/labor-rates [post]
func (h *ReferenceHandler) CreateLaborRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LaborRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.CreateLaborRate(userID, req.ProductType, req.PricePerGram)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LABOR_RATE", "labor_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"product_type": req.ProductType})

	c.JSON(http.StatusCreated, gin.H{"labor_rate": rate})
}

// ListLaborRates handles listing labor rates
// @Summary     List labor rates
// @Description List shared labor rates plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.LaborRate "Labor rates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/labor-rates [get]
func (h *ReferenceHandler) ListLaborRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rates, err := h.referenceService.ListLaborRates(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labor_rates": rates})
}

// UpdateLaborRate handles updating an owned labor rate
// @Summary     Update a labor rate
// @Description Update an owned labor rate; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Labor rate ID"
// @Param       request body LaborRateRequest true "Labor rate"
// @Success     200 {object} models.LaborRate "Labor rate updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/labor-rates/{id} [put]
func (h *ReferenceHandler) UpdateLaborRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LaborRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.UpdateLaborRate(userID, id, req.ProductType, req.PricePerGram)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_LABOR_RATE", "labor_rate", id, c.ClientIP(),
		map[string]interface{}{"product_type": req.ProductType})

	c.JSON(http.StatusOK, gin.H{"labor_rate": rate})
}

// DeleteLaborRate handles deleting an owned labor rate
// @Summary     Delete a labor rate
// @Description Delete an owned labor rate; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Labor rate ID"
// @Success     200 {object} MessageResponse "Labor rate deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/labor-rates/{id} [delete]
func (h *ReferenceHandler) DeleteLaborRate(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeleteLaborRate, "DELETE_LABOR_RATE", "labor_rate", "Labor rate deleted successfully")
}

// CreatePolishRate handles creating a polish rate
// @Summary     Create a polish rate
// @Description Create an owned polish rate for a product type
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PolishRateRequest true "Polish rate"
// @Success     201 {object} models.PolishRate "Polish rate created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/polish-rates [post]
func (h *ReferenceHandler) CreatePolishRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PolishRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.CreatePolishRate(userID, req.ProductType, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_POLISH_RATE", "polish_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"product_type": req.ProductType})

	c.JSON(http.StatusCreated, gin.H{"polish_rate": rate})
}

// ListPolishRates handles listing polish rates
// @Summary     List polish rates
// @Description List shared polish rates plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.PolishRate "Polish rates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/polish-rates [get]
func (h *ReferenceHandler) ListPolishRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rates, err := h.referenceService.ListPolishRates(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"polish_rates": rates})
}

// UpdatePolishRate handles updating an owned polish rate
// @Summary     Update a polish rate
// @Description Update an owned polish rate; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Polish rate ID"
// @Param       request body PolishRateRequest true "Polish rate"
// @Success     200 {object} models.PolishRate "Polish rate updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/polish-rates/{id} [put]
func (h *ReferenceHandler) UpdatePolishRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PolishRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.UpdatePolishRate(userID, id, req.ProductType, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_POLISH_RATE", "polish_rate", id, c.ClientIP(),
		map[string]interface{}{"product_type": req.ProductType})

	c.JSON(http.StatusOK, gin.H{"polish_rate": rate})
}

// DeletePolishRate handles deleting an owned polish rate
// @Summary     Delete a polish rate
// @Description Delete an owned polish rate; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Polish rate ID"
// @Success     200 {object} MessageResponse "Polish rate deleted"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/polish-rates/{id} [delete]
func (h *ReferenceHandler) DeletePolishRate(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeletePolishRate, "DELETE_POLISH_RATE", "polish_rate", "Polish rate deleted successfully")
}

// CreateSettingRate handles creating a setting-rate tier
// @Summary     Create a setting rate
// @Description Create an owned stone-setting price tier
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SettingRateRequest true "Setting rate tier"
// @Success     201 {object} models.SettingRate "Setting rate created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/setting-rates [post]
func (h *ReferenceHandler) CreateSettingRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettingRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.CreateSettingRate(userID, req.Category, req.MinCarat, req.MaxCarat, req.Mode, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SETTING_RATE", "setting_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"category": string(req.Category)})

	c.JSON(http.StatusCreated, gin.H{"setting_rate": rate})
}

// ListSettingRates handles listing setting-rate tiers
// @Summary     List setting rates
// @Description List shared setting-rate tiers plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.SettingRate "Setting rates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/setting-rates [get]
func (h *ReferenceHandler) ListSettingRates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rates, err := h.referenceService.ListSettingRates(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting_rates": rates})
}

// UpdateSettingRate handles updating an owned setting-rate tier
// @Summary     Update a setting rate
// @Description Update an owned setting-rate tier; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Setting rate ID"
// @Param       request body SettingRateRequest true "Setting rate tier"
// @Success     200 {object} models.SettingRate "Setting rate updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/setting-rates/{id} [put]
func (h *ReferenceHandler) UpdateSettingRate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettingRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.referenceService.UpdateSettingRate(userID, id, req.Category, req.MinCarat, req.MaxCarat, req.Mode, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SETTING_RATE", "setting_rate", id, c.ClientIP(),
		map[string]interface{}{"category": string(req.Category)})

	c.JSON(http.StatusOK, gin.H{"setting_rate": rate})
}

// DeleteSettingRate handles deleting an owned setting-rate tier
// @Summary     Delete a setting rate
// @Description Delete an owned setting-rate tier; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Setting rate ID"
// @Success     200 {object} MessageResponse "Setting rate deleted"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/setting-rates/{id} [delete]
func (h *ReferenceHandler) DeleteSettingRate(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeleteSettingRate, "DELETE_SETTING_RATE", "setting_rate", "Setting rate deleted successfully")
}

// CreateGemstonePrice handles creating a gemstone list price
// @Summary     Create a gemstone price
// @Description Create an owned per-carat gemstone list price
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GemstonePriceRequest true "Gemstone price"
// @Success     201 {object} models.GemstonePrice "Gemstone price created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/gemstone-prices [post]
func (h *ReferenceHandler) CreateGemstonePrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GemstonePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.referenceService.CreateGemstonePrice(userID, req.StoneType, req.Quality, req.MinCarat, req.MaxCarat, req.PricePerCarat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GEMSTONE_PRICE", "gemstone_price", price.ID, c.ClientIP(),
		map[string]interface{}{"stone_type": req.StoneType})

	c.JSON(http.StatusCreated, gin.H{"gemstone_price": price})
}

// ListGemstonePrices handles listing gemstone prices
// @Summary     List gemstone prices
// @Description List shared gemstone prices plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.GemstonePrice "Gemstone prices"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/gemstone-prices [get]
func (h *ReferenceHandler) ListGemstonePrices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prices, err := h.referenceService.ListGemstonePrices(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gemstone_prices": prices})
}

// UpdateGemstonePrice handles updating an owned gemstone price
// @Summary     Update a gemstone price
// @Description Update an owned gemstone price; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Gemstone price ID"
// @Param       request body GemstonePriceRequest true "Gemstone price"
// @Success     200 {object} models.GemstonePrice "Gemstone price updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/gemstone-prices/{id} [put]
func (h *ReferenceHandler) UpdateGemstonePrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GemstonePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.referenceService.UpdateGemstonePrice(userID, id, req.StoneType, req.Quality, req.MinCarat, req.MaxCarat, req.PricePerCarat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GEMSTONE_PRICE", "gemstone_price", id, c.ClientIP(),
		map[string]interface{}{"stone_type": req.StoneType})

	c.JSON(http.StatusOK, gin.H{"gemstone_price": price})
}

// DeleteGemstonePrice handles deleting an owned gemstone price
// @Summary     Delete a gemstone price
// @Description Delete an owned gemstone price; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Gemstone price ID"
// @Success     200 {object} MessageResponse "Gemstone price deleted"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/gemstone-prices/{id} [delete]
func (h *ReferenceHandler) DeleteGemstonePrice(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeleteGemstonePrice, "DELETE_GEMSTONE_PRICE", "gemstone_price", "Gemstone price deleted successfully")
}

// CreateDiamondPrice handles creating a diamond grid cell
// @Summary     Create a diamond price
// @Description Create an owned diamond grid price cell
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DiamondPriceRequest true "Diamond price cell"
// @Success     201 {object} models.DiamondPrice "Diamond price created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/diamond-prices [post]
func (h *ReferenceHandler) CreateDiamondPrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DiamondPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.referenceService.CreateDiamondPrice(userID, req.Shape, req.MinCarat, req.MaxCarat, req.Color, req.Clarity, req.PricePerCarat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DIAMOND_PRICE", "diamond_price", price.ID, c.ClientIP(),
		map[string]interface{}{"shape": req.Shape, "color": req.Color, "clarity": req.Clarity})

	c.JSON(http.StatusCreated, gin.H{"diamond_price": price})
}

// ListDiamondPrices handles listing diamond grid cells
// @Summary     List diamond prices
// @Description List shared diamond grid cells plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.DiamondPrice "Diamond prices"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/diamond-prices [get]
func (h *ReferenceHandler) ListDiamondPrices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prices, err := h.referenceService.ListDiamondPrices(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diamond_prices": prices})
}

// UpdateDiamondPrice handles updating an owned diamond grid cell
// @Summary     Update a diamond price
// @Description Update an owned diamond price; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Diamond price ID"
// @Param       request body DiamondPriceRequest true "Diamond price cell"
// @Success     200 {object} models.DiamondPrice "Diamond price updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/diamond-prices/{id} [put]
func (h *ReferenceHandler) UpdateDiamondPrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DiamondPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	price, err := h.referenceService.UpdateDiamondPrice(userID, id, req.Shape, req.MinCarat, req.MaxCarat, req.Color, req.Clarity, req.PricePerCarat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DIAMOND_PRICE", "diamond_price", id, c.ClientIP(),
		map[string]interface{}{"shape": req.Shape, "color": req.Color, "clarity": req.Clarity})

	c.JSON(http.StatusOK, gin.H{"diamond_price": price})
}

// DeleteDiamondPrice handles deleting an owned diamond grid cell
// @Summary     Delete a diamond price
// @Description Delete an owned diamond price; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Diamond price ID"
// @Success     200 {object} MessageResponse "Diamond price deleted"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/diamond-prices/{id} [delete]
func (h *ReferenceHandler) DeleteDiamondPrice(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeleteDiamondPrice, "DELETE_DIAMOND_PRICE", "diamond_price", "Diamond price deleted successfully")
}

// CreateDiamondDiscount handles creating a discount tier
// @Summary     Create a diamond discount
// @Description Create an owned default discount tier for a carat range
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DiamondDiscountRequest true "Discount tier"
// @Success     201 {object} models.DiamondDiscount "Discount created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/diamond-discounts [post]
func (h *ReferenceHandler) CreateDiamondDiscount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DiamondDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	discount, err := h.referenceService.CreateDiamondDiscount(userID, req.MinCarat, req.MaxCarat, req.DiscountPercent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DIAMOND_DISCOUNT", "diamond_discount", discount.ID, c.ClientIP(),
		map[string]interface{}{"discount_percent": req.DiscountPercent})

	c.JSON(http.StatusCreated, gin.H{"diamond_discount": discount})
}

// ListDiamondDiscounts handles listing discount tiers
// @Summary     List diamond discounts
// @Description List shared discount tiers plus the caller's owned rows
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.DiamondDiscount "Discount tiers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reference/diamond-discounts [get]
func (h *ReferenceHandler) ListDiamondDiscounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	discounts, err := h.referenceService.ListDiamondDiscounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diamond_discounts": discounts})
}

// UpdateDiamondDiscount handles updating an owned discount tier
// @Summary     Update a diamond discount
// @Description Update an owned discount tier; shared rows are read-only
// @Tags        reference
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Discount ID"
// @Param       request body DiamondDiscountRequest true "Discount tier"
// @Success     200 {object} models.DiamondDiscount "Discount updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/diamond-discounts/{id} [put]
func (h *ReferenceHandler) UpdateDiamondDiscount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DiamondDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	discount, err := h.referenceService.UpdateDiamondDiscount(userID, id, req.MinCarat, req.MaxCarat, req.DiscountPercent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DIAMOND_DISCOUNT", "diamond_discount", id, c.ClientIP(),
		map[string]interface{}{"discount_percent": req.DiscountPercent})

	c.JSON(http.StatusOK, gin.H{"diamond_discount": discount})
}

// DeleteDiamondDiscount handles deleting an owned discount tier
// @Summary     Delete a diamond discount
// @Description Delete an owned discount tier; shared rows are read-only
// @Tags        reference
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Discount ID"
// @Success     200 {object} MessageResponse "Discount deleted"
// @Failure     403 {object} ErrorResponse "Shared row is read-only"
// @Failure     404 {object} ErrorResponse "Row not found"
// @Router      /reference/diamond-discounts/{id} [delete]
func (h *ReferenceHandler) DeleteDiamondDiscount(c *gin.Context) {
	h.deleteRow(c, h.referenceService.DeleteDiamondDiscount, "DELETE_DIAMOND_DISCOUNT", "diamond_discount", "Diamond discount deleted successfully")
}

// deleteRow factors out the shared path of the six delete endpoints.
func (h *ReferenceHandler) deleteRow(c *gin.Context, del func(userID, id uint) error, action, resourceType, message string) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := del(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, action, resourceType, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": message})
}
