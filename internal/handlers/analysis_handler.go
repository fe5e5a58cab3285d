package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
	"milyem/internal/services"
)

// AnalysisHandler handles cost-analysis requests.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
	auditService    services.AuditServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer, auditService services.AuditServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, auditService: auditService}
}

// StoneLineRequest is one stone line in an analysis payload.
type StoneLineRequest struct {
	StoneType       string               `json:"stone_type" binding:"required,max=100"`
	Category        models.StoneCategory `json:"category" binding:"required,stone_category"`
	Carat           float64              `json:"carat" binding:"required,gt=0"`
	Quantity        int                  `json:"quantity" binding:"required,gt=0"`
	Shape           string               `json:"shape" binding:"max=50"`
	Color           string               `json:"color" binding:"max=10"`
	Clarity         string               `json:"clarity" binding:"max=10"`
	DiscountPercent *float64             `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
}

// AnalysisRequest represents the payload for creating or updating an analysis.
type AnalysisRequest struct {
	ManufacturerID    uint               `json:"manufacturer_id" binding:"required"`
	BatchID           *uint              `json:"batch_id"`
	ProductCode       string             `json:"product_code" binding:"required,max=100"`
	ProductType       string             `json:"product_type" binding:"max=100"`
	Grams             float64            `json:"grams" binding:"required,gt=0"`
	KaratLabel        string             `json:"karat_label" binding:"required,karat"`
	FirePercent       float64            `json:"fire_percent" binding:"gte=0"`
	LaborAmount       float64            `json:"labor_amount" binding:"gte=0"`
	LaborUnit         models.LaborUnit   `json:"labor_unit" binding:"omitempty,labor_unit"`
	PolishAmount      float64            `json:"polish_amount" binding:"gte=0"`
	CertificateAmount float64            `json:"certificate_amount" binding:"gte=0"`
	QuotedPrice       float64            `json:"quoted_price" binding:"gte=0"`
	Stones            []StoneLineRequest `json:"stones" binding:"omitempty,dive"`
}

// toInput converts the request payload to the service input.
func (r AnalysisRequest) toInput() services.AnalysisInput {
	laborUnit := r.LaborUnit
	if laborUnit == "" {
		laborUnit = models.LaborUnitCurrency
	}

	stones := make([]services.StoneLineInput, 0, len(r.Stones))
	for _, s := range r.Stones {
		stones = append(stones, services.StoneLineInput{
			StoneType:       s.StoneType,
			Category:        s.Category,
			Carat:           s.Carat,
			Quantity:        s.Quantity,
			Shape:           s.Shape,
			Color:           s.Color,
			Clarity:         s.Clarity,
			DiscountPercent: s.DiscountPercent,
		})
	}

	return services.AnalysisInput{
		ManufacturerID:    r.ManufacturerID,
		BatchID:           r.BatchID,
		ProductCode:       r.ProductCode,
		ProductType:       r.ProductType,
		Grams:             r.Grams,
		KaratLabel:        r.KaratLabel,
		FirePercent:       r.FirePercent,
		LaborAmount:       r.LaborAmount,
		LaborUnit:         laborUnit,
		PolishAmount:      r.PolishAmount,
		CertificateAmount: r.CertificateAmount,
		QuotedPrice:       r.QuotedPrice,
		Stones:            stones,
	}
}

// AnalysisResponse represents an analysis in the response.
type AnalysisResponse struct {
	ID              uint    `json:"id"`
	ProductCode     string  `json:"product_code"`
	Grams           float64 `json:"grams"`
	KaratLabel      string  `json:"karat_label"`
	RawMaterialCost float64 `json:"raw_material_cost"`
	TotalCost       float64 `json:"total_cost"`
	QuotedPrice     float64 `json:"quoted_price"`
	ProfitLoss      float64 `json:"profit_loss"`
}

// parseAnalysisFilter reads optional query filters for analysis listings.
func parseAnalysisFilter(c *gin.Context) (services.AnalysisFilter, error) {
	var filter services.AnalysisFilter

	if v := c.Query("manufacturer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid manufacturer_id")
		}
		mid := uint(id)
		filter.ManufacturerID = &mid
	}
	if v := c.Query("batch_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid batch_id")
		}
		bid := uint(id)
		filter.BatchID = &bid
	}
	if v := c.Query("product_code"); v != "" {
		filter.ProductCode = &v
	}

	return filter, nil
}

// CreateAnalysis handles the creation of a new analysis
// @Summary     Create an analysis
// @Description Compute a cost analysis against the latest market rate and persist it
// @Tags        analyses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AnalysisRequest true "Analysis inputs"
// @Success     201 {object} AnalysisResponse "Analysis created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Manufacturer or batch not found"
// @Failure     409 {object} ErrorResponse "No market rate recorded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analyses [post]
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	analysis, err := h.analysisService.CreateAnalysis(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ANALYSIS", "analysis", analysis.ID, c.ClientIP(),
		map[string]interface{}{"product_code": req.ProductCode, "manufacturer_id": req.ManufacturerID})

	c.JSON(http.StatusCreated, gin.H{"analysis": analysis})
}

// GetAnalysisByID handles the retrieval of a specific analysis
// @Summary     Get analysis by ID
// @Description Get a specific analysis with its stone lines
// @Tags        analyses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Analysis ID"
// @Success     200 {object} AnalysisResponse "Analysis details"
// @Failure     400 {object} ErrorResponse "Invalid analysis ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Router      /analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysisByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.analysisService.GetAnalysisByID(userID, analysisID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// GetUserAnalyses handles the retrieval of the user's analyses
// @Summary     Get all analyses
// @Description Get a paginated list of analyses, optionally filtered by manufacturer, batch or product code
// @Tags        analyses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Param       manufacturer_id query int false "Filter by manufacturer"
// @Param       batch_id query int false "Filter by batch"
// @Param       product_code query string false "Filter by product code"
// @Success     200 {array} AnalysisResponse "List of analyses"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analyses [get]
func (h *AnalysisHandler) GetUserAnalyses(c *gin.Context) {
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

	filter, err := parseAnalysisFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analyses, err := h.analysisService.GetUserAnalyses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

// UpdateAnalysis handles updating an analysis
// @Summary     Update analysis
// @Description Recompute an analysis from new inputs against the latest market rate; stone lines are replaced
// @Tags        analyses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Analysis ID"
// @Param       request body AnalysisRequest true "New analysis inputs"
// @Success     200 {object} AnalysisResponse "Updated analysis"
// @Failure     400 {object} ErrorResponse "Invalid input or analysis ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Failure     409 {object} ErrorResponse "No market rate recorded"
// @Router      /analyses/{id} [put]
func (h *AnalysisHandler) UpdateAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	analysis, err := h.analysisService.UpdateAnalysis(userID, analysisID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ANALYSIS", "analysis", analysisID, c.ClientIP(),
		map[string]interface{}{"product_code": req.ProductCode})

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// DeleteAnalysis handles deleting an analysis
// @Summary     Delete analysis
// @Description Delete an analysis together with its stone lines
// @Tags        analyses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Analysis ID"
// @Success     200 {object} MessageResponse "Analysis deleted"
// @Failure     400 {object} ErrorResponse "Invalid analysis ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Router      /analyses/{id} [delete]
func (h *AnalysisHandler) DeleteAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.analysisService.DeleteAnalysis(userID, analysisID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ANALYSIS", "analysis", analysisID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted successfully"})
}
