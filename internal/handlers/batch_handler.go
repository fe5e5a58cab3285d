package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/pagination"
	"milyem/internal/services"
)

// BatchHandler handles batch-related requests.
type BatchHandler struct {
	batchService services.BatchServicer
	auditService services.AuditServicer
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService services.BatchServicer, auditService services.AuditServicer) *BatchHandler {
	return &BatchHandler{batchService: batchService, auditService: auditService}
}

// CreateBatchRequest represents the payload for creating a batch.
type CreateBatchRequest struct {
	ManufacturerID uint   `json:"manufacturer_id" binding:"required"`
	Note           string `json:"note" binding:"max=500"`
}

// BatchResponse represents a batch in the response.
type BatchResponse struct {
	ID             uint   `json:"id"`
	ManufacturerID uint   `json:"manufacturer_id"`
	Number         int    `json:"number"`
	Note           string `json:"note"`
}

// CreateBatch handles the creation of a new batch
// @Summary     Create a batch
// @Description Create a new batch; numbers are assigned sequentially per manufacturer
// @Tags        batches
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBatchRequest true "Batch details"
// @Success     201 {object} BatchResponse "Batch created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Manufacturer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /batches [post]
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	batch, err := h.batchService.CreateBatch(userID, req.ManufacturerID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BATCH", "batch", batch.ID, c.ClientIP(),
		map[string]interface{}{"manufacturer_id": req.ManufacturerID, "number": batch.Number})

	c.JSON(http.StatusCreated, gin.H{"batch": batch})
}

// GetUserBatches handles the retrieval of the user's batches
// @Summary     Get all batches
// @Description Get a paginated list of batches, optionally filtered by manufacturer
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Param       manufacturer_id query int false "Filter by manufacturer"
// @Success     200 {array} BatchResponse "List of batches"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /batches [get]
func (h *BatchHandler) GetUserBatches(c *gin.Context) {
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

	var manufacturerID *uint
	if v := c.Query("manufacturer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid manufacturer_id"))
			return
		}
		mid := uint(id)
		manufacturerID = &mid
	}

	batches, err := h.batchService.GetUserBatches(userID, page, manufacturerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// GetBatchByID handles the retrieval of a specific batch
// @Summary     Get batch by ID
// @Description Get a specific batch with its analyses
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Batch ID"
// @Success     200 {object} BatchResponse "Batch details"
// @Failure     400 {object} ErrorResponse "Invalid batch ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Router      /batches/{id} [get]
func (h *BatchHandler) GetBatchByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	batchID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	batch, err := h.batchService.GetBatchByID(userID, batchID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

// GetBatchSummary handles the retrieval of a batch's aggregated totals
// @Summary     Get batch summary
// @Description Get aggregated cost and profit totals over a batch's analyses
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Batch ID"
// @Success     200 {object} services.BatchSummary "Batch summary"
// @Failure     400 {object} ErrorResponse "Invalid batch ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Router      /batches/{id}/summary [get]
func (h *BatchHandler) GetBatchSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	batchID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.batchService.GetBatchSummary(userID, batchID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// DeleteBatch handles deleting a batch
// @Summary     Delete batch
// @Description Delete an empty batch; batches with analyses cannot be deleted
// @Tags        batches
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Batch ID"
// @Success     200 {object} MessageResponse "Batch deleted"
// @Failure     400 {object} ErrorResponse "Invalid batch ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Failure     409 {object} ErrorResponse "Batch has analyses"
// @Router      /batches/{id} [delete]
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	batchID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.batchService.DeleteBatch(userID, batchID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BATCH", "batch", batchID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Batch deleted successfully"})
}
