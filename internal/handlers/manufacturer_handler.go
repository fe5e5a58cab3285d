package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/pagination"
	"milyem/internal/services"
)

// ManufacturerHandler handles manufacturer-related requests.
type ManufacturerHandler struct {
	manufacturerService services.ManufacturerServicer
	auditService        services.AuditServicer
}

// NewManufacturerHandler creates a new ManufacturerHandler.
func NewManufacturerHandler(manufacturerService services.ManufacturerServicer, auditService services.AuditServicer) *ManufacturerHandler {
	return &ManufacturerHandler{manufacturerService: manufacturerService, auditService: auditService}
}

// ManufacturerRequest represents the payload for creating or updating a manufacturer.
type ManufacturerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=150"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=255"`
	Phone        string `json:"phone" binding:"max=30"`
	City         string `json:"city" binding:"max=100"`
	Notes        string `json:"notes" binding:"max=1000"`
}

// ManufacturerResponse represents a manufacturer in the response.
type ManufacturerResponse struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
}

// CreateManufacturer handles the creation of a new manufacturer
// @Summary     Create a manufacturer
// @Description Create a new manufacturer for the authenticated user
// @Tags        manufacturers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ManufacturerRequest true "Manufacturer details"
// @Success     201 {object} ManufacturerResponse "Manufacturer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /manufacturers [post]
func (h *ManufacturerHandler) CreateManufacturer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	manufacturer, err := h.manufacturerService.CreateManufacturer(
		userID,
		req.Name,
		req.ContactEmail,
		req.Phone,
		req.City,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MANUFACTURER", "manufacturer", manufacturer.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"manufacturer": manufacturer})
}

// GetUserManufacturers handles the retrieval of the user's manufacturers
// @Summary     Get all manufacturers
// @Description Get a paginated list of the authenticated user's manufacturers
// @Tags        manufacturers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {array} ManufacturerResponse "List of manufacturers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /manufacturers [get]
func (h *ManufacturerHandler) GetUserManufacturers(c *gin.Context) {
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

	manufacturers, err := h.manufacturerService.GetUserManufacturers(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"manufacturers": manufacturers})
}

// GetManufacturerByID handles the retrieval of a specific manufacturer
// @Summary     Get manufacturer by ID
// @Description Get a specific manufacturer by ID
// @Tags        manufacturers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Manufacturer ID"
// @Success     200 {object} ManufacturerResponse "Manufacturer details"
// @Failure     400 {object} ErrorResponse "Invalid manufacturer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Manufacturer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /manufacturers/{id} [get]
func (h *ManufacturerHandler) GetManufacturerByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	manufacturerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	manufacturer, err := h.manufacturerService.GetManufacturerByID(userID, manufacturerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"manufacturer": manufacturer})
}

// UpdateManufacturer handles updating a manufacturer
// @Summary     Update manufacturer
// @Description Update an existing manufacturer
// @Tags        manufacturers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Manufacturer ID"
// @Param       request body ManufacturerRequest true "Updated manufacturer details"
// @Success     200 {object} ManufacturerResponse "Updated manufacturer"
// @Failure     400 {object} ErrorResponse "Invalid input or manufacturer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Manufacturer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /manufacturers/{id} [put]
func (h *ManufacturerHandler) UpdateManufacturer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	manufacturerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	manufacturer, err := h.manufacturerService.UpdateManufacturer(
		userID,
		manufacturerID,
		req.Name,
		req.ContactEmail,
		req.Phone,
		req.City,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_MANUFACTURER", "manufacturer", manufacturerID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"manufacturer": manufacturer})
}

// DeleteManufacturer handles deleting a manufacturer
// @Summary     Delete manufacturer
// @Description Delete a manufacturer that has no analyses
// @Tags        manufacturers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Manufacturer ID"
// @Success     200 {object} MessageResponse "Manufacturer deleted"
// @Failure     400 {object} ErrorResponse "Invalid manufacturer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Manufacturer not found"
// @Failure     409 {object} ErrorResponse "Manufacturer has analyses"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /manufacturers/{id} [delete]
func (h *ManufacturerHandler) DeleteManufacturer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	manufacturerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.manufacturerService.DeleteManufacturer(userID, manufacturerID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MANUFACTURER", "manufacturer", manufacturerID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Manufacturer deleted successfully"})
}
