package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles report rendering and dispatch requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// EmailReportRequest carries the recipient for an emailed batch report.
type EmailReportRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
}

// GetBatchPDF handles downloading a batch cost report as PDF
// @Summary     Download batch report
// @Description Render a batch cost report as a PDF document
// @Tags        reports
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       id path int true "Batch ID"
// @Success     200 {file} binary "PDF report"
// @Failure     400 {object} ErrorResponse "Invalid batch ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Failure     409 {object} ErrorResponse "Batch has no analyses"
// @Router      /batches/{id}/report [get]
func (h *ReportHandler) GetBatchPDF(c *gin.Context) {
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

	data, err := h.reportService.BatchPDF(userID, batchID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=batch-%d-report.pdf", batchID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GetAnalysesExcel handles downloading analyses as an xlsx workbook
// @Summary     Export analyses to Excel
// @Description Export the user's analyses, optionally filtered, as an xlsx workbook
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       manufacturer_id query int false "Filter by manufacturer"
// @Param       batch_id query int false "Filter by batch"
// @Param       product_code query string false "Filter by product code"
// @Success     200 {file} binary "Excel workbook"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analyses/export/excel [get]
func (h *ReportHandler) GetAnalysesExcel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseAnalysisFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.AnalysesExcel(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=analyses.xlsx")
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetAnalysesCSV handles downloading analyses as CSV
// @Summary     Export analyses to CSV
// @Description Export the user's analyses, optionally filtered, as CSV
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       manufacturer_id query int false "Filter by manufacturer"
// @Param       batch_id query int false "Filter by batch"
// @Param       product_code query string false "Filter by product code"
// @Success     200 {file} binary "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analyses/export/csv [get]
func (h *ReportHandler) GetAnalysesCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseAnalysisFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.AnalysesCSV(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=analyses.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

// EmailBatchReport handles emailing a batch report
// @Summary     Email batch report
// @Description Render the batch PDF and send it to the given recipient
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Batch ID"
// @Param       request body EmailReportRequest true "Recipient"
// @Success     200 {object} MessageResponse "Report sent"
// @Failure     400 {object} ErrorResponse "Invalid input or batch ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Failure     409 {object} ErrorResponse "Batch has no analyses"
// @Failure     502 {object} ErrorResponse "Mail delivery failed"
// @Router      /batches/{id}/report/email [post]
func (h *ReportHandler) EmailBatchReport(c *gin.Context) {
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

	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.reportService.EmailBatchReport(userID, batchID, req.Recipient); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent successfully"})
}
