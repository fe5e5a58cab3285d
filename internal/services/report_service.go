package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"milyem/internal/config"
	apperrors "milyem/internal/errors"
	"milyem/internal/export"
	"milyem/internal/logger"
	"milyem/internal/mailer"
	"milyem/internal/models"
)

// reportService renders batch and analysis reports from stored derived
// values. A nil mailer means SMTP is not configured; EmailBatchReport then
// fails with ErrMailNotConfigured while the download endpoints keep working.
type reportService struct {
	db     *gorm.DB
	mail   *mailer.Mailer
	config *config.Config
}

// NewReportService creates a new report service instance.
func NewReportService(db *gorm.DB, mail *mailer.Mailer, cfg *config.Config) ReportServicer {
	return &reportService{db: db, mail: mail, config: cfg}
}

func (s *reportService) loadBatch(userID, batchID uint) (*models.Batch, error) {
	var batch models.Batch
	err := s.db.
		Preload("Manufacturer").
		Preload("Analyses").
		Where("user_id = ?", userID).
		First(&batch, batchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(batch.Analyses) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}
	return &batch, nil
}

func (s *reportService) loadAnalyses(userID uint, filter AnalysisFilter) ([]models.Analysis, error) {
	query := s.db.Where("user_id = ?", userID)
	if filter.ManufacturerID != nil {
		query = query.Where("manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.ProductCode != nil {
		query = query.Where("product_code = ?", *filter.ProductCode)
	}

	var analyses []models.Analysis
	if err := query.Order("created_at DESC").Find(&analyses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return analyses, nil
}

// BatchPDF renders the batch cost report as a PDF document.
func (s *reportService) BatchPDF(userID, batchID uint) ([]byte, error) {
	batch, err := s.loadBatch(userID, batchID)
	if err != nil {
		return nil, err
	}
	data, err := export.BatchPDF(batch, s.config.BaseCurrency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// AnalysesExcel renders the user's analyses matching the filter as an xlsx
// workbook.
func (s *reportService) AnalysesExcel(userID uint, filter AnalysisFilter) ([]byte, error) {
	analyses, err := s.loadAnalyses(userID, filter)
	if err != nil {
		return nil, err
	}
	data, err := export.AnalysesExcel(analyses, s.config.BaseCurrency)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// AnalysesCSV renders the user's analyses matching the filter as CSV.
func (s *reportService) AnalysesCSV(userID uint, filter AnalysisFilter) ([]byte, error) {
	analyses, err := s.loadAnalyses(userID, filter)
	if err != nil {
		return nil, err
	}
	data, err := export.AnalysesCSV(analyses)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// EmailBatchReport renders the batch PDF and mails it to the recipient.
func (s *reportService) EmailBatchReport(userID, batchID uint, recipient string) error {
	if s.mail == nil {
		return apperrors.ErrMailNotConfigured
	}

	batch, err := s.loadBatch(userID, batchID)
	if err != nil {
		return err
	}
	data, err := export.BatchPDF(batch, s.config.BaseCurrency)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subject := fmt.Sprintf("Batch #%d cost report - %s", batch.Number, batch.Manufacturer.Name)
	body := fmt.Sprintf(
		"Attached is the cost report for batch #%d (%s), covering %d analyses.",
		batch.Number, batch.Manufacturer.Name, len(batch.Analyses),
	)
	attachment := mailer.Attachment{
		Filename:    fmt.Sprintf("batch-%d-report.pdf", batch.Number),
		ContentType: "application/pdf",
		Data:        data,
	}

	if err := s.mail.Send(recipient, subject, body, attachment); err != nil {
		logger.Get().Errorw("Failed to send batch report email",
			"batch_id", batchID,
			"recipient", recipient,
			"error", err,
		)
		return apperrors.Wrap(apperrors.ErrMailSendFailed, err)
	}

	logger.Get().Infow("Batch report emailed",
		"batch_id", batchID,
		"recipient", recipient,
	)
	return nil
}
