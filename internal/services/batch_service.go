package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
)

// batchService handles batch-related business logic.
type batchService struct {
	db                  *gorm.DB
	manufacturerService ManufacturerServicer
}

// NewBatchService creates a new BatchServicer.
func NewBatchService(db *gorm.DB, manufacturerService ManufacturerServicer) BatchServicer {
	return &batchService{db: db, manufacturerService: manufacturerService}
}

// CreateBatch creates a batch with the next sequential number for the
// manufacturer. The number is read and assigned in one transaction; the
// partial unique index on (manufacturer_id, number) rejects the insert if a
// concurrent create observed the same maximum.
func (s *batchService) CreateBatch(userID, manufacturerID uint, note string) (*models.Batch, error) {
	if _, err := s.manufacturerService.GetManufacturerByID(userID, manufacturerID); err != nil {
		return nil, err
	}

	batch := &models.Batch{
		UserID:         userID,
		ManufacturerID: manufacturerID,
		Note:           note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxNumber int64
		if txErr := tx.Model(&models.Batch{}).
			Where("manufacturer_id = ?", manufacturerID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		batch.Number = int(maxNumber) + 1

		if txErr := tx.Create(batch).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// GetUserBatches returns a paginated list of the user's batches, optionally
// filtered by manufacturer.
func (s *batchService) GetUserBatches(userID uint, page pagination.PageRequest, manufacturerID *uint) (*pagination.PageResponse[models.Batch], error) {
	page.Defaults()

	query := s.db.Model(&models.Batch{}).Where("user_id = ?", userID)
	if manufacturerID != nil {
		query = query.Where("manufacturer_id = ?", *manufacturerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var batches []models.Batch
	if err := query.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&batches).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(batches, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetBatchByID returns a batch with its analyses if it belongs to the user.
func (s *batchService) GetBatchByID(userID, batchID uint) (*models.Batch, error) {
	var batch models.Batch
	if err := s.db.Preload("Analyses").Preload("Analyses.Stones").Preload("Manufacturer").
		Where("id = ? AND user_id = ?", batchID, userID).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &batch, nil
}

// DeleteBatch removes an empty batch. Batches holding analyses must be
// emptied first; analyses only back-reference the batch, they are never
// deleted with it.
func (s *batchService) DeleteBatch(userID, batchID uint) error {
	batch, err := s.GetBatchByID(userID, batchID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Analysis{}).Where("batch_id = ?", batchID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrBatchNotEmpty
	}

	if err := s.db.Delete(batch).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBatchSummary aggregates the batch's analyses. The total equals the sum
// of the member analyses' stored totals exactly: nothing is recomputed.
func (s *batchService) GetBatchSummary(userID, batchID uint) (*BatchSummary, error) {
	batch, err := s.GetBatchByID(userID, batchID)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{
		BatchID: batch.ID,
		Number:  batch.Number,
	}
	for _, a := range batch.Analyses {
		summary.AnalysisCount++
		summary.TotalCost += a.TotalCost
		summary.TotalQuoted += a.QuotedPrice
		summary.TotalProfitLoss += a.ProfitLoss
	}

	return summary, nil
}
