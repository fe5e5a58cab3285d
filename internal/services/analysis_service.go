package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"milyem/internal/costing"
	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
)

// analysisService handles cost analyses. Creating or updating an analysis
// validates the raw inputs, loads the latest market-rate snapshot and the
// reference tables, runs the cost calculator, and persists the analysis
// together with its stone lines in a single transaction.
type analysisService struct {
	db                  *gorm.DB
	rateService         RateServicer
	referenceService    ReferenceServicer
	manufacturerService ManufacturerServicer
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(db *gorm.DB, rateService RateServicer, referenceService ReferenceServicer, manufacturerService ManufacturerServicer) AnalysisServicer {
	return &analysisService{
		db:                  db,
		rateService:         rateService,
		referenceService:    referenceService,
		manufacturerService: manufacturerService,
	}
}

// validateInput rejects invalid raw inputs before any computation. Field
// problems are collected into one message so the caller sees all of them.
func validateInput(in AnalysisInput) error {
	var problems []string
	if in.ProductCode == "" {
		problems = append(problems, "product_code is required")
	}
	if in.Grams <= 0 {
		problems = append(problems, "grams must be positive")
	}
	if _, ok := costing.PurityFactor(in.KaratLabel); !ok {
		problems = append(problems, fmt.Sprintf("unknown karat label %q", in.KaratLabel))
	}
	if in.FirePercent < 0 {
		problems = append(problems, "fire_percent must not be negative")
	}
	if in.LaborUnit != models.LaborUnitCurrency && in.LaborUnit != models.LaborUnitGoldGrams {
		problems = append(problems, fmt.Sprintf("unknown labor unit %q", in.LaborUnit))
	}
	for i, stone := range in.Stones {
		if stone.Carat <= 0 {
			problems = append(problems, fmt.Sprintf("stones[%d].carat must be positive", i))
		}
		if stone.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("stones[%d].quantity must be at least 1", i))
		}
		if stone.Category != models.StoneCategoryDiamond && stone.Category != models.StoneCategoryColored {
			problems = append(problems, fmt.Sprintf("stones[%d].category must be diamond or colored", i))
		}
	}
	if len(problems) > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// compute runs the calculator and returns the populated analysis and stone
// line models, without persisting anything.
func (s *analysisService) compute(userID uint, in AnalysisInput) (*models.Analysis, error) {
	rate, err := s.rateService.LatestSnapshot(userID)
	if err != nil {
		return nil, err
	}

	tables, err := s.referenceService.LoadTables(userID)
	if err != nil {
		return nil, err
	}

	purity, _ := costing.PurityFactor(in.KaratLabel)

	stones := make([]costing.Stone, 0, len(in.Stones))
	for _, st := range in.Stones {
		stones = append(stones, costing.Stone{
			StoneType:       st.StoneType,
			Category:        costing.Category(st.Category),
			Carat:           st.Carat,
			Quantity:        st.Quantity,
			Shape:           st.Shape,
			Color:           st.Color,
			Clarity:         st.Clarity,
			DiscountPercent: st.DiscountPercent,
		})
	}

	result := costing.Compute(costing.Input{
		Grams:             in.Grams,
		PurityFactor:      purity,
		FirePercent:       in.FirePercent,
		LaborAmount:       in.LaborAmount,
		LaborUnit:         costing.LaborUnit(in.LaborUnit),
		PolishAmount:      in.PolishAmount,
		CertificateAmount: in.CertificateAmount,
		QuotedPrice:       in.QuotedPrice,
		Stones:            stones,
	}, costing.Snapshot{
		CurrencyPerUSD:    rate.CurrencyPerUSD,
		GoldPricePerGram:  rate.GoldPricePerGram,
		GoldPriceCurrency: rate.GoldPriceCurrency,
	}, tables)

	rateID := rate.ID
	analysis := &models.Analysis{
		UserID:            userID,
		ManufacturerID:    in.ManufacturerID,
		BatchID:           in.BatchID,
		ProductCode:       in.ProductCode,
		ProductType:       in.ProductType,
		Grams:             in.Grams,
		KaratLabel:        strings.ToLower(strings.TrimSpace(in.KaratLabel)),
		FirePercent:       in.FirePercent,
		LaborAmount:       in.LaborAmount,
		LaborUnit:         in.LaborUnit,
		PolishAmount:      in.PolishAmount,
		CertificateAmount: in.CertificateAmount,
		QuotedPrice:       in.QuotedPrice,
		MarketRateID:      &rateID,
		GoldPerGramUsed:   result.GoldPerGram,
		CurrencyPerUSD:    rate.CurrencyPerUSD,
		PurityFactor:      purity,
		RawMaterialCost:   result.RawMaterialCost,
		LaborCost:         result.LaborCost,
		SettingCost:       result.SettingCost,
		StoneCost:         result.StoneCost,
		TotalCost:         result.TotalCost,
		ProfitLoss:        result.ProfitLoss,
	}

	for i, st := range in.Stones {
		analysis.Stones = append(analysis.Stones, models.StoneLine{
			StoneType:       st.StoneType,
			Category:        st.Category,
			Carat:           st.Carat,
			Quantity:        st.Quantity,
			Shape:           st.Shape,
			Color:           st.Color,
			Clarity:         st.Clarity,
			DiscountPercent: st.DiscountPercent,
			PricePerCarat:   result.Stones[i].PricePerCarat,
			SettingCost:     result.Stones[i].SettingCost,
			TotalCost:       result.Stones[i].TotalCost,
		})
	}

	return analysis, nil
}

// verifyBatch checks that a referenced batch exists, belongs to the user and
// to the same manufacturer as the analysis.
func (s *analysisService) verifyBatch(userID uint, in AnalysisInput) error {
	if in.BatchID == nil {
		return nil
	}
	var batch models.Batch
	if err := s.db.Where("id = ? AND user_id = ?", *in.BatchID, userID).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBatchNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if batch.ManufacturerID != in.ManufacturerID {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "batch belongs to a different manufacturer")
	}
	return nil
}

// CreateAnalysis computes and stores a new analysis with its stone lines.
func (s *analysisService) CreateAnalysis(userID uint, in AnalysisInput) (*models.Analysis, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.manufacturerService.GetManufacturerByID(userID, in.ManufacturerID); err != nil {
		return nil, err
	}
	if err := s.verifyBatch(userID, in); err != nil {
		return nil, err
	}

	analysis, err := s.compute(userID, in)
	if err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(analysis).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return analysis, nil
}

// GetAnalysisByID returns an analysis with its stone lines.
func (s *analysisService) GetAnalysisByID(userID, analysisID uint) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := s.db.Preload("Stones").
		Where("id = ? AND user_id = ?", analysisID, userID).
		First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &analysis, nil
}

// GetUserAnalyses returns a filtered, paginated list of the user's analyses.
func (s *analysisService) GetUserAnalyses(userID uint, page pagination.PageRequest, filter AnalysisFilter) (*pagination.PageResponse[models.Analysis], error) {
	page.Defaults()

	query := s.db.Model(&models.Analysis{}).Where("user_id = ?", userID)
	if filter.ManufacturerID != nil {
		query = query.Where("manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.ProductCode != nil {
		query = query.Where("product_code = ?", *filter.ProductCode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var analyses []models.Analysis
	if err := query.Preload("Stones").
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&analyses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(analyses, page.Page, page.PageSize, total)
	return &resp, nil
}

// UpdateAnalysis recomputes an analysis from new inputs and replaces all of
// its stone lines. Derived fields are recomputed against the latest
// snapshot; the previously captured values are overwritten.
func (s *analysisService) UpdateAnalysis(userID, analysisID uint, in AnalysisInput) (*models.Analysis, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}
	if _, err := s.manufacturerService.GetManufacturerByID(userID, in.ManufacturerID); err != nil {
		return nil, err
	}
	if err := s.verifyBatch(userID, in); err != nil {
		return nil, err
	}

	recomputed, err := s.compute(userID, in)
	if err != nil {
		return nil, err
	}
	recomputed.ID = existing.ID
	recomputed.CreatedAt = existing.CreatedAt
	for i := range recomputed.Stones {
		recomputed.Stones[i].AnalysisID = existing.ID
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		// Replace stone lines wholesale: they are owned by the analysis.
		if txErr := tx.Unscoped().Where("analysis_id = ?", existing.ID).Delete(&models.StoneLine{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(recomputed).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetAnalysisByID(userID, analysisID)
}

// DeleteAnalysis removes an analysis and its stone lines.
func (s *analysisService) DeleteAnalysis(userID, analysisID uint) error {
	analysis, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Unscoped().Where("analysis_id = ?", analysis.ID).Delete(&models.StoneLine{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(analysis).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}
