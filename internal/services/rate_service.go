package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
)

// rateService handles market-rate snapshots. Snapshots are append-only and
// immutable: analyses reference the values captured at computation time.
type rateService struct {
	db *gorm.DB
}

// NewRateService creates a new RateServicer.
func NewRateService(db *gorm.DB) RateServicer {
	return &rateService{db: db}
}

// RecordSnapshot stores a new market-rate snapshot. A snapshot must carry
// both the currency pair rate and a gold-per-gram price in a named currency.
func (s *rateService) RecordSnapshot(userID uint, currencyPerUSD, goldPricePerGram float64, goldPriceCurrency string, source models.RateSource) (*models.MarketRate, error) {
	if currencyPerUSD <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency_per_usd must be positive")
	}
	if goldPricePerGram <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "gold_price_per_gram must be positive")
	}
	if goldPriceCurrency == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "gold_price_currency is required")
	}

	rate := &models.MarketRate{
		UserID:            userID,
		CurrencyPerUSD:    currencyPerUSD,
		GoldPricePerGram:  goldPricePerGram,
		GoldPriceCurrency: strings.ToUpper(goldPriceCurrency),
		Source:            source,
	}

	if err := s.db.Create(rate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rate, nil
}

// LatestSnapshot returns the most recently recorded snapshot for the user.
func (s *rateService) LatestSnapshot(userID uint) (*models.MarketRate, error) {
	var rate models.MarketRate
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoMarketRate
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rate, nil
}

// GetSnapshots returns the user's snapshot history, newest first.
func (s *rateService) GetSnapshots(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MarketRate], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.MarketRate{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rates []models.MarketRate
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(rates, page.Page, page.PageSize, total)
	return &resp, nil
}
