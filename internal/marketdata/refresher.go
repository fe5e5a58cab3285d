package marketdata

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "milyem/internal/errors"
	"milyem/internal/logger"
	"milyem/internal/models"
	"milyem/internal/services"
)

// Refresher turns provider quotes into market-rate snapshots. One quote is
// fetched per run and fanned out to every active user, so each tenant keeps
// its own append-only rate history.
type Refresher struct {
	db       *gorm.DB
	provider Provider
	rates    services.RateServicer
	currency string
	timeout  time.Duration
}

// NewRefresher creates a Refresher recording snapshots in the given local
// currency.
func NewRefresher(db *gorm.DB, provider Provider, rates services.RateServicer, currency string, timeout time.Duration) *Refresher {
	return &Refresher{
		db:       db,
		provider: provider,
		rates:    rates,
		currency: currency,
		timeout:  timeout,
	}
}

// RefreshFor fetches a fresh quote and records it as a snapshot for one
// user. Used by the on-demand refresh endpoint.
func (r *Refresher) RefreshFor(ctx context.Context, userID uint) (*models.MarketRate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	quote, err := r.provider.FetchQuote(ctx, r.currency)
	if err != nil {
		logger.Get().Errorw("Market quote fetch failed",
			"provider", r.provider.Name(),
			"currency", r.currency,
			"error", err,
		)
		return nil, apperrors.Wrap(apperrors.ErrRateFetchFailed, err)
	}

	return r.rates.RecordSnapshot(userID, quote.CurrencyPerUSD, quote.GoldPerGramUSD, "USD", models.RateSourceFetched)
}

// RefreshAll fetches one quote and records a snapshot for every active
// user. Called from the scheduler; per-user insert failures are logged and
// skipped so one bad row does not starve the rest.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	quote, err := r.provider.FetchQuote(ctx, r.currency)
	if err != nil {
		logger.Get().Errorw("Scheduled market quote fetch failed",
			"provider", r.provider.Name(),
			"currency", r.currency,
			"error", err,
		)
		return apperrors.Wrap(apperrors.ErrRateFetchFailed, err)
	}

	var userIDs []uint
	if err := r.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Pluck("id", &userIDs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recorded := 0
	for _, id := range userIDs {
		if _, err := r.rates.RecordSnapshot(id, quote.CurrencyPerUSD, quote.GoldPerGramUSD, "USD", models.RateSourceFetched); err != nil {
			logger.Get().Errorw("Failed to record fetched snapshot",
				"user_id", id,
				"error", err,
			)
			continue
		}
		recorded++
	}

	logger.Get().Infow("Market rates refreshed",
		"provider", r.provider.Name(),
		"currency", r.currency,
		"currency_per_usd", quote.CurrencyPerUSD,
		"gold_per_gram_usd", quote.GoldPerGramUSD,
		"users", recorded,
	)
	return nil
}
