package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
	"milyem/internal/services"
)

type mockRateService struct {
	recordSnapshotFn func(userID uint, currencyPerUSD, goldPricePerGram float64, goldPriceCurrency string, source models.RateSource) (*models.MarketRate, error)
	latestSnapshotFn func(userID uint) (*models.MarketRate, error)
	getSnapshotsFn   func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MarketRate], error)
}

func (m *mockRateService) RecordSnapshot(userID uint, currencyPerUSD, goldPricePerGram float64, goldPriceCurrency string, source models.RateSource) (*models.MarketRate, error) {
	if m.recordSnapshotFn != nil {
		return m.recordSnapshotFn(userID, currencyPerUSD, goldPricePerGram, goldPriceCurrency, source)
	}
	return &models.MarketRate{
		UserID:            userID,
		CurrencyPerUSD:    currencyPerUSD,
		GoldPricePerGram:  goldPricePerGram,
		GoldPriceCurrency: goldPriceCurrency,
		Source:            source,
	}, nil
}

func (m *mockRateService) LatestSnapshot(userID uint) (*models.MarketRate, error) {
	if m.latestSnapshotFn != nil {
		return m.latestSnapshotFn(userID)
	}
	return &models.MarketRate{}, nil
}

func (m *mockRateService) GetSnapshots(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MarketRate], error) {
	if m.getSnapshotsFn != nil {
		return m.getSnapshotsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.MarketRate{}, 1, 20, 0)
	return &resp, nil
}

var _ services.RateServicer = (*mockRateService)(nil)

type mockRateRefresher struct {
	refreshForFn func(ctx context.Context, userID uint) (*models.MarketRate, error)
}

func (m *mockRateRefresher) RefreshFor(ctx context.Context, userID uint) (*models.MarketRate, error) {
	return m.refreshForFn(ctx, userID)
}

var _ RateRefresher = (*mockRateRefresher)(nil)

func setupRateRouter(handler *RateHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/rates", handler.RecordRate)
	auth.GET("/rates", handler.GetRates)
	auth.GET("/rates/latest", handler.GetLatestRate)
	auth.POST("/rates/refresh", handler.RefreshRate)
	return r
}

func TestRateHandler_RecordRate(t *testing.T) {
	t.Run("returns 201 and records a manual snapshot", func(t *testing.T) {
		var capturedSource models.RateSource
		svc := &mockRateService{
			recordSnapshotFn: func(userID uint, currencyPerUSD, goldPricePerGram float64, goldPriceCurrency string, source models.RateSource) (*models.MarketRate, error) {
				capturedSource = source
				return &models.MarketRate{
					Base:              models.Base{ID: 1},
					UserID:            userID,
					CurrencyPerUSD:    currencyPerUSD,
					GoldPricePerGram:  goldPricePerGram,
					GoldPriceCurrency: goldPriceCurrency,
					Source:            source,
				}, nil
			},
		}
		r := setupRateRouter(NewRateHandler(svc, nil, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates",
			`{"currency_per_usd":40.5,"gold_price_per_gram":3150.75,"gold_price_currency":"TRY"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedSource != models.RateSourceManual {
			t.Errorf("expected manual source, got %s", capturedSource)
		}
		body := parseJSON(t, rec)
		rate, ok := body["rate"].(map[string]any)
		if !ok {
			t.Fatalf("expected rate object in response: %v", body)
		}
		if rate["currency_per_usd"] != 40.5 {
			t.Errorf("expected currency_per_usd 40.5, got %v", rate["currency_per_usd"])
		}
	})

	t.Run("returns 400 on non-positive rate", func(t *testing.T) {
		r := setupRateRouter(NewRateHandler(&mockRateService{}, nil, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates",
			`{"currency_per_usd":0,"gold_price_per_gram":3150,"gold_price_currency":"TRY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad currency code", func(t *testing.T) {
		r := setupRateRouter(NewRateHandler(&mockRateService{}, nil, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates",
			`{"currency_per_usd":40,"gold_price_per_gram":3150,"gold_price_currency":"turkish lira"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRateHandler_GetLatestRate(t *testing.T) {
	t.Run("returns the latest snapshot", func(t *testing.T) {
		svc := &mockRateService{
			latestSnapshotFn: func(_ uint) (*models.MarketRate, error) {
				return &models.MarketRate{
					Base:              models.Base{ID: 9},
					CurrencyPerUSD:    41,
					GoldPricePerGram:  3200,
					GoldPriceCurrency: "TRY",
					Source:            models.RateSourceManual,
				}, nil
			},
		}
		r := setupRateRouter(NewRateHandler(svc, nil, &mockAuditService{}))

		rec := doRequest(r, "GET", "/rates/latest", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := parseJSON(t, rec)
		rate, ok := body["rate"].(map[string]any)
		if !ok {
			t.Fatalf("expected rate object in response: %v", body)
		}
		if rate["gold_price_per_gram"] != float64(3200) {
			t.Errorf("expected gold_price_per_gram 3200, got %v", rate["gold_price_per_gram"])
		}
	})

	t.Run("returns 409 when no snapshot exists", func(t *testing.T) {
		svc := &mockRateService{
			latestSnapshotFn: func(_ uint) (*models.MarketRate, error) {
				return nil, apperrors.ErrNoMarketRate
			},
		}
		r := setupRateRouter(NewRateHandler(svc, nil, &mockAuditService{}))

		rec := doRequest(r, "GET", "/rates/latest", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_MARKET_RATE")
	})
}

func TestRateHandler_RefreshRate(t *testing.T) {
	t.Run("returns 201 with the fetched snapshot", func(t *testing.T) {
		refresher := &mockRateRefresher{
			refreshForFn: func(_ context.Context, userID uint) (*models.MarketRate, error) {
				return &models.MarketRate{
					Base:              models.Base{ID: 12},
					UserID:            userID,
					CurrencyPerUSD:    40.2,
					GoldPricePerGram:  77.15,
					GoldPriceCurrency: "USD",
					Source:            models.RateSourceFetched,
				}, nil
			},
		}
		r := setupRateRouter(NewRateHandler(&mockRateService{}, refresher, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates/refresh", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseJSON(t, rec)
		rate, ok := body["rate"].(map[string]any)
		if !ok {
			t.Fatalf("expected rate object in response: %v", body)
		}
		if rate["source"] != string(models.RateSourceFetched) {
			t.Errorf("expected fetched source, got %v", rate["source"])
		}
	})

	t.Run("returns 502 when the provider fails", func(t *testing.T) {
		refresher := &mockRateRefresher{
			refreshForFn: func(_ context.Context, _ uint) (*models.MarketRate, error) {
				return nil, apperrors.ErrRateFetchFailed
			},
		}
		r := setupRateRouter(NewRateHandler(&mockRateService{}, refresher, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates/refresh", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RATE_FETCH_FAILED")
	})

	t.Run("returns 502 when no refresher is wired", func(t *testing.T) {
		r := setupRateRouter(NewRateHandler(&mockRateService{}, nil, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rates/refresh", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}
