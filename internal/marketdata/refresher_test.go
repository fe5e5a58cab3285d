package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"milyem/internal/models"
	"milyem/internal/services"
	"milyem/internal/testutil"
)

type stubProvider struct {
	quote *Quote
	err   error
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchQuote(_ context.Context, _ string) (*Quote, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.quote, nil
}

var _ Provider = (*stubProvider)(nil)

func TestRefreshFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	rates := services.NewRateService(db)

	t.Run("records a fetched USD snapshot", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		provider := &stubProvider{quote: &Quote{CurrencyPerUSD: 40.2, GoldPerGramUSD: 77.15, FetchedAt: time.Now()}}
		r := NewRefresher(db, provider, rates, "TRY", time.Second)

		rate, err := r.RefreshFor(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if rate.UserID != user.ID {
			t.Errorf("expected snapshot for user %d, got %d", user.ID, rate.UserID)
		}
		if rate.GoldPriceCurrency != "USD" {
			t.Errorf("expected USD quote currency, got %s", rate.GoldPriceCurrency)
		}
		if rate.Source != models.RateSourceFetched {
			t.Errorf("expected fetched source, got %s", rate.Source)
		}
		if rate.CurrencyPerUSD != 40.2 || rate.GoldPricePerGram != 77.15 {
			t.Errorf("unexpected snapshot values: %+v", rate)
		}
	})

	t.Run("wraps provider failures", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		provider := &stubProvider{err: errors.New("upstream timeout")}
		r := NewRefresher(db, provider, rates, "TRY", time.Second)

		_, err := r.RefreshFor(context.Background(), user.ID)
		testutil.AssertAppError(t, err, "RATE_FETCH_FAILED")
	})
}

func TestRefreshAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	rates := services.NewRateService(db)

	t.Run("fans one quote out to every active user", func(t *testing.T) {
		u1 := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		inactive := testutil.CreateTestUser(t, db)
		if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		provider := &stubProvider{quote: &Quote{CurrencyPerUSD: 41, GoldPerGramUSD: 78, FetchedAt: time.Now()}}
		r := NewRefresher(db, provider, rates, "TRY", time.Second)

		testutil.AssertNoError(t, r.RefreshAll(context.Background()))

		if provider.calls != 1 {
			t.Errorf("expected a single provider fetch, got %d", provider.calls)
		}
		for _, u := range []uint{u1.ID, u2.ID} {
			latest, err := rates.LatestSnapshot(u)
			testutil.AssertNoError(t, err)
			if latest.GoldPricePerGram != 78 {
				t.Errorf("user %d: expected gold price 78, got %f", u, latest.GoldPricePerGram)
			}
		}
		_, err := rates.LatestSnapshot(inactive.ID)
		testutil.AssertAppError(t, err, "NO_MARKET_RATE")
	})

	t.Run("fails fast when the provider is down", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("connection refused")}
		r := NewRefresher(db, provider, rates, "TRY", time.Second)

		err := r.RefreshAll(context.Background())
		testutil.AssertAppError(t, err, "RATE_FETCH_FAILED")
	})
}
