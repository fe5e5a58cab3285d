// Package marketdata fetches live gold and currency quotes from external
// sources and turns them into market-rate snapshots.
package marketdata

import (
	"context"
	"time"
)

// GramsPerTroyOunce converts the spot gold quote, which is priced per troy
// ounce, to a per-gram price.
const GramsPerTroyOunce = 31.1034768

// Quote is one fetched market observation: how many units of the local
// currency one US dollar buys, and the USD gold price per gram.
type Quote struct {
	CurrencyPerUSD float64
	GoldPerGramUSD float64
	FetchedAt      time.Time
}

// Provider fetches a current market quote for the given local currency code.
type Provider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance").
	Name() string

	// FetchQuote fetches the USD exchange rate for the currency and the
	// current gold price. Both legs must succeed for the quote to be usable.
	FetchQuote(ctx context.Context, currency string) (*Quote, error)
}
