package models

// RateSource indicates how a market-rate snapshot was produced.
type RateSource string

const (
	RateSourceManual  RateSource = "manual"
	RateSourceFetched RateSource = "fetched"
)

// MarketRate is a timestamped snapshot of the currency pair rate and the
// gold price per gram. Snapshots are immutable once created; the cost
// calculator always uses the latest one and each analysis captures the
// values it was computed with.
type MarketRate struct {
	Base
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	CurrencyPerUSD    float64    `gorm:"not null" json:"currency_per_usd"`
	GoldPricePerGram  float64    `gorm:"not null" json:"gold_price_per_gram"`
	GoldPriceCurrency string     `gorm:"not null;size:3" json:"gold_price_currency"`
	Source            RateSource `gorm:"not null;default:'manual'" json:"source"`
}
