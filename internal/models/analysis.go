package models

// LaborUnit selects how an analysis' labor amount is denominated.
type LaborUnit string

const (
	LaborUnitCurrency  LaborUnit = "currency"
	LaborUnitGoldGrams LaborUnit = "gold_grams"
)

// Analysis is one cost analysis for one physical product. All derived cost
// fields are a deterministic function of the raw inputs plus the market-rate
// values captured at computation time: recomputing with the same inputs and
// the same snapshot reproduces identical output.
//
// ProfitLoss is positive when the manufacturer's quoted price exceeds the
// computed cost, i.e. positive means profit.
type Analysis struct {
	Base
	UserID         uint  `gorm:"not null;index" json:"user_id"`
	ManufacturerID uint  `gorm:"not null;index" json:"manufacturer_id"`
	BatchID        *uint `gorm:"index" json:"batch_id,omitempty"`

	// Raw inputs
	ProductCode       string    `gorm:"not null" json:"product_code"`
	ProductType       string    `json:"product_type"`
	Grams             float64   `gorm:"not null" json:"grams"`
	KaratLabel        string    `gorm:"not null" json:"karat_label"`
	FirePercent       float64   `json:"fire_percent"`
	LaborAmount       float64   `json:"labor_amount"`
	LaborUnit         LaborUnit `gorm:"not null;default:'currency'" json:"labor_unit"`
	PolishAmount      float64   `json:"polish_amount"`
	CertificateAmount float64   `json:"certificate_amount"`
	QuotedPrice       float64   `json:"quoted_price"`

	// Market-rate values captured at computation time, in base currency.
	MarketRateID     *uint   `json:"market_rate_id,omitempty"`
	GoldPerGramUsed  float64 `json:"gold_per_gram_used"`
	CurrencyPerUSD   float64 `json:"currency_per_usd"`

	// Derived cost fields, in base currency.
	PurityFactor    float64 `json:"purity_factor"`
	RawMaterialCost float64 `json:"raw_material_cost"`
	LaborCost       float64 `json:"labor_cost"`
	SettingCost     float64 `json:"setting_cost"`
	StoneCost       float64 `json:"stone_cost"`
	TotalCost       float64 `json:"total_cost"`
	ProfitLoss      float64 `json:"profit_loss"`

	// Relationships
	Manufacturer Manufacturer `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Batch        *Batch       `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	Stones       []StoneLine  `gorm:"foreignKey:AnalysisID;constraint:OnDelete:CASCADE" json:"stones"`
}

// StoneLine is one stone entry within an analysis. Lines are owned
// exclusively by their parent: they are replaced wholesale when the parent
// is recomputed and removed when the parent is deleted.
type StoneLine struct {
	Base
	AnalysisID uint          `gorm:"not null;index" json:"analysis_id"`
	StoneType  string        `gorm:"not null" json:"stone_type"`
	Category   StoneCategory `gorm:"not null" json:"category"`
	Carat      float64       `gorm:"not null" json:"carat"`
	Quantity   int           `gorm:"not null" json:"quantity"`

	// Diamond grid attributes, all three required for a grid lookup.
	Shape   string `json:"shape,omitempty"`
	Color   string `json:"color,omitempty"`
	Clarity string `json:"clarity,omitempty"`

	// Overrides the discount tier when set.
	DiscountPercent *float64 `json:"discount_percent,omitempty"`

	// Computed fields, in base currency.
	PricePerCarat float64 `json:"price_per_carat"`
	SettingCost   float64 `json:"setting_cost"`
	TotalCost     float64 `json:"total_cost"`
}
