package models

// StoneCategory classifies a stone line explicitly instead of inferring it
// from the free-text stone type.
type StoneCategory string

const (
	StoneCategoryDiamond StoneCategory = "diamond"
	StoneCategoryColored StoneCategory = "colored"
)

// PricingMode selects how a setting-rate tier is applied.
type PricingMode string

const (
	PricingPerStone PricingMode = "per_stone"
	PricingPerCarat PricingMode = "per_carat"
)

// LaborRate holds the labor charge per gram for a product type. Used by the
// UI to prefill analysis labor inputs.
type LaborRate struct {
	Base
	UserID       *uint     `gorm:"index" json:"user_id,omitempty"`
	Ownership    Ownership `gorm:"not null;default:'owned'" json:"ownership"`
	ProductType  string    `gorm:"not null" json:"product_type"`
	PricePerGram float64   `gorm:"not null" json:"price_per_gram"`
}

// PolishRate holds the polish charge for a product type.
type PolishRate struct {
	Base
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	Ownership   Ownership `gorm:"not null;default:'owned'" json:"ownership"`
	ProductType string    `gorm:"not null" json:"product_type"`
	Price       float64   `gorm:"not null" json:"price"`
}

// SettingRate is a stone-setting ("mihlama") price tier. A stone line falls
// into the tier whose carat range contains its carat size, matched on
// category; the price applies per stone or per carat depending on Mode.
type SettingRate struct {
	Base
	UserID    *uint         `gorm:"index" json:"user_id,omitempty"`
	Ownership Ownership     `gorm:"not null;default:'owned'" json:"ownership"`
	Category  StoneCategory `gorm:"not null" json:"category"`
	MinCarat  float64       `gorm:"not null" json:"min_carat"`
	MaxCarat  float64       `gorm:"not null" json:"max_carat"`
	Mode      PricingMode   `gorm:"not null" json:"mode"`
	Price     float64       `gorm:"not null" json:"price"`
}

// GemstonePrice is a per-carat list price for a colored stone, optionally
// refined by quality and carat range.
type GemstonePrice struct {
	Base
	UserID        *uint     `gorm:"index" json:"user_id,omitempty"`
	Ownership     Ownership `gorm:"not null;default:'owned'" json:"ownership"`
	StoneType     string    `gorm:"not null;index" json:"stone_type"`
	Quality       string    `json:"quality"`
	MinCarat      float64   `json:"min_carat"`
	MaxCarat      float64   `json:"max_carat"`
	PricePerCarat float64   `gorm:"not null" json:"price_per_carat"`
}

// DiamondPrice is one cell of the Rapaport-style grid: price per carat keyed
// by shape, carat range, color and clarity.
type DiamondPrice struct {
	Base
	UserID        *uint     `gorm:"index" json:"user_id,omitempty"`
	Ownership     Ownership `gorm:"not null;default:'owned'" json:"ownership"`
	Shape         string    `gorm:"not null" json:"shape"`
	MinCarat      float64   `gorm:"not null" json:"min_carat"`
	MaxCarat      float64   `gorm:"not null" json:"max_carat"`
	Color         string    `gorm:"not null" json:"color"`
	Clarity       string    `gorm:"not null" json:"clarity"`
	PricePerCarat float64   `gorm:"not null" json:"price_per_carat"`
}

// DiamondDiscount is the default discount percentage applied to grid prices
// for diamonds in a carat range. A stone line's own discount, when present,
// overrides the tier.
type DiamondDiscount struct {
	Base
	UserID          *uint     `gorm:"index" json:"user_id,omitempty"`
	Ownership       Ownership `gorm:"not null;default:'owned'" json:"ownership"`
	MinCarat        float64   `gorm:"not null" json:"min_carat"`
	MaxCarat        float64   `gorm:"not null" json:"max_carat"`
	DiscountPercent float64   `gorm:"not null" json:"discount_percent"`
}
