// Package costing computes the cost breakdown for one product from its raw
// inputs, the applicable rate-table rows and one market-rate snapshot. It is
// pure: the caller fetches all reference data up front and passes it in as
// plain values, so a computation performs no I/O and is safe to run
// concurrently for different records.
//
// All amounts are in the base (local) currency. The only conversion point is
// Snapshot.GoldPerGramLocal; nothing downstream mixes currencies.
package costing

import (
	"math"
	"strings"
)

// LaborUnit selects how the labor amount is denominated.
type LaborUnit string

const (
	LaborCurrency  LaborUnit = "currency"
	LaborGoldGrams LaborUnit = "gold_grams"
)

// Category classifies a stone line. Classification is an explicit input tag,
// never derived from the free-text stone type.
type Category string

const (
	CategoryDiamond Category = "diamond"
	CategoryColored Category = "colored"
)

// Mode selects how a setting tier's price is applied.
type Mode string

const (
	PerStone Mode = "per_stone"
	PerCarat Mode = "per_carat"
)

// Snapshot carries the market-rate values a computation runs against.
type Snapshot struct {
	CurrencyPerUSD    float64
	GoldPricePerGram  float64
	GoldPriceCurrency string
}

// GoldPerGramLocal returns the gold price per gram in the base currency,
// converting from USD quotes using the snapshot's own pair rate.
func (s Snapshot) GoldPerGramLocal() float64 {
	price := sanitize(s.GoldPricePerGram)
	if strings.EqualFold(s.GoldPriceCurrency, "USD") {
		return price * sanitize(s.CurrencyPerUSD)
	}
	return price
}

// SettingTier is one stone-setting price tier.
type SettingTier struct {
	Category Category
	MinCarat float64
	MaxCarat float64
	Mode     Mode
	Price    float64
}

// GemstoneRow is one colored-stone list price.
type GemstoneRow struct {
	StoneType     string
	Quality       string
	MinCarat      float64
	MaxCarat      float64
	PricePerCarat float64
}

// DiamondCell is one cell of the Rapaport-style price grid.
type DiamondCell struct {
	Shape         string
	MinCarat      float64
	MaxCarat      float64
	Color         string
	Clarity       string
	PricePerCarat float64
}

// DiscountTier is the default grid discount for a diamond carat range.
type DiscountTier struct {
	MinCarat        float64
	MaxCarat        float64
	DiscountPercent float64
}

// Tables holds the reference rows consulted during a computation. All four
// sets are read-only.
type Tables struct {
	SettingTiers     []SettingTier
	Gemstones        []GemstoneRow
	DiamondGrid      []DiamondCell
	DiamondDiscounts []DiscountTier
}

// Stone is one stone line input.
type Stone struct {
	StoneType string
	Category  Category
	Carat     float64
	Quantity  int

	// Diamond grid attributes; the grid is consulted only when all three
	// are present.
	Shape   string
	Color   string
	Clarity string

	// Overrides the discount tier when set.
	DiscountPercent *float64
}

// Input holds one product's raw inputs. Grams, stone carats and quantities
// must be validated positive before calling Compute; everything else
// degrades to a zero contribution rather than failing.
type Input struct {
	Grams             float64
	PurityFactor      float64
	FirePercent       float64
	LaborAmount       float64
	LaborUnit         LaborUnit
	PolishAmount      float64
	CertificateAmount float64
	QuotedPrice       float64
	Stones            []Stone
}

// StoneResult is the computed contribution of one stone line.
type StoneResult struct {
	PricePerCarat float64
	SettingCost   float64
	TotalCost     float64
}

// Result is the complete cost breakdown in the base currency. ProfitLoss is
// positive when the quoted price exceeds the computed cost (profit).
type Result struct {
	GoldPerGram     float64
	RawMaterialCost float64
	LaborCost       float64
	SettingCost     float64
	StoneCost       float64
	TotalCost       float64
	QuotedPrice     float64
	ProfitLoss      float64
	Stones          []StoneResult
}

// sanitize maps NaN and infinities to zero so malformed inputs never
// propagate into totals.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Compute produces the full cost breakdown for one product. It is
// deterministic: the same inputs, snapshot and tables always yield identical
// output. Stone lines are evaluated independently of each other.
func Compute(in Input, snap Snapshot, tables Tables) Result {
	goldPerGram := snap.GoldPerGramLocal()

	grams := sanitize(in.Grams)
	purity := sanitize(in.PurityFactor)
	fire := sanitize(in.FirePercent)

	rawMaterial := grams * (1 + fire/100) * goldPerGram * purity

	labor := sanitize(in.LaborAmount)
	if in.LaborUnit == LaborGoldGrams {
		labor *= goldPerGram
	}
	labor += sanitize(in.PolishAmount) + sanitize(in.CertificateAmount)

	result := Result{
		GoldPerGram:     goldPerGram,
		RawMaterialCost: rawMaterial,
		LaborCost:       labor,
		QuotedPrice:     sanitize(in.QuotedPrice),
		Stones:          make([]StoneResult, 0, len(in.Stones)),
	}

	for _, stone := range in.Stones {
		sr := computeStone(stone, tables)
		result.SettingCost += sr.SettingCost
		result.StoneCost += sr.TotalCost
		result.Stones = append(result.Stones, sr)
	}

	result.TotalCost = result.RawMaterialCost + result.LaborCost + result.SettingCost + result.StoneCost
	result.ProfitLoss = result.QuotedPrice - result.TotalCost
	return result
}

// computeStone resolves one stone line: setting cost from the tier table and
// material cost from the diamond grid or the gemstone list. Lookup misses
// contribute zero, never an error.
func computeStone(stone Stone, tables Tables) StoneResult {
	carat := sanitize(stone.Carat)
	qty := float64(stone.Quantity)
	if qty < 0 {
		qty = 0
	}

	var sr StoneResult

	if tier, ok := findSettingTier(tables.SettingTiers, stone.Category, carat); ok {
		switch tier.Mode {
		case PerCarat:
			sr.SettingCost = sanitize(tier.Price) * carat * qty
		default:
			sr.SettingCost = sanitize(tier.Price) * qty
		}
	}

	if stone.Category == CategoryDiamond && stone.Shape != "" && stone.Color != "" && stone.Clarity != "" {
		if cell, ok := findDiamondCell(tables.DiamondGrid, stone, carat); ok {
			discount := discountFor(tables.DiamondDiscounts, stone, carat)
			sr.PricePerCarat = sanitize(cell.PricePerCarat) * (1 - discount/100)
			sr.TotalCost = sr.PricePerCarat * carat * qty
			return sr
		}
	}

	// Gemstone list fallback: used for every colored stone and for diamonds
	// without a grid match or with incomplete grid attributes.
	if row, ok := findGemstoneRow(tables.Gemstones, stone.StoneType, carat); ok {
		sr.PricePerCarat = sanitize(row.PricePerCarat)
		sr.TotalCost = sr.PricePerCarat * carat * qty
	}
	return sr
}

// findSettingTier returns the first tier whose category matches and whose
// carat range contains the carat size. Bounds are inclusive.
func findSettingTier(tiers []SettingTier, category Category, carat float64) (SettingTier, bool) {
	for _, t := range tiers {
		if t.Category == category && carat >= t.MinCarat && carat <= t.MaxCarat {
			return t, true
		}
	}
	return SettingTier{}, false
}

// findDiamondCell returns the grid cell matching the stone's shape, color
// and clarity exactly (case-insensitive) with the carat in range.
func findDiamondCell(grid []DiamondCell, stone Stone, carat float64) (DiamondCell, bool) {
	for _, c := range grid {
		if strings.EqualFold(c.Shape, stone.Shape) &&
			strings.EqualFold(c.Color, stone.Color) &&
			strings.EqualFold(c.Clarity, stone.Clarity) &&
			carat >= c.MinCarat && carat <= c.MaxCarat {
			return c, true
		}
	}
	return DiamondCell{}, false
}

// discountFor resolves the discount percent for a diamond line: the line's
// own discount when set, otherwise the tier containing the carat size,
// otherwise zero.
func discountFor(tiers []DiscountTier, stone Stone, carat float64) float64 {
	if stone.DiscountPercent != nil {
		return sanitize(*stone.DiscountPercent)
	}
	for _, t := range tiers {
		if carat >= t.MinCarat && carat <= t.MaxCarat {
			return sanitize(t.DiscountPercent)
		}
	}
	return 0
}

// findGemstoneRow returns the list price row for a stone type. Among rows of
// the matching type, a row whose carat range contains the carat size wins;
// otherwise the first type match is used.
func findGemstoneRow(rows []GemstoneRow, stoneType string, carat float64) (GemstoneRow, bool) {
	var fallback GemstoneRow
	found := false
	for _, r := range rows {
		if !strings.EqualFold(r.StoneType, stoneType) {
			continue
		}
		if r.MaxCarat > 0 && carat >= r.MinCarat && carat <= r.MaxCarat {
			return r, true
		}
		if !found {
			fallback = r
			found = true
		}
	}
	return fallback, found
}
