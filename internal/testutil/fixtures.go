package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"milyem/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestManufacturer creates a manufacturer for the user.
func CreateTestManufacturer(t *testing.T, db *gorm.DB, userID uint) *models.Manufacturer {
	t.Helper()

	m := &models.Manufacturer{
		UserID: userID,
		Name:   fmt.Sprintf("Test Manufacturer %d", nextID()),
		City:   "Istanbul",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test manufacturer: %v", err)
	}
	return m
}

// CreateTestSnapshot creates a manual market-rate snapshot with the given
// gold price per gram in TRY.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID uint, currencyPerUSD, goldPerGram float64) *models.MarketRate {
	t.Helper()

	rate := &models.MarketRate{
		UserID:            userID,
		CurrencyPerUSD:    currencyPerUSD,
		GoldPricePerGram:  goldPerGram,
		GoldPriceCurrency: "TRY",
		Source:            models.RateSourceManual,
	}
	if err := db.Create(rate).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return rate
}

// CreateTestBatch creates a batch for the manufacturer with the given number.
func CreateTestBatch(t *testing.T, db *gorm.DB, userID, manufacturerID uint, number int) *models.Batch {
	t.Helper()

	batch := &models.Batch{
		UserID:         userID,
		ManufacturerID: manufacturerID,
		Number:         number,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("failed to create test batch: %v", err)
	}
	return batch
}

// CreateTestAnalysis creates a stored analysis with precomputed cost fields.
func CreateTestAnalysis(t *testing.T, db *gorm.DB, userID, manufacturerID uint, batchID *uint) *models.Analysis {
	t.Helper()

	analysis := &models.Analysis{
		UserID:          userID,
		ManufacturerID:  manufacturerID,
		BatchID:         batchID,
		ProductCode:     fmt.Sprintf("RING-%d", nextID()),
		ProductType:     "ring",
		Grams:           10,
		KaratLabel:      "14k",
		LaborUnit:       models.LaborUnitCurrency,
		GoldPerGramUsed: 2450,
		CurrencyPerUSD:  40,
		PurityFactor:    0.5833,
		RawMaterialCost: 14290.85,
		TotalCost:       15000,
		QuotedPrice:     16000,
		ProfitLoss:      1000,
	}
	if err := db.Create(analysis).Error; err != nil {
		t.Fatalf("failed to create test analysis: %v", err)
	}
	return analysis
}

// CreateTestSettingRate creates an owned setting-rate tier for the user.
func CreateTestSettingRate(t *testing.T, db *gorm.DB, userID uint, category models.StoneCategory, minCarat, maxCarat float64, mode models.PricingMode, price float64) *models.SettingRate {
	t.Helper()

	rate := &models.SettingRate{
		UserID:    &userID,
		Ownership: models.OwnershipOwned,
		Category:  category,
		MinCarat:  minCarat,
		MaxCarat:  maxCarat,
		Mode:      mode,
		Price:     price,
	}
	if err := db.Create(rate).Error; err != nil {
		t.Fatalf("failed to create test setting rate: %v", err)
	}
	return rate
}

// CreateTestDiamondPrice creates an owned diamond grid cell for the user.
func CreateTestDiamondPrice(t *testing.T, db *gorm.DB, userID uint, shape string, minCarat, maxCarat float64, color, clarity string, pricePerCarat float64) *models.DiamondPrice {
	t.Helper()

	price := &models.DiamondPrice{
		UserID:        &userID,
		Ownership:     models.OwnershipOwned,
		Shape:         shape,
		MinCarat:      minCarat,
		MaxCarat:      maxCarat,
		Color:         color,
		Clarity:       clarity,
		PricePerCarat: pricePerCarat,
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test diamond price: %v", err)
	}
	return price
}

// CreateTestGemstonePrice creates an owned gemstone list row for the user.
func CreateTestGemstonePrice(t *testing.T, db *gorm.DB, userID uint, stoneType string, minCarat, maxCarat, pricePerCarat float64) *models.GemstonePrice {
	t.Helper()

	price := &models.GemstonePrice{
		UserID:        &userID,
		Ownership:     models.OwnershipOwned,
		StoneType:     stoneType,
		MinCarat:      minCarat,
		MaxCarat:      maxCarat,
		PricePerCarat: pricePerCarat,
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test gemstone price: %v", err)
	}
	return price
}

// CreateSharedGemstonePrice creates a shared gemstone list row visible to
// every user.
func CreateSharedGemstonePrice(t *testing.T, db *gorm.DB, stoneType string, pricePerCarat float64) *models.GemstonePrice {
	t.Helper()

	price := &models.GemstonePrice{
		Ownership:     models.OwnershipShared,
		StoneType:     stoneType,
		PricePerCarat: pricePerCarat,
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create shared gemstone price: %v", err)
	}
	return price
}
