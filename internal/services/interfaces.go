package services

import (
	"milyem/internal/costing"
	"milyem/internal/models"
	"milyem/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName, companyName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ManufacturerServicer defines the contract for manufacturer-related business logic.
type ManufacturerServicer interface {
	CreateManufacturer(userID uint, name, contactEmail, phone, city, notes string) (*models.Manufacturer, error)
	GetUserManufacturers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Manufacturer], error)
	GetManufacturerByID(userID, manufacturerID uint) (*models.Manufacturer, error)
	UpdateManufacturer(userID, manufacturerID uint, name, contactEmail, phone, city, notes string) (*models.Manufacturer, error)
	DeleteManufacturer(userID, manufacturerID uint) error
}

// RateServicer defines the contract for market-rate snapshots. Snapshots are
// append-only: there is no update or delete.
type RateServicer interface {
	RecordSnapshot(userID uint, currencyPerUSD, goldPricePerGram float64, goldPriceCurrency string, source models.RateSource) (*models.MarketRate, error)
	LatestSnapshot(userID uint) (*models.MarketRate, error)
	GetSnapshots(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MarketRate], error)
}

// ReferenceServicer defines the contract for the rate reference tables
// consulted by the cost calculator. Reads return the caller's owned rows
// plus shared rows; writes always produce owned rows.
type ReferenceServicer interface {
	CreateLaborRate(userID uint, productType string, pricePerGram float64) (*models.LaborRate, error)
	ListLaborRates(userID uint) ([]models.LaborRate, error)
	UpdateLaborRate(userID, id uint, productType string, pricePerGram float64) (*models.LaborRate, error)
	DeleteLaborRate(userID, id uint) error

	CreatePolishRate(userID uint, productType string, price float64) (*models.PolishRate, error)
	ListPolishRates(userID uint) ([]models.PolishRate, error)
	UpdatePolishRate(userID, id uint, productType string, price float64) (*models.PolishRate, error)
	DeletePolishRate(userID, id uint) error

	CreateSettingRate(userID uint, category models.StoneCategory, minCarat, maxCarat float64, mode models.PricingMode, price float64) (*models.SettingRate, error)
	ListSettingRates(userID uint) ([]models.SettingRate, error)
	UpdateSettingRate(userID, id uint, category models.StoneCategory, minCarat, maxCarat float64, mode models.PricingMode, price float64) (*models.SettingRate, error)
	DeleteSettingRate(userID, id uint) error

	CreateGemstonePrice(userID uint, stoneType, quality string, minCarat, maxCarat, pricePerCarat float64) (*models.GemstonePrice, error)
	ListGemstonePrices(userID uint) ([]models.GemstonePrice, error)
	UpdateGemstonePrice(userID, id uint, stoneType, quality string, minCarat, maxCarat, pricePerCarat float64) (*models.GemstonePrice, error)
	DeleteGemstonePrice(userID, id uint) error

	CreateDiamondPrice(userID uint, shape string, minCarat, maxCarat float64, color, clarity string, pricePerCarat float64) (*models.DiamondPrice, error)
	ListDiamondPrices(userID uint) ([]models.DiamondPrice, error)
	UpdateDiamondPrice(userID, id uint, shape string, minCarat, maxCarat float64, color, clarity string, pricePerCarat float64) (*models.DiamondPrice, error)
	DeleteDiamondPrice(userID, id uint) error

	CreateDiamondDiscount(userID uint, minCarat, maxCarat, discountPercent float64) (*models.DiamondDiscount, error)
	ListDiamondDiscounts(userID uint) ([]models.DiamondDiscount, error)
	UpdateDiamondDiscount(userID, id uint, minCarat, maxCarat, discountPercent float64) (*models.DiamondDiscount, error)
	DeleteDiamondDiscount(userID, id uint) error

	// LoadTables assembles the calculator's reference tables from the rows
	// visible to the user.
	LoadTables(userID uint) (costing.Tables, error)
}

// StoneLineInput is one stone line as submitted by the caller.
type StoneLineInput struct {
	StoneType       string
	Category        models.StoneCategory
	Carat           float64
	Quantity        int
	Shape           string
	Color           string
	Clarity         string
	DiscountPercent *float64
}

// AnalysisInput holds the raw inputs for creating or recomputing an analysis.
type AnalysisInput struct {
	ManufacturerID    uint
	BatchID           *uint
	ProductCode       string
	ProductType       string
	Grams             float64
	KaratLabel        string
	FirePercent       float64
	LaborAmount       float64
	LaborUnit         models.LaborUnit
	PolishAmount      float64
	CertificateAmount float64
	QuotedPrice       float64
	Stones            []StoneLineInput
}

// AnalysisFilter holds optional filter parameters for listing analyses.
type AnalysisFilter struct {
	ManufacturerID *uint
	BatchID        *uint
	ProductCode    *string
}

// AnalysisServicer defines the contract for cost analyses. Create and update
// run the cost calculator against the latest market-rate snapshot and
// persist the analysis together with its stone lines in one transaction;
// update replaces all stone lines.
type AnalysisServicer interface {
	CreateAnalysis(userID uint, in AnalysisInput) (*models.Analysis, error)
	GetAnalysisByID(userID, analysisID uint) (*models.Analysis, error)
	GetUserAnalyses(userID uint, page pagination.PageRequest, filter AnalysisFilter) (*pagination.PageResponse[models.Analysis], error)
	UpdateAnalysis(userID, analysisID uint, in AnalysisInput) (*models.Analysis, error)
	DeleteAnalysis(userID, analysisID uint) error
}

// BatchSummary contains aggregated totals for a batch. TotalCost is the sum
// of the member analyses' total costs; no record is counted twice or
// omitted.
type BatchSummary struct {
	BatchID         uint    `json:"batch_id"`
	Number          int     `json:"number"`
	AnalysisCount   int     `json:"analysis_count"`
	TotalCost       float64 `json:"total_cost"`
	TotalQuoted     float64 `json:"total_quoted"`
	TotalProfitLoss float64 `json:"total_profit_loss"`
}

// BatchServicer defines the contract for batch-related business logic.
type BatchServicer interface {
	CreateBatch(userID, manufacturerID uint, note string) (*models.Batch, error)
	GetUserBatches(userID uint, page pagination.PageRequest, manufacturerID *uint) (*pagination.PageResponse[models.Batch], error)
	GetBatchByID(userID, batchID uint) (*models.Batch, error)
	DeleteBatch(userID, batchID uint) error
	GetBatchSummary(userID, batchID uint) (*BatchSummary, error)
}

// ReportServicer defines the contract for rendering and dispatching reports
// of already-computed analyses. Reports never recompute costs.
type ReportServicer interface {
	BatchPDF(userID, batchID uint) ([]byte, error)
	AnalysesExcel(userID uint, filter AnalysisFilter) ([]byte, error)
	AnalysesCSV(userID uint, filter AnalysisFilter) ([]byte, error)
	EmailBatchReport(userID, batchID uint, recipient string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
