package services

import (
	"errors"

	"gorm.io/gorm"

	"milyem/internal/costing"
	apperrors "milyem/internal/errors"
	"milyem/internal/models"
)

// referenceService handles the rate reference tables. Visibility follows the
// ownership column: reads return shared rows plus the caller's owned rows,
// writes always produce owned rows, and shared rows can be neither edited
// nor deleted through the API.
type referenceService struct {
	db *gorm.DB
}

// NewReferenceService creates a new ReferenceServicer.
func NewReferenceService(db *gorm.DB) ReferenceServicer {
	return &referenceService{db: db}
}

// listVisible returns shared rows plus the user's owned rows for one table.
func listVisible[T any](db *gorm.DB, userID uint) ([]T, error) {
	var rows []T
	if err := db.Where("ownership = ? OR user_id = ?", models.OwnershipShared, userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// deleteOwned removes a row the user owns. Shared rows are rejected.
func deleteOwned[T any](db *gorm.DB, userID, id uint) error {
	var shared int64
	if err := db.Model(new(T)).Where("id = ? AND ownership = ?", id, models.OwnershipShared).
		Count(&shared).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if shared > 0 {
		return apperrors.ErrSharedReadOnly
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRateRowNotFound
	}
	return nil
}

// getOwned loads a row the user owns for editing. Shared rows are rejected
// the same way deletes reject them.
func getOwned[T any](db *gorm.DB, userID, id uint) (*T, error) {
	var shared int64
	if err := db.Model(new(T)).Where("id = ? AND ownership = ?", id, models.OwnershipShared).
		Count(&shared).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if shared > 0 {
		return nil, apperrors.ErrSharedReadOnly
	}

	var row T
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRateRowNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

func owned(userID uint) (*uint, models.Ownership) {
	id := userID
	return &id, models.OwnershipOwned
}

// CreateLaborRate creates an owned labor-per-gram rate.
func (s *referenceService) CreateLaborRate(userID uint, productType string, pricePerGram float64) (*models.LaborRate, error) {
	if productType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_type is required")
	}
	uid, ownership := owned(userID)
	row := &models.LaborRate{UserID: uid, Ownership: ownership, ProductType: productType, PricePerGram: pricePerGram}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateLaborRate updates an owned labor rate. Shared rows are rejected.
func (s *referenceService) UpdateLaborRate(userID, id uint, productType string, pricePerGram float64) (*models.LaborRate, error) {
	if productType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_type is required")
	}
	row, err := getOwned[models.LaborRate](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.ProductType = productType
	row.PricePerGram = pricePerGram
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListLaborRates lists labor rates visible to the user.
func (s *referenceService) ListLaborRates(userID uint) ([]models.LaborRate, error) {
	return listVisible[models.LaborRate](s.db, userID)
}

// DeleteLaborRate deletes an owned labor rate.
func (s *referenceService) DeleteLaborRate(userID, id uint) error {
	return deleteOwned[models.LaborRate](s.db, userID, id)
}

// CreatePolishRate creates an owned polish rate.
func (s *referenceService) CreatePolishRate(userID uint, productType string, price float64) (*models.PolishRate, error) {
	if productType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_type is required")
	}
	uid, ownership := owned(userID)
	row := &models.PolishRate{UserID: uid, Ownership: ownership, ProductType: productType, Price: price}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdatePolishRate updates an owned polish rate. Shared rows are rejected.
func (s *referenceService) UpdatePolishRate(userID, id uint, productType string, price float64) (*models.PolishRate, error) {
	if productType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product_type is required")
	}
	row, err := getOwned[models.PolishRate](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.ProductType = productType
	row.Price = price
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListPolishRates lists polish rates visible to the user.
func (s *referenceService) ListPolishRates(userID uint) ([]models.PolishRate, error) {
	return listVisible[models.PolishRate](s.db, userID)
}

// DeletePolishRate deletes an owned polish rate.
func (s *referenceService) DeletePolishRate(userID, id uint) error {
	return deleteOwned[models.PolishRate](s.db, userID, id)
}

// CreateSettingRate creates an owned setting-rate tier.
func (s *referenceService) CreateSettingRate(userID uint, category models.StoneCategory, minCarat, maxCarat float64, mode models.PricingMode, price float64) (*models.SettingRate, error) {
	if maxCarat < minCarat {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_carat must not be below min_carat")
	}
	uid, ownership := owned(userID)
	row := &models.SettingRate{UserID: uid, Ownership: ownership, Category: category, MinCarat: minCarat, MaxCarat: maxCarat, Mode: mode, Price: price}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateSettingRate updates an owned setting tier. Shared rows are rejected.
func (s *referenceService) UpdateSettingRate(userID, id uint, category models.StoneCategory, minCarat, maxCarat float64, mode models.PricingMode, price float64) (*models.SettingRate, error) {
	if maxCarat < minCarat {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_carat must not be below min_carat")
	}
	row, err := getOwned[models.SettingRate](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.Category = category
	row.MinCarat = minCarat
	row.MaxCarat = maxCarat
	row.Mode = mode
	row.Price = price
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListSettingRates lists setting tiers visible to the user.
func (s *referenceService) ListSettingRates(userID uint) ([]models.SettingRate, error) {
	return listVisible[models.SettingRate](s.db, userID)
}

// DeleteSettingRate deletes an owned setting tier.
func (s *referenceService) DeleteSettingRate(userID, id uint) error {
	return deleteOwned[models.SettingRate](s.db, userID, id)
}

// CreateGemstonePrice creates an owned gemstone list price.
func (s *referenceService) CreateGemstonePrice(userID uint, stoneType, quality string, minCarat, maxCarat, pricePerCarat float64) (*models.GemstonePrice, error) {
	if stoneType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "stone_type is required")
	}
	uid, ownership := owned(userID)
	row := &models.GemstonePrice{UserID: uid, Ownership: ownership, StoneType: stoneType, Quality: quality, MinCarat: minCarat, MaxCarat: maxCarat, PricePerCarat: pricePerCarat}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateGemstonePrice updates an owned gemstone price. Shared rows are rejected.
func (s *referenceService) UpdateGemstonePrice(userID, id uint, stoneType, quality string, minCarat, maxCarat, pricePerCarat float64) (*models.GemstonePrice, error) {
	if stoneType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "stone_type is required")
	}
	row, err := getOwned[models.GemstonePrice](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.StoneType = stoneType
	row.Quality = quality
	row.MinCarat = minCarat
	row.MaxCarat = maxCarat
	row.PricePerCarat = pricePerCarat
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListGemstonePrices lists gemstone prices visible to the user.
func (s *referenceService) ListGemstonePrices(userID uint) ([]models.GemstonePrice, error) {
	return listVisible[models.GemstonePrice](s.db, userID)
}

// DeleteGemstonePrice deletes an owned gemstone price.
func (s *referenceService) DeleteGemstonePrice(userID, id uint) error {
	return deleteOwned[models.GemstonePrice](s.db, userID, id)
}

// CreateDiamondPrice creates an owned diamond grid cell.
func (s *referenceService) CreateDiamondPrice(userID uint, shape string, minCarat, maxCarat float64, color, clarity string, pricePerCarat float64) (*models.DiamondPrice, error) {
	if shape == "" || color == "" || clarity == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shape, color and clarity are required")
	}
	uid, ownership := owned(userID)
	row := &models.DiamondPrice{UserID: uid, Ownership: ownership, Shape: shape, MinCarat: minCarat, MaxCarat: maxCarat, Color: color, Clarity: clarity, PricePerCarat: pricePerCarat}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateDiamondPrice updates an owned diamond grid cell. Shared rows are rejected.
func (s *referenceService) UpdateDiamondPrice(userID, id uint, shape string, minCarat, maxCarat float64, color, clarity string, pricePerCarat float64) (*models.DiamondPrice, error) {
	if shape == "" || color == "" || clarity == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shape, color and clarity are required")
	}
	row, err := getOwned[models.DiamondPrice](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.Shape = shape
	row.MinCarat = minCarat
	row.MaxCarat = maxCarat
	row.Color = color
	row.Clarity = clarity
	row.PricePerCarat = pricePerCarat
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListDiamondPrices lists diamond grid cells visible to the user.
func (s *referenceService) ListDiamondPrices(userID uint) ([]models.DiamondPrice, error) {
	return listVisible[models.DiamondPrice](s.db, userID)
}

// DeleteDiamondPrice deletes an owned diamond grid cell.
func (s *referenceService) DeleteDiamondPrice(userID, id uint) error {
	return deleteOwned[models.DiamondPrice](s.db, userID, id)
}

// CreateDiamondDiscount creates an owned discount tier.
func (s *referenceService) CreateDiamondDiscount(userID uint, minCarat, maxCarat, discountPercent float64) (*models.DiamondDiscount, error) {
	if maxCarat < minCarat {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_carat must not be below min_carat")
	}
	uid, ownership := owned(userID)
	row := &models.DiamondDiscount{UserID: uid, Ownership: ownership, MinCarat: minCarat, MaxCarat: maxCarat, DiscountPercent: discountPercent}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateDiamondDiscount updates an owned discount tier. Shared rows are rejected.
func (s *referenceService) UpdateDiamondDiscount(userID, id uint, minCarat, maxCarat, discountPercent float64) (*models.DiamondDiscount, error) {
	if maxCarat < minCarat {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_carat must not be below min_carat")
	}
	row, err := getOwned[models.DiamondDiscount](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	row.MinCarat = minCarat
	row.MaxCarat = maxCarat
	row.DiscountPercent = discountPercent
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// ListDiamondDiscounts lists discount tiers visible to the user.
func (s *referenceService) ListDiamondDiscounts(userID uint) ([]models.DiamondDiscount, error) {
	return listVisible[models.DiamondDiscount](s.db, userID)
}

// DeleteDiamondDiscount deletes an owned discount tier.
func (s *referenceService) DeleteDiamondDiscount(userID, id uint) error {
	return deleteOwned[models.DiamondDiscount](s.db, userID, id)
}

// LoadTables assembles the calculator's reference tables from the rows
// visible to the user. The calculator receives plain values only.
func (s *referenceService) LoadTables(userID uint) (costing.Tables, error) {
	var tables costing.Tables

	settingRates, err := s.ListSettingRates(userID)
	if err != nil {
		return tables, err
	}
	for _, r := range settingRates {
		tables.SettingTiers = append(tables.SettingTiers, costing.SettingTier{
			Category: costing.Category(r.Category),
			MinCarat: r.MinCarat,
			MaxCarat: r.MaxCarat,
			Mode:     costing.Mode(r.Mode),
			Price:    r.Price,
		})
	}

	gemstones, err := s.ListGemstonePrices(userID)
	if err != nil {
		return tables, err
	}
	for _, r := range gemstones {
		tables.Gemstones = append(tables.Gemstones, costing.GemstoneRow{
			StoneType:     r.StoneType,
			Quality:       r.Quality,
			MinCarat:      r.MinCarat,
			MaxCarat:      r.MaxCarat,
			PricePerCarat: r.PricePerCarat,
		})
	}

	diamonds, err := s.ListDiamondPrices(userID)
	if err != nil {
		return tables, err
	}
	for _, r := range diamonds {
		tables.DiamondGrid = append(tables.DiamondGrid, costing.DiamondCell{
			Shape:         r.Shape,
			MinCarat:      r.MinCarat,
			MaxCarat:      r.MaxCarat,
			Color:         r.Color,
			Clarity:       r.Clarity,
			PricePerCarat: r.PricePerCarat,
		})
	}

	discounts, err := s.ListDiamondDiscounts(userID)
	if err != nil {
		return tables, err
	}
	for _, r := range discounts {
		tables.DiamondDiscounts = append(tables.DiamondDiscounts, costing.DiscountTier{
			MinCarat:        r.MinCarat,
			MaxCarat:        r.MaxCarat,
			DiscountPercent: r.DiscountPercent,
		})
	}

	return tables, nil
}
