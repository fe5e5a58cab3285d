package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "milyem/internal/errors"
	"milyem/internal/models"
	"milyem/internal/pagination"
)

// manufacturerService handles manufacturer-related business logic.
type manufacturerService struct {
	db *gorm.DB
}

// NewManufacturerService creates a new ManufacturerServicer.
func NewManufacturerService(db *gorm.DB) ManufacturerServicer {
	return &manufacturerService{db: db}
}

// CreateManufacturer creates a manufacturer for the user.
func (s *manufacturerService) CreateManufacturer(userID uint, name, contactEmail, phone, city, notes string) (*models.Manufacturer, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	manufacturer := &models.Manufacturer{
		UserID:       userID,
		Name:         name,
		ContactEmail: contactEmail,
		Phone:        phone,
		City:         city,
		Notes:        notes,
	}

	if err := s.db.Create(manufacturer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return manufacturer, nil
}

// GetUserManufacturers returns a paginated list of the user's manufacturers.
func (s *manufacturerService) GetUserManufacturers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Manufacturer], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Manufacturer{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var manufacturers []models.Manufacturer
	if err := s.db.Where("user_id = ?", userID).
		Order("name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&manufacturers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(manufacturers, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetManufacturerByID returns a manufacturer if it belongs to the user.
func (s *manufacturerService) GetManufacturerByID(userID, manufacturerID uint) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	if err := s.db.Where("id = ? AND user_id = ?", manufacturerID, userID).First(&manufacturer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrManufacturerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &manufacturer, nil
}

// UpdateManufacturer updates a manufacturer's details.
func (s *manufacturerService) UpdateManufacturer(userID, manufacturerID uint, name, contactEmail, phone, city, notes string) (*models.Manufacturer, error) {
	manufacturer, err := s.GetManufacturerByID(userID, manufacturerID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		manufacturer.Name = name
	}
	manufacturer.ContactEmail = contactEmail
	manufacturer.Phone = phone
	manufacturer.City = city
	manufacturer.Notes = notes

	if err := s.db.Save(manufacturer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return manufacturer, nil
}

// DeleteManufacturer removes a manufacturer that has no analyses.
func (s *manufacturerService) DeleteManufacturer(userID, manufacturerID uint) error {
	manufacturer, err := s.GetManufacturerByID(userID, manufacturerID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Analysis{}).Where("manufacturer_id = ?", manufacturerID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrManufacturerInUse
	}

	if err := s.db.Delete(manufacturer).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
