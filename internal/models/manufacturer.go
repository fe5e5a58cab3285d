package models

// Manufacturer represents a jewelry manufacturer whose quoted products are
// analyzed. Manufacturers are strictly tenant-owned.
type Manufacturer struct {
	Base
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	ContactEmail string     `json:"contact_email"`
	Phone        string     `json:"phone"`
	City         string     `json:"city"`
	Notes        string     `json:"notes"`
	Analyses     []Analysis `gorm:"foreignKey:ManufacturerID" json:"analyses,omitempty"`
	Batches      []Batch    `gorm:"foreignKey:ManufacturerID" json:"batches,omitempty"`
}
