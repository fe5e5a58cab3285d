package models

// Batch is a numbered grouping of analyses for one manufacturer, used for
// combined reporting. Numbers are assigned sequentially per manufacturer.
type Batch struct {
	Base
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	ManufacturerID uint   `gorm:"not null;index" json:"manufacturer_id"`
	Number         int    `gorm:"not null" json:"number"`
	Note           string `json:"note"`

	// Relationships
	Manufacturer Manufacturer `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Analyses     []Analysis   `gorm:"foreignKey:BatchID" json:"analyses,omitempty"`
}
