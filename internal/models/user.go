package models

import "time"

// User represents a tenant account. Every manufacturer, analysis, batch and
// market-rate snapshot belongs to exactly one user.
type User struct {
	Base
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	Password            string         `gorm:"not null" json:"-"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	CompanyName         string         `json:"company_name"`
	IsActive            bool           `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string         `gorm:"size:64" json:"-"`
	FailedLoginAttempts int            `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time     `json:"-"`
	LastLoginAt         *time.Time     `json:"last_login_at,omitempty"`
	Manufacturers       []Manufacturer `gorm:"foreignKey:UserID" json:"manufacturers,omitempty"`
	Analyses            []Analysis     `gorm:"foreignKey:UserID" json:"analyses,omitempty"`
	Batches             []Batch        `gorm:"foreignKey:UserID" json:"batches,omitempty"`
}
