package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Ownership marks whether a reference table row is visible to every tenant
// or owned by a single user. Shared rows are seeded by operators and are
// read-only through the API.
type Ownership string

const (
	OwnershipShared Ownership = "shared"
	OwnershipOwned  Ownership = "owned"
)
