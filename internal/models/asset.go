package models

import "time"

// Asset lifecycle states. UNDER_MAINTENANCE is managed by the maintenance
// side effect; INACTIVE is only reachable through direct edits.
const (
	AssetStatusActive           = "ACTIVE"
	AssetStatusInactive         = "INACTIVE"
	AssetStatusUnderMaintenance = "UNDER_MAINTENANCE"
)

// Asset is a tracked physical item with a unique inventory code.
type Asset struct {
	ID            uint   `gorm:"primaryKey"`
	InventoryCode string `gorm:"size:50;uniqueIndex;not null"`
	Brand         string `gorm:"size:100;not null"`
	Model         string `gorm:"size:100;not null"`
	SerialNumber  string `gorm:"size:100"`
	SubcategoryID uint   `gorm:"not null;index"`
	LocationID    uint   `gorm:"not null;index"`
	PersonID      *uint  `gorm:"index"`
	Status        string `gorm:"size:20;index;not null;default:ACTIVE"`
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Subcategory Subcategory `gorm:"constraint:OnDelete:RESTRICT"`
	Location    Location    `gorm:"constraint:OnDelete:RESTRICT"`
	Person      *Person     `gorm:"constraint:OnDelete:SET NULL"`
}
