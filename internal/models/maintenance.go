package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance record states.
const (
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceFinished   = "FINISHED"
)

// MaintenanceRecord is a dated service event against an asset.
// RegisteredAt is set once at creation and never updated.
type MaintenanceRecord struct {
	ID           uint            `gorm:"primaryKey"`
	AssetID      uint            `gorm:"not null;index"`
	Technician   string          `gorm:"size:150;not null"`
	Phone        string          `gorm:"size:20"`
	Description  string          `gorm:"type:text"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status       string          `gorm:"size:20;index;not null;default:IN_PROGRESS"`
	RegisteredAt time.Time       `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Asset Asset `gorm:"constraint:OnDelete:CASCADE"`
}
