package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report types.
const (
	ReportTypeGeneral      = "GENERAL"
	ReportTypeDeliveryNote = "DELIVERY_NOTE"
)

// ReportLog records every generated document: who asked for it, with
// which filters, how many assets went in and the output file name.
// Immutable once written.
type ReportLog struct {
	ID         uint           `gorm:"primaryKey"`
	Type       string         `gorm:"size:20;index;not null"`
	UserID     *uint          `gorm:"index"`
	Filters    datatypes.JSON
	AssetCount int            `gorm:"not null"`
	Filename   string         `gorm:"size:255"`
	CreatedAt  time.Time

	User *User `gorm:"constraint:OnDelete:SET NULL"`
}
