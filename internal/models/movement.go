package models

import "time"

// Movement types recorded in the asset history.
const (
	MovementTypeCreate       = "CREATE"
	MovementTypeUpdate       = "UPDATE"
	MovementTypeReassign     = "REASSIGN"
	MovementTypeRelocate     = "RELOCATE"
	MovementTypeStatusChange = "STATUS_CHANGE"
	MovementTypeDelete       = "DELETE"
)

// MovementEntry is an append-only audit line for a field-level change to
// an asset. Entries are never updated or removed individually; they go
// away only when the asset itself is deleted.
type MovementEntry struct {
	ID           uint   `gorm:"primaryKey"`
	AssetID      uint   `gorm:"not null;index:idx_movement_asset_date"`
	Type         string `gorm:"size:20;index;not null"`
	Description  string `gorm:"type:text"`
	ChangedField string `gorm:"size:100"`
	OldValue     string `gorm:"type:text"`
	NewValue     string `gorm:"type:text"`
	UserID       *uint  `gorm:"index"`
	CreatedAt    time.Time `gorm:"index:idx_movement_asset_date"`

	Asset Asset `gorm:"constraint:OnDelete:CASCADE"`
	User  *User `gorm:"constraint:OnDelete:SET NULL"`
}
