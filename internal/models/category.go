package models

import "time"

// Category is the top level of the asset taxonomy.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Subcategories []Subcategory `gorm:"constraint:OnDelete:RESTRICT"`
}

// Subcategory groups assets under a category. Names repeat across
// categories but not within one.
type Subcategory struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null;uniqueIndex:idx_subcategory_name_category"`
	CategoryID uint   `gorm:"not null;index;uniqueIndex:idx_subcategory_name_category"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category Category `gorm:"constraint:OnDelete:RESTRICT"`
}
