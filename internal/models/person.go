package models

import "time"

// Person is someone an asset can be assigned to. No login, plain record.
type Person struct {
	ID             uint   `gorm:"primaryKey"`
	FirstNames     string `gorm:"size:100;not null"`
	LastNames      string `gorm:"size:100;not null"`
	Identification string `gorm:"size:20;uniqueIndex;not null"`
	Email          string `gorm:"size:254"`
	Phone          string `gorm:"size:20"`
	Position       string `gorm:"size:100"`
	Department     string `gorm:"size:100"`
	Active         bool   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last names for display and documents.
func (p *Person) FullName() string {
	return p.FirstNames + " " + p.LastNames
}
