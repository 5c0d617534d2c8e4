package database

import (
	"fmt"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Location{},
		&models.Person{},
		&models.Asset{},
		&models.MaintenanceRecord{},
		&models.MovementEntry{},
		&models.ReportLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
