package service

import (
	"testing"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

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
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedTaxonomy creates one category/subcategory/location to hang assets
// off of.
func seedTaxonomy(t *testing.T, db *gorm.DB) (*models.Subcategory, *models.Location) {
	t.Helper()

	cat := models.Category{Name: "Tecnología"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	sub := models.Subcategory{Name: "Computadoras", CategoryID: cat.ID}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}
	loc := models.Location{Name: "Oficina Principal"}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return &sub, &loc
}

// seedAsset creates one asset through the service so history rows exist.
func seedAsset(t *testing.T, db *gorm.DB, code string) *models.Asset {
	t.Helper()

	sub, loc := seedTaxonomy(t, db)
	asset, err := NewAssetService(db).Create(AssetInput{
		InventoryCode: code,
		Brand:         "Dell",
		Model:         "Latitude 5520",
		SubcategoryID: sub.ID,
		LocationID:    loc.ID,
	}, nil)
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return asset
}

func mustCost(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse cost %q: %v", s, err)
	}
	return d
}

func assetStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var asset models.Asset
	if err := db.First(&asset, id).Error; err != nil {
		t.Fatalf("reload asset: %v", err)
	}
	return asset.Status
}
