package service

import (
	"testing"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
)

func TestDeleteCategory_WithSubcategoriesConflicts(t *testing.T) {
	db := testDB(t)
	svc := NewTaxonomyService(db)

	cat, err := svc.CreateCategory("Tecnología")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateSubcategory("Computadoras", cat.ID); err != nil {
		t.Fatalf("create subcategory: %v", err)
	}

	err = svc.DeleteCategory(cat.ID)
	if err == nil {
		t.Fatal("delete error = nil, want ConflictError")
	}
	if !IsConflict(err) {
		t.Errorf("error = %v, want ConflictError", err)
	}

	// nothing was deleted
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != 1 {
		t.Errorf("category count = %d, want 1", count)
	}
}

func TestDeleteCategory_EmptySucceeds(t *testing.T) {
	db := testDB(t)
	svc := NewTaxonomyService(db)

	cat, err := svc.CreateCategory("Mobiliario")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := svc.DeleteCategory(cat.ID); err != nil {
		t.Errorf("delete error = %v, want nil", err)
	}
}

func TestDeleteSubcategory_WithAssetsConflicts(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")

	err := NewTaxonomyService(db).DeleteSubcategory(asset.SubcategoryID)
	if !IsConflict(err) {
		t.Errorf("error = %v, want ConflictError", err)
	}
}

func TestDeleteLocation_WithAssetsConflicts(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")

	err := NewTaxonomyService(db).DeleteLocation(asset.LocationID)
	if !IsConflict(err) {
		t.Errorf("error = %v, want ConflictError", err)
	}
}

func TestDeleteLocation_UnreferencedSucceeds(t *testing.T) {
	db := testDB(t)
	svc := NewTaxonomyService(db)

	loc, err := svc.CreateLocation("Bodega")
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	if err := svc.DeleteLocation(loc.ID); err != nil {
		t.Errorf("delete error = %v, want nil", err)
	}
}

func TestCreateCategory_DuplicateNameRejected(t *testing.T) {
	db := testDB(t)
	svc := NewTaxonomyService(db)

	if _, err := svc.CreateCategory("Tecnología"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err := svc.CreateCategory("Tecnología")
	if !IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestCreateSubcategory_SameNameOtherCategoryAllowed(t *testing.T) {
	db := testDB(t)
	svc := NewTaxonomyService(db)

	catA, err := svc.CreateCategory("Tecnología")
	if err != nil {
		t.Fatalf("create category A: %v", err)
	}
	catB, err := svc.CreateCategory("Mobiliario")
	if err != nil {
		t.Fatalf("create category B: %v", err)
	}

	if _, err := svc.CreateSubcategory("Varios", catA.ID); err != nil {
		t.Fatalf("create subcategory in A: %v", err)
	}
	if _, err := svc.CreateSubcategory("Varios", catB.ID); err != nil {
		t.Errorf("same name under other category error = %v, want nil", err)
	}
	_, err = svc.CreateSubcategory("Varios", catA.ID)
	if !IsValidation(err) {
		t.Errorf("duplicate pair error = %v, want ValidationError", err)
	}
}

func TestDeleteCategory_Unknown(t *testing.T) {
	db := testDB(t)
	err := NewTaxonomyService(db).DeleteCategory(42)
	if !IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
