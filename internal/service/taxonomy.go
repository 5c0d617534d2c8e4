package service

import (
	"errors"
	"strings"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"gorm.io/gorm"
)

// TaxonomyService maintains categories, subcategories and locations,
// including the referential protection on deletion.
type TaxonomyService struct {
	DB *gorm.DB
}

func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{DB: db}
}

// ---------- categorías ----------

func (s *TaxonomyService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var count int64
	if err := s.DB.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe una categoría con ese nombre")
	}

	cat := models.Category{Name: name}
	if err := s.DB.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *TaxonomyService) UpdateCategory(id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var cat models.Category
	if err := s.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("categoría", id)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe una categoría con ese nombre")
	}

	cat.Name = name
	if err := s.DB.Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory refuses to delete a category that still has
// subcategories.
func (s *TaxonomyService) DeleteCategory(id uint) error {
	var cat models.Category
	if err := s.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("categoría", id)
		}
		return err
	}

	var children int64
	if err := s.DB.Model(&models.Subcategory{}).Where("category_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return conflictErr("no se puede eliminar la categoría %q porque tiene subcategorías asociadas", cat.Name)
	}

	return s.DB.Delete(&cat).Error
}

func (s *TaxonomyService) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// ---------- subcategorías ----------

func (s *TaxonomyService) CreateSubcategory(name string, categoryID uint) (*models.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var cat models.Category
	if err := s.DB.First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("categoría", categoryID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Subcategory{}).
		Where("name = ? AND category_id = ?", name, categoryID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe esa subcategoría en la categoría seleccionada")
	}

	sub := models.Subcategory{Name: name, CategoryID: categoryID}
	if err := s.DB.Create(&sub).Error; err != nil {
		return nil, err
	}
	sub.Category = cat
	return &sub, nil
}

func (s *TaxonomyService) UpdateSubcategory(id uint, name string, categoryID uint) (*models.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var sub models.Subcategory
	if err := s.DB.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("subcategoría", id)
		}
		return nil, err
	}

	if err := s.DB.First(&models.Category{}, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("categoría", categoryID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Subcategory{}).
		Where("name = ? AND category_id = ? AND id <> ?", name, categoryID, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe esa subcategoría en la categoría seleccionada")
	}

	sub.Name = name
	sub.CategoryID = categoryID
	if err := s.DB.Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubcategory refuses to delete a subcategory that still has
// assets.
func (s *TaxonomyService) DeleteSubcategory(id uint) error {
	var sub models.Subcategory
	if err := s.DB.Preload("Category").First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("subcategoría", id)
		}
		return err
	}

	var children int64
	if err := s.DB.Model(&models.Asset{}).Where("subcategory_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return conflictErr("no se puede eliminar la subcategoría %q porque tiene activos asociados", sub.Category.Name+" - "+sub.Name)
	}

	return s.DB.Delete(&sub).Error
}

// ListSubcategories returns subcategories, optionally restricted to one
// category.
func (s *TaxonomyService) ListSubcategories(categoryID *uint) ([]models.Subcategory, error) {
	q := s.DB.Preload("Category").Order("category_id ASC, name ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var subs []models.Subcategory
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ---------- ubicaciones ----------

func (s *TaxonomyService) CreateLocation(name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var count int64
	if err := s.DB.Model(&models.Location{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe una ubicación con ese nombre")
	}

	loc := models.Location{Name: name}
	if err := s.DB.Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *TaxonomyService) UpdateLocation(id uint, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("nombre", "el nombre es obligatorio")
	}

	var loc models.Location
	if err := s.DB.First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("ubicación", id)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Location{}).
		Where("name = ? AND id <> ?", name, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("nombre", "ya existe una ubicación con ese nombre")
	}

	loc.Name = name
	if err := s.DB.Save(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// DeleteLocation refuses to delete a location that still has assets.
func (s *TaxonomyService) DeleteLocation(id uint) error {
	var loc models.Location
	if err := s.DB.First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("ubicación", id)
		}
		return err
	}

	var children int64
	if err := s.DB.Model(&models.Asset{}).Where("location_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return conflictErr("no se puede eliminar la ubicación %q porque tiene activos asociados", loc.Name)
	}

	return s.DB.Delete(&loc).Error
}

func (s *TaxonomyService) ListLocations() ([]models.Location, error) {
	var locs []models.Location
	if err := s.DB.Order("name ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}
