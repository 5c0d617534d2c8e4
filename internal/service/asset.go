package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"gorm.io/gorm"
)

// AssetService owns the asset aggregate: create/update/delete,
// reassignment, relocation and the movement history that documents every
// explicit change.
type AssetService struct {
	DB *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{DB: db}
}

// AssetInput carries the editable fields of an asset.
type AssetInput struct {
	InventoryCode string
	Brand         string
	Model         string
	SerialNumber  string
	SubcategoryID uint
	LocationID    uint
	PersonID      *uint
	Status        string
	Notes         string
}

// NormalizeInventoryCode applies the canonical form used for the
// uniqueness constraint: trimmed and upper-cased.
func NormalizeInventoryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (in *AssetInput) normalize() {
	in.InventoryCode = NormalizeInventoryCode(in.InventoryCode)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	if in.Status == "" {
		in.Status = models.AssetStatusActive
	}
}

func (in *AssetInput) validate() error {
	if err := util.ValidateInventoryCode(in.InventoryCode); err != nil {
		return validationErr("código de inventario", err.Error())
	}
	if in.Brand == "" {
		return validationErr("marca", "la marca es obligatoria")
	}
	if in.Model == "" {
		return validationErr("modelo", "el modelo es obligatorio")
	}
	switch in.Status {
	case models.AssetStatusActive, models.AssetStatusInactive, models.AssetStatusUnderMaintenance:
	default:
		return validationErr("estado", "estado de activo no válido")
	}
	return nil
}

// checkRefs verifies the subcategory, location and optional person exist.
func (s *AssetService) checkRefs(tx *gorm.DB, in AssetInput) error {
	if err := tx.First(&models.Subcategory{}, in.SubcategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("subcategoría", in.SubcategoryID)
		}
		return err
	}
	if err := tx.First(&models.Location{}, in.LocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("ubicación", in.LocationID)
		}
		return err
	}
	if in.PersonID != nil {
		if err := tx.First(&models.Person{}, *in.PersonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("usuario asignado", *in.PersonID)
			}
			return err
		}
	}
	return nil
}

// Create persists a new asset and its CREATE history entry.
func (s *AssetService) Create(in AssetInput, actorID *uint) (*models.Asset, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var asset models.Asset
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.checkRefs(tx, in); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Asset{}).
			Where("inventory_code = ?", in.InventoryCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return validationErr("código de inventario", "ya existe un activo con ese código")
		}

		asset = models.Asset{
			InventoryCode: in.InventoryCode,
			Brand:         in.Brand,
			Model:         in.Model,
			SerialNumber:  in.SerialNumber,
			SubcategoryID: in.SubcategoryID,
			LocationID:    in.LocationID,
			PersonID:      in.PersonID,
			Status:        in.Status,
			Notes:         in.Notes,
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		return tx.Create(&models.MovementEntry{
			AssetID:     asset.ID,
			Type:        models.MovementTypeCreate,
			Description: fmt.Sprintf("Activo %s registrado", asset.InventoryCode),
			UserID:      actorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Update saves the editable fields and appends one history entry per
// changed field: STATUS_CHANGE for the status, RELOCATE for the location,
// REASSIGN for the assignee, UPDATE for the rest.
func (s *AssetService) Update(id uint, in AssetInput, actorID *uint) (*models.Asset, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var asset models.Asset
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("activo", id)
			}
			return err
		}
		if err := s.checkRefs(tx, in); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Asset{}).
			Where("inventory_code = ? AND id <> ?", in.InventoryCode, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return validationErr("código de inventario", "ya existe un activo con ese código")
		}

		type fieldChange struct {
			name     string
			movement string
			old, new string
		}
		var changes []fieldChange
		diff := func(name, oldV, newV string) {
			if oldV != newV {
				changes = append(changes, fieldChange{name: name, movement: models.MovementTypeUpdate, old: oldV, new: newV})
			}
		}

		diff("codigo_inventario", asset.InventoryCode, in.InventoryCode)
		diff("marca", asset.Brand, in.Brand)
		diff("modelo", asset.Model, in.Model)
		diff("numero_serial", asset.SerialNumber, in.SerialNumber)
		diff("observaciones", asset.Notes, in.Notes)
		if asset.SubcategoryID != in.SubcategoryID {
			changes = append(changes, fieldChange{
				name:     "subcategoria",
				movement: models.MovementTypeUpdate,
				old:      strconv.FormatUint(uint64(asset.SubcategoryID), 10),
				new:      strconv.FormatUint(uint64(in.SubcategoryID), 10),
			})
		}
		if asset.LocationID != in.LocationID {
			var oldLoc, newLoc models.Location
			if err := tx.First(&oldLoc, asset.LocationID).Error; err != nil {
				return err
			}
			if err := tx.First(&newLoc, in.LocationID).Error; err != nil {
				return err
			}
			changes = append(changes, fieldChange{
				name:     "ubicacion",
				movement: models.MovementTypeRelocate,
				old:      oldLoc.Name,
				new:      newLoc.Name,
			})
		}
		if !sameID(asset.PersonID, in.PersonID) {
			oldName, err := personLabel(tx, asset.PersonID)
			if err != nil {
				return err
			}
			newName, err := personLabel(tx, in.PersonID)
			if err != nil {
				return err
			}
			changes = append(changes, fieldChange{
				name:     "usuario_asignado",
				movement: models.MovementTypeReassign,
				old:      oldName,
				new:      newName,
			})
		}
		if asset.Status != in.Status {
			changes = append(changes, fieldChange{
				name:     "estado",
				movement: models.MovementTypeStatusChange,
				old:      asset.Status,
				new:      in.Status,
			})
		}

		asset.InventoryCode = in.InventoryCode
		asset.Brand = in.Brand
		asset.Model = in.Model
		asset.SerialNumber = in.SerialNumber
		asset.SubcategoryID = in.SubcategoryID
		asset.LocationID = in.LocationID
		asset.PersonID = in.PersonID
		asset.Status = in.Status
		asset.Notes = in.Notes

		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		for _, ch := range changes {
			entry := models.MovementEntry{
				AssetID:      asset.ID,
				Type:         ch.movement,
				Description:  fmt.Sprintf("Campo %s modificado", ch.name),
				ChangedField: ch.name,
				OldValue:     ch.old,
				NewValue:     ch.new,
				UserID:       actorID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// personLabel renders an assignee reference for history rows.
func personLabel(tx *gorm.DB, id *uint) (string, error) {
	if id == nil {
		return "sin asignar", nil
	}
	var p models.Person
	if err := tx.First(&p, *id).Error; err != nil {
		return "", err
	}
	return p.FullName(), nil
}

// Reassign moves the asset to another person (or unassigns it with nil)
// and records a REASSIGN entry.
func (s *AssetService) Reassign(id uint, personID *uint, actorID *uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Person").First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("activo", id)
			}
			return err
		}

		oldName := "sin asignar"
		if asset.Person != nil {
			oldName = asset.Person.FullName()
		}

		newName := "sin asignar"
		if personID != nil {
			var p models.Person
			if err := tx.First(&p, *personID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundErr("usuario asignado", *personID)
				}
				return err
			}
			newName = p.FullName()
		}

		asset.PersonID = personID
		asset.Person = nil
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		return tx.Create(&models.MovementEntry{
			AssetID:      asset.ID,
			Type:         models.MovementTypeReassign,
			Description:  fmt.Sprintf("Activo %s reasignado", asset.InventoryCode),
			ChangedField: "usuario_asignado",
			OldValue:     oldName,
			NewValue:     newName,
			UserID:       actorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Relocate moves the asset to another location and records a RELOCATE
// entry.
func (s *AssetService) Relocate(id uint, locationID uint, actorID *uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Location").First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("activo", id)
			}
			return err
		}

		var loc models.Location
		if err := tx.First(&loc, locationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("ubicación", locationID)
			}
			return err
		}

		oldName := asset.Location.Name
		asset.LocationID = locationID
		asset.Location = loc
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		return tx.Create(&models.MovementEntry{
			AssetID:      asset.ID,
			Type:         models.MovementTypeRelocate,
			Description:  fmt.Sprintf("Activo %s reubicado", asset.InventoryCode),
			ChangedField: "ubicacion",
			OldValue:     oldName,
			NewValue:     loc.Name,
			UserID:       actorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Delete removes the asset; maintenance records and history entries go
// with it (cascade).
func (s *AssetService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("activo", id)
			}
			return err
		}

		if err := tx.Where("asset_id = ?", id).Delete(&models.MaintenanceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.MovementEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
}

// Get loads one asset with its taxonomy, location and assignee.
func (s *AssetService) Get(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.DB.
		Preload("Subcategory.Category").
		Preload("Location").
		Preload("Person").
		First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("activo", id)
		}
		return nil, err
	}
	return &asset, nil
}

// History returns the asset's movement entries, newest first.
func (s *AssetService) History(id uint, page Page) ([]models.MovementEntry, int64, error) {
	if err := s.DB.First(&models.Asset{}, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, notFoundErr("activo", id)
		}
		return nil, 0, err
	}

	base := s.DB.Model(&models.MovementEntry{}).Where("asset_id = ?", id)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.MovementEntry
	if err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
