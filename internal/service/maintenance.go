package service

import (
	"errors"
	"strings"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaintenanceService persists maintenance records and keeps the owning
// asset's status in sync, inside the same transaction as the save.
type MaintenanceService struct {
	DB *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{DB: db}
}

// MaintenanceInput carries the editable fields of a maintenance record.
type MaintenanceInput struct {
	AssetID     uint
	Technician  string
	Phone       string
	Description string
	Cost        decimal.Decimal
	Status      string
}

func (in *MaintenanceInput) normalize() {
	in.Technician = strings.TrimSpace(in.Technician)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Status == "" {
		in.Status = models.MaintenanceInProgress
	}
}

func (in *MaintenanceInput) validate() error {
	if in.Technician == "" {
		return validationErr("técnico", "el técnico es obligatorio")
	}
	if err := util.ValidateCost(in.Cost); err != nil {
		return validationErr("costo", err.Error())
	}
	switch in.Status {
	case models.MaintenanceInProgress, models.MaintenanceFinished:
	default:
		return validationErr("estado", "estado de mantenimiento no válido")
	}
	return nil
}

// Create registers a maintenance record. The registration date is fixed
// here and never changes afterwards.
func (s *MaintenanceService) Create(in MaintenanceInput, actorID *uint) (*models.MaintenanceRecord, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var rec models.MaintenanceRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Asset{}, in.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("activo", in.AssetID)
			}
			return err
		}

		rec = models.MaintenanceRecord{
			AssetID:      in.AssetID,
			Technician:   in.Technician,
			Phone:        in.Phone,
			Description:  in.Description,
			Cost:         in.Cost,
			Status:       in.Status,
			RegisteredAt: time.Now(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return applyAssetStatus(tx, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update saves the editable fields of an existing record and re-derives
// the asset status. The asset reference and registration date are
// immutable.
func (s *MaintenanceService) Update(id uint, in MaintenanceInput, actorID *uint) (*models.MaintenanceRecord, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var rec models.MaintenanceRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("mantenimiento", id)
			}
			return err
		}

		rec.Technician = in.Technician
		rec.Phone = in.Phone
		rec.Description = in.Description
		rec.Cost = in.Cost
		rec.Status = in.Status

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return applyAssetStatus(tx, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Finish closes an in-progress record in one step. Finishing an already
// finished record is a no-op.
func (s *MaintenanceService) Finish(id uint, actorID *uint) (*models.MaintenanceRecord, error) {
	var rec models.MaintenanceRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("mantenimiento", id)
			}
			return err
		}

		if rec.Status == models.MaintenanceFinished {
			return nil
		}

		rec.Status = models.MaintenanceFinished
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return applyAssetStatus(tx, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get loads one record with its asset.
func (s *MaintenanceService) Get(id uint) (*models.MaintenanceRecord, error) {
	var rec models.MaintenanceRecord
	if err := s.DB.
		Preload("Asset.Subcategory.Category").
		Preload("Asset.Location").
		Preload("Asset.Person").
		First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("mantenimiento", id)
		}
		return nil, err
	}
	return &rec, nil
}

// applyAssetStatus derives the asset status from the record just saved.
//
// IN_PROGRESS puts the asset under maintenance (idempotent). FINISHED
// returns it to ACTIVE only when no other in-progress record exists for
// the same asset and the asset is currently under maintenance. INACTIVE
// is never produced here. Only status and updated_at are written back.
func applyAssetStatus(tx *gorm.DB, rec *models.MaintenanceRecord) error {
	var asset models.Asset
	if err := tx.First(&asset, rec.AssetID).Error; err != nil {
		return err
	}

	switch rec.Status {
	case models.MaintenanceInProgress:
		if asset.Status != models.AssetStatusUnderMaintenance {
			return tx.Model(&asset).Update("status", models.AssetStatusUnderMaintenance).Error
		}
	case models.MaintenanceFinished:
		var open int64
		if err := tx.Model(&models.MaintenanceRecord{}).
			Where("asset_id = ? AND status = ? AND id <> ?",
				rec.AssetID, models.MaintenanceInProgress, rec.ID).
			Count(&open).Error; err != nil {
			return err
		}
		if open == 0 && asset.Status == models.AssetStatusUnderMaintenance {
			return tx.Model(&asset).Update("status", models.AssetStatusActive).Error
		}
	}
	return nil
}
