package service

import (
	"testing"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
)

func TestMaintenanceInProgress_PutsAssetUnderMaintenance(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	_, err := svc.Create(MaintenanceInput{
		AssetID:     asset.ID,
		Technician:  "Carlos Pérez",
		Phone:       "555-0101",
		Description: "Cambio de disco",
		Cost:        mustCost(t, "150.00"),
		Status:      models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	if got := assetStatus(t, db, asset.ID); got != models.AssetStatusUnderMaintenance {
		t.Errorf("asset status = %q, want %q", got, models.AssetStatusUnderMaintenance)
	}
}

func TestMaintenanceFinished_ReturnsAssetToActive(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	rec, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "150.00"),
		Status:     models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	in := MaintenanceInput{
		AssetID:    asset.ID,
		Technician: rec.Technician,
		Cost:       rec.Cost,
		Status:     models.MaintenanceFinished,
	}
	if _, err := svc.Update(rec.ID, in, nil); err != nil {
		t.Fatalf("finish maintenance: %v", err)
	}

	if got := assetStatus(t, db, asset.ID); got != models.AssetStatusActive {
		t.Errorf("asset status = %q, want %q", got, models.AssetStatusActive)
	}
}

func TestMaintenanceFinished_OtherOpenRecordKeepsAssetUnderMaintenance(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	r1, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "80.00"),
		Status:     models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create r1: %v", err)
	}
	if _, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Ana Gómez",
		Cost:       mustCost(t, "40.00"),
		Status:     models.MaintenanceInProgress,
	}, nil); err != nil {
		t.Fatalf("create r2: %v", err)
	}

	// finishing R1 leaves R2 open, so the asset stays under maintenance
	if _, err := svc.Finish(r1.ID, nil); err != nil {
		t.Fatalf("finish r1: %v", err)
	}
	if got := assetStatus(t, db, asset.ID); got != models.AssetStatusUnderMaintenance {
		t.Errorf("asset status = %q, want %q", got, models.AssetStatusUnderMaintenance)
	}
}

func TestMaintenanceFinish_Idempotent(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	rec, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "150.00"),
		Status:     models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Finish(rec.ID, nil); err != nil {
			t.Fatalf("finish #%d: %v", i+1, err)
		}
		if got := assetStatus(t, db, asset.ID); got != models.AssetStatusActive {
			t.Errorf("after finish #%d asset status = %q, want %q", i+1, got, models.AssetStatusActive)
		}
	}
}

func TestMaintenanceFinished_DoesNotTouchInactiveAsset(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	rec, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "10.00"),
		Status:     models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	// the asset was edited to INACTIVE while the record was open; the
	// side effect only ever leaves UNDER_MAINTENANCE, it never sets
	// ACTIVE over a direct edit
	if err := db.Model(&models.Asset{}).Where("id = ?", asset.ID).
		Update("status", models.AssetStatusInactive).Error; err != nil {
		t.Fatalf("set inactive: %v", err)
	}

	if _, err := svc.Finish(rec.ID, nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if got := assetStatus(t, db, asset.ID); got != models.AssetStatusInactive {
		t.Errorf("asset status = %q, want %q", got, models.AssetStatusInactive)
	}
}

func TestFinishReopenSequence(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	rec, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "60.00"),
		Status:     models.MaintenanceInProgress,
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	// sequential saves derive the status deterministically; concurrent
	// saves race at the datastore and the last commit wins
	steps := []struct {
		status string
		want   string
	}{
		{models.MaintenanceFinished, models.AssetStatusActive},
		{models.MaintenanceInProgress, models.AssetStatusUnderMaintenance},
		{models.MaintenanceFinished, models.AssetStatusActive},
	}
	for i, step := range steps {
		in := MaintenanceInput{
			AssetID:    asset.ID,
			Technician: rec.Technician,
			Cost:       rec.Cost,
			Status:     step.status,
		}
		if _, err := svc.Update(rec.ID, in, nil); err != nil {
			t.Fatalf("step %d update: %v", i, err)
		}
		if got := assetStatus(t, db, asset.ID); got != step.want {
			t.Errorf("step %d asset status = %q, want %q", i, got, step.want)
		}
	}
}

func TestMaintenanceCost_NegativeRejected(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	_, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "-1.00"),
	}, nil)
	if err == nil {
		t.Fatal("create with negative cost error = nil, want ValidationError")
	}
	if !IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}

	var count int64
	if err := db.Model(&models.MaintenanceRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 0 {
		t.Errorf("record count = %d, want 0 (nothing persisted)", count)
	}
}

func TestMaintenanceCost_OverMaximumRejected(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")

	_, err := NewMaintenanceService(db).Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "10000000.00"),
	}, nil)
	if !IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestMaintenanceCost_ZeroAccepted(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	if _, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "0.00"),
	}, nil); err != nil {
		t.Errorf("create with zero cost error = %v, want nil", err)
	}
}

func TestMaintenanceUpdate_RegistrationDateImmutable(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	svc := NewMaintenanceService(db)

	rec, err := svc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "25.00"),
	}, nil)
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}
	registered := rec.RegisteredAt

	updated, err := svc.Update(rec.ID, MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Ana Gómez",
		Cost:       mustCost(t, "30.00"),
		Status:     models.MaintenanceFinished,
	}, nil)
	if err != nil {
		t.Fatalf("update maintenance: %v", err)
	}
	if !updated.RegisteredAt.Equal(registered) {
		t.Errorf("registered at changed on update: %v -> %v", registered, updated.RegisteredAt)
	}
}

func TestMaintenanceCreate_UnknownAsset(t *testing.T) {
	db := testDB(t)
	svc := NewMaintenanceService(db)

	_, err := svc.Create(MaintenanceInput{
		AssetID:    999,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "10.00"),
	}, nil)
	if !IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
