package service

import (
	"testing"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
)

func TestAssets_FiltersCombineWithAnd(t *testing.T) {
	db := testDB(t)
	sub, loc := seedTaxonomy(t, db)
	svc := NewAssetService(db)

	almacen := models.Location{Name: "Almacén"}
	if err := db.Create(&almacen).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}

	create := func(code, brand, model string, locID uint) {
		t.Helper()
		if _, err := svc.Create(AssetInput{
			InventoryCode: code,
			Brand:         brand,
			Model:         model,
			SubcategoryID: sub.ID,
			LocationID:    locID,
		}, nil); err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
	}
	create("MOB-SIL-001", "Ergo", "Silla Ejecutiva", almacen.ID)
	create("MOB-SIL-002", "Ergo", "Silla Ejecutiva", loc.ID)
	create("MOB-MES-001", "Ergo", "Mesa Plegable", almacen.ID)

	q := NewQueryService(db)
	assets, total, err := q.Assets(AssetFilter{
		LocationID: &almacen.ID,
		Search:     "sil",
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query assets: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if assets[0].InventoryCode != "MOB-SIL-001" {
		t.Errorf("matched %q, want MOB-SIL-001", assets[0].InventoryCode)
	}
}

func TestAssets_CategoryFilterSpansSubcategories(t *testing.T) {
	db := testDB(t)
	sub, loc := seedTaxonomy(t, db)
	svc := NewAssetService(db)

	other := models.Subcategory{Name: "Impresoras", CategoryID: sub.CategoryID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}
	for i, subID := range []uint{sub.ID, other.ID} {
		if _, err := svc.Create(AssetInput{
			InventoryCode: []string{"IT-PC-001", "IT-IMP-001"}[i],
			Brand:         "HP",
			Model:         "X",
			SubcategoryID: subID,
			LocationID:    loc.ID,
		}, nil); err != nil {
			t.Fatalf("create asset %d: %v", i, err)
		}
	}

	_, total, err := NewQueryService(db).Assets(AssetFilter{
		CategoryID: &sub.CategoryID,
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query assets: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (both subcategories of the category)", total)
	}
}

func TestAssets_EmptyResultIsNotAnError(t *testing.T) {
	db := testDB(t)
	assets, total, err := NewQueryService(db).Assets(AssetFilter{Search: "nada"}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query assets: %v", err)
	}
	if total != 0 || len(assets) != 0 {
		t.Errorf("total = %d, len = %d, want empty result", total, len(assets))
	}
}

func TestMaintenanceStats_DualScope(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	msvc := NewMaintenanceService(db)

	// one finished record this month, one still open
	fin, err := msvc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "150.00"),
	}, nil)
	if err != nil {
		t.Fatalf("create finished-to-be: %v", err)
	}
	if _, err := msvc.Finish(fin.ID, nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := msvc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Ana Gómez",
		Cost:       mustCost(t, "40.00"),
	}, nil); err != nil {
		t.Fatalf("create open: %v", err)
	}

	// a status filter narrows the filtered section but never the
	// current-period sums, which stay global
	_, total, stats, err := NewQueryService(db).Maintenance(MaintenanceFilter{
		Status: models.MaintenanceInProgress,
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query maintenance: %v", err)
	}

	if total != 1 {
		t.Errorf("filtered total = %d, want 1", total)
	}
	if stats.InProgressCount != 1 || stats.FinishedCount != 0 {
		t.Errorf("filtered counts = %d/%d, want 1/0", stats.InProgressCount, stats.FinishedCount)
	}
	if got := stats.InProgressCost.StringFixed(2); got != "40.00" {
		t.Errorf("filtered in-progress cost = %s, want 40.00", got)
	}
	if got := stats.TotalCost.StringFixed(2); got != "40.00" {
		t.Errorf("filtered total cost = %s, want 40.00", got)
	}
	if got := stats.CurrentMonthFinishedCost.StringFixed(2); got != "150.00" {
		t.Errorf("current-month finished cost = %s, want 150.00", got)
	}
	if got := stats.CurrentYearFinishedCost.StringFixed(2); got != "150.00" {
		t.Errorf("current-year finished cost = %s, want 150.00", got)
	}
}

func TestMaintenanceStats_CurrentMonthBoundary(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	msvc := NewMaintenanceService(db)

	rec, err := msvc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "90.00"),
		Status:     models.MaintenanceFinished,
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// first half-hour of the current UTC month; a local-time period
	// derivation would miss it in any zone behind UTC
	nowUTC := time.Now().UTC()
	edge := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 30, 0, 0, time.UTC)
	if err := db.Model(&models.MaintenanceRecord{}).Where("id = ?", rec.ID).
		Update("registered_at", edge).Error; err != nil {
		t.Fatalf("set registered at: %v", err)
	}

	_, _, stats, err := NewQueryService(db).Maintenance(MaintenanceFilter{}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got := stats.CurrentMonthFinishedCost.StringFixed(2); got != "90.00" {
		t.Errorf("current-month finished cost = %s, want 90.00", got)
	}
}

func TestMaintenanceStats_PeriodFilter(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	msvc := NewMaintenanceService(db)

	rec, err := msvc.Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "75.50"),
		Status:     models.MaintenanceFinished,
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// backdate the record into January of last year
	past := time.Date(time.Now().Year()-1, time.January, 15, 12, 0, 0, 0, time.UTC)
	if err := db.Model(&models.MaintenanceRecord{}).Where("id = ?", rec.ID).
		Update("registered_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	q := NewQueryService(db)

	records, _, stats, err := q.Maintenance(MaintenanceFilter{
		Month: 1,
		Year:  past.Year(),
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query with period: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("period records = %d, want 1", len(records))
	}
	if got := stats.PeriodFinishedCost.StringFixed(2); got != "75.50" {
		t.Errorf("period finished cost = %s, want 75.50", got)
	}
	if got := stats.CurrentMonthFinishedCost.StringFixed(2); got != "0.00" {
		t.Errorf("current-month finished cost = %s, want 0.00 (record is in the past)", got)
	}

	// wrong month yields no records and a zero period sum
	_, _, stats, err = q.Maintenance(MaintenanceFilter{
		Month: 2,
		Year:  past.Year(),
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query wrong month: %v", err)
	}
	if got := stats.PeriodFinishedCost.StringFixed(2); got != "0.00" {
		t.Errorf("period finished cost = %s, want 0.00", got)
	}
}

func TestMaintenanceSearch_MatchesAssetCode(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")
	if _, err := NewMaintenanceService(db).Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "10.00"),
	}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, total, _, err := NewQueryService(db).Maintenance(MaintenanceFilter{
		Search: "it-pc",
	}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		number, size int
		want         Page
	}{
		{0, 0, Page{1, 25}},
		{-3, 10, Page{1, 10}},
		{2, 500, Page{2, 25}},
		{4, 100, Page{4, 100}},
	}
	for _, c := range cases {
		if got := NormalizePage(c.number, c.size, 25, 100); got != c.want {
			t.Errorf("NormalizePage(%d, %d) = %+v, want %+v", c.number, c.size, got, c.want)
		}
	}
}

func TestDashboard_CountsByStatus(t *testing.T) {
	db := testDB(t)
	asset := seedAsset(t, db, "IT-PC-001")

	if _, err := NewMaintenanceService(db).Create(MaintenanceInput{
		AssetID:    asset.ID,
		Technician: "Carlos Pérez",
		Cost:       mustCost(t, "10.00"),
	}, nil); err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	stats, err := NewQueryService(db).Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalAssets != 1 {
		t.Errorf("total assets = %d, want 1", stats.TotalAssets)
	}
	if got := stats.ByStatus[models.AssetStatusUnderMaintenance]; got != 1 {
		t.Errorf("under-maintenance count = %d, want 1", got)
	}
}
