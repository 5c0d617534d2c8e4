package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NormalizePage clamps a raw page request to sane values.
func NormalizePage(number, size, defaultSize, maxSize int) Page {
	if number <= 0 {
		number = 1
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	return Page{Number: number, Size: size}
}

// AssetFilter enumerates the recognized asset list filters. Search is a
// case-insensitive substring over code, brand, model and serial (OR);
// everything else combines with AND.
type AssetFilter struct {
	CategoryID    *uint
	SubcategoryID *uint
	LocationID    *uint
	PersonID      *uint
	Status        string
	Search        string
}

// Map renders the non-empty filters for the report log.
func (f AssetFilter) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if f.CategoryID != nil {
		m["categoria"] = *f.CategoryID
	}
	if f.SubcategoryID != nil {
		m["subcategoria"] = *f.SubcategoryID
	}
	if f.LocationID != nil {
		m["ubicacion"] = *f.LocationID
	}
	if f.PersonID != nil {
		m["usuario_asignado"] = *f.PersonID
	}
	if f.Status != "" {
		m["estado"] = f.Status
	}
	if strings.TrimSpace(f.Search) != "" {
		m["buscar"] = strings.TrimSpace(f.Search)
	}
	return m
}

// MaintenanceFilter enumerates the recognized maintenance list filters.
// Search matches technician, description and the asset's inventory code.
type MaintenanceFilter struct {
	Status  string
	AssetID *uint
	Search  string
	Month   int
	Year    int
}

// CostStats is the statistics block shown next to the maintenance list.
//
// The filtered section reflects every filter the caller applied. The
// current-month/current-year sums are always computed over the global
// record set, and PeriodFinishedCost honors only the month/year filters —
// both scopes are displayed at the same time.
type CostStats struct {
	Total           int64
	InProgressCount int64
	FinishedCount   int64

	InProgressCost decimal.Decimal
	FinishedCost   decimal.Decimal
	TotalCost      decimal.Decimal

	CurrentMonthFinishedCost decimal.Decimal
	CurrentYearFinishedCost  decimal.Decimal
	PeriodFinishedCost       decimal.Decimal
}

// QueryService builds the filtered, paginated list views and their
// aggregates.
type QueryService struct {
	DB *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{DB: db}
}

func (s *QueryService) assetQuery(f AssetFilter) *gorm.DB {
	q := s.DB.Model(&models.Asset{})

	if f.CategoryID != nil {
		q = q.Joins("JOIN subcategories ON subcategories.id = assets.subcategory_id").
			Where("subcategories.category_id = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		q = q.Where("assets.subcategory_id = ?", *f.SubcategoryID)
	}
	if f.LocationID != nil {
		q = q.Where("assets.location_id = ?", *f.LocationID)
	}
	if f.PersonID != nil {
		q = q.Where("assets.person_id = ?", *f.PersonID)
	}
	if f.Status != "" {
		q = q.Where("assets.status = ?", f.Status)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(assets.inventory_code) LIKE ? OR LOWER(assets.brand) LIKE ? OR LOWER(assets.model) LIKE ? OR LOWER(assets.serial_number) LIKE ?",
			like, like, like, like,
		)
	}
	return q
}

// Assets returns the filtered asset page, newest-created first, plus the
// total match count.
func (s *QueryService) Assets(f AssetFilter, page Page) ([]models.Asset, int64, error) {
	base := s.assetQuery(f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []models.Asset
	if err := base.Session(&gorm.Session{}).
		Preload("Subcategory.Category").
		Preload("Location").
		Preload("Person").
		Order("assets.created_at DESC, assets.id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// AllAssets returns every matching asset in the same order as Assets.
// Report generation uses it so the document matches the listing exactly.
func (s *QueryService) AllAssets(f AssetFilter) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.assetQuery(f).
		Preload("Subcategory.Category").
		Preload("Location").
		Preload("Person").
		Order("assets.created_at DESC, assets.id DESC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// AssetsByIDs loads the given assets preserving the listing order. Used
// by the delivery note.
func (s *QueryService) AssetsByIDs(ids []uint) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.DB.
		Preload("Subcategory.Category").
		Preload("Location").
		Preload("Person").
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *QueryService) maintenanceQuery(f MaintenanceFilter) *gorm.DB {
	q := s.DB.Model(&models.MaintenanceRecord{})

	if f.Status != "" {
		q = q.Where("maintenance_records.status = ?", f.Status)
	}
	if f.AssetID != nil {
		q = q.Where("maintenance_records.asset_id = ?", *f.AssetID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Joins("JOIN assets ON assets.id = maintenance_records.asset_id").
			Where(
				"LOWER(maintenance_records.technician) LIKE ? OR LOWER(maintenance_records.description) LIKE ? OR LOWER(assets.inventory_code) LIKE ?",
				like, like, like,
			)
	}
	q = applyPeriod(q, f.Month, f.Year)
	return q
}

// applyPeriod restricts by registration month/year when given.
func applyPeriod(q *gorm.DB, month, year int) *gorm.DB {
	if month >= 1 && month <= 12 {
		q = q.Where("strftime('%m', maintenance_records.registered_at) = ?", fmt.Sprintf("%02d", month))
	}
	if year > 0 {
		q = q.Where("strftime('%Y', maintenance_records.registered_at) = ?", fmt.Sprintf("%04d", year))
	}
	return q
}

// Maintenance returns the filtered maintenance page, newest registration
// first, plus the total count and the dual-scope cost statistics.
func (s *QueryService) Maintenance(f MaintenanceFilter, page Page) ([]models.MaintenanceRecord, int64, *CostStats, error) {
	base := s.maintenanceQuery(f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	var records []models.MaintenanceRecord
	if err := base.Session(&gorm.Session{}).
		Preload("Asset.Subcategory.Category").
		Preload("Asset.Location").
		Order("maintenance_records.registered_at DESC, maintenance_records.id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&records).Error; err != nil {
		return nil, 0, nil, err
	}

	stats, err := s.costStats(f, total)
	if err != nil {
		return nil, 0, nil, err
	}
	return records, total, stats, nil
}

func (s *QueryService) sumCost(q *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := q.Select("COALESCE(SUM(maintenance_records.cost), 0)").Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (s *QueryService) costStats(f MaintenanceFilter, total int64) (*CostStats, error) {
	stats := &CostStats{Total: total}

	// filtered-view section
	if err := s.maintenanceQuery(f).
		Where("maintenance_records.status = ?", models.MaintenanceInProgress).
		Count(&stats.InProgressCount).Error; err != nil {
		return nil, err
	}
	if err := s.maintenanceQuery(f).
		Where("maintenance_records.status = ?", models.MaintenanceFinished).
		Count(&stats.FinishedCount).Error; err != nil {
		return nil, err
	}

	var err error
	stats.InProgressCost, err = s.sumCost(s.maintenanceQuery(f).
		Where("maintenance_records.status = ?", models.MaintenanceInProgress))
	if err != nil {
		return nil, err
	}
	stats.FinishedCost, err = s.sumCost(s.maintenanceQuery(f).
		Where("maintenance_records.status = ?", models.MaintenanceFinished))
	if err != nil {
		return nil, err
	}
	stats.TotalCost = stats.InProgressCost.Add(stats.FinishedCost)

	// always-current-period section: global set, finished only.
	// strftime reads the stored timestamps in UTC, so the current period
	// has to be derived in UTC too.
	now := time.Now().UTC()
	stats.CurrentMonthFinishedCost, err = s.sumCost(
		applyPeriod(s.DB.Model(&models.MaintenanceRecord{}), int(now.Month()), now.Year()).
			Where("maintenance_records.status = ?", models.MaintenanceFinished))
	if err != nil {
		return nil, err
	}
	stats.CurrentYearFinishedCost, err = s.sumCost(
		applyPeriod(s.DB.Model(&models.MaintenanceRecord{}), 0, now.Year()).
			Where("maintenance_records.status = ?", models.MaintenanceFinished))
	if err != nil {
		return nil, err
	}

	// period section: only month/year filters apply, status/search do not
	stats.PeriodFinishedCost, err = s.sumCost(
		applyPeriod(s.DB.Model(&models.MaintenanceRecord{}), f.Month, f.Year).
			Where("maintenance_records.status = ?", models.MaintenanceFinished))
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DashboardStats are the headline counters on the asset listing.
type DashboardStats struct {
	TotalAssets     int64
	TotalCategories int64
	TotalLocations  int64
	ByStatus        map[string]int64
}

// Dashboard computes the global counters shown above the asset list.
func (s *QueryService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{ByStatus: map[string]int64{}}

	if err := s.DB.Model(&models.Asset{}).Count(&stats.TotalAssets).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Location{}).Count(&stats.TotalLocations).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	if err := s.DB.Model(&models.Asset{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.N
	}
	return stats, nil
}
