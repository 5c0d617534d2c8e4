package handler

import (
	"net/http"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/config"
	"github.com/esrickpics/ProyectoSSAPI/internal/middleware"
	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MaintenanceHandler serves maintenance records and their statistics.
type MaintenanceHandler struct {
	Maintenance *service.MaintenanceService
	Query       *service.QueryService
	Cfg         *config.Config
}

func NewMaintenanceHandler(maintenance *service.MaintenanceService, query *service.QueryService, cfg *config.Config) *MaintenanceHandler {
	return &MaintenanceHandler{Maintenance: maintenance, Query: query, Cfg: cfg}
}

type maintenanceReq struct {
	AssetID     uint   `json:"asset_id" binding:"required"`
	Technician  string `json:"technician" binding:"required,max=150"`
	Phone       string `json:"phone" binding:"max=20"`
	Description string `json:"description" binding:"required"`
	Cost        string `json:"cost" binding:"required"`
	Status      string `json:"status"`
}

func (r *maintenanceReq) toInput() (service.MaintenanceInput, error) {
	cost, err := decimal.NewFromString(r.Cost)
	if err != nil {
		return service.MaintenanceInput{}, err
	}
	return service.MaintenanceInput{
		AssetID:     r.AssetID,
		Technician:  r.Technician,
		Phone:       r.Phone,
		Description: r.Description,
		Cost:        cost,
		Status:      r.Status,
	}, nil
}

type maintenanceResp struct {
	ID            uint      `json:"id"`
	AssetID       uint      `json:"asset_id"`
	InventoryCode string    `json:"inventory_code,omitempty"`
	Technician    string    `json:"technician"`
	Phone         string    `json:"phone,omitempty"`
	Description   string    `json:"description"`
	Cost          string    `json:"cost"`
	Status        string    `json:"status"`
	RegisteredAt  time.Time `json:"registered_at"`
}

func toMaintenanceResp(rec *models.MaintenanceRecord) maintenanceResp {
	return maintenanceResp{
		ID:            rec.ID,
		AssetID:       rec.AssetID,
		InventoryCode: rec.Asset.InventoryCode,
		Technician:    rec.Technician,
		Phone:         rec.Phone,
		Description:   rec.Description,
		Cost:          rec.Cost.StringFixed(2),
		Status:        rec.Status,
		RegisteredAt:  rec.RegisteredAt,
	}
}

// List returns the filtered maintenance page plus the dual-scope cost
// statistics the listing shows side by side.
func (h *MaintenanceHandler) List(c *gin.Context) {
	filter := service.MaintenanceFilter{
		Status:  c.Query("estado"),
		AssetID: uintQuery(c, "activo"),
		Search:  c.Query("buscar"),
		Month:   intQuery(c, "mes"),
		Year:    intQuery(c, "anio"),
	}
	page := pageFromQuery(c, h.Cfg)

	records, total, stats, err := h.Query.Maintenance(filter, page)
	if err != nil {
		serviceError(c, err)
		return
	}

	items := make([]maintenanceResp, 0, len(records))
	for i := range records {
		items = append(items, toMaintenanceResp(&records[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page.Number,
		"size":  page.Size,
		"stats": gin.H{
			"total":                       stats.Total,
			"in_progress":                 stats.InProgressCount,
			"finished":                    stats.FinishedCount,
			"cost_in_progress":            stats.InProgressCost.StringFixed(2),
			"cost_finished":               stats.FinishedCost.StringFixed(2),
			"cost_total":                  stats.TotalCost.StringFixed(2),
			"cost_current_month_finished": stats.CurrentMonthFinishedCost.StringFixed(2),
			"cost_current_year_finished":  stats.CurrentYearFinishedCost.StringFixed(2),
			"cost_period_finished":        stats.PeriodFinishedCost.StringFixed(2),
		},
	})
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.Maintenance.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"maintenance": toMaintenanceResp(rec)})
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req maintenanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "costo no válido")
		return
	}
	rec, err := h.Maintenance.Create(in, middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":     "Mantenimiento agregado correctamente.",
		"maintenance": toMaintenanceResp(rec),
	})
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req maintenanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "costo no válido")
		return
	}
	rec, err := h.Maintenance.Update(id, in, middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":     "Mantenimiento actualizado correctamente.",
		"maintenance": toMaintenanceResp(rec),
	})
}

// Finish closes an in-progress maintenance in one click.
func (h *MaintenanceHandler) Finish(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.Maintenance.Finish(id, middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":     "Mantenimiento finalizado correctamente. Costo aplicado: $" + rec.Cost.StringFixed(2),
		"maintenance": toMaintenanceResp(rec),
	})
}
