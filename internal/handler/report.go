package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/config"
	"github.com/esrickpics/ProyectoSSAPI/internal/middleware"
	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/report"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportHandler serves PDF generation, the XLSX export and the report
// log.
type ReportHandler struct {
	DB    *gorm.DB
	Query *service.QueryService
	Cfg   *config.Config
}

func NewReportHandler(db *gorm.DB, query *service.QueryService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{DB: db, Query: query, Cfg: cfg}
}

func reportFilename(prefix, ext string) string {
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", prefix, stamp, uuid.NewString()[:8], ext)
}

// logReport appends the immutable report log row. Only called once the
// document bytes exist.
func (h *ReportHandler) logReport(reportType string, actorID *uint, filters map[string]interface{}, count int, filename string) {
	raw, err := json.Marshal(filters)
	if err != nil {
		raw = []byte("{}")
	}
	_ = h.DB.Create(&models.ReportLog{
		Type:       reportType,
		UserID:     actorID,
		Filters:    datatypes.JSON(raw),
		AssetCount: count,
		Filename:   filename,
	}).Error
}

func (h *ReportHandler) archive(filename string, data []byte) {
	if h.Cfg.Reports.Dir == "" {
		return
	}
	// keep a copy next to the log row; failures only lose the copy
	_ = os.WriteFile(filepath.Join(h.Cfg.Reports.Dir, filename), data, 0o644)
}

// GeneralPDF renders the general asset report with the same filter
// contract as the asset listing, so both show the identical collection.
func (h *ReportHandler) GeneralPDF(c *gin.Context) {
	filter := assetFilterFromQuery(c)

	assets, err := h.Query.AllAssets(filter)
	if err != nil {
		serviceError(c, err)
		return
	}

	data, err := report.GeneralReport(report.GeneralReportInput{
		Institution: h.Cfg.Reports.Institution,
		Assets:      assets,
		Filters:     filter.Map(),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al generar el reporte")
		return
	}

	filename := reportFilename("reporte_activos", "pdf")
	h.archive(filename, data)
	h.logReport(models.ReportTypeGeneral, middleware.CurrentUserID(c), filter.Map(), len(assets), filename)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type deliveryNoteReq struct {
	AssetIDs    []uint `json:"asset_ids" binding:"required,min=1"`
	Responsible string `json:"responsible" binding:"max=150"`
	Remarks     string `json:"remarks"`
}

// DeliveryNote renders a delivery note for the selected assets.
func (h *ReportHandler) DeliveryNote(c *gin.Context) {
	var req deliveryNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "debe seleccionar al menos un activo para la nota de entrega")
		return
	}

	assets, err := h.Query.AssetsByIDs(req.AssetIDs)
	if err != nil {
		serviceError(c, err)
		return
	}
	if len(assets) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "los activos seleccionados no existen")
		return
	}

	data, err := report.DeliveryNote(report.DeliveryNoteInput{
		Institution: h.Cfg.Reports.Institution,
		Assets:      assets,
		Responsible: req.Responsible,
		Remarks:     req.Remarks,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al generar la nota de entrega")
		return
	}

	filename := reportFilename("nota_entrega", "pdf")
	h.archive(filename, data)
	h.logReport(models.ReportTypeDeliveryNote, middleware.CurrentUserID(c),
		map[string]interface{}{"activos_seleccionados": req.AssetIDs}, len(assets), filename)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type reportLogResp struct {
	ID         uint            `json:"id"`
	Type       string          `json:"type"`
	User       string          `json:"user,omitempty"`
	Filters    json.RawMessage `json:"filters"`
	AssetCount int             `json:"asset_count"`
	Filename   string          `json:"filename"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListLogs lists generated reports, newest first.
func (h *ReportHandler) ListLogs(c *gin.Context) {
	page := pageFromQuery(c, h.Cfg)

	base := h.DB.Model(&models.ReportLog{})
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al consultar los reportes")
		return
	}

	var logs []models.ReportLog
	if err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al consultar los reportes")
		return
	}

	items := make([]reportLogResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		item := reportLogResp{
			ID:         l.ID,
			Type:       l.Type,
			Filters:    json.RawMessage(l.Filters),
			AssetCount: l.AssetCount,
			Filename:   l.Filename,
			CreatedAt:  l.CreatedAt,
		}
		if l.User != nil {
			item.User = l.User.Username
		}
		items = append(items, item)
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page.Number,
		"size":  page.Size,
	})
}

// ExportXLSX exports the filtered asset list as a spreadsheet.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	assets, err := h.Query.AllAssets(assetFilterFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Activos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al crear la hoja de cálculo")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Código", "Marca", "Modelo", "Serial", "Categoría", "Subcategoría", "Ubicación", "Asignado a", "Estado", "Fecha de registro"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range assets {
		a := &assets[idx]
		row := idx + 2

		assigned := ""
		if a.Person != nil {
			assigned = a.Person.FullName()
		}

		values := []interface{}{
			a.InventoryCode,
			a.Brand,
			a.Model,
			a.SerialNumber,
			a.Subcategory.Category.Name,
			a.Subcategory.Name,
			a.Location.Name,
			assigned,
			a.Status,
			a.CreatedAt.Format("2006-01-02"),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "G", 20)
	f.SetColWidth(sheetName, "H", "H", 26)
	f.SetColWidth(sheetName, "I", "J", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		reportFilename("activos", "xlsx")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al exportar")
	}
}
