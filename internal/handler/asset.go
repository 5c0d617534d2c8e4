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
)

// AssetHandler serves the asset CRUD, reassignment, relocation and
// history endpoints.
type AssetHandler struct {
	Assets *service.AssetService
	Query  *service.QueryService
	Cfg    *config.Config
}

func NewAssetHandler(assets *service.AssetService, query *service.QueryService, cfg *config.Config) *AssetHandler {
	return &AssetHandler{Assets: assets, Query: query, Cfg: cfg}
}

type assetReq struct {
	InventoryCode string `json:"inventory_code" binding:"required,max=50"`
	Brand         string `json:"brand" binding:"required,max=100"`
	Model         string `json:"model" binding:"required,max=100"`
	SerialNumber  string `json:"serial_number" binding:"max=100"`
	SubcategoryID uint   `json:"subcategory_id" binding:"required"`
	LocationID    uint   `json:"location_id" binding:"required"`
	PersonID      *uint  `json:"person_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func (r *assetReq) toInput() service.AssetInput {
	return service.AssetInput{
		InventoryCode: r.InventoryCode,
		Brand:         r.Brand,
		Model:         r.Model,
		SerialNumber:  r.SerialNumber,
		SubcategoryID: r.SubcategoryID,
		LocationID:    r.LocationID,
		PersonID:      r.PersonID,
		Status:        r.Status,
		Notes:         r.Notes,
	}
}

type assetResp struct {
	ID            uint      `json:"id"`
	InventoryCode string    `json:"inventory_code"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	SerialNumber  string    `json:"serial_number,omitempty"`
	Category      string    `json:"category,omitempty"`
	Subcategory   string    `json:"subcategory,omitempty"`
	SubcategoryID uint      `json:"subcategory_id"`
	Location      string    `json:"location,omitempty"`
	LocationID    uint      `json:"location_id"`
	AssignedTo    string    `json:"assigned_to,omitempty"`
	PersonID      *uint     `json:"person_id,omitempty"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toAssetResp(a *models.Asset) assetResp {
	resp := assetResp{
		ID:            a.ID,
		InventoryCode: a.InventoryCode,
		Brand:         a.Brand,
		Model:         a.Model,
		SerialNumber:  a.SerialNumber,
		Category:      a.Subcategory.Category.Name,
		Subcategory:   a.Subcategory.Name,
		SubcategoryID: a.SubcategoryID,
		Location:      a.Location.Name,
		LocationID:    a.LocationID,
		PersonID:      a.PersonID,
		Status:        a.Status,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Person != nil {
		resp.AssignedTo = a.Person.FullName()
	}
	return resp
}

func assetFilterFromQuery(c *gin.Context) service.AssetFilter {
	return service.AssetFilter{
		CategoryID:    uintQuery(c, "categoria"),
		SubcategoryID: uintQuery(c, "subcategoria"),
		LocationID:    uintQuery(c, "ubicacion"),
		PersonID:      uintQuery(c, "usuario_asignado"),
		Status:        c.Query("estado"),
		Search:        c.Query("buscar"),
	}
}

// List returns the filtered, paginated asset collection.
func (h *AssetHandler) List(c *gin.Context) {
	page := pageFromQuery(c, h.Cfg)
	assets, total, err := h.Query.Assets(assetFilterFromQuery(c), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	items := make([]assetResp, 0, len(assets))
	for i := range assets {
		items = append(items, toAssetResp(&assets[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page.Number,
		"size":  page.Size,
	})
}

// Dashboard returns the headline counters for the listing page.
func (h *AssetHandler) Dashboard(c *gin.Context) {
	stats, err := h.Query.Dashboard()
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"total_assets":     stats.TotalAssets,
		"total_categories": stats.TotalCategories,
		"total_locations":  stats.TotalLocations,
		"by_status":        stats.ByStatus,
	})
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	asset, err := h.Assets.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"asset": toAssetResp(asset)})
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req assetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	asset, err := h.Assets.Create(req.toInput(), middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	full, err := h.Assets.Get(asset.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Activo creado exitosamente.",
		"asset":   toAssetResp(full),
	})
}

func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req assetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	if _, err := h.Assets.Update(id, req.toInput(), middleware.CurrentUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	full, err := h.Assets.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Activo actualizado exitosamente.",
		"asset":   toAssetResp(full),
	})
}

func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Assets.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Activo eliminado exitosamente."})
}

type reassignReq struct {
	PersonID *uint `json:"person_id"`
}

// Reassign assigns the asset to another person; null unassigns it.
func (h *AssetHandler) Reassign(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req reassignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	asset, err := h.Assets.Reassign(id, req.PersonID, middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Activo " + asset.InventoryCode + " reasignado exitosamente.",
	})
}

type relocateReq struct {
	LocationID uint `json:"location_id" binding:"required"`
}

func (h *AssetHandler) Relocate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req relocateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	asset, err := h.Assets.Relocate(id, req.LocationID, middleware.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Activo " + asset.InventoryCode + " reubicado exitosamente.",
	})
}

type movementResp struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	ChangedField string    `json:"changed_field,omitempty"`
	OldValue     string    `json:"old_value,omitempty"`
	NewValue     string    `json:"new_value,omitempty"`
	User         string    `json:"user,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// History lists the asset's movement entries, newest first.
func (h *AssetHandler) History(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	page := pageFromQuery(c, h.Cfg)
	entries, total, err := h.Assets.History(id, page)
	if err != nil {
		serviceError(c, err)
		return
	}

	items := make([]movementResp, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		item := movementResp{
			ID:           e.ID,
			Type:         e.Type,
			Description:  e.Description,
			ChangedField: e.ChangedField,
			OldValue:     e.OldValue,
			NewValue:     e.NewValue,
			CreatedAt:    e.CreatedAt,
		}
		if e.User != nil {
			item.User = e.User.Username
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
