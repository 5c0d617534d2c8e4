package handler

import (
	"net/http"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves categories, subcategories and locations.
type TaxonomyHandler struct {
	Taxonomy *service.TaxonomyService
}

func NewTaxonomyHandler(taxonomy *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{Taxonomy: taxonomy}
}

type nameReq struct {
	Name string `json:"name" binding:"required,max=100"`
}

type subcategoryReq struct {
	Name       string `json:"name" binding:"required,max=100"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

type categoryResp struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type subcategoryResp struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt}
}

func toSubcategoryResp(sub *models.Subcategory) subcategoryResp {
	return subcategoryResp{
		ID:           sub.ID,
		Name:         sub.Name,
		CategoryID:   sub.CategoryID,
		CategoryName: sub.Category.Name,
	}
}

// ---------- categorías ----------

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	cats, err := h.Taxonomy.ListCategories()
	if err != nil {
		serviceError(c, err)
		return
	}
	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	cat, err := h.Taxonomy.CreateCategory(req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":  "Categoría creada exitosamente.",
		"category": toCategoryResp(cat),
	})
}

func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	cat, err := h.Taxonomy.UpdateCategory(id, req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":  "Categoría actualizada exitosamente.",
		"category": toCategoryResp(cat),
	})
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteCategory(id); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Categoría eliminada exitosamente."})
}

// ---------- subcategorías ----------

func (h *TaxonomyHandler) ListSubcategories(c *gin.Context) {
	subs, err := h.Taxonomy.ListSubcategories(uintQuery(c, "categoria"))
	if err != nil {
		serviceError(c, err)
		return
	}
	items := make([]subcategoryResp, 0, len(subs))
	for i := range subs {
		items = append(items, toSubcategoryResp(&subs[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *TaxonomyHandler) CreateSubcategory(c *gin.Context) {
	var req subcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	sub, err := h.Taxonomy.CreateSubcategory(req.Name, req.CategoryID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":     "Subcategoría creada exitosamente.",
		"subcategory": toSubcategoryResp(sub),
	})
}

func (h *TaxonomyHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req subcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	sub, err := h.Taxonomy.UpdateSubcategory(id, req.Name, req.CategoryID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":     "Subcategoría actualizada exitosamente.",
		"subcategory": toSubcategoryResp(sub),
	})
}

func (h *TaxonomyHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteSubcategory(id); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Subcategoría eliminada exitosamente."})
}

// ---------- ubicaciones ----------

func (h *TaxonomyHandler) ListLocations(c *gin.Context) {
	locs, err := h.Taxonomy.ListLocations()
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"items": locs})
}

func (h *TaxonomyHandler) CreateLocation(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	loc, err := h.Taxonomy.CreateLocation(req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":  "Ubicación creada exitosamente.",
		"location": loc,
	})
}

func (h *TaxonomyHandler) UpdateLocation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	loc, err := h.Taxonomy.UpdateLocation(id, req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message":  "Ubicación actualizada exitosamente.",
		"location": loc,
	})
}

func (h *TaxonomyHandler) DeleteLocation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteLocation(id); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Ubicación eliminada exitosamente."})
}
