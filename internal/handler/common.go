package handler

import (
	"net/http"
	"strconv"

	"github.com/esrickpics/ProyectoSSAPI/internal/config"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
)

// pageFromQuery reads ?page= and ?page_size= with app defaults.
func pageFromQuery(c *gin.Context, cfg *config.Config) service.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return service.NormalizePage(page, size, cfg.App.PageSize, cfg.App.MaxPageSize)
}

// uintParam parses a positive :id path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID no válido")
		return 0, false
	}
	return uint(v), true
}

// uintQuery parses an optional numeric query filter; empty means nil.
func uintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return nil
	}
	u := uint(v)
	return &u
}

// intQuery parses an optional numeric query filter; empty means 0.
func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// serviceError maps the service error taxonomy onto the JSON envelope.
func serviceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case service.IsConflict(err):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case service.IsNotFound(err):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error interno, intente nuevamente")
	}
}
