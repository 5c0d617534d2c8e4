package handler

import (
	"net/http"

	"github.com/esrickpics/ProyectoSSAPI/internal/config"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
)

// PersonHandler serves assignable people.
type PersonHandler struct {
	People *service.PersonService
	Cfg    *config.Config
}

func NewPersonHandler(people *service.PersonService, cfg *config.Config) *PersonHandler {
	return &PersonHandler{People: people, Cfg: cfg}
}

type personReq struct {
	FirstNames     string `json:"first_names" binding:"required,max=100"`
	LastNames      string `json:"last_names" binding:"required,max=100"`
	Identification string `json:"identification" binding:"required,max=20"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"max=20"`
	Position       string `json:"position" binding:"max=100"`
	Department     string `json:"department" binding:"max=100"`
	Active         *bool  `json:"active"`
}

func (r *personReq) toInput() service.PersonInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return service.PersonInput{
		FirstNames:     r.FirstNames,
		LastNames:      r.LastNames,
		Identification: r.Identification,
		Email:          r.Email,
		Phone:          r.Phone,
		Position:       r.Position,
		Department:     r.Department,
		Active:         active,
	}
}

func (h *PersonHandler) Search(c *gin.Context) {
	page := pageFromQuery(c, h.Cfg)
	people, total, err := h.People.Search(c.Query("buscar"), page)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"items": people,
		"total": total,
		"page":  page.Number,
		"size":  page.Size,
	})
}

func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	p, err := h.People.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"person": p})
}

func (h *PersonHandler) Create(c *gin.Context) {
	var req personReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	p, err := h.People.Create(req.toInput())
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Usuario creado exitosamente.",
		"person":  p,
	})
}

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req personReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parámetros no válidos")
		return
	}
	p, err := h.People.Update(id, req.toInput())
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Usuario actualizado exitosamente.",
		"person":  p,
	})
}

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.People.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Usuario eliminado exitosamente."})
}
