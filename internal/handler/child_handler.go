package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type childService interface {
	List(ctx context.Context, ident models.Identity) ([]models.ChildDetail, error)
	Get(ctx context.Context, ident models.Identity, id int) (*models.ChildDetail, error)
	Create(ctx context.Context, ident models.Identity, req dto.CreateChildRequest) (*models.CreatedChild, error)
	Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateChildRequest) (map[string]interface{}, error)
	Delete(ctx context.Context, ident models.Identity, id int) (string, error)
	Comments(ctx context.Context, ident models.Identity, childID int) (*models.ChildCommentsView, error)
}

// ChildHandler exposes child registration endpoints.
type ChildHandler struct {
	children childService
}

// NewChildHandler builds a new handler.
func NewChildHandler(children childService) *ChildHandler {
	return &ChildHandler{children: children}
}

// List godoc
// @Summary List children visible to the caller
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ChildDetail
// @Router /children [get]
func (h *ChildHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	children, err := h.children.List(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, children)
}

// Get godoc
// @Summary Get one child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {object} models.ChildDetail
// @Router /children/{id} [get]
func (h *ChildHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	child, err := h.children.Get(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, child)
}

// Create godoc
// @Summary Register a child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateChildRequest true "Child payload"
// @Success 201 {object} map[string]models.CreatedChild
// @Router /children [post]
func (h *ChildHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateChildRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.children.Create(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update a child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param payload body dto.UpdateChildRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Router /children/{id} [patch]
func (h *ChildHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateChildRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := h.children.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c, fields)
}

// Delete godoc
// @Summary Delete a child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {object} map[string]string
// @Router /children/{id} [delete]
func (h *ChildHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	message, err := h.children.Delete(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}

// Comments godoc
// @Summary List comments recorded about a child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {object} models.ChildCommentsView
// @Router /children/{id}/comments [get]
func (h *ChildHandler) Comments(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	view, err := h.children.Comments(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
