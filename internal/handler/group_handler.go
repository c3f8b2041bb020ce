package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type groupService interface {
	List(ctx context.Context, ident models.Identity) ([]models.GroupDetail, error)
	Get(ctx context.Context, ident models.Identity, id int) (*models.GroupDetail, error)
	Create(ctx context.Context, ident models.Identity, req dto.CreateGroupRequest) (*models.GroupDetail, error)
	Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateGroupRequest) (map[string]interface{}, error)
	Delete(ctx context.Context, ident models.Identity, id int) (string, error)
}

// GroupHandler exposes the group endpoints.
type GroupHandler struct {
	groups groupService
}

// NewGroupHandler builds a new handler.
func NewGroupHandler(groups groupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List godoc
// @Summary List groups
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.GroupDetail
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	groups, err := h.groups.List(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Get godoc
// @Summary Get a group
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} models.GroupDetail
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	group, err := h.groups.Get(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Create godoc
// @Summary Create a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateGroupRequest true "Group payload"
// @Success 201 {object} map[string]models.GroupDetail
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.groups.Create(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param payload body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Router /groups/{id} [patch]
func (h *GroupHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := h.groups.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c, fields)
}

// Delete godoc
// @Summary Delete a group
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string
// @Router /groups/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	message, err := h.groups.Delete(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
