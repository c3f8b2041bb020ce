package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type teacherService interface {
	List(ctx context.Context, ident models.Identity) ([]models.TeacherDetail, error)
	Get(ctx context.Context, ident models.Identity, id int) (*models.TeacherDetail, error)
	Create(ctx context.Context, ident models.Identity, req dto.CreateTeacherRequest) (*models.TeacherDetail, error)
	Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateTeacherRequest) (map[string]interface{}, error)
	Delete(ctx context.Context, ident models.Identity, id int) (string, error)
}

// TeacherHandler exposes the teacher endpoints.
type TeacherHandler struct {
	teachers teacherService
}

// NewTeacherHandler builds a new handler.
func NewTeacherHandler(teachers teacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TeacherDetail
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	teachers, err := h.teachers.List(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// Get godoc
// @Summary Get a teacher
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.TeacherDetail
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Create godoc
// @Summary Register a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} map[string]models.TeacherDetail
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.teachers.Create(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param payload body dto.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Router /teachers/{id} [patch]
func (h *TeacherHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := h.teachers.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c, fields)
}

// Delete godoc
// @Summary Delete a teacher
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} map[string]string
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	message, err := h.teachers.Delete(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
