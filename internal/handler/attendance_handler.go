package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type attendanceService interface {
	ListForChild(ctx context.Context, ident models.Identity, childID int) ([]models.AttendanceDetail, error)
	Get(ctx context.Context, ident models.Identity, childID, attendanceID int) (*models.AttendanceDetail, error)
	Create(ctx context.Context, ident models.Identity, childID int, req dto.CreateAttendanceRequest) (*models.AttendanceDetail, error)
	Update(ctx context.Context, ident models.Identity, childID, attendanceID int, req dto.UpdateAttendanceRequest) (*models.AttendanceDetail, error)
	Delete(ctx context.Context, ident models.Identity, childID, attendanceID int) (string, error)
}

// AttendanceHandler exposes the attendance endpoints nested under a child.
type AttendanceHandler struct {
	attendances attendanceService
}

// NewAttendanceHandler builds a new handler.
func NewAttendanceHandler(attendances attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendances: attendances}
}

// List godoc
// @Summary List a child's attendance registrations
// @Tags Attendances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {array} models.AttendanceDetail
// @Router /children/{id}/attendances [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	attendances, err := h.attendances.ListForChild(c.Request.Context(), ident, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attendances)
}

// Get godoc
// @Summary Get one attendance registration
// @Tags Attendances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param attendanceID path int true "Attendance ID"
// @Success 200 {object} models.AttendanceDetail
// @Router /children/{id}/attendances/{attendanceID} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	attendanceID, ok := intParam(c, "attendanceID")
	if !ok {
		return
	}
	attendance, err := h.attendances.Get(c.Request.Context(), ident, childID, attendanceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attendance)
}

// Create godoc
// @Summary Register a child into a group
// @Tags Attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param payload body dto.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} map[string]models.AttendanceDetail
// @Router /children/{id}/attendances [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.attendances.Create(c.Request.Context(), ident, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update an attendance registration
// @Tags Attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param attendanceID path int true "Attendance ID"
// @Param payload body dto.UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} map[string]models.AttendanceDetail
// @Router /children/{id}/attendances/{attendanceID} [patch]
func (h *AttendanceHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	attendanceID, ok := intParam(c, "attendanceID")
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	attendance, err := h.attendances.Update(c.Request.Context(), ident, childID, attendanceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attendance)
}

// Delete godoc
// @Summary Delete an attendance registration
// @Tags Attendances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param attendanceID path int true "Attendance ID"
// @Success 200 {object} map[string]string
// @Router /children/{id}/attendances/{attendanceID} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	attendanceID, ok := intParam(c, "attendanceID")
	if !ok {
		return
	}
	message, err := h.attendances.Delete(c.Request.Context(), ident, childID, attendanceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
