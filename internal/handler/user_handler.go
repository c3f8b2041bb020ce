package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type userService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*models.CreatedUser, error)
	CreateAdmin(ctx context.Context, ident models.Identity, req dto.CreateAdminRequest) (*models.CreatedUser, error)
	List(ctx context.Context, ident models.Identity) ([]models.UserView, error)
	Get(ctx context.Context, ident models.Identity, id int) (*models.UserView, error)
	Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateUserRequest) (map[string]interface{}, error)
	Delete(ctx context.Context, ident models.Identity, id int) (string, error)
}

type loginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.TokenResponse, error)
}

type loginRecorder interface {
	RecordLogin(success bool)
}

// UserHandler exposes account and login endpoints.
type UserHandler struct {
	users   userService
	auth    loginService
	metrics loginRecorder
}

// NewUserHandler builds a new handler. The metrics recorder may be nil.
func NewUserHandler(users userService, auth loginService, metrics loginRecorder) *UserHandler {
	return &UserHandler{users: users, auth: auth, metrics: metrics}
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req)
	if h.metrics != nil {
		h.metrics.RecordLogin(err == nil)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}

// Signup godoc
// @Summary Register a parent account
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.SignupRequest true "Registration payload"
// @Success 201 {object} map[string]models.CreatedUser
// @Router /users [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// CreateAdmin godoc
// @Summary Register an account with role flags
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAdminRequest true "Registration payload"
// @Success 201 {object} map[string]models.CreatedUser
// @Router /users/admin [post]
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.users.CreateAdmin(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// List godoc
// @Summary List all accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserView
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	users, err := h.users.List(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get one account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Update godoc
// @Summary Update an account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param payload body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := h.users.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c, fields)
}

// Delete godoc
// @Summary Delete an account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	message, err := h.users.Delete(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
