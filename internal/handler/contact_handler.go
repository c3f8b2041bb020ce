package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type contactService interface {
	List(ctx context.Context, ident models.Identity) ([]models.ContactView, error)
	Get(ctx context.Context, ident models.Identity, id int) (*models.ContactView, error)
	Create(ctx context.Context, ident models.Identity, req dto.CreateContactRequest) (*models.ContactView, error)
	Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateContactRequest) (map[string]interface{}, error)
	Delete(ctx context.Context, ident models.Identity, id int) (string, error)
}

// ContactHandler exposes the emergency contact endpoints.
type ContactHandler struct {
	contacts contactService
}

// NewContactHandler builds a new handler.
func NewContactHandler(contacts contactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List godoc
// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ContactView
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	contacts, err := h.contacts.List(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts)
}

// Get godoc
// @Summary Get a contact
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} models.ContactView
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	contact, err := h.contacts.Get(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact)
}

// Create godoc
// @Summary Register a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateContactRequest true "Contact payload"
// @Success 201 {object} map[string]models.ContactView
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.contacts.Create(c.Request.Context(), ident, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param payload body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Router /contacts/{id} [patch]
func (h *ContactHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := h.contacts.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c, fields)
}

// Delete godoc
// @Summary Delete a contact
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} map[string]string
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	message, err := h.contacts.Delete(c.Request.Context(), ident, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
