package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/pkg/response"
)

type commentService interface {
	Create(ctx context.Context, ident models.Identity, childID int, req dto.CreateCommentRequest) (*models.CreatedComment, error)
	Get(ctx context.Context, ident models.Identity, childID, commentID int) (*models.CommentDetail, error)
	Update(ctx context.Context, ident models.Identity, childID, commentID int, req dto.UpdateCommentRequest) (*models.CommentDetail, error)
	Delete(ctx context.Context, ident models.Identity, childID, commentID int) (string, error)
}

// CommentHandler exposes the comment endpoints nested under a child.
type CommentHandler struct {
	comments commentService
}

// NewCommentHandler builds a new handler.
func NewCommentHandler(comments commentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create godoc
// @Summary Post a comment about a child
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param payload body dto.CreateCommentRequest true "Comment payload"
// @Success 201 {object} map[string]models.CreatedComment
// @Router /children/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.comments.Create(c.Request.Context(), ident, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Get godoc
// @Summary Get one comment about a child
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param commentID path int true "Comment ID"
// @Success 200 {object} models.CommentDetail
// @Router /children/{id}/comments/{commentID} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := intParam(c, "commentID")
	if !ok {
		return
	}
	comment, err := h.comments.Get(c.Request.Context(), ident, childID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment)
}

// Update godoc
// @Summary Edit a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param commentID path int true "Comment ID"
// @Param payload body dto.UpdateCommentRequest true "Fields to update"
// @Success 200 {object} models.CommentDetail
// @Router /children/{id}/comments/{commentID} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := intParam(c, "commentID")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), ident, childID, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param commentID path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Router /children/{id}/comments/{commentID} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	childID, ok := intParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := intParam(c, "commentID")
	if !ok {
		return
	}
	message, err := h.comments.Delete(c.Request.Context(), ident, childID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, message)
}
