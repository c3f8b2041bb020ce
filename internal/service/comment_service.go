package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/childcare-api/internal/authz"
	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// dateLayout renders dates the way comments carry them on the wire.
const dateLayout = "2006-01-02"

type commentStore interface {
	FindForChild(ctx context.Context, childID, commentID int) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) (bool, error)
}

type commentChildFinder interface {
	FindByID(ctx context.Context, id int) (*models.Child, error)
}

type commentUserFinder interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// CommentService manages comments recorded against children.
type CommentService struct {
	comments commentStore
	children commentChildFinder
	users    commentUserFinder
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewCommentService constructs the service with defaults.
func NewCommentService(comments commentStore, children commentChildFinder, users commentUserFinder, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		comments: comments,
		children: children,
		users:    users,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// Create posts a comment against a child. Every role may comment; parents
// only on their own children.
func (s *CommentService) Create(ctx context.Context, ident models.Identity, childID int, req dto.CreateCommentRequest) (*models.CreatedComment, error) {
	req.Urgency = strings.ToLower(req.Urgency)
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceComment, authz.OpCreate)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch child")
	}
	if err := authz.Authorize(ident, authz.ResourceComment, authz.OpCreate, child.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Message:     req.Message,
		Urgency:     req.Urgency,
		DateCreated: s.now(),
		UserID:      ident.UserID,
		ChildID:     childID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("comment posted",
		zap.Int("comment_id", comment.ID),
		zap.Int("child_id", childID),
		zap.String("urgency", comment.Urgency))

	author, err := s.users.FindByID(ctx, ident.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch author")
	}
	return &models.CreatedComment{
		Child:       models.ChildSummary{ID: child.ID, FirstName: child.FirstName, LastName: child.LastName},
		User:        models.UserRef{ID: author.ID, FirstName: author.FirstName},
		DateCreated: comment.DateCreated.Format(dateLayout),
		Urgency:     comment.Urgency,
		Message:     comment.Message,
	}, nil
}

// Get returns one comment scoped to a child. Admins and teachers read any;
// a parent only reads comments they authored.
func (s *CommentService) Get(ctx context.Context, ident models.Identity, childID, commentID int) (*models.CommentDetail, error) {
	comment, err := s.find(ctx, ident, childID, commentID, authz.OpGet)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ident, authz.ResourceComment, authz.OpGet, comment.UserID); err != nil {
		return nil, err
	}
	return s.detail(ctx, comment)
}

// Update edits a comment. Only the author may edit it, whatever their role;
// the edit markers are set on every successful update.
func (s *CommentService) Update(ctx context.Context, ident models.Identity, childID, commentID int, req dto.UpdateCommentRequest) (*models.CommentDetail, error) {
	if req.Urgency != nil {
		lowered := strings.ToLower(*req.Urgency)
		req.Urgency = &lowered
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	comment, err := s.find(ctx, ident, childID, commentID, authz.OpUpdate)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}
	if err := authz.Authorize(ident, authz.ResourceComment, authz.OpUpdate, comment.UserID); err != nil {
		return nil, err
	}

	if req.Message != nil {
		comment.Message = *req.Message
	}
	if req.Urgency != nil {
		comment.Urgency = *req.Urgency
	}
	comment.Edited = true
	edited := s.now()
	comment.DateEdited = &edited

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, appErrors.FromError(err)
	}
	return s.detail(ctx, comment)
}

// Delete removes a comment. Admins delete any; other roles only their own.
func (s *CommentService) Delete(ctx context.Context, ident models.Identity, childID, commentID int) (string, error) {
	comment, err := s.find(ctx, ident, childID, commentID, authz.OpDelete)
	if err != nil {
		return "", err
	}
	if err := authz.Authorize(ident, authz.ResourceComment, authz.OpDelete, comment.UserID); err != nil {
		return "", err
	}

	deleted, err := s.comments.Delete(ctx, comment.ID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete comment")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceComment, authz.OpDelete)
	}
	s.logger.Info("comment deleted", zap.Int("comment_id", comment.ID))
	return "Comment deleted", nil
}

func (s *CommentService) find(ctx context.Context, ident models.Identity, childID, commentID int, op authz.Operation) (*models.Comment, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceComment, op) {
		return nil, appErrors.ErrForbidden
	}
	comment, err := s.comments.FindForChild(ctx, childID, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceComment, op)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch comment")
	}
	return comment, nil
}

func (s *CommentService) detail(ctx context.Context, comment *models.Comment) (*models.CommentDetail, error) {
	child, err := s.children.FindByID(ctx, comment.ChildID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch child")
	}
	author, err := s.users.FindByID(ctx, comment.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch author")
	}

	var dateEdited *string
	if comment.DateEdited != nil {
		formatted := comment.DateEdited.Format(dateLayout)
		dateEdited = &formatted
	}
	return &models.CommentDetail{
		Child:         models.ChildSummary{ID: child.ID, FirstName: child.FirstName, LastName: child.LastName},
		User:          models.UserRef{ID: author.ID, FirstName: author.FirstName},
		CommentEdited: comment.Edited,
		DateEdited:    dateEdited,
		DateCreated:   comment.DateCreated.Format(dateLayout),
		Urgency:       comment.Urgency,
		Message:       comment.Message,
	}, nil
}
