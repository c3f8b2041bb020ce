package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/childcare-api/internal/authz"
	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

type childStore interface {
	List(ctx context.Context, ownerID *int) ([]models.Child, error)
	FindByID(ctx context.Context, id int) (*models.Child, error)
	Exists(ctx context.Context, firstName, lastName string, userID int) (bool, error)
	Create(ctx context.Context, child *models.Child) error
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id int) (bool, error)
	CommentsForChild(ctx context.Context, childID int) ([]models.CommentView, error)
	GroupsForChild(ctx context.Context, childID int) ([]models.ChildAttendanceView, error)
}

type childUserChecker interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// ChildService manages child registrations and their nested projections.
type ChildService struct {
	children childStore
	users    childUserChecker
	validate *validator.Validate
	logger   *zap.Logger
}

// NewChildService constructs the service with defaults.
func NewChildService(children childStore, users childUserChecker, validate *validator.Validate, logger *zap.Logger) *ChildService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{children: children, users: users, validate: validate, logger: logger}
}

// List returns children visible to the caller: all of them for an admin,
// only the caller's own for a parent. Teachers reach children through the
// comment surface instead.
func (s *ChildService) List(ctx context.Context, ident models.Identity) ([]models.ChildDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceChild, authz.OpList, ident.UserID); err != nil {
		return nil, err
	}

	var owner *int
	if !authz.HasBlanket(ident.Role, authz.ResourceChild, authz.OpList) {
		owner = &ident.UserID
	}
	children, err := s.children.List(ctx, owner)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list children")
	}

	details := make([]models.ChildDetail, 0, len(children))
	for _, child := range children {
		detail, err := s.detail(ctx, child)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Get returns one child with nested comments and attendances.
func (s *ChildService) Get(ctx context.Context, ident models.Identity, id int) (*models.ChildDetail, error) {
	child, err := s.find(ctx, ident, id, authz.OpGet)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *child)
}

// Create registers a child. Admins must name the owning user; parents always
// register against their own account.
func (s *ChildService) Create(ctx context.Context, ident models.Identity, req dto.CreateChildRequest) (*models.CreatedChild, error) {
	if err := authz.Authorize(ident, authz.ResourceChild, authz.OpCreate, ident.UserID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateName(req.FirstName); err != nil {
		return nil, err
	}
	if err := validateName(req.LastName); err != nil {
		return nil, err
	}

	ownerID := ident.UserID
	if ident.Role == models.RoleAdmin {
		if req.UserID == nil {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"No such user. Please check 'user_id' matches a registered user")
		}
		if _, err := s.users.FindByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
					"No such user. Please check 'user_id' matches a registered user")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user")
		}
		ownerID = *req.UserID
	}

	child := &models.Child{
		FirstName: capitalize(req.FirstName),
		LastName:  capitalize(req.LastName),
		UserID:    ownerID,
	}
	exists, err := s.children.Exists(ctx, child.FirstName, child.LastName, child.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check child")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"This child is already registered to this user")
	}
	if err := s.children.Create(ctx, child); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("child registered", zap.Int("child_id", child.ID), zap.Int("user_id", child.UserID))
	return &models.CreatedChild{FirstName: child.FirstName, LastName: child.LastName, UserID: child.UserID}, nil
}

// Update applies a partial name update to a child.
func (s *ChildService) Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateChildRequest) (map[string]interface{}, error) {
	child, err := s.find(ctx, ident, id, authz.OpUpdate)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}

	updated := map[string]interface{}{}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName); err != nil {
			return nil, err
		}
		child.FirstName = capitalize(*req.FirstName)
		updated["first_name"] = child.FirstName
	}
	if req.LastName != nil {
		if err := validateName(*req.LastName); err != nil {
			return nil, err
		}
		child.LastName = capitalize(*req.LastName)
		updated["last_name"] = child.LastName
	}

	if err := s.children.Update(ctx, child); err != nil {
		return nil, appErrors.FromError(err)
	}
	return updated, nil
}

// Delete removes a child together with its comments and attendances.
func (s *ChildService) Delete(ctx context.Context, ident models.Identity, id int) (string, error) {
	if _, err := s.find(ctx, ident, id, authz.OpDelete); err != nil {
		return "", err
	}
	deleted, err := s.children.Delete(ctx, id)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete child")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceChild, authz.OpDelete)
	}
	s.logger.Info("child deleted", zap.Int("child_id", id))
	return "Child registration deleted", nil
}

// find fetches a child and runs the ownership gate for the operation,
// translating a missing row per the caller's visibility.
func (s *ChildService) find(ctx context.Context, ident models.Identity, id int, op authz.Operation) (*models.Child, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceChild, op) {
		return nil, appErrors.ErrForbidden
	}
	child, err := s.children.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceChild, op)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch child")
	}
	if err := authz.Authorize(ident, authz.ResourceChild, op, child.UserID); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) detail(ctx context.Context, child models.Child) (*models.ChildDetail, error) {
	attendances, err := s.children.GroupsForChild(ctx, child.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list child groups")
	}
	comments, err := s.children.CommentsForChild(ctx, child.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list child comments")
	}
	return &models.ChildDetail{
		ID:          child.ID,
		UserID:      child.UserID,
		FirstName:   child.FirstName,
		LastName:    child.LastName,
		Attendances: attendances,
		Comments:    comments,
	}, nil
}

// Comments returns the reduced child projection with every comment recorded
// about them. Admins, teachers and the owning parent may read it.
func (s *ChildService) Comments(ctx context.Context, ident models.Identity, childID int) (*models.ChildCommentsView, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceComment, authz.OpList) {
		return nil, appErrors.ErrForbidden
	}
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceComment, authz.OpList)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch child")
	}
	if err := authz.Authorize(ident, authz.ResourceComment, authz.OpList, child.UserID); err != nil {
		return nil, err
	}

	comments, err := s.children.CommentsForChild(ctx, childID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list child comments")
	}
	return &models.ChildCommentsView{
		UserID:    child.UserID,
		FirstName: child.FirstName,
		LastName:  child.LastName,
		Comments:  comments,
	}, nil
}
