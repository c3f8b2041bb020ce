package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/childcare-api/internal/authz"
	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

const groupTakenMessage = "A group is already registered with this name and day"

type groupStore interface {
	List(ctx context.Context) ([]models.GroupDetail, error)
	FindByID(ctx context.Context, id int) (*models.Group, error)
	DetailByID(ctx context.Context, id int) (*models.GroupDetail, error)
	Exists(ctx context.Context, groupName, day string, excludeID int) (bool, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int) (bool, error)
}

type groupTeacherFinder interface {
	FindByID(ctx context.Context, id int) (*models.Teacher, error)
}

// GroupService manages activity groups. Every authenticated role may read
// them; only admins change them.
type GroupService struct {
	groups   groupStore
	teachers groupTeacherFinder
	validate *validator.Validate
	logger   *zap.Logger
}

// NewGroupService constructs the service with defaults.
func NewGroupService(groups groupStore, teachers groupTeacherFinder, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{groups: groups, teachers: teachers, validate: validate, logger: logger}
}

// List returns every group with its teacher.
func (s *GroupService) List(ctx context.Context, ident models.Identity) ([]models.GroupDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceGroup, authz.OpList, 0); err != nil {
		return nil, err
	}
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Get returns one group with its teacher.
func (s *GroupService) Get(ctx context.Context, ident models.Identity, id int) (*models.GroupDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceGroup, authz.OpGet, 0); err != nil {
		return nil, err
	}
	detail, err := s.groups.DetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceGroup, authz.OpGet)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch group")
	}
	return detail, nil
}

// Create registers a group. Admin only.
func (s *GroupService) Create(ctx context.Context, ident models.Identity, req dto.CreateGroupRequest) (*models.GroupDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceGroup, authz.OpCreate, 0); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateGroupName(req.GroupName); err != nil {
		return nil, err
	}

	group := &models.Group{
		GroupName: capitalize(req.GroupName),
		Day:       capitalize(req.Day),
		TeacherID: req.TeacherID,
	}
	if !models.ValidDay(group.Day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Day must be a full weekday name")
	}
	if _, err := s.teachers.FindByID(ctx, group.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"No such teacher. Please check 'teacher_id' matches a registered teacher")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher")
	}

	exists, err := s.groups.Exists(ctx, group.GroupName, group.Day, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, groupTakenMessage)
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("group registered", zap.Int("group_id", group.ID), zap.String("day", group.Day))
	return s.groups.DetailByID(ctx, group.ID)
}

// Update applies a partial group update. Admin only.
func (s *GroupService) Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateGroupRequest) (map[string]interface{}, error) {
	if err := authz.Authorize(ident, authz.ResourceGroup, authz.OpUpdate, 0); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}

	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceGroup, authz.OpUpdate)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch group")
	}

	updated := map[string]interface{}{}
	if req.GroupName != nil {
		if err := validateGroupName(*req.GroupName); err != nil {
			return nil, err
		}
		group.GroupName = capitalize(*req.GroupName)
		updated["group_name"] = group.GroupName
	}
	if req.Day != nil {
		group.Day = capitalize(*req.Day)
		if !models.ValidDay(group.Day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Day must be a full weekday name")
		}
		updated["day"] = group.Day
	}
	if req.TeacherID != nil {
		if _, err := s.teachers.FindByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
					"No such teacher. Please check 'teacher_id' matches a registered teacher")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher")
		}
		group.TeacherID = *req.TeacherID
		updated["teacher_id"] = group.TeacherID
	}

	exists, err := s.groups.Exists(ctx, group.GroupName, group.Day, group.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, groupTakenMessage)
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, appErrors.FromError(err)
	}
	return updated, nil
}

// Delete removes a group and its attendance registrations. Admin only.
func (s *GroupService) Delete(ctx context.Context, ident models.Identity, id int) (string, error) {
	if err := authz.Authorize(ident, authz.ResourceGroup, authz.OpDelete, 0); err != nil {
		return "", err
	}
	deleted, err := s.groups.Delete(ctx, id)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceGroup, authz.OpDelete)
	}
	s.logger.Info("group deleted", zap.Int("group_id", id))
	return "Group registration deleted", nil
}

// validateGroupName screens a group name. Minimum three characters.
func validateGroupName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return appErrors.Clone(appErrors.ErrValidation, "Group names must be at least 3 characters")
	}
	if !namePattern.MatchString(name) {
		return appErrors.Clone(appErrors.ErrValidation, "Names must not contain numbers or special characters besides hyphens, apostrophes and spaces")
	}
	return nil
}
