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

const teacherTakenMessage = "A teacher is already registered with this email"

type teacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int) (*models.Teacher, error)
	Exists(ctx context.Context, firstName, email string, excludeID int) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int) (bool, error)
	GroupsForTeacher(ctx context.Context, teacherID int) ([]models.GroupSummary, error)
}

// TeacherService manages teacher records. Admin only, end to end.
type TeacherService struct {
	teachers teacherStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTeacherService constructs the service with defaults.
func NewTeacherService(teachers teacherStore, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{teachers: teachers, validate: validate, logger: logger}
}

// List returns every teacher with their groups.
func (s *TeacherService) List(ctx context.Context, ident models.Identity) ([]models.TeacherDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceTeacher, authz.OpList, 0); err != nil {
		return nil, err
	}
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}

	details := make([]models.TeacherDetail, 0, len(teachers))
	for _, teacher := range teachers {
		detail, err := s.detail(ctx, teacher)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Get returns one teacher with their groups.
func (s *TeacherService) Get(ctx context.Context, ident models.Identity, id int) (*models.TeacherDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceTeacher, authz.OpGet, 0); err != nil {
		return nil, err
	}
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceTeacher, authz.OpGet)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher")
	}
	return s.detail(ctx, *teacher)
}

// Create registers a teacher. The name and email pair is the teacher's
// identity.
func (s *TeacherService) Create(ctx context.Context, ident models.Identity, req dto.CreateTeacherRequest) (*models.TeacherDetail, error) {
	if err := authz.Authorize(ident, authz.ResourceTeacher, authz.OpCreate, 0); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateName(req.FirstName); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{FirstName: capitalize(req.FirstName), Email: req.Email}
	exists, err := s.teachers.Exists(ctx, teacher.FirstName, teacher.Email, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, teacherTakenMessage)
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("teacher registered", zap.Int("teacher_id", teacher.ID))
	return s.detail(ctx, *teacher)
}

// Update applies a partial teacher update. A new email must not already be
// registered to another teacher.
func (s *TeacherService) Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateTeacherRequest) (map[string]interface{}, error) {
	if err := authz.Authorize(ident, authz.ResourceTeacher, authz.OpUpdate, 0); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}
	if req.Email != nil {
		taken, err := s.teachers.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher")
		}
		if taken {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, teacherTakenMessage)
		}
	}

	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceTeacher, authz.OpUpdate)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher")
	}

	updated := map[string]interface{}{}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName); err != nil {
			return nil, err
		}
		teacher.FirstName = capitalize(*req.FirstName)
		updated["first_name"] = teacher.FirstName
	}
	if req.Email != nil {
		teacher.Email = *req.Email
		updated["email"] = teacher.Email
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, appErrors.FromError(err)
	}
	return updated, nil
}

// Delete removes a teacher and the groups they run.
func (s *TeacherService) Delete(ctx context.Context, ident models.Identity, id int) (string, error) {
	if err := authz.Authorize(ident, authz.ResourceTeacher, authz.OpDelete, 0); err != nil {
		return "", err
	}
	deleted, err := s.teachers.Delete(ctx, id)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceTeacher, authz.OpDelete)
	}
	s.logger.Info("teacher deleted", zap.Int("teacher_id", id))
	return "Teacher registration deleted", nil
}

func (s *TeacherService) detail(ctx context.Context, teacher models.Teacher) (*models.TeacherDetail, error) {
	groups, err := s.teachers.GroupsForTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher groups")
	}
	return &models.TeacherDetail{
		ID:        teacher.ID,
		FirstName: teacher.FirstName,
		Email:     teacher.Email,
		Groups:    groups,
	}, nil
}
