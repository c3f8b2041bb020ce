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

type attendanceStore interface {
	ListByChild(ctx context.Context, childID int) ([]models.AttendanceDetail, error)
	FindByID(ctx context.Context, id int) (*models.Attendance, error)
	DetailForChild(ctx context.Context, childID, attendanceID int) (*models.AttendanceDetail, error)
	Exists(ctx context.Context, childID, groupID int) (bool, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id int) (bool, error)
}

type attendanceChildFinder interface {
	FindByID(ctx context.Context, id int) (*models.Child, error)
}

type attendanceContactFinder interface {
	FindByID(ctx context.Context, id int) (*models.Contact, error)
}

// AttendanceService manages group attendance registrations for children.
type AttendanceService struct {
	attendances attendanceStore
	children    attendanceChildFinder
	contacts    attendanceContactFinder
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs the service with defaults.
func NewAttendanceService(attendances attendanceStore, children attendanceChildFinder, contacts attendanceContactFinder, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		attendances: attendances,
		children:    children,
		contacts:    contacts,
		validate:    validate,
		logger:      logger,
	}
}

// ListForChild returns the attendance registrations of one child. An empty
// roster reads as a missing resource.
func (s *AttendanceService) ListForChild(ctx context.Context, ident models.Identity, childID int) ([]models.AttendanceDetail, error) {
	child, err := s.findChild(ctx, ident, childID, authz.OpList)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ident, authz.ResourceAttendance, authz.OpList, child.UserID); err != nil {
		return nil, err
	}

	details, err := s.attendances.ListByChild(ctx, childID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendances")
	}
	if len(details) == 0 {
		return nil, appErrors.ErrNotFound
	}
	return details, nil
}

// Get returns one attendance registration scoped to a child.
func (s *AttendanceService) Get(ctx context.Context, ident models.Identity, childID, attendanceID int) (*models.AttendanceDetail, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceAttendance, authz.OpGet) {
		return nil, appErrors.ErrForbidden
	}
	detail, err := s.attendances.DetailForChild(ctx, childID, attendanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceAttendance, authz.OpGet)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if err := authz.Authorize(ident, authz.ResourceAttendance, authz.OpGet, detail.Child.UserID); err != nil {
		return nil, err
	}
	return detail, nil
}

// Create registers a child into a group. Teachers cannot register
// attendances; parents only for their own children with their own contacts.
func (s *AttendanceService) Create(ctx context.Context, ident models.Identity, childID int, req dto.CreateAttendanceRequest) (*models.AttendanceDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	child, err := s.findChild(ctx, ident, childID, authz.OpCreate)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ident, authz.ResourceAttendance, authz.OpCreate, child.UserID); err != nil {
		return nil, err
	}
	if ident.Role == models.RoleParent {
		if err := s.checkContactOwnership(ctx, req.ContactID, ident.UserID); err != nil {
			return nil, err
		}
	}

	exists, err := s.attendances.Exists(ctx, childID, req.GroupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Child attendance is already registered for that group")
	}

	attendance := &models.Attendance{ChildID: childID, GroupID: req.GroupID, ContactID: req.ContactID}
	if err := s.attendances.Create(ctx, attendance); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("attendance registered",
		zap.Int("attendance_id", attendance.ID),
		zap.Int("child_id", childID),
		zap.Int("group_id", req.GroupID))

	detail, err := s.attendances.DetailForChild(ctx, childID, attendance.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	return detail, nil
}

// Update changes the group or pickup contact of a registration and returns
// the saved detail.
func (s *AttendanceService) Update(ctx context.Context, ident models.Identity, childID, attendanceID int, req dto.UpdateAttendanceRequest) (*models.AttendanceDetail, error) {
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}
	if !authz.CanAttempt(ident.Role, authz.ResourceAttendance, authz.OpUpdate) {
		return nil, appErrors.ErrForbidden
	}

	detail, err := s.attendances.DetailForChild(ctx, childID, attendanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceAttendance, authz.OpUpdate)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if err := authz.Authorize(ident, authz.ResourceAttendance, authz.OpUpdate, detail.Child.UserID); err != nil {
		return nil, err
	}
	if req.ContactID != nil && ident.Role == models.RoleParent {
		if err := s.checkContactOwnership(ctx, *req.ContactID, ident.UserID); err != nil {
			return nil, err
		}
	}

	attendance, err := s.attendances.FindByID(ctx, attendanceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if req.GroupID != nil {
		attendance.GroupID = *req.GroupID
	}
	if req.ContactID != nil {
		attendance.ContactID = *req.ContactID
	}

	if err := s.attendances.Update(ctx, attendance); err != nil {
		return nil, appErrors.FromError(err)
	}

	updated, err := s.attendances.DetailForChild(ctx, childID, attendanceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	return updated, nil
}

// Delete removes an attendance registration.
func (s *AttendanceService) Delete(ctx context.Context, ident models.Identity, childID, attendanceID int) (string, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceAttendance, authz.OpDelete) {
		return "", appErrors.ErrForbidden
	}
	detail, err := s.attendances.DetailForChild(ctx, childID, attendanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", authz.OnMissing(ident.Role, authz.ResourceAttendance, authz.OpDelete)
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if err := authz.Authorize(ident, authz.ResourceAttendance, authz.OpDelete, detail.Child.UserID); err != nil {
		return "", err
	}

	deleted, err := s.attendances.Delete(ctx, attendanceID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceAttendance, authz.OpDelete)
	}
	s.logger.Info("attendance deleted", zap.Int("attendance_id", attendanceID))
	return "Attendance deleted", nil
}

func (s *AttendanceService) findChild(ctx context.Context, ident models.Identity, childID int, op authz.Operation) (*models.Child, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceAttendance, op) {
		return nil, appErrors.ErrForbidden
	}
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceAttendance, op)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch child")
	}
	return child, nil
}

func (s *AttendanceService) checkContactOwnership(ctx context.Context, contactID, userID int) error {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"Please enter a contact_id registered to your account")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch contact")
	}
	if contact.UserID != userID {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please enter a contact_id registered to your account")
	}
	return nil
}
