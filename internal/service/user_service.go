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

const emailTakenMessage = "This email is already registered to a user. Please provide a unique email address"

type userStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) (bool, error)
	ChildrenByUser(ctx context.Context, userID int) ([]models.ChildRef, error)
	ContactsByUser(ctx context.Context, userID int) ([]models.ContactView, error)
}

// UserService manages account registration, projection and lifecycle.
type UserService struct {
	users       userStore
	credentials CredentialStore
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewUserService constructs the service with defaults.
func NewUserService(users userStore, credentials CredentialStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, credentials: credentials, validate: validate, logger: logger}
}

// Signup registers a parent account. It is the only unauthenticated write in
// the API, so the role flags are never accepted here.
func (s *UserService) Signup(ctx context.Context, req dto.SignupRequest) (*models.CreatedUser, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateName(req.FirstName); err != nil {
		return nil, err
	}
	return s.register(ctx, req.Email, req.Password, req.FirstName, false, false, emailTakenMessage, false)
}

// CreateAdmin registers an account with explicit role flags on behalf of an
// admin caller.
func (s *UserService) CreateAdmin(ctx context.Context, ident models.Identity, req dto.CreateAdminRequest) (*models.CreatedUser, error) {
	if err := authz.Authorize(ident, authz.ResourceUser, authz.OpCreate, 0); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateName(req.FirstName); err != nil {
		return nil, err
	}
	return s.register(ctx, req.Email, req.Password, req.FirstName, req.IsAdmin, req.IsTeacher,
		"Email already registered. Please provide a unique email address", true)
}

func (s *UserService) register(ctx context.Context, email, password, firstName string, isAdmin, isTeacher bool, takenMessage string, echoFlags bool) (*models.CreatedUser, error) {
	taken, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if taken {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, takenMessage)
	}

	hashed, err := s.credentials.Hash(password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: capitalize(firstName),
		IsAdmin:   isAdmin,
		IsTeacher: isTeacher,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("role", string(user.Role())))

	created := &models.CreatedUser{Email: user.Email, FirstName: user.FirstName}
	if echoFlags {
		created.IsAdmin = &user.IsAdmin
		created.IsTeacher = &user.IsTeacher
	}
	return created, nil
}

// List returns every account with nested children and contacts. Admin only.
func (s *UserService) List(ctx context.Context, ident models.Identity) ([]models.UserView, error) {
	if err := authz.Authorize(ident, authz.ResourceUser, authz.OpList, 0); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	views := make([]models.UserView, 0, len(users))
	for _, user := range users {
		view, err := s.view(ctx, user, true)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one account. Admins see any account with role flags; other
// callers only their own, without the flags.
func (s *UserService) Get(ctx context.Context, ident models.Identity, id int) (*models.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceUser, authz.OpGet)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if err := authz.Authorize(ident, authz.ResourceUser, authz.OpGet, user.ID); err != nil {
		return nil, err
	}
	return s.view(ctx, *user, ident.Role == models.RoleAdmin)
}

// Update applies a partial update. Admins update anyone; other callers only
// themselves. Role flag changes silently apply for admins and are silently
// dropped for everyone else, matching the echoed field list.
func (s *UserService) Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateUserRequest) (map[string]interface{}, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please provide at least one value to update")
	}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName); err != nil {
			return nil, err
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceUser, authz.OpUpdate)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if err := authz.Authorize(ident, authz.ResourceUser, authz.OpUpdate, user.ID); err != nil {
		return nil, err
	}

	// Uniqueness is checked only after the caller has cleared the ownership
	// gate, so a foreign PATCH cannot probe which emails are registered.
	if req.Email != nil {
		taken, err := s.users.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if taken {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, emailTakenMessage)
		}
	}

	updated := map[string]interface{}{}
	if req.Email != nil {
		user.Email = *req.Email
		updated["email"] = user.Email
	}
	if req.FirstName != nil {
		user.FirstName = capitalize(*req.FirstName)
		updated["first_name"] = user.FirstName
	}
	if req.Password != nil {
		hashed, err := s.credentials.Hash(*req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.Password = hashed
		updated["password"] = "Password successfully updated"
	}
	if ident.Role == models.RoleAdmin {
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
			updated["is_admin"] = user.IsAdmin
		}
		if req.IsTeacher != nil {
			user.IsTeacher = *req.IsTeacher
			updated["is_teacher"] = user.IsTeacher
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, appErrors.FromError(err)
	}
	return updated, nil
}

// Delete removes an account and everything registered under it. Admin only.
func (s *UserService) Delete(ctx context.Context, ident models.Identity, id int) (string, error) {
	if err := authz.Authorize(ident, authz.ResourceUser, authz.OpDelete, 0); err != nil {
		return "", err
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceUser, authz.OpDelete)
	}
	s.logger.Info("user deleted", zap.Int("user_id", id))
	return "User registration deleted", nil
}

func (s *UserService) view(ctx context.Context, user models.User, withFlags bool) (*models.UserView, error) {
	children, err := s.users.ChildrenByUser(ctx, user.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user children")
	}
	contacts, err := s.users.ContactsByUser(ctx, user.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user contacts")
	}

	view := &models.UserView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Children:  children,
		Contacts:  contacts,
	}
	if withFlags {
		view.IsAdmin = &user.IsAdmin
		view.IsTeacher = &user.IsTeacher
	}
	return view, nil
}
