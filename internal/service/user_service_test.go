package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

type userStoreStub struct {
	users    map[int]models.User
	children map[int][]models.ChildRef
	contacts map[int][]models.ContactView
	nextID   int
	err      error
}

func newUserStoreStub(users ...models.User) *userStoreStub {
	s := &userStoreStub{
		users:    map[int]models.User{},
		children: map[int][]models.ChildRef{},
		contacts: map[int][]models.ContactView{},
		nextID:   1,
	}
	for _, user := range users {
		s.users[user.ID] = user
		if user.ID >= s.nextID {
			s.nextID = user.ID + 1
		}
	}
	return s
}

func (s *userStoreStub) List(ctx context.Context) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	return result, nil
}

func (s *userStoreStub) FindByID(ctx context.Context, id int) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func (s *userStoreStub) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, user := range s.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *userStoreStub) Create(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *userStoreStub) Update(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *userStoreStub) Delete(ctx context.Context, id int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *userStoreStub) ChildrenByUser(ctx context.Context, userID int) ([]models.ChildRef, error) {
	return s.children[userID], nil
}

func (s *userStoreStub) ContactsByUser(ctx context.Context, userID int) ([]models.ContactView, error) {
	return s.contacts[userID], nil
}

var (
	adminIdent   = models.Identity{UserID: 1, Role: models.RoleAdmin}
	teacherIdent = models.Identity{UserID: 2, Role: models.RoleTeacher}
	parentIdent  = models.Identity{UserID: 3, Role: models.RoleParent}
)

func seededUserStore() *userStoreStub {
	return newUserStoreStub(
		models.User{ID: 1, Email: "admin@example.com", FirstName: "Ada", IsAdmin: true},
		models.User{ID: 2, Email: "teacher@example.com", FirstName: "Tess", IsTeacher: true},
		models.User{ID: 3, Email: "parent@example.com", FirstName: "Pat"},
	)
}

func TestUserServiceSignupCapitalizesAndOmitsFlags(t *testing.T) {
	store := newUserStoreStub()
	svc := NewUserService(store, &credentialStub{}, nil, nil)

	created, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "sam@example.com",
		Password:  "longenough",
		FirstName: "sAm",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", created.FirstName)
	assert.Nil(t, created.IsAdmin)
	assert.Nil(t, created.IsTeacher)

	stored := store.users[1]
	assert.Equal(t, "hashed:longenough", stored.Password)
	assert.False(t, stored.IsAdmin)
}

func TestUserServiceSignupDuplicateEmail(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "parent@example.com",
		Password:  "longenough",
		FirstName: "Pat",
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "This email is already registered to a user. Please provide a unique email address", appErr.Message)
}

func TestUserServiceSignupRejectsInvalidName(t *testing.T) {
	svc := NewUserService(newUserStoreStub(), &credentialStub{}, nil, nil)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "sam@example.com",
		Password:  "longenough",
		FirstName: "s4m",
	})
	require.Error(t, err)
	assert.Equal(t, "Names must not contain numbers or special characters besides hyphens, apostrophes and spaces", appErrors.FromError(err).Message)
}

func TestUserServiceCreateAdminEchoesFlags(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	created, err := svc.CreateAdmin(context.Background(), adminIdent, dto.CreateAdminRequest{
		Email:     "new-teacher@example.com",
		Password:  "longenough",
		FirstName: "nina",
		IsTeacher: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created.IsAdmin)
	require.NotNil(t, created.IsTeacher)
	assert.False(t, *created.IsAdmin)
	assert.True(t, *created.IsTeacher)
}

func TestUserServiceCreateAdminForbiddenForOthers(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	for _, ident := range []models.Identity{teacherIdent, parentIdent} {
		_, err := svc.CreateAdmin(context.Background(), ident, dto.CreateAdminRequest{
			Email:     "new@example.com",
			Password:  "longenough",
			FirstName: "Nina",
		})
		require.Error(t, err)
		assert.Equal(t, 403, appErrors.FromError(err).Status)
	}
}

func TestUserServiceGetSelfOmitsFlags(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	view, err := svc.Get(context.Background(), parentIdent, 3)
	require.NoError(t, err)
	assert.Equal(t, "parent@example.com", view.Email)
	assert.Nil(t, view.IsAdmin)
	assert.Nil(t, view.IsTeacher)
}

func TestUserServiceGetAsAdminIncludesFlags(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	view, err := svc.Get(context.Background(), adminIdent, 2)
	require.NoError(t, err)
	require.NotNil(t, view.IsTeacher)
	assert.True(t, *view.IsTeacher)
}

func TestUserServiceGetForeignUserForbidden(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	_, err := svc.Get(context.Background(), parentIdent, 2)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestUserServiceGetMissingHidesExistenceFromNonAdmins(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	_, err := svc.Get(context.Background(), parentIdent, 99)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)

	_, err = svc.Get(context.Background(), adminIdent, 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestUserServiceListAdminOnly(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	views, err := svc.List(context.Background(), adminIdent)
	require.NoError(t, err)
	assert.Len(t, views, 3)

	_, err = svc.List(context.Background(), parentIdent)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestUserServiceUpdateEmptyBody(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	_, err := svc.Update(context.Background(), parentIdent, 3, dto.UpdateUserRequest{})
	require.Error(t, err)
	assert.Equal(t, "Please provide at least one value to update", appErrors.FromError(err).Message)
}

func TestUserServiceUpdateForeignUserForbiddenBeforeEmailCheck(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	// The target email is taken, but a caller who cannot touch the account
	// must see the ownership failure, not the uniqueness one.
	email := "admin@example.com"
	_, err := svc.Update(context.Background(), parentIdent, 2, dto.UpdateUserRequest{Email: &email})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "You are not authorised to access this resource", appErr.Message)
}

func TestUserServiceUpdateDuplicateEmailStillRejected(t *testing.T) {
	svc := NewUserService(seededUserStore(), &credentialStub{}, nil, nil)

	email := "admin@example.com"
	_, err := svc.Update(context.Background(), parentIdent, 3, dto.UpdateUserRequest{Email: &email})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "This email is already registered to a user. Please provide a unique email address", appErr.Message)
}

func TestUserServiceUpdatePasswordEchoesPlaceholder(t *testing.T) {
	store := seededUserStore()
	svc := NewUserService(store, &credentialStub{}, nil, nil)

	password := "newpassword"
	fields, err := svc.Update(context.Background(), parentIdent, 3, dto.UpdateUserRequest{Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Password successfully updated", fields["password"])
	assert.Equal(t, "hashed:newpassword", store.users[3].Password)
}

func TestUserServiceUpdateDropsFlagChangesForNonAdmins(t *testing.T) {
	store := seededUserStore()
	svc := NewUserService(store, &credentialStub{}, nil, nil)

	elevate := true
	fields, err := svc.Update(context.Background(), parentIdent, 3, dto.UpdateUserRequest{IsAdmin: &elevate})
	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.False(t, store.users[3].IsAdmin)
}

func TestUserServiceUpdateFlagChangesApplyForAdmins(t *testing.T) {
	store := seededUserStore()
	svc := NewUserService(store, &credentialStub{}, nil, nil)

	elevate := true
	fields, err := svc.Update(context.Background(), adminIdent, 3, dto.UpdateUserRequest{IsTeacher: &elevate})
	require.NoError(t, err)
	assert.Equal(t, true, fields["is_teacher"])
	assert.True(t, store.users[3].IsTeacher)
}

func TestUserServiceDeleteAdminOnly(t *testing.T) {
	store := seededUserStore()
	svc := NewUserService(store, &credentialStub{}, nil, nil)

	_, err := svc.Delete(context.Background(), parentIdent, 3)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)

	message, err := svc.Delete(context.Background(), adminIdent, 3)
	require.NoError(t, err)
	assert.Equal(t, "User registration deleted", message)
	assert.NotContains(t, store.users, 3)
}
