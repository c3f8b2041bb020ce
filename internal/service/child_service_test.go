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

type childStoreStub struct {
	children map[int]models.Child
	comments map[int][]models.CommentView
	groups   map[int][]models.ChildAttendanceView
	nextID   int
	err      error
}

func newChildStoreStub(children ...models.Child) *childStoreStub {
	s := &childStoreStub{
		children: map[int]models.Child{},
		comments: map[int][]models.CommentView{},
		groups:   map[int][]models.ChildAttendanceView{},
		nextID:   1,
	}
	for _, child := range children {
		s.children[child.ID] = child
		if child.ID >= s.nextID {
			s.nextID = child.ID + 1
		}
	}
	return s
}

func (s *childStoreStub) List(ctx context.Context, ownerID *int) ([]models.Child, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := []models.Child{}
	for _, child := range s.children {
		if ownerID == nil || child.UserID == *ownerID {
			result = append(result, child)
		}
	}
	return result, nil
}

func (s *childStoreStub) FindByID(ctx context.Context, id int) (*models.Child, error) {
	if s.err != nil {
		return nil, s.err
	}
	child, ok := s.children[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &child, nil
}

func (s *childStoreStub) Exists(ctx context.Context, firstName, lastName string, userID int) (bool, error) {
	for _, child := range s.children {
		if child.FirstName == firstName && child.LastName == lastName && child.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *childStoreStub) Create(ctx context.Context, child *models.Child) error {
	if s.err != nil {
		return s.err
	}
	child.ID = s.nextID
	s.nextID++
	s.children[child.ID] = *child
	return nil
}

func (s *childStoreStub) Update(ctx context.Context, child *models.Child) error {
	s.children[child.ID] = *child
	return nil
}

func (s *childStoreStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.children[id]; !ok {
		return false, nil
	}
	delete(s.children, id)
	return true, nil
}

func (s *childStoreStub) CommentsForChild(ctx context.Context, childID int) ([]models.CommentView, error) {
	return s.comments[childID], nil
}

func (s *childStoreStub) GroupsForChild(ctx context.Context, childID int) ([]models.ChildAttendanceView, error) {
	return s.groups[childID], nil
}

func seededChildStore() *childStoreStub {
	return newChildStoreStub(
		models.Child{ID: 1, FirstName: "Mia", LastName: "Smith", UserID: 3},
		models.Child{ID: 2, FirstName: "Leo", LastName: "Jones", UserID: 4},
	)
}

func TestChildServiceParentCreatesOwnChild(t *testing.T) {
	store := newChildStoreStub()
	svc := NewChildService(store, seededUserStore(), nil, nil)

	created, err := svc.Create(context.Background(), parentIdent, dto.CreateChildRequest{
		FirstName: "mia",
		LastName:  "o'brien",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mia", created.FirstName)
	assert.Equal(t, "O'brien", created.LastName)
	assert.Equal(t, parentIdent.UserID, created.UserID)
}

func TestChildServiceAdminCreateRequiresUserID(t *testing.T) {
	svc := NewChildService(newChildStoreStub(), seededUserStore(), nil, nil)

	_, err := svc.Create(context.Background(), adminIdent, dto.CreateChildRequest{
		FirstName: "Mia",
		LastName:  "Smith",
	})
	require.Error(t, err)
	assert.Equal(t, "No such user. Please check 'user_id' matches a registered user", appErrors.FromError(err).Message)

	ghost := 99
	_, err = svc.Create(context.Background(), adminIdent, dto.CreateChildRequest{
		FirstName: "Mia",
		LastName:  "Smith",
		UserID:    &ghost,
	})
	require.Error(t, err)
	assert.Equal(t, "No such user. Please check 'user_id' matches a registered user", appErrors.FromError(err).Message)
}

func TestChildServiceCreateDuplicate(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	_, err := svc.Create(context.Background(), parentIdent, dto.CreateChildRequest{
		FirstName: "mia",
		LastName:  "smith",
	})
	require.Error(t, err)
	assert.Equal(t, "This child is already registered to this user", appErrors.FromError(err).Message)
}

func TestChildServiceTeacherCannotCreate(t *testing.T) {
	svc := NewChildService(newChildStoreStub(), seededUserStore(), nil, nil)

	_, err := svc.Create(context.Background(), teacherIdent, dto.CreateChildRequest{
		FirstName: "Mia",
		LastName:  "Smith",
	})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestChildServiceListScopedToOwner(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	details, err := svc.List(context.Background(), parentIdent)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Mia", details[0].FirstName)

	details, err = svc.List(context.Background(), adminIdent)
	require.NoError(t, err)
	assert.Len(t, details, 2)
}

func TestChildServiceGetForeignChildForbidden(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	_, err := svc.Get(context.Background(), parentIdent, 2)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestChildServiceGetMissingChild(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	_, err := svc.Get(context.Background(), adminIdent, 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	_, err = svc.Get(context.Background(), parentIdent, 99)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestChildServiceUpdateEmptyBody(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	_, err := svc.Update(context.Background(), parentIdent, 1, dto.UpdateChildRequest{})
	require.Error(t, err)
	assert.Equal(t, "Please provide at least one value to update", appErrors.FromError(err).Message)
}

func TestChildServiceUpdateCapitalizes(t *testing.T) {
	store := seededChildStore()
	svc := NewChildService(store, seededUserStore(), nil, nil)

	name := "lily-rose"
	fields, err := svc.Update(context.Background(), parentIdent, 1, dto.UpdateChildRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lily-rose", fields["first_name"])
	assert.Equal(t, "Lily-rose", store.children[1].FirstName)
}

func TestChildServiceDelete(t *testing.T) {
	store := seededChildStore()
	svc := NewChildService(store, seededUserStore(), nil, nil)

	message, err := svc.Delete(context.Background(), parentIdent, 1)
	require.NoError(t, err)
	assert.Equal(t, "Child registration deleted", message)
	assert.NotContains(t, store.children, 1)
}

func TestChildServiceCommentsOpenToTeachers(t *testing.T) {
	store := seededChildStore()
	store.comments[1] = []models.CommentView{{Message: "Slept well", Urgency: models.UrgencyNeutral}}
	svc := NewChildService(store, seededUserStore(), nil, nil)

	view, err := svc.Comments(context.Background(), teacherIdent, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mia", view.FirstName)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Slept well", view.Comments[0].Message)
}

func TestChildServiceCommentsForeignChildForbidden(t *testing.T) {
	svc := NewChildService(seededChildStore(), seededUserStore(), nil, nil)

	_, err := svc.Comments(context.Background(), parentIdent, 2)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}
