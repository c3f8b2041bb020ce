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

type groupStoreStub struct {
	groups  map[int]models.Group
	teacher models.TeacherRef
	nextID  int
}

func newGroupStoreStub(groups ...models.Group) *groupStoreStub {
	s := &groupStoreStub{
		groups:  map[int]models.Group{},
		teacher: models.TeacherRef{ID: 1, FirstName: "Tess", Email: "tess@example.com"},
		nextID:  1,
	}
	for _, group := range groups {
		s.groups[group.ID] = group
		if group.ID >= s.nextID {
			s.nextID = group.ID + 1
		}
	}
	return s
}

func (s *groupStoreStub) List(ctx context.Context) ([]models.GroupDetail, error) {
	result := []models.GroupDetail{}
	for _, group := range s.groups {
		result = append(result, s.detailOf(group))
	}
	return result, nil
}

func (s *groupStoreStub) FindByID(ctx context.Context, id int) (*models.Group, error) {
	group, ok := s.groups[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &group, nil
}

func (s *groupStoreStub) DetailByID(ctx context.Context, id int) (*models.GroupDetail, error) {
	group, ok := s.groups[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := s.detailOf(group)
	return &detail, nil
}

func (s *groupStoreStub) Exists(ctx context.Context, groupName, day string, excludeID int) (bool, error) {
	for _, group := range s.groups {
		if group.GroupName == groupName && group.Day == day && group.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *groupStoreStub) Create(ctx context.Context, group *models.Group) error {
	group.ID = s.nextID
	s.nextID++
	s.groups[group.ID] = *group
	return nil
}

func (s *groupStoreStub) Update(ctx context.Context, group *models.Group) error {
	s.groups[group.ID] = *group
	return nil
}

func (s *groupStoreStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.groups[id]; !ok {
		return false, nil
	}
	delete(s.groups, id)
	return true, nil
}

func (s *groupStoreStub) detailOf(group models.Group) models.GroupDetail {
	return models.GroupDetail{
		ID:        group.ID,
		Day:       group.Day,
		GroupName: group.GroupName,
		Teacher:   s.teacher,
	}
}

type teacherFinderStub struct {
	teachers map[int]models.Teacher
}

func (s *teacherFinderStub) FindByID(ctx context.Context, id int) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &teacher, nil
}

func newGroupService(store *groupStoreStub) *GroupService {
	teachers := &teacherFinderStub{teachers: map[int]models.Teacher{
		1: {ID: 1, FirstName: "Tess", Email: "tess@example.com"},
	}}
	return NewGroupService(store, teachers, nil, nil)
}

func TestGroupServiceCreateNormalizesNameAndDay(t *testing.T) {
	store := newGroupStoreStub()
	svc := newGroupService(store)

	detail, err := svc.Create(context.Background(), adminIdent, dto.CreateGroupRequest{
		GroupName: "finger painting",
		Day:       "monday",
		TeacherID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Finger painting", detail.GroupName)
	assert.Equal(t, "Monday", detail.Day)
	assert.Equal(t, "Tess", detail.Teacher.FirstName)
}

func TestGroupServiceCreateRejectsBadDay(t *testing.T) {
	svc := newGroupService(newGroupStoreStub())

	_, err := svc.Create(context.Background(), adminIdent, dto.CreateGroupRequest{
		GroupName: "Finger painting",
		Day:       "Mon",
		TeacherID: 1,
	})
	require.Error(t, err)
	assert.Equal(t, "Day must be a full weekday name", appErrors.FromError(err).Message)
}

func TestGroupServiceCreateRejectsShortName(t *testing.T) {
	svc := newGroupService(newGroupStoreStub())

	_, err := svc.Create(context.Background(), adminIdent, dto.CreateGroupRequest{
		GroupName: "Ab",
		Day:       "Monday",
		TeacherID: 1,
	})
	require.Error(t, err)
	assert.Equal(t, "Group names must be at least 3 characters", appErrors.FromError(err).Message)
}

func TestGroupServiceCreateUnknownTeacher(t *testing.T) {
	svc := newGroupService(newGroupStoreStub())

	_, err := svc.Create(context.Background(), adminIdent, dto.CreateGroupRequest{
		GroupName: "Finger painting",
		Day:       "Monday",
		TeacherID: 99,
	})
	require.Error(t, err)
	assert.Equal(t, "No such teacher. Please check 'teacher_id' matches a registered teacher", appErrors.FromError(err).Message)
}

func TestGroupServiceCreateDuplicateNameAndDay(t *testing.T) {
	store := newGroupStoreStub(models.Group{ID: 1, GroupName: "Finger painting", Day: "Monday", TeacherID: 1})
	svc := newGroupService(store)

	_, err := svc.Create(context.Background(), adminIdent, dto.CreateGroupRequest{
		GroupName: "finger painting",
		Day:       "MONDAY",
		TeacherID: 1,
	})
	require.Error(t, err)
	assert.Equal(t, "A group is already registered with this name and day", appErrors.FromError(err).Message)
}

func TestGroupServiceWritesAdminOnly(t *testing.T) {
	store := newGroupStoreStub(models.Group{ID: 1, GroupName: "Finger painting", Day: "Monday", TeacherID: 1})
	svc := newGroupService(store)

	for _, ident := range []models.Identity{teacherIdent, parentIdent} {
		_, err := svc.Create(context.Background(), ident, dto.CreateGroupRequest{GroupName: "Story time", Day: "Tuesday", TeacherID: 1})
		require.Error(t, err)
		assert.Equal(t, 403, appErrors.FromError(err).Status)

		_, err = svc.Delete(context.Background(), ident, 1)
		require.Error(t, err)
		assert.Equal(t, 403, appErrors.FromError(err).Status)
	}
}

func TestGroupServiceReadsOpenToAllRoles(t *testing.T) {
	store := newGroupStoreStub(models.Group{ID: 1, GroupName: "Finger painting", Day: "Monday", TeacherID: 1})
	svc := newGroupService(store)

	for _, ident := range []models.Identity{adminIdent, teacherIdent, parentIdent} {
		groups, err := svc.List(context.Background(), ident)
		require.NoError(t, err)
		assert.Len(t, groups, 1)

		detail, err := svc.Get(context.Background(), ident, 1)
		require.NoError(t, err)
		assert.Equal(t, "Finger painting", detail.GroupName)
	}
}

func TestGroupServiceGetMissing(t *testing.T) {
	svc := newGroupService(newGroupStoreStub())

	// Reads are blanket for every role, so a missing group is a plain 404.
	_, err := svc.Get(context.Background(), parentIdent, 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestGroupServiceUpdateSwapsTeacherAndDay(t *testing.T) {
	store := newGroupStoreStub(models.Group{ID: 1, GroupName: "Finger painting", Day: "Monday", TeacherID: 1})
	svc := newGroupService(store)

	day := "friday"
	fields, err := svc.Update(context.Background(), adminIdent, 1, dto.UpdateGroupRequest{Day: &day})
	require.NoError(t, err)
	assert.Equal(t, "Friday", fields["day"])
	assert.Equal(t, "Friday", store.groups[1].Day)

	ghost := 99
	_, err = svc.Update(context.Background(), adminIdent, 1, dto.UpdateGroupRequest{TeacherID: &ghost})
	require.Error(t, err)
	assert.Equal(t, "No such teacher. Please check 'teacher_id' matches a registered teacher", appErrors.FromError(err).Message)
}

func TestGroupServiceDelete(t *testing.T) {
	store := newGroupStoreStub(models.Group{ID: 1, GroupName: "Finger painting", Day: "Monday", TeacherID: 1})
	svc := newGroupService(store)

	message, err := svc.Delete(context.Background(), adminIdent, 1)
	require.NoError(t, err)
	assert.Equal(t, "Group registration deleted", message)
	assert.NotContains(t, store.groups, 1)
}
