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

type attendanceStoreStub struct {
	attendances map[int]models.Attendance
	owners      map[int]int // child id -> owning user id
	nextID      int
}

func newAttendanceStoreStub(attendances ...models.Attendance) *attendanceStoreStub {
	s := &attendanceStoreStub{
		attendances: map[int]models.Attendance{},
		owners:      map[int]int{1: 3, 2: 4},
		nextID:      1,
	}
	for _, attendance := range attendances {
		s.attendances[attendance.ID] = attendance
		if attendance.ID >= s.nextID {
			s.nextID = attendance.ID + 1
		}
	}
	return s
}

func (s *attendanceStoreStub) ListByChild(ctx context.Context, childID int) ([]models.AttendanceDetail, error) {
	result := []models.AttendanceDetail{}
	for _, attendance := range s.attendances {
		if attendance.ChildID == childID {
			result = append(result, s.detail(attendance))
		}
	}
	return result, nil
}

func (s *attendanceStoreStub) FindByID(ctx context.Context, id int) (*models.Attendance, error) {
	attendance, ok := s.attendances[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &attendance, nil
}

func (s *attendanceStoreStub) DetailForChild(ctx context.Context, childID, attendanceID int) (*models.AttendanceDetail, error) {
	attendance, ok := s.attendances[attendanceID]
	if !ok || attendance.ChildID != childID {
		return nil, sql.ErrNoRows
	}
	detail := s.detail(attendance)
	return &detail, nil
}

func (s *attendanceStoreStub) Exists(ctx context.Context, childID, groupID int) (bool, error) {
	for _, attendance := range s.attendances {
		if attendance.ChildID == childID && attendance.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (s *attendanceStoreStub) Create(ctx context.Context, attendance *models.Attendance) error {
	attendance.ID = s.nextID
	s.nextID++
	s.attendances[attendance.ID] = *attendance
	return nil
}

func (s *attendanceStoreStub) Update(ctx context.Context, attendance *models.Attendance) error {
	s.attendances[attendance.ID] = *attendance
	return nil
}

func (s *attendanceStoreStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.attendances[id]; !ok {
		return false, nil
	}
	delete(s.attendances, id)
	return true, nil
}

func (s *attendanceStoreStub) detail(attendance models.Attendance) models.AttendanceDetail {
	return models.AttendanceDetail{
		AttendanceID: attendance.ID,
		ChildID:      attendance.ChildID,
		Child:        models.ChildRef{ID: attendance.ChildID, UserID: s.owners[attendance.ChildID]},
		Group:        models.GroupRef{GroupName: "Finger Painting", Day: "Monday"},
		Contact:      models.ContactView{ID: attendance.ContactID},
	}
}

type contactFinderStub struct {
	contacts map[int]models.Contact
}

func (s *contactFinderStub) FindByID(ctx context.Context, id int) (*models.Contact, error) {
	contact, ok := s.contacts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &contact, nil
}

func newAttendanceService(store *attendanceStoreStub) *AttendanceService {
	contacts := &contactFinderStub{contacts: map[int]models.Contact{
		10: {ID: 10, UserID: 3},
		11: {ID: 11, UserID: 4},
	}}
	return NewAttendanceService(store, seededChildStore(), contacts, nil, nil)
}

func TestAttendanceServiceParentRegistersOwnChild(t *testing.T) {
	store := newAttendanceStoreStub()
	svc := newAttendanceService(store)

	detail, err := svc.Create(context.Background(), parentIdent, 1, dto.CreateAttendanceRequest{GroupID: 2, ContactID: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ChildID)
	assert.Equal(t, 10, detail.Contact.ID)
}

func TestAttendanceServiceTeacherCannotCreate(t *testing.T) {
	svc := newAttendanceService(newAttendanceStoreStub())

	_, err := svc.Create(context.Background(), teacherIdent, 1, dto.CreateAttendanceRequest{GroupID: 2, ContactID: 10})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestAttendanceServiceParentNeedsOwnContact(t *testing.T) {
	svc := newAttendanceService(newAttendanceStoreStub())

	// Contact 11 belongs to another account; contact 99 does not exist. Both
	// read the same on the wire.
	for _, contactID := range []int{11, 99} {
		_, err := svc.Create(context.Background(), parentIdent, 1, dto.CreateAttendanceRequest{GroupID: 2, ContactID: contactID})
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Please enter a contact_id registered to your account", appErr.Message)
	}
}

func TestAttendanceServiceCreateDuplicateGroup(t *testing.T) {
	store := newAttendanceStoreStub(models.Attendance{ID: 1, ChildID: 1, GroupID: 2, ContactID: 10})
	svc := newAttendanceService(store)

	_, err := svc.Create(context.Background(), parentIdent, 1, dto.CreateAttendanceRequest{GroupID: 2, ContactID: 10})
	require.Error(t, err)
	assert.Equal(t, "Child attendance is already registered for that group", appErrors.FromError(err).Message)
}

func TestAttendanceServiceListEmptyReadsAsMissing(t *testing.T) {
	svc := newAttendanceService(newAttendanceStoreStub())

	_, err := svc.ListForChild(context.Background(), adminIdent, 1)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestAttendanceServiceGetScopedToChild(t *testing.T) {
	store := newAttendanceStoreStub(models.Attendance{ID: 1, ChildID: 1, GroupID: 2, ContactID: 10})
	svc := newAttendanceService(store)

	_, err := svc.Get(context.Background(), adminIdent, 2, 1)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	detail, err := svc.Get(context.Background(), adminIdent, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.AttendanceID)
}

func TestAttendanceServiceParentCannotReachForeignChild(t *testing.T) {
	store := newAttendanceStoreStub(models.Attendance{ID: 1, ChildID: 2, GroupID: 2, ContactID: 11})
	svc := newAttendanceService(store)

	_, err := svc.Get(context.Background(), parentIdent, 2, 1)
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestAttendanceServiceUpdateEmptyBody(t *testing.T) {
	svc := newAttendanceService(newAttendanceStoreStub())

	_, err := svc.Update(context.Background(), parentIdent, 1, 1, dto.UpdateAttendanceRequest{})
	require.Error(t, err)
	assert.Equal(t, "Please provide at least one value to update", appErrors.FromError(err).Message)
}

func TestAttendanceServiceUpdateSwapsContact(t *testing.T) {
	store := newAttendanceStoreStub(models.Attendance{ID: 1, ChildID: 1, GroupID: 2, ContactID: 10})
	svc := newAttendanceService(store)

	foreign := 11
	_, err := svc.Update(context.Background(), parentIdent, 1, 1, dto.UpdateAttendanceRequest{ContactID: &foreign})
	require.Error(t, err)
	assert.Equal(t, "Please enter a contact_id registered to your account", appErrors.FromError(err).Message)

	group := 5
	detail, err := svc.Update(context.Background(), parentIdent, 1, 1, dto.UpdateAttendanceRequest{GroupID: &group})
	require.NoError(t, err)
	assert.Equal(t, 1, detail.AttendanceID)
	assert.Equal(t, 5, store.attendances[1].GroupID)
}

func TestAttendanceServiceDelete(t *testing.T) {
	store := newAttendanceStoreStub(models.Attendance{ID: 1, ChildID: 1, GroupID: 2, ContactID: 10})
	svc := newAttendanceService(store)

	message, err := svc.Delete(context.Background(), parentIdent, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Attendance deleted", message)
	assert.NotContains(t, store.attendances, 1)
}
