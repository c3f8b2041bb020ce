package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

var attendanceDetailColumns = []string{
	"id", "child_id", "child_user_id", "child_first_name", "child_last_name",
	"group_name", "day",
	"contact_id", "contact_user_id", "contact_first_name", "contact_ph_number",
	"contact_email", "emergency_contact",
}

func TestAttendanceRepositoryListByChild(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	rows := sqlmock.NewRows(attendanceDetailColumns).
		AddRow(1, 5, 3, "Sam", "Smith", "Painting", "Monday", 9, 3, "Dana", "0412345678", "dana@example.com", true)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.child_id = $1")).
		WithArgs(5).
		WillReturnRows(rows)

	details, err := repo.ListByChild(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, 1, details[0].AttendanceID)
	require.Equal(t, "Painting", details[0].Group.GroupName)
	require.Equal(t, "Dana", details[0].Contact.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDetailForChildScopesBothIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	rows := sqlmock.NewRows(attendanceDetailColumns).
		AddRow(4, 5, 3, "Sam", "Smith", "Choir", "Friday", 9, 3, "Dana", "0412345678", "dana@example.com", false)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1 AND a.child_id = $2")).
		WithArgs(4, 5).
		WillReturnRows(rows)

	detail, err := repo.DetailForChild(context.Background(), 5, 4)
	require.NoError(t, err)
	require.Equal(t, 4, detail.AttendanceID)
	require.Equal(t, 5, detail.Child.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreateTranslatesDuplicateRegistration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendances")).
		WithArgs(5, 2, 9).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &models.Attendance{ChildID: 5, GroupID: 2, ContactID: 9})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrConflict.Status, appErrors.FromError(err).Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM attendances WHERE child_id = $1 AND group_id = $2)")).
		WithArgs(5, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), 5, 2)
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
