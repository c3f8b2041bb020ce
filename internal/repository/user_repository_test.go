package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("jo@example.com", "hashed", "Jo", false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &models.User{Email: "jo@example.com", Password: "hashed", FirstName: "Jo"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, 7, user.ID)

	rows := sqlmock.NewRows([]string{"id", "email", "password", "first_name", "is_admin", "is_teacher"}).
		AddRow(7, "jo@example.com", "hashed", "Jo", false, false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password, first_name, is_admin, is_teacher FROM users WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "jo@example.com", found.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateTranslatesUniqueRace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &models.User{Email: "dup@example.com", Password: "hashed", FirstName: "Dup"})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Equal(t, appErrors.ErrConflict.Status, appErr.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)")).
		WithArgs("jo@example.com", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "jo@example.com", 0)
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeleteReportsMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryChildrenByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	rows := sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name"}).
		AddRow(1, 3, "Sam", "Smith").
		AddRow(2, 3, "Alex", "Smith")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, first_name, last_name FROM children WHERE user_id = $1")).
		WithArgs(3).
		WillReturnRows(rows)

	children, err := repo.ChildrenByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "Sam", children[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}
