package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns all teachers ordered by ID.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, "SELECT id, first_name, email FROM teachers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, "SELECT id, first_name, email FROM teachers WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Exists checks whether a teacher with the identity pair is already
// registered, excluding one row for update checks.
func (r *TeacherRepository) Exists(ctx context.Context, firstName, email string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM teachers WHERE first_name = $1 AND email = $2 AND id <> $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, firstName, email, excludeID); err != nil {
		return false, fmt.Errorf("check teacher identity: %w", err)
	}
	return exists, nil
}

// ExistsByEmail checks whether any other teacher already uses the email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM teachers WHERE email = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check teacher email: %w", err)
	}
	return exists, nil
}

// Create inserts a new teacher and assigns its generated ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (first_name, email) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, teacher.FirstName, teacher.Email).Scan(&teacher.ID); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update persists the teacher's mutable fields.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET first_name = :first_name, email = :email WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher; groups they run cascade.
func (r *TeacherRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	return affected > 0, nil
}

// GroupsForTeacher returns the groups run by one teacher.
func (r *TeacherRepository) GroupsForTeacher(ctx context.Context, teacherID int) ([]models.GroupSummary, error) {
	const query = `SELECT id, group_name, day FROM groups WHERE teacher_id = $1 ORDER BY id`
	var groups []models.GroupSummary
	if err := r.db.SelectContext(ctx, &groups, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher groups: %w", err)
	}
	return groups, nil
}
