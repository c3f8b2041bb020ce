package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// AttendanceRepository manages persistence for attendance registrations.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// attendanceDetailRow carries one attendance joined with its child, group
// and contact.
type attendanceDetailRow struct {
	ID               int    `db:"id"`
	ChildID          int    `db:"child_id"`
	ChildUserID      int    `db:"child_user_id"`
	ChildFirstName   string `db:"child_first_name"`
	ChildLastName    string `db:"child_last_name"`
	GroupName        string `db:"group_name"`
	Day              string `db:"day"`
	ContactID        int    `db:"contact_id"`
	ContactUserID    int    `db:"contact_user_id"`
	ContactFirstName string `db:"contact_first_name"`
	ContactPhNumber  string `db:"contact_ph_number"`
	ContactEmail     string `db:"contact_email"`
	EmergencyContact bool   `db:"emergency_contact"`
}

func (row attendanceDetailRow) detail() models.AttendanceDetail {
	return models.AttendanceDetail{
		AttendanceID: row.ID,
		ChildID:      row.ChildID,
		Child: models.ChildRef{
			ID:        row.ChildID,
			UserID:    row.ChildUserID,
			FirstName: row.ChildFirstName,
			LastName:  row.ChildLastName,
		},
		Group: models.GroupRef{GroupName: row.GroupName, Day: row.Day},
		Contact: models.ContactView{
			ID:               row.ContactID,
			UserID:           row.ContactUserID,
			FirstName:        row.ContactFirstName,
			EmergencyContact: row.EmergencyContact,
			PhNumber:         row.ContactPhNumber,
			Email:            row.ContactEmail,
		},
	}
}

const attendanceDetailQuery = `SELECT a.id, a.child_id,
		ch.user_id AS child_user_id, ch.first_name AS child_first_name, ch.last_name AS child_last_name,
		g.group_name, g.day,
		co.id AS contact_id, co.user_id AS contact_user_id, co.first_name AS contact_first_name,
		co.ph_number AS contact_ph_number, co.email AS contact_email, co.emergency_contact
	FROM attendances a
	JOIN children ch ON ch.id = a.child_id
	JOIN groups g ON g.id = a.group_id
	JOIN contacts co ON co.id = a.contact_id`

// ListByChild returns the attendance details of one child.
func (r *AttendanceRepository) ListByChild(ctx context.Context, childID int) ([]models.AttendanceDetail, error) {
	query := attendanceDetailQuery + " WHERE a.child_id = $1 ORDER BY a.id"
	var rows []attendanceDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, childID); err != nil {
		return nil, fmt.Errorf("list child attendances: %w", err)
	}

	details := make([]models.AttendanceDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.detail())
	}
	return details, nil
}

// FindByID fetches an attendance registration by ID.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int) (*models.Attendance, error) {
	const query = `SELECT id, child_id, group_id, contact_id FROM attendances WHERE id = $1`
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

// DetailForChild fetches one attendance joined with its relations, scoped
// to one child.
func (r *AttendanceRepository) DetailForChild(ctx context.Context, childID, attendanceID int) (*models.AttendanceDetail, error) {
	query := attendanceDetailQuery + " WHERE a.id = $1 AND a.child_id = $2"
	var row attendanceDetailRow
	if err := r.db.GetContext(ctx, &row, query, attendanceID, childID); err != nil {
		return nil, err
	}
	detail := row.detail()
	return &detail, nil
}

// Exists checks whether the child is already registered for the group.
func (r *AttendanceRepository) Exists(ctx context.Context, childID, groupID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM attendances WHERE child_id = $1 AND group_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, childID, groupID); err != nil {
		return false, fmt.Errorf("check attendance identity: %w", err)
	}
	return exists, nil
}

// Create inserts a new attendance and assigns its generated ID.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	const query = `INSERT INTO attendances (child_id, group_id, contact_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		attendance.ChildID, attendance.GroupID, attendance.ContactID,
	).Scan(&attendance.ID); err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update persists the attendance's group and contact references.
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	const query = `UPDATE attendances SET group_id = :group_id, contact_id = :contact_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes an attendance registration.
func (r *AttendanceRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM attendances WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}
	return affected > 0, nil
}
