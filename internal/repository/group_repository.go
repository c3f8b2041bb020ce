package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// GroupRepository manages persistence for activity groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// groupDetailRow carries one joined group + teacher row.
type groupDetailRow struct {
	ID               int    `db:"id"`
	GroupName        string `db:"group_name"`
	Day              string `db:"day"`
	TeacherID        int    `db:"teacher_id"`
	TeacherFirstName string `db:"teacher_first_name"`
	TeacherEmail     string `db:"teacher_email"`
}

func (row groupDetailRow) detail() models.GroupDetail {
	return models.GroupDetail{
		ID:        row.ID,
		Day:       row.Day,
		GroupName: row.GroupName,
		Teacher: models.TeacherRef{
			ID:        row.TeacherID,
			FirstName: row.TeacherFirstName,
			Email:     row.TeacherEmail,
		},
	}
}

// List returns all groups joined with their running teacher.
func (r *GroupRepository) List(ctx context.Context) ([]models.GroupDetail, error) {
	const query = `SELECT g.id, g.group_name, g.day, t.id AS teacher_id,
			t.first_name AS teacher_first_name, t.email AS teacher_email
		FROM groups g
		JOIN teachers t ON t.id = g.teacher_id
		ORDER BY g.id`
	var rows []groupDetailRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	details := make([]models.GroupDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.detail())
	}
	return details, nil
}

// FindByID fetches a group by ID.
func (r *GroupRepository) FindByID(ctx context.Context, id int) (*models.Group, error) {
	const query = `SELECT id, group_name, day, teacher_id FROM groups WHERE id = $1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// DetailByID fetches a group joined with its teacher.
func (r *GroupRepository) DetailByID(ctx context.Context, id int) (*models.GroupDetail, error) {
	const query = `SELECT g.id, g.group_name, g.day, t.id AS teacher_id,
			t.first_name AS teacher_first_name, t.email AS teacher_email
		FROM groups g
		JOIN teachers t ON t.id = g.teacher_id
		WHERE g.id = $1`
	var row groupDetailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	detail := row.detail()
	return &detail, nil
}

// Exists checks whether a group with the identity pair is already
// registered, excluding one row for update checks.
func (r *GroupRepository) Exists(ctx context.Context, groupName, day string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM groups WHERE group_name = $1 AND day = $2 AND id <> $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, groupName, day, excludeID); err != nil {
		return false, fmt.Errorf("check group identity: %w", err)
	}
	return exists, nil
}

// Create inserts a new group and assigns its generated ID.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	const query = `INSERT INTO groups (group_name, day, teacher_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, group.GroupName, group.Day, group.TeacherID).Scan(&group.ID); err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Update persists the group's mutable fields.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	const query = `UPDATE groups SET group_name = :group_name, day = :day, teacher_id = :teacher_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Delete removes a group; attendances referencing it cascade.
func (r *GroupRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM groups WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete group: %w", err)
	}
	return affected > 0, nil
}
