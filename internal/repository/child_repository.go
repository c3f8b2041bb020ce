package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// ChildRepository manages persistence for children and their nested
// projections.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository constructs a ChildRepository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// List returns all children, optionally filtered to one owning user.
func (r *ChildRepository) List(ctx context.Context, ownerID *int) ([]models.Child, error) {
	query := "SELECT id, first_name, last_name, user_id FROM children"
	var args []interface{}
	if ownerID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *ownerID)
	}
	query += " ORDER BY id"

	var children []models.Child
	if err := r.db.SelectContext(ctx, &children, query, args...); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// FindByID fetches a child by ID.
func (r *ChildRepository) FindByID(ctx context.Context, id int) (*models.Child, error) {
	const query = `SELECT id, first_name, last_name, user_id FROM children WHERE id = $1`
	var child models.Child
	if err := r.db.GetContext(ctx, &child, query, id); err != nil {
		return nil, err
	}
	return &child, nil
}

// Exists checks whether a child with the identity triple is already
// registered.
func (r *ChildRepository) Exists(ctx context.Context, firstName, lastName string, userID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM children WHERE first_name = $1 AND last_name = $2 AND user_id = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, firstName, lastName, userID); err != nil {
		return false, fmt.Errorf("check child identity: %w", err)
	}
	return exists, nil
}

// Create inserts a new child and assigns its generated ID.
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	const query = `INSERT INTO children (first_name, last_name, user_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, child.FirstName, child.LastName, child.UserID).Scan(&child.ID); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("create child: %w", err)
	}
	return nil
}

// Update persists the child's name fields.
func (r *ChildRepository) Update(ctx context.Context, child *models.Child) error {
	const query = `UPDATE children SET first_name = :first_name, last_name = :last_name WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, child); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("update child: %w", err)
	}
	return nil
}

// Delete removes a child; its comments and attendances cascade.
func (r *ChildRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM children WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete child: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete child: %w", err)
	}
	return affected > 0, nil
}

// commentRow carries one joined comment + author row.
type commentRow struct {
	AuthorID    int    `db:"author_id"`
	AuthorName  string `db:"author_name"`
	DateCreated string `db:"date_created"`
	Urgency     string `db:"urgency"`
	Message     string `db:"message"`
}

// CommentsForChild returns the comment projections for one child, newest
// last.
func (r *ChildRepository) CommentsForChild(ctx context.Context, childID int) ([]models.CommentView, error) {
	const query = `SELECT u.id AS author_id, u.first_name AS author_name,
			to_char(c.date_created, 'YYYY-MM-DD') AS date_created, c.urgency, c.message
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.child_id = $1
		ORDER BY c.id`
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, childID); err != nil {
		return nil, fmt.Errorf("list child comments: %w", err)
	}

	views := make([]models.CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.CommentView{
			User:        models.UserRef{ID: row.AuthorID, FirstName: row.AuthorName},
			DateCreated: row.DateCreated,
			Urgency:     row.Urgency,
			Message:     row.Message,
		})
	}
	return views, nil
}

// GroupsForChild returns the groups the child is registered to attend.
func (r *ChildRepository) GroupsForChild(ctx context.Context, childID int) ([]models.ChildAttendanceView, error) {
	const query = `SELECT g.group_name, g.day
		FROM attendances a
		JOIN groups g ON g.id = a.group_id
		WHERE a.child_id = $1
		ORDER BY a.id`
	var groups []models.GroupRef
	if err := r.db.SelectContext(ctx, &groups, query, childID); err != nil {
		return nil, fmt.Errorf("list child groups: %w", err)
	}

	views := make([]models.ChildAttendanceView, 0, len(groups))
	for _, g := range groups {
		views = append(views, models.ChildAttendanceView{Group: g})
	}
	return views, nil
}
