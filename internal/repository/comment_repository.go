package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// CommentRepository manages persistence for comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository constructs a CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// FindByID fetches a comment by ID.
func (r *CommentRepository) FindByID(ctx context.Context, id int) (*models.Comment, error) {
	const query = `SELECT id, message, urgency, date_created, date_edited, edited, user_id, child_id
		FROM comments WHERE id = $1`
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindForChild fetches a comment by ID scoped to one child.
func (r *CommentRepository) FindForChild(ctx context.Context, childID, commentID int) (*models.Comment, error) {
	const query = `SELECT id, message, urgency, date_created, date_edited, edited, user_id, child_id
		FROM comments WHERE id = $1 AND child_id = $2`
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, commentID, childID); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create inserts a new comment and assigns its generated ID.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	const query = `INSERT INTO comments (message, urgency, date_created, user_id, child_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		comment.Message, comment.Urgency, comment.DateCreated, comment.UserID, comment.ChildID,
	).Scan(&comment.ID); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Update persists the comment's mutable fields and edit markers.
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	const query = `UPDATE comments
		SET message = :message, urgency = :urgency, edited = :edited, date_edited = :date_edited
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return affected > 0, nil
}
