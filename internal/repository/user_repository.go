package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// UserRepository manages persistence for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password, first_name, is_admin, is_teacher"

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY id", userColumns)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID fetches a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if another user already holds the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)"
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// Create inserts a new user and assigns its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (email, password, first_name, is_admin, is_teacher)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, user.Email, user.Password, user.FirstName, user.IsAdmin, user.IsTeacher).Scan(&user.ID); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists all mutable user fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET email = :email, password = :password, first_name = :first_name,
		is_admin = :is_admin, is_teacher = :is_teacher WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user; dependent children, comments and contacts cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return affected > 0, nil
}

// ChildrenByUser returns the child references registered to a user.
func (r *UserRepository) ChildrenByUser(ctx context.Context, userID int) ([]models.ChildRef, error) {
	const query = `SELECT id, user_id, first_name, last_name FROM children WHERE user_id = $1 ORDER BY id`
	var children []models.ChildRef
	if err := r.db.SelectContext(ctx, &children, query, userID); err != nil {
		return nil, fmt.Errorf("list user children: %w", err)
	}
	return children, nil
}

// ContactsByUser returns the contacts registered to a user.
func (r *UserRepository) ContactsByUser(ctx context.Context, userID int) ([]models.ContactView, error) {
	const query = `SELECT id, user_id, first_name, emergency_contact, ph_number, email FROM contacts WHERE user_id = $1 ORDER BY id`
	var contacts []models.ContactView
	if err := r.db.SelectContext(ctx, &contacts, query, userID); err != nil {
		return nil, fmt.Errorf("list user contacts: %w", err)
	}
	return contacts, nil
}
