package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/childcare-api/internal/models"
)

// ContactRepository manages persistence for pickup contacts.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns all contacts, optionally filtered to one owning user.
func (r *ContactRepository) List(ctx context.Context, ownerID *int) ([]models.Contact, error) {
	query := "SELECT id, first_name, ph_number, email, emergency_contact, user_id FROM contacts"
	var args []interface{}
	if ownerID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *ownerID)
	}
	query += " ORDER BY id"

	var contacts []models.Contact
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// FindByID fetches a contact by ID.
func (r *ContactRepository) FindByID(ctx context.Context, id int) (*models.Contact, error) {
	const query = `SELECT id, first_name, ph_number, email, emergency_contact, user_id FROM contacts WHERE id = $1`
	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		return nil, err
	}
	return &contact, nil
}

// ExistsForUser checks whether the user already registered a contact with
// the phone number, excluding one row for update checks.
func (r *ContactRepository) ExistsForUser(ctx context.Context, phNumber string, userID, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM contacts WHERE ph_number = $1 AND user_id = $2 AND id <> $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phNumber, userID, excludeID); err != nil {
		return false, fmt.Errorf("check contact phone: %w", err)
	}
	return exists, nil
}

// Create inserts a new contact and assigns its generated ID.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	const query = `INSERT INTO contacts (first_name, ph_number, email, emergency_contact, user_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		contact.FirstName, contact.PhNumber, contact.Email, contact.EmergencyContact, contact.UserID,
	).Scan(&contact.ID); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// Update persists the contact's mutable fields.
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	const query = `UPDATE contacts
		SET first_name = :first_name, ph_number = :ph_number, email = :email, emergency_contact = :emergency_contact
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		if translated := translateUnique(err); translated != err {
			return translated
		}
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete removes a contact; attendances referencing it cascade.
func (r *ContactRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return affected > 0, nil
}
