package models

// DefaultContactEmail is stored when no email is supplied for a contact.
const DefaultContactEmail = "No email provided"

// Contact represents a pickup/emergency contact registered by a user.
type Contact struct {
	ID               int    `db:"id" json:"id"`
	FirstName        string `db:"first_name" json:"first_name"`
	PhNumber         string `db:"ph_number" json:"ph_number"`
	Email            string `db:"email" json:"email"`
	EmergencyContact bool   `db:"emergency_contact" json:"emergency_contact"`
	UserID           int    `db:"user_id" json:"user_id"`
}

// ContactView is the public contact projection.
type ContactView struct {
	ID               int    `db:"id" json:"id"`
	UserID           int    `db:"user_id" json:"user_id"`
	FirstName        string `db:"first_name" json:"first_name"`
	EmergencyContact bool   `db:"emergency_contact" json:"emergency_contact"`
	PhNumber         string `db:"ph_number" json:"ph_number"`
	Email            string `db:"email" json:"email"`
}
