package dto

// CreateContactRequest registers a pickup contact. user_id is required from
// admins and ignored for parents.
type CreateContactRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	PhNumber         string `json:"ph_number" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	EmergencyContact *bool  `json:"emergency_contact" validate:"required"`
	UserID           *int   `json:"user_id"`
}

// UpdateContactRequest carries a partial contact update.
type UpdateContactRequest struct {
	FirstName        *string `json:"first_name"`
	PhNumber         *string `json:"ph_number"`
	Email            *string `json:"email" validate:"omitempty,email"`
	EmergencyContact *bool   `json:"emergency_contact"`
}

// Empty reports whether no field was supplied.
func (r UpdateContactRequest) Empty() bool {
	return r.FirstName == nil && r.PhNumber == nil && r.Email == nil && r.EmergencyContact == nil
}
