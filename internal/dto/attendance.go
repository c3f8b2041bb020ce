package dto

// CreateAttendanceRequest registers a child into a group with a pickup
// contact.
type CreateAttendanceRequest struct {
	GroupID   int `json:"group_id" validate:"required"`
	ContactID int `json:"contact_id" validate:"required"`
}

// UpdateAttendanceRequest carries a partial attendance update.
type UpdateAttendanceRequest struct {
	GroupID   *int `json:"group_id"`
	ContactID *int `json:"contact_id"`
}

// Empty reports whether no field was supplied.
func (r UpdateAttendanceRequest) Empty() bool {
	return r.GroupID == nil && r.ContactID == nil
}
