package dto

// CreateChildRequest registers a child. user_id is required from admins and
// ignored for parents, who always register against their own account.
type CreateChildRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	UserID    *int   `json:"user_id"`
}

// UpdateChildRequest carries a partial child update.
type UpdateChildRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Empty reports whether no field was supplied.
func (r UpdateChildRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil
}
