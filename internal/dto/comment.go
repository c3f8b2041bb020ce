package dto

// CreateCommentRequest posts a comment against a child.
type CreateCommentRequest struct {
	Message string `json:"message" validate:"required"`
	Urgency string `json:"urgency" validate:"required,oneof=urgent positive neutral"`
}

// UpdateCommentRequest carries a partial comment edit.
type UpdateCommentRequest struct {
	Message *string `json:"message"`
	Urgency *string `json:"urgency" validate:"omitempty,oneof=urgent positive neutral"`
}

// Empty reports whether no field was supplied.
func (r UpdateCommentRequest) Empty() bool {
	return r.Message == nil && r.Urgency == nil
}
