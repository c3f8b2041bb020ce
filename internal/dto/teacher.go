package dto

// CreateTeacherRequest registers a teacher.
type CreateTeacherRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdateTeacherRequest carries a partial teacher update.
type UpdateTeacherRequest struct {
	FirstName *string `json:"first_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// Empty reports whether no field was supplied.
func (r UpdateTeacherRequest) Empty() bool {
	return r.FirstName == nil && r.Email == nil
}
