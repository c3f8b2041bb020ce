package dto

// SignupRequest registers a new parent account. Admin and teacher flags are
// never accepted here; elevated accounts go through CreateAdminRequest.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
}

// CreateAdminRequest registers an account with explicit role flags. Only an
// admin may submit it.
type CreateAdminRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	IsAdmin   bool   `json:"is_admin"`
	IsTeacher bool   `json:"is_teacher"`
}

// UpdateUserRequest carries a partial user update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name"`
	IsAdmin   *bool   `json:"is_admin"`
	IsTeacher *bool   `json:"is_teacher"`
}

// Empty reports whether no field was supplied.
func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.Password == nil && r.FirstName == nil && r.IsAdmin == nil && r.IsTeacher == nil
}
