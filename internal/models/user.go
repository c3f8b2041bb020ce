package models

// Role is the closed tri-state derived from a user's flags.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleParent  Role = "Parent"
)

// User represents an application user stored in the users table. Two boolean
// flags persist the role; the Role is derived once at identity resolution,
// with Admin taking precedence over Teacher.
type User struct {
	ID        int    `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"-"`
	FirstName string `db:"first_name" json:"first_name"`
	IsAdmin   bool   `db:"is_admin" json:"is_admin"`
	IsTeacher bool   `db:"is_teacher" json:"is_teacher"`
}

// Role derives the caller's single role from the stored flags.
func (u User) Role() Role {
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsTeacher:
		return RoleTeacher
	default:
		return RoleParent
	}
}

// UserView is the public projection of a user. The password is never
// serialized; the role flags are only populated for an admin's view.
type UserView struct {
	ID        int           `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	IsAdmin   *bool         `json:"is_admin,omitempty"`
	IsTeacher *bool         `json:"is_teacher,omitempty"`
	Children  []ChildRef    `json:"children"`
	Contacts  []ContactView `json:"contacts"`
}

// CreatedUser echoes a successful registration. Role flags only appear when
// the registration set them.
type CreatedUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	IsAdmin   *bool  `json:"is_admin,omitempty"`
	IsTeacher *bool  `json:"is_teacher,omitempty"`
}

// UserRef is the short user projection nested inside comments.
type UserRef struct {
	ID        int    `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
}
