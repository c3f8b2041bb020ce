package models

// Teacher represents an instructor assigned to groups.
type Teacher struct {
	ID        int    `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	Email     string `db:"email" json:"email"`
}

// TeacherRef is the short teacher projection nested inside groups.
type TeacherRef struct {
	ID        int    `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	Email     string `db:"email" json:"email"`
}

// TeacherDetail is the teacher projection with its groups.
type TeacherDetail struct {
	ID        int            `json:"id"`
	FirstName string         `json:"first_name"`
	Email     string         `json:"email"`
	Groups    []GroupSummary `json:"groups"`
}

// GroupSummary is the group projection nested inside a teacher.
type GroupSummary struct {
	ID        int    `db:"id" json:"id"`
	GroupName string `db:"group_name" json:"group_name"`
	Day       string `db:"day" json:"day"`
}
