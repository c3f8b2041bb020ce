package models

// Child represents a child registered to a parent user.
type Child struct {
	ID        int    `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	UserID    int    `db:"user_id" json:"user_id"`
}

// ChildRef is the short child projection nested inside users and attendances.
type ChildRef struct {
	ID        int    `db:"id" json:"id"`
	UserID    int    `db:"user_id" json:"user_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// ChildSummary is the slimmer child projection nested inside comments; it
// omits the owning user.
type ChildSummary struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreatedChild echoes a successful child registration.
type CreatedChild struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    int    `json:"user_id"`
}

// ChildAttendanceView is the attendance slice rendered inside a child detail:
// only the group the child attends.
type ChildAttendanceView struct {
	Group GroupRef `json:"group"`
}

// ChildDetail is the full child projection with nested comments and
// attendances.
type ChildDetail struct {
	ID          int                   `json:"id"`
	UserID      int                   `json:"user_id"`
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	Attendances []ChildAttendanceView `json:"attendances"`
	Comments    []CommentView         `json:"comments"`
}

// ChildCommentsView is the reduced child projection returned by the
// child-comments listing.
type ChildCommentsView struct {
	UserID    int           `json:"user_id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Comments  []CommentView `json:"comments"`
}
