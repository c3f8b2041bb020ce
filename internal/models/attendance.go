package models

// Attendance records that a child attends a group, with a designated contact.
type Attendance struct {
	ID        int `db:"id" json:"id"`
	ChildID   int `db:"child_id" json:"child_id"`
	GroupID   int `db:"group_id" json:"group_id"`
	ContactID int `db:"contact_id" json:"contact_id"`
}

// AttendanceDetail is the full attendance projection with the child, group
// and contact resolved.
type AttendanceDetail struct {
	AttendanceID int         `json:"attendance_id"`
	ChildID      int         `json:"child_id"`
	Child        ChildRef    `json:"child"`
	Group        GroupRef    `json:"group"`
	Contact      ContactView `json:"contact"`
}
