package dto

// CreateGroupRequest registers an activity group run by a teacher.
type CreateGroupRequest struct {
	GroupName string `json:"group_name" validate:"required"`
	Day       string `json:"day" validate:"required"`
	TeacherID int    `json:"teacher_id" validate:"required"`
}

// UpdateGroupRequest carries a partial group update.
type UpdateGroupRequest struct {
	GroupName *string `json:"group_name"`
	Day       *string `json:"day"`
	TeacherID *int    `json:"teacher_id"`
}

// Empty reports whether no field was supplied.
func (r UpdateGroupRequest) Empty() bool {
	return r.GroupName == nil && r.Day == nil && r.TeacherID == nil
}
