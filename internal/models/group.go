package models

// Days accepted for a group's weekly schedule.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDay reports whether day is one of the seven (capitalised) weekday names.
func ValidDay(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Group represents a weekly activity group run by a teacher.
type Group struct {
	ID        int    `db:"id" json:"id"`
	GroupName string `db:"group_name" json:"group_name"`
	Day       string `db:"day" json:"day"`
	TeacherID int    `db:"teacher_id" json:"teacher_id"`
}

// GroupRef is the short group projection nested inside attendances.
type GroupRef struct {
	GroupName string `db:"group_name" json:"group_name"`
	Day       string `db:"day" json:"day"`
}

// GroupDetail is the group projection with its teacher.
type GroupDetail struct {
	ID        int        `json:"id"`
	Day       string     `json:"day"`
	GroupName string     `json:"group_name"`
	Teacher   TeacherRef `json:"teacher"`
}
