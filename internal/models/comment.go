package models

import "time"

// Comment urgency levels.
const (
	UrgencyUrgent   = "urgent"
	UrgencyPositive = "positive"
	UrgencyNeutral  = "neutral"
)

// Comment represents a note a user recorded about a child.
type Comment struct {
	ID          int        `db:"id" json:"id"`
	Message     string     `db:"message" json:"message"`
	Urgency     string     `db:"urgency" json:"urgency"`
	DateCreated time.Time  `db:"date_created" json:"date_created"`
	DateEdited  *time.Time `db:"date_edited" json:"date_edited"`
	Edited      bool       `db:"edited" json:"edited"`
	UserID      int        `db:"user_id" json:"user_id"`
	ChildID     int        `db:"child_id" json:"child_id"`
}

// CommentView is the nested comment projection: the authoring user, creation
// date, urgency and message.
type CommentView struct {
	User        UserRef `json:"user"`
	DateCreated string  `json:"date_created"`
	Urgency     string  `json:"urgency"`
	Message     string  `json:"message"`
}

// CommentDetail is the standalone comment projection, adding the child
// reference and edit tracking.
type CommentDetail struct {
	Child         ChildSummary `json:"child"`
	User          UserRef      `json:"user"`
	CommentEdited bool         `json:"comment_edited"`
	DateEdited    *string      `json:"date_edited"`
	DateCreated   string       `json:"date_created"`
	Urgency       string       `json:"urgency"`
	Message       string       `json:"message"`
}

// CreatedComment echoes a successful comment post; the edit markers are
// omitted because a fresh comment has none.
type CreatedComment struct {
	Child       ChildSummary `json:"child"`
	User        UserRef      `json:"user"`
	DateCreated string       `json:"date_created"`
	Urgency     string       `json:"urgency"`
	Message     string       `json:"message"`
}
