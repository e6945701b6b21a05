package models

import "time"

// Group represents a named user grouping with a profile type tag
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	GroupType string    `json:"type"`
	Data      string    `json:"data,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// GroupMember links a user to a group
type GroupMember struct {
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}

// CourseGroup binds a group to a course
type CourseGroup struct {
	CourseID string `json:"course_id"`
	GroupID  int64  `json:"group_id"`
}

// ContentGroup binds a group to a content node within a course
type ContentGroup struct {
	CourseID  string `json:"course_id"`
	ContentID string `json:"content_id"`
	GroupID   int64  `json:"group_id"`
}
