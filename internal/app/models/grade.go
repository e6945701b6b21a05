package models

import "time"

// Grade is a single score the external courseware recorded for a user
// on a content node. The API only reads these rows.
type Grade struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  string    `json:"course_id"`
	ContentID string    `json:"content_id"`
	Grade     float64   `json:"grade"`
	MaxGrade  float64   `json:"max_grade"`
	CreatedAt time.Time `json:"created"`
}
