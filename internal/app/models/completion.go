package models

import "time"

// Completion records that a user finished a content node.
// Stage disambiguates multi-stage content; it may be empty.
type Completion struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CourseID   string    `json:"course_id"`
	ContentID  string    `json:"content_id"`
	Stage      *string   `json:"stage"`
	CreatedAt  time.Time `json:"created"`
	ModifiedAt time.Time `json:"modified"`
}
