package models

import "time"

// Enrollment links a user to a course
type Enrollment struct {
	ID        int64     `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created"`
}

// PendingEnrollment holds a pre-enrollment for an email address
// that has no account yet
type PendingEnrollment struct {
	ID         int64     `json:"id"`
	CourseID   string    `json:"course_id"`
	Email      string    `json:"email"`
	AutoEnroll bool      `json:"auto_enroll"`
	CreatedAt  time.Time `json:"created"`
}
