package dto

// EnrollUserRequest enrolls a user in a course. Either UserID or Email
// must be set; Email with AllowPending creates a pending enrollment when
// no account matches.
type EnrollUserRequest struct {
	UserID       int64  `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
	AllowPending bool   `json:"allow_pending,omitempty"`
	AutoEnroll   bool   `json:"auto_enroll,omitempty"`
}

// EnrolledUser is a serialized enrollment list entry
type EnrolledUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// PendingEnrolledUser is a serialized pending enrollment list entry
type PendingEnrolledUser struct {
	Email      string `json:"email"`
	AutoEnroll bool   `json:"auto_enroll"`
}

// EnrollmentListResponse lists current and pending enrollments of a course
type EnrollmentListResponse struct {
	URI                string                `json:"uri"`
	Enrollments        []EnrolledUser        `json:"enrollments"`
	PendingEnrollments []PendingEnrolledUser `json:"pending_enrollments"`
}

// EnrollmentDetailResponse is a single user's enrollment in a course
type EnrollmentDetailResponse struct {
	CourseID string `json:"course_id"`
	UserID   int64  `json:"user_id"`
	URI      string `json:"uri"`
	Position int    `json:"position"`
}

// EnrollmentUserFilter narrows an enrollment listing by group membership
type EnrollmentUserFilter struct {
	Groups        []int64
	ExcludeGroups []int64
}
