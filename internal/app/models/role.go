package models

// CourseRole is a per-course access role
type CourseRole string

const (
	RoleInstructor CourseRole = "instructor"
	RoleStaff      CourseRole = "staff"
	RoleObserver   CourseRole = "observer"
)

// ValidCourseRole reports whether the value is one of the known roles
func ValidCourseRole(role string) bool {
	switch CourseRole(role) {
	case RoleInstructor, RoleStaff, RoleObserver:
		return true
	}
	return false
}

// CourseRoleAssignment grants a role to a user on a course
type CourseRoleAssignment struct {
	ID       int64      `json:"-"`
	CourseID string     `json:"course_id"`
	UserID   int64      `json:"id"`
	Role     CourseRole `json:"role"`
}
