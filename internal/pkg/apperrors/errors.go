package apperrors

import "errors"

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrLoginLocked        = errors.New("too many failed login attempts")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// Course Errors
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrContentNotFound = errors.New("course content not found")
)

// Group Errors
var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrRelationshipExists   = errors.New("relationship already exists")
	ErrRelationshipNotFound = errors.New("relationship not found")
	ErrGroupMemberExists    = errors.New("user is already a member of this group")
)

// User Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
)

// Enrollment Errors
var (
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")
	ErrNotEnrolled     = errors.New("user is not enrolled in this course")
)

// Role Errors
var (
	ErrRoleNotFound = errors.New("role not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// Completion Errors
var (
	ErrCompletionExists = errors.New("completion record already exists")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
