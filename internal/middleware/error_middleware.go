package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// messageFor prefers the contextual message attached to a CustomError
// over the generic fallback
func messageFor(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}

// HandleAPIError maps application errors onto HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Not found
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrContentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Content not found")
	case errors.Is(err, apperrors.ErrGroupNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrRoleNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Role not found")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User is not enrolled in this course")
	case errors.Is(err, apperrors.ErrRelationshipNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Relationship not found")

	// Conflicts
	case errors.Is(err, apperrors.ErrRelationshipExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Relationship already exists.")
	case errors.Is(err, apperrors.ErrGroupMemberExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User is already a member of this group")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User is already enrolled in this course")
	case errors.Is(err, apperrors.ErrCompletionExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Completion record already exists")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrUsernameExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists")

	// Bad requests
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email address")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, messageFor(err, "Invalid password"))
	case errors.Is(err, apperrors.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageFor(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageFor(err, "Bad request"))

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrLoginLocked):
		respondError(c, http.StatusTooManyRequests, dto.ErrorCodeLoginLocked, "Too many failed login attempts, try again later")

	// Authorization
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
