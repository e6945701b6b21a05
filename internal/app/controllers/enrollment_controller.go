package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// EnrollmentController manages course enrollments and enrollment
// metrics
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// EnrollUser enrolls a user in a course
// @Summary Enroll a user
// @Description Enrolls a user by user_id, or by email with an optional pending fallback
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param request body dto.EnrollUserRequest true "User to enroll"
// @Success 201 "User enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or user not found"
// @Failure 409 {object} dto.ErrorResponse "User is already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/users [post]
func (c *EnrollmentController) EnrollUser(ctx *gin.Context) {
	var req dto.EnrollUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.Enroll(ctx, ctx.Param("course_id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

// ListEnrollments lists course enrollments
// @Summary List course users
// @Description Retrieves enrolled accounts and pending invitations, optionally narrowed by group
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param groups query string false "Comma-separated group IDs a user must belong to"
// @Param exclude_groups query string false "Comma-separated group IDs a user must not belong to"
// @Success 200 {object} dto.EnrollmentListResponse "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/users [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	filter := &dto.EnrollmentUserFilter{
		Groups:        parseUserIDList(ctx.Query("groups")),
		ExcludeGroups: parseUserIDList(ctx.Query("exclude_groups")),
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// GetEnrollment retrieves one user's enrollment
// @Summary Get a user's enrollment
// @Description Retrieves a user's enrollment with their rank by completion count
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param user_id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.EnrollmentDetailResponse "Enrollment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found or user not enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/users/{user_id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollment(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// UnenrollUser removes a user from a course
// @Summary Unenroll a user
// @Description Removes a user's enrollment; removing an absent enrollment succeeds
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param user_id path int true "User ID" Format(int64) minimum(1)
// @Success 204 "User unenrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/users/{user_id} [delete]
func (c *EnrollmentController) UnenrollUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx, ctx.Param("course_id"), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMetrics reports course enrollment metrics
// @Summary Get course metrics
// @Description Reports the number of active enrolled users
// @Tags metrics
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Success 200 {object} dto.CourseMetricsResponse "Metrics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/metrics [get]
func (c *EnrollmentController) GetMetrics(ctx *gin.Context) {
	metrics, err := c.enrollmentService.Metrics(ctx, ctx.Param("course_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, metrics)
}
