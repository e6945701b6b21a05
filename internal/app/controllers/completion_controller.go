package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// CompletionController records and lists content completions
type CompletionController struct {
	completionService services.CompletionService
}

// NewCompletionController creates a new CompletionController
func NewCompletionController(completionService services.CompletionService) *CompletionController {
	return &CompletionController{
		completionService: completionService,
	}
}

// parseUserIDList parses a comma-separated user_id query parameter
func parseUserIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// CreateCompletion records a completion
// @Summary Record a completion
// @Description Marks a content node completed for a user; a repeated record reports a conflict
// @Tags completions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param request body dto.CreateCompletionRequest true "Completion to record"
// @Success 201 {object} models.Completion "Completion recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id or content_id"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Completion already recorded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/completions [post]
func (c *CompletionController) CreateCompletion(ctx *gin.Context) {
	var req dto.CreateCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid completion data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	completion, err := c.completionService.RecordCompletion(ctx, ctx.Param("course_id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, completion)
}

// ListCompletions lists completions
// @Summary List completions
// @Description Retrieves a page of completions for a course, filtered by user, content and stage
// @Tags completions
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param user_id query string false "Comma-separated user IDs"
// @Param content_id query string false "Content ID filter"
// @Param stage query string false "Stage filter"
// @Param page query int false "1-based page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.PaginatedResponse "Completions retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/completions [get]
func (c *CompletionController) ListCompletions(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := &dto.CompletionFilter{
		UserIDs:   parseUserIDList(ctx.Query("user_id")),
		ContentID: ctx.Query("content_id"),
		Page:      page,
		PageSize:  size,
	}
	if stage, ok := ctx.GetQuery("stage"); ok {
		filter.Stage = &stage
	}

	completions, err := c.completionService.ListCompletions(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, completions)
}
