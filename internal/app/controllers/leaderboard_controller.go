package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
)

// DefaultLeaderCount caps a leaderboard listing unless the client asks
// for more
const DefaultLeaderCount = 3

// LeaderboardController serves proficiency and completion leaderboards
// and grade rollups
type LeaderboardController struct {
	leaderboardService services.LeaderboardService
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: leaderboardService,
	}
}

func parseLeaderCount(ctx *gin.Context) int {
	count, err := strconv.Atoi(ctx.DefaultQuery("count", strconv.Itoa(DefaultLeaderCount)))
	if err != nil || count < 1 {
		return DefaultLeaderCount
	}
	return count
}

func parseUserID(ctx *gin.Context) int64 {
	userID, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil || userID < 1 {
		return 0
	}
	return userID
}

// ProficiencyLeaders ranks users by grade points
// @Summary Get the proficiency leaderboard
// @Description Ranks non-observer users by summed grade points; user_id adds that user's rank
// @Tags metrics
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id query string false "Scope to a content node and its descendants"
// @Param user_id query int false "Include this user's rank and points"
// @Param count query int false "Number of leaders" default(3)
// @Success 200 {object} dto.ProficiencyLeaderboardResponse "Leaderboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/metrics/proficiency/leaders [get]
func (c *LeaderboardController) ProficiencyLeaders(ctx *gin.Context) {
	board, err := c.leaderboardService.ProficiencyLeaderboard(ctx, ctx.Param("course_id"),
		ctx.Query("content_id"), parseUserID(ctx), parseLeaderCount(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// CompletionLeaders ranks users by completion count
// @Summary Get the completion leaderboard
// @Description Ranks non-observer users by completion count; user_id adds that user's rank
// @Tags metrics
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id query string false "Scope to a content node and its descendants"
// @Param user_id query int false "Include this user's rank and count"
// @Param count query int false "Number of leaders" default(3)
// @Success 200 {object} dto.CompletionLeaderboardResponse "Leaderboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/metrics/completions/leaders [get]
func (c *LeaderboardController) CompletionLeaders(ctx *gin.Context) {
	board, err := c.leaderboardService.CompletionLeaderboard(ctx, ctx.Param("course_id"),
		ctx.Query("content_id"), parseUserID(ctx), parseLeaderCount(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// GetGrades rolls up grades for a course
// @Summary Get course grades
// @Description Aggregates gradeable activity for a course, optionally narrowed by user and content
// @Tags metrics
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id query string false "Scope to a content node and its descendants"
// @Param user_id query int false "Narrow the user-scoped figures to this user"
// @Success 200 {object} dto.GradesResponse "Grades retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/grades [get]
func (c *LeaderboardController) GetGrades(ctx *gin.Context) {
	grades, err := c.leaderboardService.Grades(ctx, ctx.Param("course_id"),
		ctx.Query("content_id"), parseUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grades)
}
