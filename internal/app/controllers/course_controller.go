package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// CourseController handles course catalog and content tree operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// parseDepth reads the optional depth query parameter; invalid or
// negative values fall back to 0
func parseDepth(ctx *gin.Context) int {
	depth, err := strconv.Atoi(ctx.DefaultQuery("depth", "0"))
	if err != nil || depth < 0 {
		return 0
	}
	return depth
}

// ListCourses lists all courses
// @Summary List courses
// @Description Retrieves the course catalog without content expansion
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.CourseDetailResponse "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx, helpers.RequestBaseURL(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetCourse retrieves a course
// @Summary Get course details
// @Description Retrieves a course, expanding depth levels of content under the content key
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param depth query int false "Levels of content to expand" default(0)
// @Success 200 {object} dto.CourseDetailResponse "Course retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourse(ctx, helpers.RequestBaseURL(ctx), ctx.Param("course_id"), parseDepth(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// ListRootChildren lists the top-level content of a course
// @Summary List course content
// @Description Retrieves the immediate children of the course root, optionally filtered by category
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param type query string false "Content category filter"
// @Success 200 {array} dto.ContentNode "Content retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content [get]
func (c *CourseController) ListRootChildren(ctx *gin.Context) {
	children, err := c.courseService.ListChildren(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), "", ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, children)
}

// GetContent retrieves a content node
// @Summary Get content details
// @Description Retrieves a content node, expanding depth levels of children under the children key
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param depth query int false "Levels of children to expand" default(0)
// @Success 200 {object} dto.ContentNode "Content retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id} [get]
func (c *CourseController) GetContent(ctx *gin.Context) {
	node, err := c.courseService.GetContent(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), parseDepth(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, node)
}

// ListChildren lists the children of a content node
// @Summary List content children
// @Description Retrieves the immediate children of a content node, optionally filtered by category
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param type query string false "Content category filter"
// @Success 200 {array} dto.ContentNode "Children retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/children [get]
func (c *CourseController) ListChildren(ctx *gin.Context) {
	children, err := c.courseService.ListChildren(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, children)
}

// GetOverview retrieves the course about page
// @Summary Get course overview
// @Description Retrieves the course about page, decomposed into sections when parse=true
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param parse query bool false "Decompose the page into sections" default(false)
// @Success 200 {object} dto.CourseOverviewResponse "Overview retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or overview not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/overview [get]
func (c *CourseController) GetOverview(ctx *gin.Context) {
	parse := ctx.Query("parse") == "true"
	overview, err := c.courseService.GetOverview(ctx, ctx.Param("course_id"), parse)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, overview)
}

// GetUpdates retrieves the course updates page
// @Summary Get course updates
// @Description Retrieves the course info page, decomposed into dated postings when parse=true
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param parse query bool false "Decompose the page into postings" default(false)
// @Success 200 {object} dto.CourseUpdatesResponse "Updates retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or updates not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/updates [get]
func (c *CourseController) GetUpdates(ctx *gin.Context) {
	parse := ctx.Query("parse") == "true"
	updates, err := c.courseService.GetUpdates(ctx, ctx.Param("course_id"), parse)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updates)
}

// ListStaticTabs lists the static tabs of a course
// @Summary List static tabs
// @Description Retrieves the static tabs of a course; detail=true includes each tab's content
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param detail query bool false "Include tab content" default(false)
// @Success 200 {object} dto.StaticTabsResponse "Tabs retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/static_tabs [get]
func (c *CourseController) ListStaticTabs(ctx *gin.Context) {
	detail := ctx.Query("detail") == "true"
	tabs, err := c.courseService.ListStaticTabs(ctx, ctx.Param("course_id"), detail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tabs)
}

// GetStaticTab retrieves one static tab
// @Summary Get a static tab
// @Description Retrieves a single static tab by its slug, content included
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param tab_id path string true "Tab slug"
// @Success 200 {object} dto.StaticTab "Tab retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or tab not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/static_tabs/{tab_id} [get]
func (c *CourseController) GetStaticTab(ctx *gin.Context) {
	tab, err := c.courseService.GetStaticTab(ctx, ctx.Param("course_id"), ctx.Param("tab_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tab)
}
