package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// GroupController handles groups, group membership, and group bindings
// to courses and content
type GroupController struct {
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService) *GroupController {
	return &GroupController{
		groupService: groupService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateGroup handles group creation
// @Summary Create a group
// @Description Creates a new group with a name and a type
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateGroupRequest true "Group information"
// @Success 201 {object} dto.GroupResponse "Group created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid group data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	group, err := c.groupService.CreateGroup(ctx, helpers.RequestBaseURL(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, group)
}

// ListGroups lists groups
// @Summary List groups
// @Description Retrieves all groups, optionally narrowed by type
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "Group type filter"
// @Success 200 {array} dto.GroupResponse "Groups retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	groups, err := c.groupService.ListGroups(ctx, helpers.RequestBaseURL(ctx), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a group
// @Summary Get group details
// @Description Retrieves a single group by ID
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.GroupResponse "Group retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroup(ctx, helpers.RequestBaseURL(ctx), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// UpdateGroup updates a group
// @Summary Update a group
// @Description Applies a partial update to a group's profile
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Param request body dto.UpdateGroupRequest true "Updated group information"
// @Success 200 {object} dto.GroupResponse "Group updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id} [post]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid group data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	group, err := c.groupService.UpdateGroup(ctx, helpers.RequestBaseURL(ctx), groupID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group
// @Summary Delete a group
// @Description Deletes a group along with its memberships and bindings
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 204 "Group deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddGroupMember adds a user to a group
// @Summary Add a group member
// @Description Adds an existing user to a group
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Param request body dto.AddGroupMemberRequest true "User to add"
// @Success 201 {object} dto.GroupMemberResponse "Member added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group or user not found"
// @Failure 409 {object} dto.ErrorResponse "User is already a member"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id}/users [post]
func (c *GroupController) AddGroupMember(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	var req dto.AddGroupMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid membership data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	member, err := c.groupService.AddMember(ctx, helpers.RequestBaseURL(ctx), groupID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// ListGroupMembers lists the users in a group
// @Summary List group members
// @Description Retrieves the users belonging to a group
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {array} dto.GroupMemberResponse "Members retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id}/users [get]
func (c *GroupController) ListGroupMembers(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	members, err := c.groupService.ListMembers(ctx, helpers.RequestBaseURL(ctx), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// RemoveGroupMember removes a user from a group
// @Summary Remove a group member
// @Description Removes a user from a group; removing an absent member succeeds
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Param user_id path int true "User ID" Format(int64) minimum(1)
// @Success 204 "Member removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid group or user ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{group_id}/users/{user_id} [delete]
func (c *GroupController) RemoveGroupMember(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.groupService.RemoveMember(ctx, groupID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BindCourseGroup attaches a group to a course
// @Summary Bind a group to a course
// @Description Attaches a group to a course; a second attempt reports a conflict
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param request body dto.BindGroupRequest true "Group to bind"
// @Success 201 {object} dto.GroupBindingResponse "Group bound successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or group not found"
// @Failure 409 {object} dto.ErrorResponse "Relationship already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/groups [post]
func (c *GroupController) BindCourseGroup(ctx *gin.Context) {
	var req dto.BindGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid binding data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	binding, err := c.groupService.BindCourse(ctx, helpers.RequestBaseURL(ctx), ctx.Param("course_id"), req.GroupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, binding)
}

// ListCourseGroups lists the groups attached to a course
// @Summary List course groups
// @Description Retrieves the groups attached to a course in binding order, optionally narrowed by type
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param type query string false "Group type filter"
// @Success 200 {array} dto.GroupResponse "Groups retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/groups [get]
func (c *GroupController) ListCourseGroups(ctx *gin.Context) {
	groups, err := c.groupService.ListCourseGroups(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, groups)
}

// GetCourseGroup retrieves one course-group binding
// @Summary Get a course group binding
// @Description Confirms that a group is attached to a course
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.GroupBindingResponse "Binding retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course, group or binding not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/groups/{group_id} [get]
func (c *GroupController) GetCourseGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	binding, err := c.groupService.GetCourseBinding(ctx, helpers.RequestBaseURL(ctx), ctx.Param("course_id"), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, binding)
}

// UnbindCourseGroup detaches a group from a course
// @Summary Unbind a group from a course
// @Description Detaches a group from a course; detaching an absent binding succeeds
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 204 "Group unbound"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/groups/{group_id} [delete]
func (c *GroupController) UnbindCourseGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	if err := c.groupService.UnbindCourse(ctx, ctx.Param("course_id"), groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BindContentGroup attaches a group to a content node
// @Summary Bind a group to content
// @Description Attaches a group to a content node inside a course; a second attempt reports a conflict
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param request body dto.BindGroupRequest true "Group to bind"
// @Success 201 {object} dto.GroupBindingResponse "Group bound successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course, content or group not found"
// @Failure 409 {object} dto.ErrorResponse "Relationship already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/groups [post]
func (c *GroupController) BindContentGroup(ctx *gin.Context) {
	var req dto.BindGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid binding data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	binding, err := c.groupService.BindContent(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), req.GroupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, binding)
}

// ListContentGroups lists the groups attached to a content node
// @Summary List content groups
// @Description Retrieves the groups attached to a content node, optionally narrowed by type
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param type query string false "Group type filter"
// @Success 200 {array} dto.GroupResponse "Groups retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/groups [get]
func (c *GroupController) ListContentGroups(ctx *gin.Context) {
	groups, err := c.groupService.ListContentGroups(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, groups)
}

// GetContentGroup retrieves one content-group binding
// @Summary Get a content group binding
// @Description Confirms that a group is attached to a content node
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.GroupBindingResponse "Binding retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course, content, group or binding not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/groups/{group_id} [get]
func (c *GroupController) GetContentGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	binding, err := c.groupService.GetContentBinding(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, binding)
}

// ListContentUsers lists users reachable through content groups
// @Summary List content users
// @Description Retrieves the users belonging to groups attached to a content node, narrowed by enrollment status, group, or group type
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param enrolled query bool false "Course enrollment filter" default(true)
// @Param group_id query int false "Group ID filter" Format(int64)
// @Param type query string false "Group type filter"
// @Success 200 {array} dto.ContentUser "Users retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/users [get]
func (c *GroupController) ListContentUsers(ctx *gin.Context) {
	enrolled, err := strconv.ParseBool(ctx.DefaultQuery("enrolled", "true"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrolled filter")
		errorDetail = errorDetail.WithDetails("enrolled must be a boolean")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var groupID int64
	if raw := ctx.Query("group_id"); raw != "" {
		groupID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || groupID < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid group_id filter")
			errorDetail = errorDetail.WithDetails("group_id must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	users, err := c.groupService.ListContentUsers(ctx, helpers.RequestBaseURL(ctx),
		ctx.Param("course_id"), ctx.Param("content_id"), groupID, ctx.Query("type"), enrolled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// UnbindContentGroup detaches a group from a content node
// @Summary Unbind a group from content
// @Description Detaches a group from a content node; detaching an absent binding succeeds
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param group_id path int true "Group ID" Format(int64) minimum(1)
// @Success 204 "Group unbound"
// @Failure 400 {object} dto.ErrorResponse "Invalid group ID"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course, content or group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/content/{content_id}/groups/{group_id} [delete]
func (c *GroupController) UnbindContentGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "group_id")
	if !ok {
		return
	}

	if err := c.groupService.UnbindContent(ctx, ctx.Param("course_id"), ctx.Param("content_id"), groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
