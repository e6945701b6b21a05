package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
)

// RoleController manages per-course role assignments
type RoleController struct {
	roleService services.RoleService
}

// NewRoleController creates a new RoleController
func NewRoleController(roleService services.RoleService) *RoleController {
	return &RoleController{
		roleService: roleService,
	}
}

// GrantRole grants a course role
// @Summary Grant a role
// @Description Assigns a role to a user in a course; granting a held role succeeds
// @Tags roles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param request body dto.GrantRoleRequest true "Role to grant"
// @Success 201 "Role granted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or role"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or user not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/roles [post]
func (c *RoleController) GrantRole(ctx *gin.Context) {
	var req dto.GrantRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.roleService.GrantRole(ctx, ctx.Param("course_id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

// ListRoles lists course role assignments
// @Summary List roles
// @Description Retrieves role assignments in a course, optionally narrowed by user and role
// @Tags roles
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param user_id query int false "User ID filter"
// @Param role query string false "Role filter"
// @Success 200 {array} dto.RoleEntry "Roles retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid role filter"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/roles [get]
func (c *RoleController) ListRoles(ctx *gin.Context) {
	roles, err := c.roleService.ListRoles(ctx, ctx.Param("course_id"), parseUserID(ctx), ctx.Query("role"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// RevokeRole revokes a course role
// @Summary Revoke a role
// @Description Removes a role assignment; revoking an absent assignment reports not found
// @Tags roles
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path string true "Course ID"
// @Param user_id path int true "User ID" Format(int64) minimum(1)
// @Param role path string true "Role name"
// @Success 204 "Role revoked"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID or role"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Failure 404 {object} dto.ErrorResponse "Course or role assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{course_id}/roles/{role}/users/{user_id} [delete]
func (c *RoleController) RevokeRole(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	if err := c.roleService.RevokeRole(ctx, ctx.Param("course_id"), userID, ctx.Param("role")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
