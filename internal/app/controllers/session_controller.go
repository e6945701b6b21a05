package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/services"
	"github.com/oguzk/courseapi/internal/middleware"
)

// SessionController issues session tokens
type SessionController struct {
	authService services.AuthService
}

// NewSessionController creates a new SessionController
func NewSessionController(authService services.AuthService) *SessionController {
	return &SessionController{
		authService: authService,
	}
}

// CreateSession starts a session
// @Summary Log in
// @Description Verifies credentials and issues a session token; repeated failures lock the username out
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.LoginRequest true "Credentials"
// @Success 201 {object} dto.LoginResponse "Session created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account is disabled"
// @Failure 429 {object} dto.ErrorResponse "Too many failed attempts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// DeleteSession ends a session
// @Summary Log out
// @Description Discards a session token; tokens are stateless, so the operation is idempotent
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param token path string true "Session token"
// @Success 204 "Session ended"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing API key"
// @Router /sessions/{token} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
