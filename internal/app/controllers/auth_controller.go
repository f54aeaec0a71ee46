// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a bearer token next to the user data
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /users/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, issued, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		Data:    dto.NewUserResponse(user),
		Token:   issued.Token,
	})
}

// Logout revokes the token of the current request
// @Summary User logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /users/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, err := middleware.CurrentClaims(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.authService.Logout(ctx.Request.Context(), claims.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Logout successful")
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /users/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user), "User retrieved successfully")
}
