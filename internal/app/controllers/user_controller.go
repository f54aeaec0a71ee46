package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

func userResponses(users []models.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = dto.NewUserResponse(&users[i])
	}
	return out
}

// CreateUser creates an account
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, dto.NewUserResponse(user), "User created successfully")
}

// UpdateUser updates an account. An empty password keeps the current one.
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user), "User updated successfully")
}

// GetUserByID retrieves user information by ID
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUserResponse(user), "User retrieved successfully")
}

// ListUsers returns a page of users, five per page
func (c *UserController) ListUsers(ctx *gin.Context) {
	params := listParams(ctx, helpers.UserPageSize)
	users, total, err := c.userService.ListUsers(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, userResponses(users), total, params, "Users retrieved successfully")
}

// DeleteUser deletes an account other than the caller's own
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	actor, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}
	if err := c.userService.DeleteUser(ctx.Request.Context(), actor.ID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "User deleted successfully")
}
