package dto

import "github.com/lppm/research-portal/internal/app/models"

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// NewUserResponse converts a user model.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// LoginResponse is returned by a successful login. The token sits beside the envelope data.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    UserResponse `json:"data"`
	Token   string       `json:"token"`
}

// CreateUserRequest represents a new user account
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=superadmin admin"`
}

// UpdateUserRequest updates a user. An empty password keeps the current one.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required,oneof=superadmin admin"`
}
