package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// UserService defines the interface for user account operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, params dto.ListParams) ([]models.User, int64, error)
	DeleteUser(ctx context.Context, actorID, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo  UserStore
	tokenRepo TokenStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, tokenRepo TokenStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, tokenRepo: tokenRepo, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates an account with a hashed password
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
		Role:  models.ParseRole(req.Role),
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email, 0)
	if err := ensureUnique(exists, err, "email"); err != nil {
		return nil, err
	}

	if user.Password, err = auth.HashPassword(req.Password); err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, uniqueViolation(err, "users_email_unique", "email")
	}
	return user, nil
}

// UpdateUser updates an account. A new password revokes the user's tokens.
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Email = normalizeEmail(req.Email)
	user.Role = models.ParseRole(req.Role)

	exists, err := s.userRepo.EmailExists(ctx, user.Email, id)
	if err := ensureUnique(exists, err, "email"); err != nil {
		return nil, err
	}

	if req.Password != "" {
		if user.Password, err = auth.HashPassword(req.Password); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, uniqueViolation(err, "users_email_unique", "email")
	}

	if req.Password != "" {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
			s.logger.Error().Err(err).Int64("userID", id).Msg("Error revoking tokens after password change")
		}
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByID retrieves a user
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns a page of users
func (s *userServiceImpl) ListUsers(ctx context.Context, params dto.ListParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	return users, total, nil
}

// DeleteUser deletes an account other than the caller's own
func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return apperrors.NewConflictError("You cannot delete your own account.")
	}
	return s.userRepo.Delete(ctx, id)
}
