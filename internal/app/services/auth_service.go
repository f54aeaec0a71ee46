package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and records the issued access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *auth.IssuedToken, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error finding user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("email", email).Msg("Login rejected: wrong password")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	issued, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("token generation error: %w", err)
	}

	token := &models.AccessToken{UserID: user.ID, TokenID: issued.TokenID, ExpiresAt: issued.ExpiresAt}
	if err := s.tokenRepo.CreateToken(ctx, token); err != nil {
		return nil, nil, fmt.Errorf("token saving error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, issued, nil
}

// Authenticate resolves a bearer token to its user. The token must be signed by us and
// still be active in the token store.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, *auth.Claims, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, apperrors.ErrTokenExpired
		}
		return nil, nil, apperrors.ErrTokenInvalid
	}

	if _, err := s.tokenRepo.GetActive(ctx, claims.ID); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil, apperrors.ErrTokenInvalid
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes the token the request was authenticated with
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.tokenRepo.RevokeToken(ctx, tokenID); err != nil {
		return err
	}
	s.logger.Info().Str("tokenID", tokenID).Msg("Token revoked")
	return nil
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CleanupExpiredTokens prunes expired and old revoked tokens
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.CleanupExpiredTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}
	return n, nil
}
