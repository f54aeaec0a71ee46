package services

import (
	"context"
	"testing"
	"time"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	users := newFakeUserStore(models.User{Name: "Admin", Email: "admin@lppm.test", Password: hash, Role: models.RoleAdmin})
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "lppm"})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop()), users, tokens
}

func TestLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newTestAuthService(t)

	user, issued, err := svc.Login(ctx, &dto.LoginRequest{Email: "Admin@LPPM.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Contains(t, tokens.tokens, issued.TokenID)

	current, claims, err := svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, issued.TokenID, claims.ID)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	_, _, err = svc.Authenticate(ctx, issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@lppm.test", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@lppm.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, _, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	svc := NewUserService(users, tokens, zerolog.Nop())

	u, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Name: "Op", Email: "op@lppm.test", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	assert.NotEqual(t, "password1", users.users[u.ID].Password)
	assert.True(t, auth.CheckPassword(users.users[u.ID].Password, "password1"))

	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{Name: "Dup", Email: "OP@lppm.test", Password: "password1", Role: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateUser(ctx, u.ID, &dto.UpdateUserRequest{Name: "Op", Email: "op@lppm.test", Password: "newpassword", Role: "superadmin"})
	require.NoError(t, err)
	assert.Equal(t, []int64{u.ID}, tokens.revoked)
	assert.Equal(t, models.RoleSuperadmin, users.users[u.ID].Role)

	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID, u.ID), apperrors.ErrConflict)
}
