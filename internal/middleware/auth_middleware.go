package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	userKey   = "user"
	claimsKey = "claims"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, apperrors.ErrTokenInvalid)
			return
		}

		user, claims, err := m.authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequirePermission aborts with 403 unless the authenticated user's role grants p.
// It must run after JWTAuth.
func (m *AuthMiddleware) RequirePermission(p models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}
		if !user.Role.Allows(p) {
			abortWithError(c, apperrors.NewForbiddenError("This action is unauthorized."))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentClaims returns the token claims stored by JWTAuth.
func CurrentClaims(c *gin.Context) (*auth.Claims, error) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	claims, ok := v.(*auth.Claims)
	if !ok || claims == nil {
		return nil, errors.New("claims stored with unexpected type")
	}
	return claims, nil
}

func abortWithError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}
