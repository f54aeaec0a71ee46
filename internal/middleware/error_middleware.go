package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/logger"
)

// HandleAPIError writes the envelope and status matching err
func HandleAPIError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		importErr     *apperrors.ImportError
	)

	switch {
	case errors.As(err, &validationErr):
		message := validationErr.Message
		if message == "" {
			message = "The given data was invalid."
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(message, validationErr.Fields))
	case errors.As(err, &importErr):
		if len(importErr.Failures) > 0 {
			c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(importErr.Error(), importErr.Failures))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(importErr.Message, nil))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(messageOr(err, "Resource not found"), nil))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(messageOr(err, "This action is unauthorized."), nil))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid credentials", nil))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Token expired", nil))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthenticated.", nil))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(messageOr(err, "Bad request"), nil))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
	}
}

// messageOr returns the message of a CustomError, or fallback for bare sentinels.
func messageOr(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
