package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("Request served")
	}
}

// Metrics records request counts and latency labeled by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns panics into a 500 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
	})
}

// NotFound answers unknown routes with the envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Route not found", nil))
	}
}
