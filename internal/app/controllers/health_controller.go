package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
)

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and database reachability
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health answers 200 when the database responds, 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Database unavailable", nil))
		return
	}
	respondOK(ctx, gin.H{"status": "ok"}, "Service healthy")
}
