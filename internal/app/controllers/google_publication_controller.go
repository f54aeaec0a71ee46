package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// GooglePublicationController handles Google publications endpoints
type GooglePublicationController struct {
	googlePublicationService services.GooglePublicationService
}

// NewGooglePublicationController creates a new GooglePublicationController
func NewGooglePublicationController(googlePublicationService services.GooglePublicationService) *GooglePublicationController {
	return &GooglePublicationController{googlePublicationService: googlePublicationService}
}

// CreateGooglePublication creates a google publication
func (c *GooglePublicationController) CreateGooglePublication(ctx *gin.Context) {
	var req dto.GooglePublicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	publication, err := c.googlePublicationService.CreateGooglePublication(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, publication, "Google publication created successfully")
}

// UpdateGooglePublication updates a google publication
func (c *GooglePublicationController) UpdateGooglePublication(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.GooglePublicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	publication, err := c.googlePublicationService.UpdateGooglePublication(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, publication, "Google publication updated successfully")
}

// GetGooglePublicationByID returns one google publication
func (c *GooglePublicationController) GetGooglePublicationByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	publication, err := c.googlePublicationService.GetGooglePublicationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, publication, "Google publication retrieved successfully")
}

// ListGooglePublications returns a page of Google publications
func (c *GooglePublicationController) ListGooglePublications(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.googlePublicationService.ListGooglePublications(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Google publications retrieved successfully")
}

// DeleteGooglePublication deletes a google publication
func (c *GooglePublicationController) DeleteGooglePublication(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.googlePublicationService.DeleteGooglePublication(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Google publication deleted successfully")
}
