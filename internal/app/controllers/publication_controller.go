package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// PublicationController handles publications endpoints
type PublicationController struct {
	publicationService services.PublicationService
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(publicationService services.PublicationService) *PublicationController {
	return &PublicationController{publicationService: publicationService}
}

// CreatePublication handles publication creation
// @Summary Create publication
// @Tags publications
// @Security BearerAuth
// @Param request body dto.PublicationRequest true "Publication"
// @Success 201 {object} dto.APIResponse
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /publications [post]
func (c *PublicationController) CreatePublication(ctx *gin.Context) {
	var req dto.PublicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	publication, err := c.publicationService.CreatePublication(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, publication, "Publication created successfully")
}

// UpdatePublication updates an existing publication
// @Summary Update publication
// @Tags publications
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /publications/{id} [patch]
func (c *PublicationController) UpdatePublication(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PublicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	publication, err := c.publicationService.UpdatePublication(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, publication, "Publication updated successfully")
}

// GetPublicationByID retrieves one publication
// @Summary Get publication by ID
// @Tags publications
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /publications/{id} [get]
func (c *PublicationController) GetPublicationByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	publication, err := c.publicationService.GetPublicationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, publication, "Publication retrieved successfully")
}

// ListPublications retrieves a page of publications
// @Summary List publications
// @Tags publications
// @Security BearerAuth
// @Param q query string false "Search"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse
// @Router /publications [get]
func (c *PublicationController) ListPublications(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.publicationService.ListPublications(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Publications retrieved successfully")
}

// DeletePublication deletes one publication
// @Summary Delete publication
// @Tags publications
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /publications/{id} [delete]
func (c *PublicationController) DeletePublication(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.publicationService.DeletePublication(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Publication deleted successfully")
}
