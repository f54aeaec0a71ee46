package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// PageController handles pages endpoints
type PageController struct {
	pageService services.PageService
}

// NewPageController creates a new PageController
func NewPageController(pageService services.PageService) *PageController {
	return &PageController{pageService: pageService}
}

// CreatePage creates a page
func (c *PageController) CreatePage(ctx *gin.Context) {
	var req dto.PageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	page, err := c.pageService.CreatePage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, page, "Page created successfully")
}

// UpdatePage updates a page
func (c *PageController) UpdatePage(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	page, err := c.pageService.UpdatePage(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, page, "Page updated successfully")
}

// GetPageByID returns one page
func (c *PageController) GetPageByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	page, err := c.pageService.GetPageByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, page, "Page retrieved successfully")
}

// ListPages returns a page of pages
func (c *PageController) ListPages(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.pageService.ListPages(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Pages retrieved successfully")
}

// DeletePage deletes a page
func (c *PageController) DeletePage(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.pageService.DeletePage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Page deleted successfully")
}
