package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// CategoryController handles categories endpoints
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// CreateCategory creates a category
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.CreateCategory(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, category, "Category created successfully")
}

// UpdateCategory updates a category
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.UpdateCategory(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, category, "Category updated successfully")
}

// GetCategoryByID returns one category
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, category, "Category retrieved successfully")
}

// ListCategories returns a page of categories
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.categoryService.ListCategories(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Categories retrieved successfully")
}

// DeleteCategory deletes a category
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.categoryService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Category deleted successfully")
}
