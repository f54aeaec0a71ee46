package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// AuthorController handles authors endpoints
type AuthorController struct {
	authorService services.AuthorService
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(authorService services.AuthorService) *AuthorController {
	return &AuthorController{authorService: authorService}
}

// CreateAuthor handles author creation
// @Summary Create author
// @Tags authors
// @Security BearerAuth
// @Param request body dto.AuthorRequest true "Author"
// @Success 201 {object} dto.APIResponse
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /authors [post]
func (c *AuthorController) CreateAuthor(ctx *gin.Context) {
	var req dto.AuthorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	author, err := c.authorService.CreateAuthor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, author, "Author created successfully")
}

// UpdateAuthor updates an existing author
// @Summary Update author
// @Tags authors
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /authors/{id} [patch]
func (c *AuthorController) UpdateAuthor(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	author, err := c.authorService.UpdateAuthor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, author, "Author updated successfully")
}

// GetAuthorByID retrieves one author
// @Summary Get author by ID
// @Tags authors
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /authors/{id} [get]
func (c *AuthorController) GetAuthorByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	author, err := c.authorService.GetAuthorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, author, "Author retrieved successfully")
}

// ListAuthors retrieves a page of authors
// @Summary List authors
// @Tags authors
// @Security BearerAuth
// @Param q query string false "Search"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse
// @Router /authors [get]
func (c *AuthorController) ListAuthors(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.authorService.ListAuthors(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Authors retrieved successfully")
}

// DeleteAuthor deletes one author
// @Summary Delete author
// @Tags authors
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /authors/{id} [delete]
func (c *AuthorController) DeleteAuthor(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.authorService.DeleteAuthor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Author deleted successfully")
}
