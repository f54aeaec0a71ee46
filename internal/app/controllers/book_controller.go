package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// BookController handles book-related operations
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{bookService: bookService}
}

// CreateBook handles book creation
// @Summary Create a new book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=models.Book} "Book created successfully"
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.BookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.CreateBook(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, book, "Book created successfully")
}

// UpdateBook updates an existing book
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.BookRequest true "Book information"
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book updated successfully"
// @Failure 404 {object} dto.APIResponse "Book not found"
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /books/{id} [patch]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.BookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.UpdateBook(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, book, "Book updated successfully")
}

// GetBookByID retrieves a book by ID
// @Summary Get book by ID
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Book not found"
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	book, err := c.bookService.GetBookByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, book, "Book retrieved successfully")
}

// ListBooks retrieves a page of books
// @Summary List books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search in title and creators"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse{data=[]models.Book} "Books retrieved successfully"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	books, total, err := c.bookService.ListBooks(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, books, total, params, "Books retrieved successfully")
}

// DeleteBook deletes a book
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Book deleted successfully"
// @Failure 404 {object} dto.APIResponse "Book not found"
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.bookService.DeleteBook(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Book deleted successfully")
}

// GetCategories lists the distinct book categories
// @Summary List book categories
// @Tags books
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Categories retrieved successfully"
// @Router /books/categories [get]
func (c *BookController) GetCategories(ctx *gin.Context) {
	categories, err := c.bookService.GetCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondOK(ctx, categories, "Categories retrieved successfully")
}
