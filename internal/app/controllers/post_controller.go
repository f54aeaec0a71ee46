package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// PostController handles CMS posts
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// CreatePost creates a post owned by the authenticated user
func (c *PostController) CreatePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}
	var req dto.PostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, post, "Post created successfully")
}

// UpdatePost updates a post
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.postService.UpdatePost(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, post, "Post updated successfully")
}

// GetPostByID returns one post
func (c *PostController) GetPostByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	post, err := c.postService.GetPostByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, post, "Post retrieved successfully")
}

// ListPosts returns a page of posts
func (c *PostController) ListPosts(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	posts, total, err := c.postService.ListPosts(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, posts, total, params, "Posts retrieved successfully")
}

// DeletePost deletes a post
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.postService.DeletePost(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Post deleted successfully")
}
