package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, userID int64, req *dto.PostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, req *dto.PostRequest) (*models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, params dto.ListParams) ([]models.Post, int64, error)
	DeletePost(ctx context.Context, id int64) error
}

type postServiceImpl struct {
	posts      PostStore
	pages      PageStore
	categories CategoryStore
}

// NewPostService creates a new PostService
func NewPostService(posts PostStore, pages PageStore, categories CategoryStore) PostService {
	return &postServiceImpl{posts: posts, pages: pages, categories: categories}
}

func (s *postServiceImpl) preparePost(ctx context.Context, p *models.Post, req *dto.PostRequest) error {
	var err error
	p.Title = strings.TrimSpace(req.Title)
	p.Content = req.Content
	p.Image = helpers.StringPtr(helpers.StringValue(req.Image))
	p.Status = models.PostStatus(req.Status)
	p.PageID = req.PageID
	p.CategoryID = req.CategoryID
	if p.Slug, err = makeSlug(req.Slug, p.Title); err != nil {
		return err
	}

	verr := &apperrors.ValidationError{}
	if p.PageID != nil {
		_, err := s.pages.GetByID(ctx, *p.PageID)
		if err := checkReference(err, verr, "page_id"); err != nil {
			return err
		}
	}
	if p.CategoryID != nil {
		_, err := s.categories.GetByID(ctx, *p.CategoryID)
		if err := checkReference(err, verr, "category_id"); err != nil {
			return err
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return err
	}

	exists, err := s.posts.SlugExists(ctx, p.Slug, p.ID)
	return ensureSlugFree(exists, err)
}

// CreatePost creates a post written by userID
func (s *postServiceImpl) CreatePost(ctx context.Context, userID int64, req *dto.PostRequest) (*models.Post, error) {
	post := &models.Post{UserID: userID}
	if err := s.preparePost(ctx, post, req); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, slugViolation(err, "posts_slug_unique")
	}
	return s.posts.GetByID(ctx, post.ID)
}

// UpdatePost updates a post; its author does not change
func (s *postServiceImpl) UpdatePost(ctx context.Context, id int64, req *dto.PostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.preparePost(ctx, post, req); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, slugViolation(err, "posts_slug_unique")
	}
	return s.posts.GetByID(ctx, id)
}

// GetPostByID retrieves a post
func (s *postServiceImpl) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns a page of posts
func (s *postServiceImpl) ListPosts(ctx context.Context, params dto.ListParams) ([]models.Post, int64, error) {
	posts, total, err := s.posts.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, total, nil
}

// DeletePost deletes a post
func (s *postServiceImpl) DeletePost(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}
