package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
)

// CategoryService defines the interface for post category operations
type CategoryService interface {
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *dto.CategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, params dto.ListParams) ([]models.Category, int64, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryServiceImpl struct {
	categories CategoryStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories CategoryStore) CategoryService {
	return &categoryServiceImpl{categories: categories}
}

// CreateCategory creates a category. A duplicate slug is a conflict.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*models.Category, error) {
	c := &models.Category{Name: strings.TrimSpace(req.Name)}
	var err error
	if c.Slug, err = makeSlug(req.Slug, c.Name); err != nil {
		return nil, err
	}

	exists, err := s.categories.SlugExists(ctx, c.Slug, 0)
	if err := ensureSlugFree(exists, err); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, slugViolation(err, "categories_slug_unique")
	}
	return c, nil
}

// UpdateCategory renames a category
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id int64, req *dto.CategoryRequest) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	if c.Slug, err = makeSlug(req.Slug, c.Name); err != nil {
		return nil, err
	}

	exists, err := s.categories.SlugExists(ctx, c.Slug, id)
	if err := ensureSlugFree(exists, err); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, slugViolation(err, "categories_slug_unique")
	}
	return s.categories.GetByID(ctx, id)
}

// GetCategoryByID retrieves a category
func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories returns a page of categories
func (s *categoryServiceImpl) ListCategories(ctx context.Context, params dto.ListParams) ([]models.Category, int64, error) {
	categories, total, err := s.categories.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, total, nil
}

// DeleteCategory deletes a category; its posts become uncategorized
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}
