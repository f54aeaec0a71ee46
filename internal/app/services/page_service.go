package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// PageService defines the interface for CMS page operations
type PageService interface {
	CreatePage(ctx context.Context, req *dto.PageRequest) (*models.Page, error)
	UpdatePage(ctx context.Context, id int64, req *dto.PageRequest) (*models.Page, error)
	GetPageByID(ctx context.Context, id int64) (*models.Page, error)
	ListPages(ctx context.Context, params dto.ListParams) ([]models.Page, int64, error)
	DeletePage(ctx context.Context, id int64) error
}

type pageServiceImpl struct {
	tx    db.Transactor
	pages PageStore
}

// NewPageService creates a new PageService
func NewPageService(tx db.Transactor, pages PageStore) PageService {
	return &pageServiceImpl{tx: tx, pages: pages}
}

// preparePage fills slug, parent and link from the request
func (s *pageServiceImpl) preparePage(ctx context.Context, p *models.Page, req *dto.PageRequest) error {
	var err error
	p.Title = strings.TrimSpace(req.Title)
	p.Content = req.Content
	p.ParentID = req.ParentID
	if p.Slug, err = makeSlug(req.Slug, p.Title); err != nil {
		return err
	}

	var parent *models.Page
	if p.ParentID != nil {
		verr := &apperrors.ValidationError{}
		if p.ID != 0 && *p.ParentID == p.ID {
			verr.Add("parent_id", "A page cannot be its own parent.")
		} else {
			parent, err = s.pages.GetByID(ctx, *p.ParentID)
			if err := checkReference(err, verr, "parent_id"); err != nil {
				return err
			}
			if parent != nil && p.ID != 0 {
				cyclic, err := s.descendsFrom(ctx, parent, p.ID)
				if err != nil {
					return err
				}
				if cyclic {
					verr.Add("parent_id", "A page cannot be moved under one of its own subpages.")
				}
			}
		}
		if err := verr.ErrOrNil(); err != nil {
			return err
		}
	}
	p.Parent = parent
	p.Link = models.PageLink(parent, p.Slug)

	exists, err := s.pages.SlugExists(ctx, p.Slug, p.ID)
	return ensureSlugFree(exists, err)
}

// descendsFrom reports whether page has id among its ancestors, itself included.
func (s *pageServiceImpl) descendsFrom(ctx context.Context, page *models.Page, id int64) (bool, error) {
	seen := map[int64]bool{}
	for page != nil && !seen[page.ID] {
		if page.ID == id {
			return true, nil
		}
		seen[page.ID] = true
		if page.ParentID == nil {
			return false, nil
		}
		next, err := s.pages.GetByID(ctx, *page.ParentID)
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		page = next
	}
	return false, nil
}

// CreatePage creates a page under an optional parent
func (s *pageServiceImpl) CreatePage(ctx context.Context, req *dto.PageRequest) (*models.Page, error) {
	page := &models.Page{}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.preparePage(ctx, page, req); err != nil {
			return err
		}
		return slugViolation(s.pages.Create(ctx, page), "pages_slug_unique")
	})
	if err != nil {
		return nil, err
	}
	return s.pages.GetByID(ctx, page.ID)
}

// UpdatePage updates a page and rewrites the links of its children
func (s *pageServiceImpl) UpdatePage(ctx context.Context, id int64, req *dto.PageRequest) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.preparePage(ctx, page, req); err != nil {
			return err
		}
		if err := slugViolation(s.pages.Update(ctx, page), "pages_slug_unique"); err != nil {
			return err
		}
		return s.pages.RefreshChildLinks(ctx, page)
	})
	if err != nil {
		return nil, err
	}
	return s.pages.GetByID(ctx, id)
}

// GetPageByID retrieves a page with its parent
func (s *pageServiceImpl) GetPageByID(ctx context.Context, id int64) (*models.Page, error) {
	return s.pages.GetByID(ctx, id)
}

// ListPages returns a page of pages
func (s *pageServiceImpl) ListPages(ctx context.Context, params dto.ListParams) ([]models.Page, int64, error) {
	pages, total, err := s.pages.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pages: %w", err)
	}
	return pages, total, nil
}

// DeletePage deletes a page
func (s *pageServiceImpl) DeletePage(ctx context.Context, id int64) error {
	return s.pages.Delete(ctx, id)
}
