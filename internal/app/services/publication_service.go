package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/repositories"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// PublicationService defines the interface for publication operations. Publications
// are either Google Scholar or Scopus indexed, told apart by their venue.
type PublicationService interface {
	CreatePublication(ctx context.Context, req *dto.PublicationRequest) (*models.Publication, error)
	UpdatePublication(ctx context.Context, id int64, req *dto.PublicationRequest) (*models.Publication, error)
	GetPublicationByID(ctx context.Context, id int64) (*models.Publication, error)
	ListPublications(ctx context.Context, params dto.ListParams) ([]models.Publication, int64, error)
	DeletePublication(ctx context.Context, id int64) error
}

type publicationServiceImpl struct {
	publications PublicationStore
	saver        outputSaver
}

// NewPublicationService creates a new PublicationService
func NewPublicationService(tx db.Transactor, publications PublicationStore, authors AuthorLookup) PublicationService {
	return &publicationServiceImpl{
		publications: publications,
		saver:        outputSaver{tx: tx, store: publications, authors: authors, constraint: "publications_title_unique"},
	}
}

func publicationFromRequest(req *dto.PublicationRequest) (*models.Publication, error) {
	category, err := models.ParsePublicationCategory(req.Category)
	if err != nil {
		return nil, apperrors.NewValidationError("category", "The selected category is invalid.")
	}

	p := &models.Publication{
		Title: strings.TrimSpace(req.Title),
		Year:  req.Year,
		Link:  strings.TrimSpace(req.Link),
	}
	switch category {
	case models.CategoryGoogle:
		p.Venue = models.GoogleVenue{
			Accreditation: strings.TrimSpace(req.Accreditation),
			Journal:       strings.TrimSpace(req.Journal),
		}
	case models.CategoryScopus:
		p.Venue = models.ScopusVenue{
			Identifier:      strings.TrimSpace(req.Identifier),
			Quartile:        strings.TrimSpace(req.Quartile),
			PublicationName: strings.TrimSpace(req.PublicationName),
		}
	}
	return p, nil
}

// CreatePublication creates a publication and links its authors
func (s *publicationServiceImpl) CreatePublication(ctx context.Context, req *dto.PublicationRequest) (*models.Publication, error) {
	pub, err := publicationFromRequest(req)
	if err != nil {
		return nil, err
	}
	err = s.saver.save(ctx, 0, pub.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		pub.Creators = creators
		if err := s.publications.Create(ctx, pub); err != nil {
			return 0, err
		}
		return pub.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.publications.GetByID(ctx, pub.ID)
}

// UpdatePublication replaces a publication's attributes and author set. Changing the
// category clears the other category's columns.
func (s *publicationServiceImpl) UpdatePublication(ctx context.Context, id int64, req *dto.PublicationRequest) (*models.Publication, error) {
	if _, err := s.publications.GetByID(ctx, id); err != nil {
		return nil, err
	}
	pub, err := publicationFromRequest(req)
	if err != nil {
		return nil, err
	}
	pub.ID = id
	err = s.saver.save(ctx, id, pub.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		pub.Creators = creators
		return id, s.publications.Update(ctx, pub)
	})
	if err != nil {
		return nil, err
	}
	return s.publications.GetByID(ctx, id)
}

// GetPublicationByID retrieves a publication with its authors
func (s *publicationServiceImpl) GetPublicationByID(ctx context.Context, id int64) (*models.Publication, error) {
	return s.publications.GetByID(ctx, id)
}

// ListPublications returns a page of publications, optionally of one category
func (s *publicationServiceImpl) ListPublications(ctx context.Context, params dto.ListParams) ([]models.Publication, int64, error) {
	opts := repositories.PublicationListOptions{ListOptions: listOptions(params)}
	if params.Category != "" {
		category, err := models.ParsePublicationCategory(params.Category)
		if err != nil {
			return nil, 0, apperrors.NewValidationError("category", "The selected category is invalid.")
		}
		opts.Category = category
	}

	pubs, total, err := s.publications.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing publications: %w", err)
	}
	return pubs, total, nil
}

// DeletePublication deletes a publication
func (s *publicationServiceImpl) DeletePublication(ctx context.Context, id int64) error {
	return s.publications.Delete(ctx, id)
}
