package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
)

// GooglePublicationService defines the interface for Google Scholar publication operations
type GooglePublicationService interface {
	CreateGooglePublication(ctx context.Context, req *dto.GooglePublicationRequest) (*models.GooglePublication, error)
	UpdateGooglePublication(ctx context.Context, id int64, req *dto.GooglePublicationRequest) (*models.GooglePublication, error)
	GetGooglePublicationByID(ctx context.Context, id int64) (*models.GooglePublication, error)
	ListGooglePublications(ctx context.Context, params dto.ListParams) ([]models.GooglePublication, int64, error)
	DeleteGooglePublication(ctx context.Context, id int64) error
}

type googlePublicationServiceImpl struct {
	publications GooglePublicationStore
	saver        outputSaver
}

// NewGooglePublicationService creates a new GooglePublicationService
func NewGooglePublicationService(tx db.Transactor, publications GooglePublicationStore, authors AuthorLookup) GooglePublicationService {
	return &googlePublicationServiceImpl{
		publications: publications,
		saver:        outputSaver{tx: tx, store: publications, authors: authors, constraint: "google_publications_title_unique"},
	}
}

func googlePublicationFromRequest(req *dto.GooglePublicationRequest) *models.GooglePublication {
	return &models.GooglePublication{
		Title:         strings.TrimSpace(req.Title),
		Journal:       strings.TrimSpace(req.Journal),
		Accreditation: strings.TrimSpace(req.Accreditation),
		Year:          req.Year,
		Link:          strings.TrimSpace(req.Link),
	}
}

// CreateGooglePublication creates a publication and links its authors
func (s *googlePublicationServiceImpl) CreateGooglePublication(ctx context.Context, req *dto.GooglePublicationRequest) (*models.GooglePublication, error) {
	pub := googlePublicationFromRequest(req)
	err := s.saver.save(ctx, 0, pub.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
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

// UpdateGooglePublication replaces a publication's attributes and author set
func (s *googlePublicationServiceImpl) UpdateGooglePublication(ctx context.Context, id int64, req *dto.GooglePublicationRequest) (*models.GooglePublication, error) {
	if _, err := s.publications.GetByID(ctx, id); err != nil {
		return nil, err
	}
	pub := googlePublicationFromRequest(req)
	pub.ID = id
	err := s.saver.save(ctx, id, pub.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		pub.Creators = creators
		return id, s.publications.Update(ctx, pub)
	})
	if err != nil {
		return nil, err
	}
	return s.publications.GetByID(ctx, id)
}

// GetGooglePublicationByID retrieves a publication with its authors
func (s *googlePublicationServiceImpl) GetGooglePublicationByID(ctx context.Context, id int64) (*models.GooglePublication, error) {
	return s.publications.GetByID(ctx, id)
}

// ListGooglePublications returns a page of publications
func (s *googlePublicationServiceImpl) ListGooglePublications(ctx context.Context, params dto.ListParams) ([]models.GooglePublication, int64, error) {
	pubs, total, err := s.publications.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing google publications: %w", err)
	}
	return pubs, total, nil
}

// DeleteGooglePublication deletes a publication
func (s *googlePublicationServiceImpl) DeleteGooglePublication(ctx context.Context, id int64) error {
	return s.publications.Delete(ctx, id)
}
