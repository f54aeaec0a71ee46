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
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// AuthorService defines the interface for author operations
type AuthorService interface {
	CreateAuthor(ctx context.Context, req *dto.AuthorRequest) (*models.Author, error)
	UpdateAuthor(ctx context.Context, id int64, req *dto.AuthorRequest) (*models.Author, error)
	GetAuthorByID(ctx context.Context, id int64) (*models.Author, error)
	ListAuthors(ctx context.Context, params dto.ListParams) ([]models.Author, int64, error)
	DeleteAuthor(ctx context.Context, id int64) error
}

type authorServiceImpl struct {
	tx            db.Transactor
	authors       AuthorStore
	studyPrograms StudyProgramStore
}

// NewAuthorService creates a new AuthorService
func NewAuthorService(tx db.Transactor, authors AuthorStore, studyPrograms StudyProgramStore) AuthorService {
	return &authorServiceImpl{tx: tx, authors: authors, studyPrograms: studyPrograms}
}

func authorFromRequest(req *dto.AuthorRequest) *models.Author {
	return &models.Author{
		SintaID:            strings.TrimSpace(req.SintaID),
		NIDN:               strings.TrimSpace(req.NIDN),
		Name:               strings.TrimSpace(req.Name),
		Affiliation:        strings.TrimSpace(req.Affiliation),
		StudyProgramID:     req.StudyProgramID,
		LastEducation:      strings.TrimSpace(req.LastEducation),
		FunctionalPosition: strings.TrimSpace(req.FunctionalPosition),
		TitlePrefix:        helpers.StringPtr(helpers.StringValue(req.TitlePrefix)),
		TitleSuffix:        helpers.StringPtr(helpers.StringValue(req.TitleSuffix)),
	}
}

// validateAuthor checks NIDN uniqueness and the study program reference
func (s *authorServiceImpl) validateAuthor(ctx context.Context, a *models.Author) error {
	verr := &apperrors.ValidationError{}

	exists, err := s.authors.NIDNExists(ctx, a.NIDN, a.ID)
	if err != nil {
		return fmt.Errorf("error checking nidn: %w", err)
	}
	if exists {
		verr.Add("nidn", takenMessage("nidn"))
	}

	if a.StudyProgramID != nil {
		if _, err := s.studyPrograms.GetByID(ctx, *a.StudyProgramID); err != nil {
			if !errors.Is(err, apperrors.ErrResourceNotFound) {
				return err
			}
			verr.Add("study_program_id", "The selected study program id is invalid.")
		}
	}
	return verr.ErrOrNil()
}

// CreateAuthor creates an author
func (s *authorServiceImpl) CreateAuthor(ctx context.Context, req *dto.AuthorRequest) (*models.Author, error) {
	author := authorFromRequest(req)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.validateAuthor(ctx, author); err != nil {
			return err
		}
		return uniqueViolation(s.authors.Create(ctx, author), "authors_nidn_unique", "nidn")
	})
	if err != nil {
		return nil, err
	}
	return s.authors.GetByID(ctx, author.ID)
}

// UpdateAuthor replaces an author's attributes
func (s *authorServiceImpl) UpdateAuthor(ctx context.Context, id int64, req *dto.AuthorRequest) (*models.Author, error) {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	author := authorFromRequest(req)
	author.ID = id
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.validateAuthor(ctx, author); err != nil {
			return err
		}
		return uniqueViolation(s.authors.Update(ctx, author), "authors_nidn_unique", "nidn")
	})
	if err != nil {
		return nil, err
	}
	return s.authors.GetByID(ctx, id)
}

// GetAuthorByID retrieves an author with its study program
func (s *authorServiceImpl) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	return s.authors.GetByID(ctx, id)
}

// ListAuthors returns a page of authors
func (s *authorServiceImpl) ListAuthors(ctx context.Context, params dto.ListParams) ([]models.Author, int64, error) {
	authors, total, err := s.authors.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing authors: %w", err)
	}
	return authors, total, nil
}

// DeleteAuthor deletes an author; the author's links to outputs go with it
func (s *authorServiceImpl) DeleteAuthor(ctx context.Context, id int64) error {
	return s.authors.Delete(ctx, id)
}
