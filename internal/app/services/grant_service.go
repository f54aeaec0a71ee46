package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
)

// GrantService defines the interface for research and community service operations.
// One instance serves each table.
type GrantService interface {
	CreateGrant(ctx context.Context, req *dto.GrantRequest) (*models.Grant, error)
	UpdateGrant(ctx context.Context, id int64, req *dto.GrantRequest) (*models.Grant, error)
	GetGrantByID(ctx context.Context, id int64) (*models.Grant, error)
	ListGrants(ctx context.Context, params dto.ListParams) ([]models.Grant, int64, error)
	DeleteGrant(ctx context.Context, id int64) error
}

type grantServiceImpl struct {
	kind   string
	grants GrantStore
	saver  outputSaver
}

// NewResearchService creates a GrantService over research grants
func NewResearchService(tx db.Transactor, grants GrantStore, authors AuthorLookup) GrantService {
	return newGrantService("research", "research_title_unique", tx, grants, authors)
}

// NewCommunityServiceService creates a GrantService over community services
func NewCommunityServiceService(tx db.Transactor, grants GrantStore, authors AuthorLookup) GrantService {
	return newGrantService("services", "services_title_unique", tx, grants, authors)
}

func newGrantService(kind, constraint string, tx db.Transactor, grants GrantStore, authors AuthorLookup) GrantService {
	return &grantServiceImpl{
		kind:   kind,
		grants: grants,
		saver:  outputSaver{tx: tx, store: grants, authors: authors, constraint: constraint},
	}
}

func grantFromRequest(req *dto.GrantRequest) *models.Grant {
	return &models.Grant{
		Title:           strings.TrimSpace(req.Title),
		SchemeShortName: strings.TrimSpace(req.SchemeShortName),
		SchemeName:      strings.TrimSpace(req.SchemeName),
		ProposalYear:    req.ProposalYear,
		FundsApproved:   req.FundsApproved,
		FundingSource:   strings.TrimSpace(req.FundingSource),
	}
}

// CreateGrant creates a grant and links its authors
func (s *grantServiceImpl) CreateGrant(ctx context.Context, req *dto.GrantRequest) (*models.Grant, error) {
	grant := grantFromRequest(req)
	err := s.saver.save(ctx, 0, grant.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		grant.Creators = creators
		if err := s.grants.Create(ctx, grant); err != nil {
			return 0, err
		}
		return grant.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.grants.GetByID(ctx, grant.ID)
}

// UpdateGrant replaces a grant's attributes and author set
func (s *grantServiceImpl) UpdateGrant(ctx context.Context, id int64, req *dto.GrantRequest) (*models.Grant, error) {
	if _, err := s.grants.GetByID(ctx, id); err != nil {
		return nil, err
	}
	grant := grantFromRequest(req)
	grant.ID = id
	err := s.saver.save(ctx, id, grant.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		grant.Creators = creators
		return id, s.grants.Update(ctx, grant)
	})
	if err != nil {
		return nil, err
	}
	return s.grants.GetByID(ctx, id)
}

// GetGrantByID retrieves a grant with its authors
func (s *grantServiceImpl) GetGrantByID(ctx context.Context, id int64) (*models.Grant, error) {
	return s.grants.GetByID(ctx, id)
}

// ListGrants returns a page of grants
func (s *grantServiceImpl) ListGrants(ctx context.Context, params dto.ListParams) ([]models.Grant, int64, error) {
	grants, total, err := s.grants.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing %s: %w", s.kind, err)
	}
	return grants, total, nil
}

// DeleteGrant deletes a grant
func (s *grantServiceImpl) DeleteGrant(ctx context.Context, id int64) error {
	return s.grants.Delete(ctx, id)
}
