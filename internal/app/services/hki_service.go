package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// HKIService defines the interface for intellectual property operations
type HKIService interface {
	CreateHKI(ctx context.Context, req *dto.HKIRequest) (*models.HKI, error)
	UpdateHKI(ctx context.Context, id int64, req *dto.HKIRequest) (*models.HKI, error)
	GetHKIByID(ctx context.Context, id int64) (*models.HKI, error)
	ListHKIs(ctx context.Context, params dto.ListParams) ([]models.HKI, int64, error)
	DeleteHKI(ctx context.Context, id int64) error
	GetCategories(ctx context.Context) ([]string, error)
}

type hkiServiceImpl struct {
	hkis  HKIStore
	saver outputSaver
}

// NewHKIService creates a new HKIService
func NewHKIService(tx db.Transactor, hkis HKIStore, authors AuthorLookup) HKIService {
	return &hkiServiceImpl{
		hkis:  hkis,
		saver: outputSaver{tx: tx, store: hkis, authors: authors, constraint: "hkis_title_unique"},
	}
}

func hkiFromRequest(req *dto.HKIRequest) (*models.HKI, error) {
	h := &models.HKI{
		Title:           strings.TrimSpace(req.Title),
		NomorPermohonan: strings.TrimSpace(req.NomorPermohonan),
		Kategori:        strings.TrimSpace(req.Kategori),
		Status:          strings.TrimSpace(req.Status),
	}
	if req.TanggalPermohonan != "" {
		date, err := time.Parse("2006-01-02", req.TanggalPermohonan)
		if err != nil {
			return nil, apperrors.NewValidationError("tanggal_permohonan", "The tanggal permohonan field must match the format 2006-01-02.")
		}
		h.TanggalPermohonan = &date
	}
	return h, nil
}

// CreateHKI creates an HKI record and links its authors
func (s *hkiServiceImpl) CreateHKI(ctx context.Context, req *dto.HKIRequest) (*models.HKI, error) {
	hki, err := hkiFromRequest(req)
	if err != nil {
		return nil, err
	}
	err = s.saver.save(ctx, 0, hki.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		hki.Creators = creators
		if err := s.hkis.Create(ctx, hki); err != nil {
			return 0, err
		}
		return hki.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.hkis.GetByID(ctx, hki.ID)
}

// UpdateHKI replaces an HKI record's attributes and author set
func (s *hkiServiceImpl) UpdateHKI(ctx context.Context, id int64, req *dto.HKIRequest) (*models.HKI, error) {
	if _, err := s.hkis.GetByID(ctx, id); err != nil {
		return nil, err
	}
	hki, err := hkiFromRequest(req)
	if err != nil {
		return nil, err
	}
	hki.ID = id
	err = s.saver.save(ctx, id, hki.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		hki.Creators = creators
		return id, s.hkis.Update(ctx, hki)
	})
	if err != nil {
		return nil, err
	}
	return s.hkis.GetByID(ctx, id)
}

// GetHKIByID retrieves an HKI record with its authors
func (s *hkiServiceImpl) GetHKIByID(ctx context.Context, id int64) (*models.HKI, error) {
	return s.hkis.GetByID(ctx, id)
}

// ListHKIs returns a page of HKI records
func (s *hkiServiceImpl) ListHKIs(ctx context.Context, params dto.ListParams) ([]models.HKI, int64, error) {
	hkis, total, err := s.hkis.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing hkis: %w", err)
	}
	return hkis, total, nil
}

// DeleteHKI deletes an HKI record
func (s *hkiServiceImpl) DeleteHKI(ctx context.Context, id int64) error {
	return s.hkis.Delete(ctx, id)
}

// GetCategories returns the distinct HKI categories
func (s *hkiServiceImpl) GetCategories(ctx context.Context) ([]string, error) {
	return s.hkis.Categories(ctx)
}
