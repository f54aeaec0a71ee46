package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

var hkiColumns = []string{"id", "title", "nomor_permohonan", "kategori", "tanggal_permohonan", "status", "creators", "created_at", "updated_at"}

// HKIRepository handles database operations for intellectual property records
type HKIRepository struct {
	outputRepository
}

// NewHKIRepository creates a new HKIRepository
func NewHKIRepository(database *db.PostgresDB) *HKIRepository {
	return &HKIRepository{newOutputRepository(database, hkisTable, "HKI not found")}
}

func scanHKI(row pgx.Row) (models.HKI, error) {
	var h models.HKI
	err := row.Scan(&h.ID, &h.Title, &h.NomorPermohonan, &h.Kategori, &h.TanggalPermohonan, &h.Status, &h.Creators, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// Create inserts an HKI record
func (r *HKIRepository) Create(ctx context.Context, h *models.HKI) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("hkis").
		Columns("title", "nomor_permohonan", "kategori", "tanggal_permohonan", "status", "creators", "created_at", "updated_at").
		Values(h.Title, h.NomorPermohonan, h.Kategori, h.TanggalPermohonan, h.Status, h.Creators, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create hki query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return fmt.Errorf("error creating hki: %w", err)
	}
	return nil
}

// Update overwrites an HKI record's attributes
func (r *HKIRepository) Update(ctx context.Context, h *models.HKI) error {
	sql, args, err := r.sb.Update("hkis").
		SetMap(map[string]interface{}{
			"title":              h.Title,
			"nomor_permohonan":   h.NomorPermohonan,
			"kategori":           h.Kategori,
			"tanggal_permohonan": h.TanggalPermohonan,
			"status":             h.Status,
			"creators":           h.Creators,
			"updated_at":         time.Now(),
		}).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update hki query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating hki: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// GetByID retrieves an HKI record with its authors
func (r *HKIRepository) GetByID(ctx context.Context, id int64) (*models.HKI, error) {
	sql, args, err := r.sb.Select(hkiColumns...).From("hkis").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get hki query: %w", err)
	}
	h, err := scanHKI(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.notFound)
		}
		return nil, fmt.Errorf("error retrieving hki: %w", err)
	}
	if h.Authors, err = r.loadAuthorsOf(ctx, h.ID); err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns a page of HKI records matching the search on application number and title.
func (r *HKIRepository) List(ctx context.Context, opts ListOptions) ([]models.HKI, int64, error) {
	base := r.sb.Select().From("hkis")
	if cond := searchCondition(opts.Search, "nomor_permohonan", "title"); cond != nil {
		base = base.Where(cond)
	}
	hkis, total, err := paginate(ctx, r.db.Conn(ctx), base, hkiColumns, "created_at DESC, id DESC", opts, scanHKI)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(hkis))
	for i := range hkis {
		ids[i] = hkis[i].ID
	}
	authors, err := r.loadAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range hkis {
		hkis[i].Authors = authorsFor(authors, hkis[i].ID)
	}
	return hkis, total, nil
}

// Categories returns the distinct HKI categories.
func (r *HKIRepository) Categories(ctx context.Context) ([]string, error) {
	return distinctValues(ctx, r.db.Conn(ctx), "hkis", "kategori")
}
