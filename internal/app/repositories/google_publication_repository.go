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

var googlePublicationColumns = []string{"id", "title", "journal", "accreditation", "year", "link", "creators", "created_at", "updated_at"}

// GooglePublicationRepository handles database operations for Google Scholar publications
type GooglePublicationRepository struct {
	outputRepository
}

// NewGooglePublicationRepository creates a new GooglePublicationRepository
func NewGooglePublicationRepository(database *db.PostgresDB) *GooglePublicationRepository {
	return &GooglePublicationRepository{newOutputRepository(database, googlePublicationsTable, "Google publication not found")}
}

func scanGooglePublication(row pgx.Row) (models.GooglePublication, error) {
	var p models.GooglePublication
	err := row.Scan(&p.ID, &p.Title, &p.Journal, &p.Accreditation, &p.Year, &p.Link, &p.Creators, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a Google publication
func (r *GooglePublicationRepository) Create(ctx context.Context, p *models.GooglePublication) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("google_publications").
		Columns("title", "journal", "accreditation", "year", "link", "creators", "created_at", "updated_at").
		Values(p.Title, p.Journal, p.Accreditation, p.Year, p.Link, p.Creators, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create google publication query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating google publication: %w", err)
	}
	return nil
}

// Update overwrites a Google publication's attributes
func (r *GooglePublicationRepository) Update(ctx context.Context, p *models.GooglePublication) error {
	sql, args, err := r.sb.Update("google_publications").
		SetMap(map[string]interface{}{
			"title":         p.Title,
			"journal":       p.Journal,
			"accreditation": p.Accreditation,
			"year":          p.Year,
			"link":          p.Link,
			"creators":      p.Creators,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update google publication query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating google publication: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// GetByID retrieves a Google publication with its authors
func (r *GooglePublicationRepository) GetByID(ctx context.Context, id int64) (*models.GooglePublication, error) {
	sql, args, err := r.sb.Select(googlePublicationColumns...).From("google_publications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get google publication query: %w", err)
	}
	p, err := scanGooglePublication(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.notFound)
		}
		return nil, fmt.Errorf("error retrieving google publication: %w", err)
	}
	if p.Authors, err = r.loadAuthorsOf(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a page of Google publications matching the search on title, journal and creators.
func (r *GooglePublicationRepository) List(ctx context.Context, opts ListOptions) ([]models.GooglePublication, int64, error) {
	base := r.sb.Select().From("google_publications")
	if cond := searchCondition(opts.Search, "title", "journal", "creators"); cond != nil {
		base = base.Where(cond)
	}
	pubs, total, err := paginate(ctx, r.db.Conn(ctx), base, googlePublicationColumns, "year DESC, id DESC", opts, scanGooglePublication)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(pubs))
	for i := range pubs {
		ids[i] = pubs[i].ID
	}
	authors, err := r.loadAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range pubs {
		pubs[i].Authors = authorsFor(authors, pubs[i].ID)
	}
	return pubs, total, nil
}
