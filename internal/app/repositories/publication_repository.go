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

var publicationColumns = []string{
	"id", "category", "title", "year", "link", "creators", "accreditation", "journal",
	"identifier", "quartile", "publication_name", "created_at", "updated_at",
}

// PublicationListOptions narrows a publication listing to one category.
type PublicationListOptions struct {
	ListOptions
	Category models.PublicationCategory
}

// PublicationRepository handles database operations for the unified publications table
type PublicationRepository struct {
	outputRepository
}

// NewPublicationRepository creates a new PublicationRepository
func NewPublicationRepository(database *db.PostgresDB) *PublicationRepository {
	return &PublicationRepository{newOutputRepository(database, publicationsTable, "Publication not found")}
}

func scanPublication(row pgx.Row) (models.Publication, error) {
	var p models.Publication
	var category string
	var accreditation, journal, identifier, quartile, publicationName *string
	err := row.Scan(&p.ID, &category, &p.Title, &p.Year, &p.Link, &p.Creators,
		&accreditation, &journal, &identifier, &quartile, &publicationName,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Venue, err = models.VenueFromColumns(category, accreditation, journal, identifier, quartile, publicationName)
	return p, err
}

// Create inserts a publication
func (r *PublicationRepository) Create(ctx context.Context, p *models.Publication) error {
	accreditation, journal, identifier, quartile, publicationName := p.Columns()
	now := time.Now()
	sql, args, err := r.sb.Insert("publications").
		Columns("category", "title", "year", "link", "creators", "accreditation", "journal",
			"identifier", "quartile", "publication_name", "created_at", "updated_at").
		Values(string(p.Category()), p.Title, p.Year, p.Link, p.Creators, accreditation, journal,
			identifier, quartile, publicationName, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create publication query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating publication: %w", err)
	}
	return nil
}

// Update overwrites a publication, including its category
func (r *PublicationRepository) Update(ctx context.Context, p *models.Publication) error {
	accreditation, journal, identifier, quartile, publicationName := p.Columns()
	sql, args, err := r.sb.Update("publications").
		SetMap(map[string]interface{}{
			"category":         string(p.Category()),
			"title":            p.Title,
			"year":             p.Year,
			"link":             p.Link,
			"creators":         p.Creators,
			"accreditation":    accreditation,
			"journal":          journal,
			"identifier":       identifier,
			"quartile":         quartile,
			"publication_name": publicationName,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update publication query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating publication: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// GetByID retrieves a publication with its authors
func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	sql, args, err := r.sb.Select(publicationColumns...).From("publications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get publication query: %w", err)
	}
	p, err := scanPublication(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.notFound)
		}
		return nil, fmt.Errorf("error retrieving publication: %w", err)
	}
	if p.Authors, err = r.loadAuthorsOf(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a page of publications matching the search on title, journal or source
// name and creators, optionally restricted to a category.
func (r *PublicationRepository) List(ctx context.Context, opts PublicationListOptions) ([]models.Publication, int64, error) {
	base := r.sb.Select().From("publications")
	if opts.Category != "" {
		base = base.Where(squirrel.Eq{"category": string(opts.Category)})
	}
	if cond := searchCondition(opts.Search, "title", "journal", "publication_name", "creators"); cond != nil {
		base = base.Where(cond)
	}
	pubs, total, err := paginate(ctx, r.db.Conn(ctx), base, publicationColumns, "year DESC, id DESC", opts.ListOptions, scanPublication)
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
