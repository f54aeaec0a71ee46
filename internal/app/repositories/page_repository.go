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

var pageColumns = []string{
	"p.id", "p.parent_id", "p.title", "p.slug", "p.link", "p.content", "p.created_at", "p.updated_at",
	"pp.id", "pp.title", "pp.slug", "pp.link",
}

// PageRepository handles database operations for CMS pages
type PageRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(database *db.PostgresDB) *PageRepository {
	return &PageRepository{db: database, sb: newBuilder()}
}

func scanPage(row pgx.Row) (models.Page, error) {
	var p models.Page
	var parentID *int64
	var parentTitle, parentSlug, parentLink *string
	err := row.Scan(&p.ID, &p.ParentID, &p.Title, &p.Slug, &p.Link, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&parentID, &parentTitle, &parentSlug, &parentLink)
	if err != nil {
		return p, err
	}
	if parentID != nil {
		p.Parent = &models.Page{ID: *parentID, Title: *parentTitle, Slug: *parentSlug, Link: *parentLink}
	}
	return p, nil
}

func (r *PageRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select().From("pages p").LeftJoin("pages pp ON pp.id = p.parent_id")
}

// Create inserts a page
func (r *PageRepository) Create(ctx context.Context, p *models.Page) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("pages").
		Columns("parent_id", "title", "slug", "link", "content", "created_at", "updated_at").
		Values(p.ParentID, p.Title, p.Slug, p.Link, p.Content, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create page query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating page: %w", err)
	}
	return nil
}

// Update overwrites a page
func (r *PageRepository) Update(ctx context.Context, p *models.Page) error {
	sql, args, err := r.sb.Update("pages").
		SetMap(map[string]interface{}{
			"parent_id":  p.ParentID,
			"title":      p.Title,
			"slug":       p.Slug,
			"link":       p.Link,
			"content":    p.Content,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update page query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Page not found")
	}
	return nil
}

// RefreshChildLinks rewrites the link of every child of parent.
func (r *PageRepository) RefreshChildLinks(ctx context.Context, parent *models.Page) error {
	sql, args, err := r.sb.Update("pages").
		Set("link", squirrel.Expr("? || slug", "/"+parent.Slug+"/")).
		Where(squirrel.Eq{"parent_id": parent.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build refresh links query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error refreshing child page links: %w", err)
	}
	return nil
}

// GetByID retrieves a page with its parent
func (r *PageRepository) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	sql, args, err := r.selectBase().Columns(pageColumns...).Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get page query: %w", err)
	}
	p, err := scanPage(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Page not found")
		}
		return nil, fmt.Errorf("error retrieving page: %w", err)
	}
	return &p, nil
}

// List returns a page of pages matching the search on title and slug.
func (r *PageRepository) List(ctx context.Context, opts ListOptions) ([]models.Page, int64, error) {
	base := r.selectBase()
	if cond := searchCondition(opts.Search, "p.title", "p.slug"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, pageColumns, "p.id ASC", opts, scanPage)
}

// SlugExists checks slug uniqueness, ignoring excludeID.
func (r *PageRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "pages", "slug", slug, excludeID)
}

// Delete removes a page; children become top level pages.
func (r *PageRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "pages", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("Page not found")
	}
	return nil
}
