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

var categoryColumns = []string{"id", "name", "slug", "created_at", "updated_at"}

// CategoryRepository handles database operations for post categories
type CategoryRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(database *db.PostgresDB) *CategoryRepository {
	return &CategoryRepository{db: database, sb: newBuilder()}
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("categories").
		Columns("name", "slug", "created_at", "updated_at").
		Values(c.Name, c.Slug, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create category query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("error creating category: %w", err)
	}
	return nil
}

// Update overwrites a category
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	sql, args, err := r.sb.Update("categories").
		Set("name", c.Name).
		Set("slug", c.Slug).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("Category not found")
		}
		return fmt.Errorf("error updating category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	sql, args, err := r.sb.Select(categoryColumns...).From("categories").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}
	c, err := scanCategory(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Category not found")
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}
	return &c, nil
}

// List returns a page of categories matching the search on name and slug.
func (r *CategoryRepository) List(ctx context.Context, opts ListOptions) ([]models.Category, int64, error) {
	base := r.sb.Select().From("categories")
	if cond := searchCondition(opts.Search, "name", "slug"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, categoryColumns, "name ASC, id ASC", opts, scanCategory)
}

// SlugExists checks slug uniqueness, ignoring excludeID.
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "categories", "slug", slug, excludeID)
}

// Delete removes a category; its posts keep existing uncategorized.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "categories", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("Category not found")
	}
	return nil
}
