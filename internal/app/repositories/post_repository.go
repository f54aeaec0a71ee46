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

var postColumns = []string{
	"p.id", "p.user_id", "p.page_id", "p.category_id", "p.title", "p.slug", "p.content", "p.image",
	"p.status", "p.created_at", "p.updated_at", "u.name", "u.email", "u.role", "c.name", "c.slug",
}

// PostRepository handles database operations for posts
type PostRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(database *db.PostgresDB) *PostRepository {
	return &PostRepository{db: database, sb: newBuilder()}
}

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	var status string
	var userName, userEmail, userRole, categoryName, categorySlug *string
	err := row.Scan(&p.ID, &p.UserID, &p.PageID, &p.CategoryID, &p.Title, &p.Slug, &p.Content, &p.Image,
		&status, &p.CreatedAt, &p.UpdatedAt, &userName, &userEmail, &userRole, &categoryName, &categorySlug)
	if err != nil {
		return p, err
	}
	p.Status = models.PostStatus(status)
	if userName != nil {
		p.Author = &models.User{ID: p.UserID, Name: *userName, Email: *userEmail, Role: models.ParseRole(*userRole)}
	}
	if p.CategoryID != nil && categoryName != nil {
		p.Category = &models.Category{ID: *p.CategoryID, Name: *categoryName, Slug: *categorySlug}
	}
	return p, nil
}

func (r *PostRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select().
		From("posts p").
		LeftJoin("users u ON u.id = p.user_id").
		LeftJoin("categories c ON c.id = p.category_id")
}

// Create inserts a post
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("posts").
		Columns("user_id", "page_id", "category_id", "title", "slug", "content", "image", "status", "created_at", "updated_at").
		Values(p.UserID, p.PageID, p.CategoryID, p.Title, p.Slug, p.Content, p.Image, string(p.Status), now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// Update overwrites a post. The owning user is not changed.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		SetMap(map[string]interface{}{
			"page_id":     p.PageID,
			"category_id": p.CategoryID,
			"title":       p.Title,
			"slug":        p.Slug,
			"content":     p.Content,
			"image":       p.Image,
			"status":      string(p.Status),
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Post not found")
	}
	return nil
}

// GetByID retrieves a post with its author and category
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.selectBase().Columns(postColumns...).Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}
	p, err := scanPost(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Post not found")
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return &p, nil
}

// List returns a page of posts matching the search on title.
func (r *PostRepository) List(ctx context.Context, opts ListOptions) ([]models.Post, int64, error) {
	base := r.selectBase()
	if cond := searchCondition(opts.Search, "p.title"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, postColumns, "p.created_at DESC, p.id DESC", opts, scanPost)
}

// SlugExists checks slug uniqueness, ignoring excludeID.
func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "posts", "slug", slug, excludeID)
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "posts", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("Post not found")
	}
	return nil
}

// Count returns the number of posts.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Conn(ctx), "posts")
}
