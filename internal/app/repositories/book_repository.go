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

var (
	bookColumns       = []string{"id", "title", "isbn", "kategori", "penerbit", "year", "creators", "created_at", "updated_at"}
	bookSearchColumns = []string{"title", "creators"}
)

// BookRepository handles database operations for books
type BookRepository struct {
	outputRepository
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(database *db.PostgresDB) *BookRepository {
	return &BookRepository{newOutputRepository(database, booksTable, "Book not found")}
}

func scanBook(row pgx.Row) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.Title, &b.ISBN, &b.Kategori, &b.Penerbit, &b.Year, &b.Creators, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a book
func (r *BookRepository) Create(ctx context.Context, b *models.Book) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("books").
		Columns("title", "isbn", "kategori", "penerbit", "year", "creators", "created_at", "updated_at").
		Values(b.Title, b.ISBN, b.Kategori, b.Penerbit, b.Year, b.Creators, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create book query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("error creating book: %w", err)
	}
	return nil
}

// Update overwrites a book's attributes
func (r *BookRepository) Update(ctx context.Context, b *models.Book) error {
	sql, args, err := r.sb.Update("books").
		SetMap(map[string]interface{}{
			"title":      b.Title,
			"isbn":       b.ISBN,
			"kategori":   b.Kategori,
			"penerbit":   b.Penerbit,
			"year":       b.Year,
			"creators":   b.Creators,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update book query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// GetByID retrieves a book with its authors
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	sql, args, err := r.sb.Select(bookColumns...).From("books").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get book query: %w", err)
	}
	b, err := scanBook(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.notFound)
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}
	if b.Authors, err = r.loadAuthorsOf(ctx, b.ID); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns a page of books matching the search on title and creators.
func (r *BookRepository) List(ctx context.Context, opts ListOptions) ([]models.Book, int64, error) {
	base := r.sb.Select().From("books")
	if cond := searchCondition(opts.Search, bookSearchColumns...); cond != nil {
		base = base.Where(cond)
	}
	books, total, err := paginate(ctx, r.db.Conn(ctx), base, bookColumns, "created_at DESC, id DESC", opts, scanBook)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	authors, err := r.loadAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range books {
		books[i].Authors = authorsFor(authors, books[i].ID)
	}
	return books, total, nil
}

// Categories returns the distinct book categories.
func (r *BookRepository) Categories(ctx context.Context) ([]string, error) {
	return distinctValues(ctx, r.db.Conn(ctx), "books", "kategori")
}
