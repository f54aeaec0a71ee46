package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
)

// BookService defines the interface for book operations
type BookService interface {
	CreateBook(ctx context.Context, req *dto.BookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, req *dto.BookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, params dto.ListParams) ([]models.Book, int64, error)
	DeleteBook(ctx context.Context, id int64) error
	GetCategories(ctx context.Context) ([]string, error)
}

type bookServiceImpl struct {
	books BookStore
	saver outputSaver
}

// NewBookService creates a new BookService
func NewBookService(tx db.Transactor, books BookStore, authors AuthorLookup) BookService {
	return &bookServiceImpl{
		books: books,
		saver: outputSaver{tx: tx, store: books, authors: authors, constraint: "books_title_unique"},
	}
}

func bookFromRequest(req *dto.BookRequest) *models.Book {
	return &models.Book{
		Title:    strings.TrimSpace(req.Title),
		ISBN:     strings.TrimSpace(req.ISBN),
		Kategori: strings.TrimSpace(req.Kategori),
		Penerbit: strings.TrimSpace(req.Penerbit),
		Year:     req.Year,
	}
}

// CreateBook creates a book and links its authors
func (s *bookServiceImpl) CreateBook(ctx context.Context, req *dto.BookRequest) (*models.Book, error) {
	book := bookFromRequest(req)
	err := s.saver.save(ctx, 0, book.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		book.Creators = creators
		if err := s.books.Create(ctx, book); err != nil {
			return 0, err
		}
		return book.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.books.GetByID(ctx, book.ID)
}

// UpdateBook replaces a book's attributes and author set
func (s *bookServiceImpl) UpdateBook(ctx context.Context, id int64, req *dto.BookRequest) (*models.Book, error) {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return nil, err
	}

	book := bookFromRequest(req)
	book.ID = id
	err := s.saver.save(ctx, id, book.Title, req.AuthorIDs, func(ctx context.Context, creators string) (int64, error) {
		book.Creators = creators
		return id, s.books.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return s.books.GetByID(ctx, id)
}

// GetBookByID retrieves a book with its authors
func (s *bookServiceImpl) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.books.GetByID(ctx, id)
}

// ListBooks returns a page of books
func (s *bookServiceImpl) ListBooks(ctx context.Context, params dto.ListParams) ([]models.Book, int64, error) {
	books, total, err := s.books.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing books: %w", err)
	}
	return books, total, nil
}

// DeleteBook deletes a book
func (s *bookServiceImpl) DeleteBook(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

// GetCategories returns the distinct book categories
func (s *bookServiceImpl) GetCategories(ctx context.Context) ([]string, error) {
	return s.books.Categories(ctx)
}
