package services

import (
	"context"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/repositories"
)

// The store interfaces below are implemented by the repositories package.

// OutputStore holds the operations shared by every author-linked output table.
type OutputStore interface {
	SyncAuthors(ctx context.Context, id int64, authorIDs []int64) error
	TitleExists(ctx context.Context, title string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Truncate(ctx context.Context) error
	Grouped(ctx context.Context, studyProgramID int64) ([]repositories.GroupCount, error)
	CountByStudyProgram(ctx context.Context, year int) ([]repositories.ProgramCount, error)
	Count(ctx context.Context) (int64, error)
}

// AuthorLookup resolves author ids and NIDNs into summaries.
type AuthorLookup interface {
	SummariesByIDs(ctx context.Context, ids []int64) ([]models.AuthorSummary, error)
	SummariesByNIDNs(ctx context.Context, nidns []string) (map[string]models.AuthorSummary, error)
}

type AuthorStore interface {
	AuthorLookup
	Create(ctx context.Context, a *models.Author) error
	Update(ctx context.Context, a *models.Author) error
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Author, int64, error)
	NIDNExists(ctx context.Context, nidn string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Truncate(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type StudyProgramStore interface {
	Create(ctx context.Context, sp *models.StudyProgram) error
	Update(ctx context.Context, sp *models.StudyProgram) error
	GetByID(ctx context.Context, id int64) (*models.StudyProgram, error)
	FirstOrCreate(ctx context.Context, name string) (*models.StudyProgram, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.StudyProgram, int64, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type BookStore interface {
	OutputStore
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, b *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Book, int64, error)
	Categories(ctx context.Context) ([]string, error)
}

type HKIStore interface {
	OutputStore
	Create(ctx context.Context, h *models.HKI) error
	Update(ctx context.Context, h *models.HKI) error
	GetByID(ctx context.Context, id int64) (*models.HKI, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.HKI, int64, error)
	Categories(ctx context.Context) ([]string, error)
}

type PublicationStore interface {
	OutputStore
	Create(ctx context.Context, p *models.Publication) error
	Update(ctx context.Context, p *models.Publication) error
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	List(ctx context.Context, opts repositories.PublicationListOptions) ([]models.Publication, int64, error)
}

type GooglePublicationStore interface {
	OutputStore
	Create(ctx context.Context, p *models.GooglePublication) error
	Update(ctx context.Context, p *models.GooglePublication) error
	GetByID(ctx context.Context, id int64) (*models.GooglePublication, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.GooglePublication, int64, error)
}

type GrantStore interface {
	OutputStore
	Create(ctx context.Context, g *models.Grant) error
	Update(ctx context.Context, g *models.Grant) error
	GetByID(ctx context.Context, id int64) (*models.Grant, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Grant, int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Category, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type PageStore interface {
	Create(ctx context.Context, p *models.Page) error
	Update(ctx context.Context, p *models.Page) error
	RefreshChildLinks(ctx context.Context, parent *models.Page) error
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Page, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Post, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.User, int64, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type TokenStore interface {
	CreateToken(ctx context.Context, token *models.AccessToken) error
	GetActive(ctx context.Context, tokenID string) (*models.AccessToken, error)
	RevokeToken(ctx context.Context, tokenID string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}
