package repositories

import (
	"github.com/lppm/research-portal/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudyProgramRepository      *StudyProgramRepository
	AuthorRepository            *AuthorRepository
	BookRepository              *BookRepository
	HKIRepository               *HKIRepository
	PublicationRepository       *PublicationRepository
	GooglePublicationRepository *GooglePublicationRepository
	ResearchRepository          *GrantRepository
	ServiceRepository           *GrantRepository
	CategoryRepository          *CategoryRepository
	PageRepository              *PageRepository
	PostRepository              *PostRepository
	UserRepository              *UserRepository
	TokenRepository             *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudyProgramRepository:      NewStudyProgramRepository(database),
		AuthorRepository:            NewAuthorRepository(database),
		BookRepository:              NewBookRepository(database),
		HKIRepository:               NewHKIRepository(database),
		PublicationRepository:       NewPublicationRepository(database),
		GooglePublicationRepository: NewGooglePublicationRepository(database),
		ResearchRepository:          NewResearchRepository(database),
		ServiceRepository:           NewServiceRepository(database),
		CategoryRepository:          NewCategoryRepository(database),
		PageRepository:              NewPageRepository(database),
		PostRepository:              NewPostRepository(database),
		UserRepository:              NewUserRepository(database),
		TokenRepository:             NewTokenRepository(database),
	}
}
