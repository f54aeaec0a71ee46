package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/controllers"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokens map[string]*models.User

func (t tokens) Authenticate(_ context.Context, token string) (*models.User, *auth.Claims, error) {
	if u, ok := t[token]; ok {
		return u, &auth.Claims{UserID: u.ID, Role: u.Role}, nil
	}
	return nil, nil, apperrors.ErrTokenInvalid
}

type bookStub struct{}

func (bookStub) CreateBook(_ context.Context, req *dto.BookRequest) (*models.Book, error) {
	return &models.Book{ID: 1, Title: req.Title}, nil
}
func (bookStub) UpdateBook(context.Context, int64, *dto.BookRequest) (*models.Book, error) {
	return &models.Book{}, nil
}
func (bookStub) GetBookByID(context.Context, int64) (*models.Book, error) { return &models.Book{}, nil }
func (bookStub) ListBooks(context.Context, dto.ListParams) ([]models.Book, int64, error) {
	return nil, 0, nil
}
func (bookStub) DeleteBook(context.Context, int64) error         { return nil }
func (bookStub) GetCategories(context.Context) ([]string, error) { return []string{"Monograf"}, nil }

type authorStub struct{}

func (authorStub) CreateAuthor(context.Context, *dto.AuthorRequest) (*models.Author, error) {
	return &models.Author{ID: 1}, nil
}
func (authorStub) UpdateAuthor(context.Context, int64, *dto.AuthorRequest) (*models.Author, error) {
	return &models.Author{}, nil
}
func (authorStub) GetAuthorByID(context.Context, int64) (*models.Author, error) {
	return &models.Author{ID: 1}, nil
}
func (authorStub) ListAuthors(context.Context, dto.ListParams) ([]models.Author, int64, error) {
	return nil, 0, nil
}
func (authorStub) DeleteAuthor(context.Context, int64) error { return nil }

func newTestRouter() *gin.Engine {
	r := gin.New()
	authMiddleware := middleware.NewAuthMiddleware(tokens{
		"super": {ID: 1, Role: models.RoleSuperadmin},
		"admin": {ID: 2, Role: models.RoleAdmin},
	})
	SetupRouter(r, Controllers{
		Book:   controllers.NewBookController(bookStub{}),
		Author: controllers.NewAuthorController(authorStub{}),
	}, authMiddleware, http.NotFoundHandler())
	return r
}

func request(r http.Handler, method, path, token, body string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRoleGating(t *testing.T) {
	r := newTestRouter()
	book := `{"title":"Buku","isbn":"1","kategori":"Monograf","penerbit":"P","year":2024}`
	author := `{"sinta_id":"1","nidn":"2","name":"N","affiliation":"A","last_education":"S3","functional_position":"Lektor"}`

	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/books", "admin", book))
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodPost, "/api/authors", "admin", author))
	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/authors", "super", author))
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/authors/1", "super", ""))
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/books", "", ""))
}

func TestMasterDataListingIsSuperadminOnly(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{"/api/authors", "/api/authors/1", "/api/study-programs", "/api/study-programs/1", "/api/categories", "/api/pages/1"} {
		assert.Equal(t, http.StatusForbidden, request(r, http.MethodGet, path, "admin", ""), path)
	}
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/authors", "super", ""))
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/books/categories", "", ""))
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/nothing-here", "", ""))
}
