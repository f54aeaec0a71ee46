package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/repositories"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// snapshotter is implemented by fakes that take part in fakeTx rollbacks.
type snapshotter interface {
	snapshot() (restore func())
}

// fakeTx restores every registered store when the transaction function fails.
type fakeTx struct {
	stores []snapshotter
	calls  int
}

func (t *fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	t.calls++
	restores := make([]func(), len(t.stores))
	for i, s := range t.stores {
		restores[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// fakeOutput is an in-memory author-linked table.
type fakeOutput[T any] struct {
	records  map[int64]T
	links    map[int64][]int64
	nextID   int64
	title    func(T) string
	withID   func(T, int64) T
	notFound string

	grouped  []repositories.GroupCount
	programs []repositories.ProgramCount
	groupArg int64
	yearArg  int
}

func newFakeOutput[T any](notFound string, title func(T) string, withID func(T, int64) T) *fakeOutput[T] {
	return &fakeOutput[T]{
		records:  map[int64]T{},
		links:    map[int64][]int64{},
		title:    title,
		withID:   withID,
		notFound: notFound,
	}
}

func (f *fakeOutput[T]) snapshot() func() {
	records := make(map[int64]T, len(f.records))
	for k, v := range f.records {
		records[k] = v
	}
	links := make(map[int64][]int64, len(f.links))
	for k, v := range f.links {
		links[k] = append([]int64(nil), v...)
	}
	nextID := f.nextID
	return func() {
		f.records, f.links, f.nextID = records, links, nextID
	}
}

func (f *fakeOutput[T]) create(rec T) T {
	f.nextID++
	rec = f.withID(rec, f.nextID)
	f.records[f.nextID] = rec
	return rec
}

func (f *fakeOutput[T]) update(id int64, rec T) error {
	if _, ok := f.records[id]; !ok {
		return apperrors.NewResourceNotFoundError(f.notFound)
	}
	f.records[id] = f.withID(rec, id)
	return nil
}

func (f *fakeOutput[T]) get(id int64) (T, error) {
	rec, ok := f.records[id]
	if !ok {
		var zero T
		return zero, apperrors.NewResourceNotFoundError(f.notFound)
	}
	return rec, nil
}

func (f *fakeOutput[T]) all() []T {
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.records[id])
	}
	return out
}

func (f *fakeOutput[T]) SyncAuthors(ctx context.Context, id int64, authorIDs []int64) error {
	f.links[id] = append([]int64(nil), authorIDs...)
	return nil
}

func (f *fakeOutput[T]) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	for id, rec := range f.records {
		if id != excludeID && f.title(rec) == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOutput[T]) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return apperrors.NewResourceNotFoundError(f.notFound)
	}
	delete(f.records, id)
	delete(f.links, id)
	return nil
}

func (f *fakeOutput[T]) Truncate(ctx context.Context) error {
	f.records = map[int64]T{}
	f.links = map[int64][]int64{}
	f.nextID = 0
	return nil
}

func (f *fakeOutput[T]) Grouped(ctx context.Context, studyProgramID int64) ([]repositories.GroupCount, error) {
	f.groupArg = studyProgramID
	return f.grouped, nil
}

func (f *fakeOutput[T]) CountByStudyProgram(ctx context.Context, year int) ([]repositories.ProgramCount, error) {
	f.yearArg = year
	return f.programs, nil
}

func (f *fakeOutput[T]) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeBookStore struct {
	*fakeOutput[models.Book]
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{newFakeOutput("Book not found",
		func(b models.Book) string { return b.Title },
		func(b models.Book, id int64) models.Book { b.ID = id; return b })}
}

func (f *fakeBookStore) Create(ctx context.Context, b *models.Book) error {
	*b = f.create(*b)
	return nil
}

func (f *fakeBookStore) Update(ctx context.Context, b *models.Book) error {
	return f.update(b.ID, *b)
}

func (f *fakeBookStore) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (f *fakeBookStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Book, int64, error) {
	var matched []models.Book
	for _, b := range f.all() {
		if opts.Search == "" || strings.Contains(strings.ToLower(b.Title+" "+b.Creators), strings.ToLower(opts.Search)) {
			matched = append(matched, b)
		}
	}
	total := int64(len(matched))
	start := int(opts.Offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(opts.Limit)
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeBookStore) Categories(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeGrantStore struct {
	*fakeOutput[models.Grant]
}

func newFakeGrantStore() *fakeGrantStore {
	return &fakeGrantStore{newFakeOutput("Research not found",
		func(g models.Grant) string { return g.Title },
		func(g models.Grant, id int64) models.Grant { g.ID = id; return g })}
}

func (f *fakeGrantStore) Create(ctx context.Context, g *models.Grant) error {
	*g = f.create(*g)
	return nil
}

func (f *fakeGrantStore) Update(ctx context.Context, g *models.Grant) error {
	return f.update(g.ID, *g)
}

func (f *fakeGrantStore) GetByID(ctx context.Context, id int64) (*models.Grant, error) {
	g, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (f *fakeGrantStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Grant, int64, error) {
	all := f.all()
	return all, int64(len(all)), nil
}

type fakePublicationStore struct {
	*fakeOutput[models.Publication]
	lastList repositories.PublicationListOptions
}

func newFakePublicationStore() *fakePublicationStore {
	return &fakePublicationStore{fakeOutput: newFakeOutput("Publication not found",
		func(p models.Publication) string { return p.Title },
		func(p models.Publication, id int64) models.Publication { p.ID = id; return p })}
}

func (f *fakePublicationStore) Create(ctx context.Context, p *models.Publication) error {
	*p = f.create(*p)
	return nil
}

func (f *fakePublicationStore) Update(ctx context.Context, p *models.Publication) error {
	return f.update(p.ID, *p)
}

func (f *fakePublicationStore) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	p, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (f *fakePublicationStore) List(ctx context.Context, opts repositories.PublicationListOptions) ([]models.Publication, int64, error) {
	f.lastList = opts
	var out []models.Publication
	for _, p := range f.all() {
		if opts.Category == "" || p.Category() == opts.Category {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

// fakeAuthorStore keeps authors by id.
type fakeAuthorStore struct {
	authors map[int64]models.Author
	nextID  int64
}

func newFakeAuthorStore(authors ...models.Author) *fakeAuthorStore {
	f := &fakeAuthorStore{authors: map[int64]models.Author{}}
	for _, a := range authors {
		_ = f.Create(context.Background(), &a)
	}
	return f
}

func (f *fakeAuthorStore) snapshot() func() {
	authors := make(map[int64]models.Author, len(f.authors))
	for k, v := range f.authors {
		authors[k] = v
	}
	nextID := f.nextID
	return func() { f.authors, f.nextID = authors, nextID }
}

func (f *fakeAuthorStore) SummariesByIDs(ctx context.Context, ids []int64) ([]models.AuthorSummary, error) {
	out := []models.AuthorSummary{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if a, ok := f.authors[id]; ok && !seen[id] {
			out = append(out, a.Summary())
			seen[id] = true
		}
	}
	return out, nil
}

func (f *fakeAuthorStore) SummariesByNIDNs(ctx context.Context, nidns []string) (map[string]models.AuthorSummary, error) {
	out := map[string]models.AuthorSummary{}
	for _, n := range nidns {
		for _, a := range f.authors {
			if a.NIDN == n {
				out[n] = a.Summary()
			}
		}
	}
	return out, nil
}

func (f *fakeAuthorStore) Create(ctx context.Context, a *models.Author) error {
	f.nextID++
	a.ID = f.nextID
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeAuthorStore) Update(ctx context.Context, a *models.Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return apperrors.NewResourceNotFoundError("Author not found")
	}
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeAuthorStore) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Author not found")
	}
	return &a, nil
}

func (f *fakeAuthorStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Author, int64, error) {
	var out []models.Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAuthorStore) NIDNExists(ctx context.Context, nidn string, excludeID int64) (bool, error) {
	for id, a := range f.authors {
		if id != excludeID && a.NIDN == nidn {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAuthorStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.authors[id]; !ok {
		return apperrors.NewResourceNotFoundError("Author not found")
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeAuthorStore) Truncate(ctx context.Context) error {
	f.authors = map[int64]models.Author{}
	f.nextID = 0
	return nil
}

func (f *fakeAuthorStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.authors)), nil
}

type fakeStudyProgramStore struct {
	programs map[int64]models.StudyProgram
	nextID   int64
}

func newFakeStudyProgramStore(names ...string) *fakeStudyProgramStore {
	f := &fakeStudyProgramStore{programs: map[int64]models.StudyProgram{}}
	for _, n := range names {
		_ = f.Create(context.Background(), &models.StudyProgram{Name: n})
	}
	return f
}

func (f *fakeStudyProgramStore) snapshot() func() {
	programs := make(map[int64]models.StudyProgram, len(f.programs))
	for k, v := range f.programs {
		programs[k] = v
	}
	nextID := f.nextID
	return func() { f.programs, f.nextID = programs, nextID }
}

func (f *fakeStudyProgramStore) Create(ctx context.Context, sp *models.StudyProgram) error {
	f.nextID++
	sp.ID = f.nextID
	f.programs[sp.ID] = *sp
	return nil
}

func (f *fakeStudyProgramStore) Update(ctx context.Context, sp *models.StudyProgram) error {
	f.programs[sp.ID] = *sp
	return nil
}

func (f *fakeStudyProgramStore) GetByID(ctx context.Context, id int64) (*models.StudyProgram, error) {
	sp, ok := f.programs[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Study program not found")
	}
	return &sp, nil
}

func (f *fakeStudyProgramStore) FirstOrCreate(ctx context.Context, name string) (*models.StudyProgram, error) {
	for _, sp := range f.programs {
		if sp.Name == name {
			found := sp
			return &found, nil
		}
	}
	sp := &models.StudyProgram{Name: name}
	return sp, f.Create(ctx, sp)
}

func (f *fakeStudyProgramStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.StudyProgram, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudyProgramStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	for id, sp := range f.programs {
		if id != excludeID && sp.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudyProgramStore) Delete(ctx context.Context, id int64) error {
	delete(f.programs, id)
	return nil
}

func (f *fakeStudyProgramStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.programs)), nil
}

type fakePageStore struct {
	pages  map[int64]models.Page
	nextID int64
}

func newFakePageStore() *fakePageStore {
	return &fakePageStore{pages: map[int64]models.Page{}}
}

func (f *fakePageStore) snapshot() func() {
	pages := make(map[int64]models.Page, len(f.pages))
	for k, v := range f.pages {
		pages[k] = v
	}
	return func() { f.pages = pages }
}

func (f *fakePageStore) Create(ctx context.Context, p *models.Page) error {
	f.nextID++
	p.ID = f.nextID
	f.pages[p.ID] = *p
	return nil
}

func (f *fakePageStore) Update(ctx context.Context, p *models.Page) error {
	f.pages[p.ID] = *p
	return nil
}

func (f *fakePageStore) RefreshChildLinks(ctx context.Context, parent *models.Page) error {
	for id, p := range f.pages {
		if p.ParentID != nil && *p.ParentID == parent.ID {
			p.Link = models.PageLink(parent, p.Slug)
			f.pages[id] = p
		}
	}
	return nil
}

func (f *fakePageStore) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Page not found")
	}
	return &p, nil
}

func (f *fakePageStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.Page, int64, error) {
	return nil, 0, nil
}

func (f *fakePageStore) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for id, p := range f.pages {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePageStore) Delete(ctx context.Context, id int64) error {
	delete(f.pages, id)
	return nil
}

type fakeUserStore struct {
	users  map[int64]models.User
	nextID int64
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[int64]models.User{}}
	for _, u := range users {
		_ = f.Create(context.Background(), &u)
	}
	return f
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("User not found")
}

func (f *fakeUserStore) List(ctx context.Context, opts repositories.ListOptions) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	for id, u := range f.users {
		if id != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeTokenStore struct {
	tokens  map[string]models.AccessToken
	revoked []int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]models.AccessToken{}}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token *models.AccessToken) error {
	f.tokens[token.TokenID] = *token
	return nil
}

func (f *fakeTokenStore) GetActive(ctx context.Context, tokenID string) (*models.AccessToken, error) {
	t, ok := f.tokens[tokenID]
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return &t, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, tokenID string) error {
	t, ok := f.tokens[tokenID]
	if !ok {
		return apperrors.ErrTokenInvalid
	}
	t.Revoked = true
	f.tokens[tokenID] = t
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func (f *fakeTokenStore) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return 0, errors.New("not implemented")
}

type fakeRecorder struct {
	succeeded map[string]int
	failed    map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{succeeded: map[string]int{}, failed: map[string]int{}}
}

func (r *fakeRecorder) ImportSucceeded(entity string, rows int) { r.succeeded[entity] += rows }
func (r *fakeRecorder) ImportFailed(entity string)              { r.failed[entity]++ }
