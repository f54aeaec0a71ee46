package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/lppm/research-portal/internal/app/importers"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/filestorage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// xlsxBytes renders a sheet with a title row, heading on the heading row and data below.
func xlsxBytes(t *testing.T, heading []interface{}, data ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"DATA LPPM"}))
	cell, _ := excelize.CoordinatesToCellName(1, importers.HeadingRow)
	require.NoError(t, f.SetSheetRow(sheet, cell, &heading))
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, importers.HeadingRow+1+i)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// upload wraps content in a multipart file header the way gin hands it to controllers.
func upload(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

type importFixture struct {
	svc      ImportService
	deps     ImportDeps
	authors  *fakeAuthorStore
	programs *fakeStudyProgramStore
	books    *fakeBookStore
	pubs     *fakePublicationStore
	research *fakeGrantStore
	services *fakeGrantStore
	recorder *fakeRecorder
}

func newImportFixture(t *testing.T, storage filestorage.FileStorage, authors ...models.Author) *importFixture {
	t.Helper()
	fx := &importFixture{
		authors:  newFakeAuthorStore(authors...),
		programs: newFakeStudyProgramStore(),
		books:    newFakeBookStore(),
		pubs:     newFakePublicationStore(),
		research: newFakeGrantStore(),
		services: newFakeGrantStore(),
		recorder: newFakeRecorder(),
	}
	tx := &fakeTx{stores: []snapshotter{fx.authors, fx.programs, fx.books, fx.pubs, fx.research, fx.services}}
	fx.deps = ImportDeps{
		Tx:            tx,
		Authors:       fx.authors,
		StudyPrograms: fx.programs,
		Books:         fx.books,
		Publications:  fx.pubs,
		Research:      fx.research,
		Services:      fx.services,
		Storage:       storage,
		Recorder:      fx.recorder,
		Logger:        zerolog.Nop(),
	}
	fx.svc = NewImportService(fx.deps)
	return fx
}

// withPolicies rebuilds the service with per entity policy overrides.
func (fx *importFixture) withPolicies(policies map[string]importers.Policy) *importFixture {
	fx.deps.Policies = policies
	fx.svc = NewImportService(fx.deps)
	return fx
}

var authorHeading = []interface{}{"NO", "NAMA", "NIDN", "SINTA ID", "AFILIASI", "PRODI", "PENDIDIKAN", "JABATAN", "GELAR DEPAN", "GELAR BELAKANG"}

func TestImportAuthors(t *testing.T) {
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	fx := newImportFixture(t, storage)
	file := upload(t, "authors.xlsx", xlsxBytes(t, authorHeading,
		[]interface{}{1, "Budi", "0011", "S1", "UNAIR", "Informatika", "S3", "Lektor", "Dr.", "M.Kom"},
		[]interface{}{2, "Ani", "0012", "S2", "UNAIR", "Informatika", "S2", "Asisten Ahli", "-", "M.T."},
	))

	result, err := fx.svc.Import(context.Background(), EntityAuthors, file, dto.ImportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.NotEmpty(t, result.Archive)
	assert.Len(t, fx.authors.authors, 2)
	assert.Len(t, fx.programs.programs, 1, "study programs are created once by name")
	assert.Equal(t, 2, fx.recorder.succeeded[EntityAuthors])
}

func TestImportAuthors_DuplicateNIDNRollsBack(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Lama", NIDN: "0099"})
	file := upload(t, "authors.xlsx", xlsxBytes(t, authorHeading,
		[]interface{}{1, "Budi", "0011", "-", "-", "Informatika", "-", "-", "-", "-"},
		[]interface{}{2, "Ani", "0011", "-", "-", "Hukum", "-", "-", "-", "-"},
	))

	_, err := fx.svc.Import(context.Background(), EntityAuthors, file, dto.ImportRequest{ResetTable: true})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, impErr.Message, "Row 7")
	require.Len(t, fx.authors.authors, 1, "the reset is rolled back too")
	assert.Equal(t, "Lama", fx.authors.authors[1].Name)
	assert.Empty(t, fx.programs.programs)
	assert.Equal(t, 1, fx.recorder.failed[EntityAuthors])
}

var grantHeading = []interface{}{"NO", "JUDUL", "NIDN", "KETUA", "SKEMA SINGKAT", "SKEMA", "TAHUN", "DANA", "SUMBER DANA"}

func TestImportResearch(t *testing.T) {
	fx := newImportFixture(t, nil,
		models.Author{Name: "Budi", NIDN: "0011"},
		models.Author{Name: "Ani", NIDN: "0012"},
	)
	file := upload(t, "research.xlsx", xlsxBytes(t, grantHeading,
		[]interface{}{1, "Riset Satu", "0012, 0011", "Ani", "PDP", "Penelitian Dosen Pemula", 2024, "10.000.000", "DRTPM"},
		[]interface{}{2, "Riset Dua", "-", "Tamu", "PF", "Penelitian Fundamental", 2023, "5000000", "Internal"},
	))

	result, err := fx.svc.Import(context.Background(), EntityResearch, file, dto.ImportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	first, err := fx.research.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ani, Budi", first.Creators)
	assert.Equal(t, []int64{2, 1}, fx.research.links[1])

	second, err := fx.research.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Tamu", second.Creators, "rows without known authors keep the leader name")
}

func TestImportResearch_UnknownNIDNWritesNothing(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Budi", NIDN: "0011"})
	file := upload(t, "research.xlsx", xlsxBytes(t, grantHeading,
		[]interface{}{1, "Riset Satu", "0011", "Budi", "PDP", "Penelitian Dosen Pemula", 2024, "1000", "DRTPM"},
		[]interface{}{2, "Riset Dua", "0404", "Budi", "PDP", "Penelitian Dosen Pemula", 2024, "1000", "DRTPM"},
	))

	_, err := fx.svc.Import(context.Background(), EntityResearch, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, "Author with NIDN 0404 on row 7 was not found", impErr.Message)
	assert.Empty(t, fx.research.records)
}

var bookHeading = []interface{}{"No", "Judul", "ISBN", "Kategori", "Penerbit", "Tahun", "Penulis"}

func TestImportBooks_CollectsFailures(t *testing.T) {
	fx := newImportFixture(t, nil)
	require.NoError(t, fx.books.Create(context.Background(), &models.Book{Title: "Sudah Ada"}))

	file := upload(t, "books.xlsx", xlsxBytes(t, bookHeading,
		[]interface{}{1, "Buku Baru", "978-1", "Monograf", "Airlangga", 2022, "Budi"},
		[]interface{}{2, "Sudah Ada", "978-2", "Monograf", "Airlangga", 2022, "Budi"},
		[]interface{}{3, "Tanpa Tahun", "978-3", "Referensi", "Airlangga", "", "Ani"},
	))

	_, err := fx.svc.Import(context.Background(), EntityBooks, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	require.Len(t, impErr.Failures, 2)
	assert.Equal(t, 7, impErr.Failures[0].Row)
	assert.Equal(t, "judul", impErr.Failures[0].Attribute)
	assert.Equal(t, 8, impErr.Failures[1].Row)
	assert.Equal(t, "tahun", impErr.Failures[1].Attribute)
	assert.Len(t, fx.books.records, 1)
}

func TestImportBooks_ResetTable(t *testing.T) {
	fx := newImportFixture(t, nil)
	require.NoError(t, fx.books.Create(context.Background(), &models.Book{Title: "Buku Baru"}))

	file := upload(t, "books.xlsx", xlsxBytes(t, bookHeading,
		[]interface{}{1, "Buku Baru", "978-1", "Monograf", "Airlangga", 2022, "Budi"},
	))

	result, err := fx.svc.Import(context.Background(), EntityBooks, file, dto.ImportRequest{ResetTable: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, fx.books.records, 1)
	assert.Equal(t, "Buku Baru", fx.books.records[1].Title)
}

func TestImportBooks_MissingColumns(t *testing.T) {
	fx := newImportFixture(t, nil)
	file := upload(t, "books.xlsx", xlsxBytes(t, []interface{}{"No", "Judul"}, []interface{}{1, "Buku"}))

	_, err := fx.svc.Import(context.Background(), EntityBooks, file, dto.ImportRequest{})
	require.ErrorIs(t, err, apperrors.ErrImportFailed)
	assert.Contains(t, err.Error(), "Missing required columns: isbn")
}

func TestImport_RejectsUnsupportedExtension(t *testing.T) {
	fx := newImportFixture(t, nil)

	_, err := fx.svc.Import(context.Background(), EntityBooks, upload(t, "books.pdf", []byte("%PDF")), dto.ImportRequest{})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "file")
}

func TestImport_UnreadableFile(t *testing.T) {
	fx := newImportFixture(t, nil)

	_, err := fx.svc.Import(context.Background(), EntityBooks, upload(t, "books.xlsx", []byte("not a zip")), dto.ImportRequest{})
	assert.ErrorIs(t, err, apperrors.ErrImportFailed)
}

func TestImportPublications_InvalidCategory(t *testing.T) {
	fx := newImportFixture(t, nil)
	file := upload(t, "pubs.csv", []byte("a\n"))

	_, err := fx.svc.Import(context.Background(), EntityPublications, file, dto.ImportRequest{Category: "wos"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestImportAuthors_CollectErrorsReportsEveryRow(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Lama", NIDN: "0099"}).
		withPolicies(map[string]importers.Policy{EntityAuthors: importers.CollectErrors})
	file := upload(t, "authors.xlsx", xlsxBytes(t, authorHeading,
		[]interface{}{1, "Budi", "0011", "-", "-", "Informatika", "-", "-", "-", "-"},
		[]interface{}{2, "Dewi", "-", "-", "-", "-", "-", "-", "-", "-"},
		[]interface{}{3, "Ani", "0099", "-", "-", "-", "-", "-", "-", "-"},
		[]interface{}{4, "Citra", "0011", "-", "-", "-", "-", "-", "-", "-"},
	))

	_, err := fx.svc.Import(context.Background(), EntityAuthors, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	require.Len(t, impErr.Failures, 3)
	assert.Equal(t, 7, impErr.Failures[0].Row)
	assert.Equal(t, "nidn", impErr.Failures[0].Attribute)
	assert.Equal(t, []string{"NIDN is required"}, impErr.Failures[0].Errors)
	assert.Equal(t, "Dewi", impErr.Failures[0].Values["name"])
	assert.Equal(t, 8, impErr.Failures[1].Row)
	assert.Equal(t, "nidn", impErr.Failures[1].Attribute)
	assert.Equal(t, "0099", impErr.Failures[1].Values["nidn"])
	assert.Equal(t, 9, impErr.Failures[2].Row)
	assert.Contains(t, impErr.Failures[2].Errors[0], "repeated from row 6")

	assert.Len(t, fx.authors.authors, 1, "the valid row is rolled back")
	assert.Empty(t, fx.programs.programs)
}

func TestImportAuthors_FailFastStopsAtFirstRow(t *testing.T) {
	fx := newImportFixture(t, nil)
	file := upload(t, "authors.xlsx", xlsxBytes(t, authorHeading,
		[]interface{}{1, "Budi", "-", "-", "-", "-", "-", "-", "-", "-"},
		[]interface{}{2, "Ani", "-", "-", "-", "-", "-", "-", "-", "-"},
	))

	_, err := fx.svc.Import(context.Background(), EntityAuthors, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, "Row 6: NIDN is required", impErr.Message)
	assert.Empty(t, impErr.Failures)
	assert.Equal(t, 6, impErr.Row)
}

func TestImportServices_UnknownNIDNWritesNothing(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Budi", NIDN: "0011"})
	file := upload(t, "services.xlsx", xlsxBytes(t, grantHeading,
		[]interface{}{1, "Pengabdian Desa", "0011", "Budi", "PKM", "Program Kemitraan Masyarakat", 2024, "Rp. 7.500.000", "DRTPM"},
		[]interface{}{2, "Pengabdian Sekolah", "0011; 0505", "Budi", "PKM", "Program Kemitraan Masyarakat", 2024, "1000", "Internal"},
	))

	_, err := fx.svc.Import(context.Background(), EntityServices, file, dto.ImportRequest{ResetTable: true})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, "Author with NIDN 0505 on row 7 was not found", impErr.Message)
	assert.Empty(t, fx.services.records)
	assert.Empty(t, fx.research.records)
	assert.Equal(t, 1, fx.recorder.failed[EntityServices])
}

func TestImportServices(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Budi", NIDN: "0011"})
	file := upload(t, "services.xlsx", xlsxBytes(t, grantHeading,
		[]interface{}{1, "Pengabdian Desa", "0011", "Budi", "PKM", "Program Kemitraan Masyarakat", 2024, "Rp. 7.500.000", "DRTPM"},
	))

	result, err := fx.svc.Import(context.Background(), EntityServices, file, dto.ImportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	got, err := fx.services.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7500000.0, got.FundsApproved)
	assert.Equal(t, "Budi", got.Creators)
	assert.Empty(t, fx.research.records, "services never land in the research table")
}

func TestImportResearch_CollectErrorsReportsEveryRow(t *testing.T) {
	fx := newImportFixture(t, nil, models.Author{Name: "Budi", NIDN: "0011"}).
		withPolicies(map[string]importers.Policy{EntityResearch: importers.CollectErrors})
	require.NoError(t, fx.research.Create(context.Background(), &models.Grant{Title: "Riset Lama"}))
	file := upload(t, "research.xlsx", xlsxBytes(t, grantHeading,
		[]interface{}{1, "Riset Satu", "0404", "Budi", "PDP", "Penelitian Dosen Pemula", 2024, "1000", "DRTPM"},
		[]interface{}{2, "Riset Dua", "0011", "Budi", "PDP", "Penelitian Dosen Pemula", "kemarin", "1000", "DRTPM"},
		[]interface{}{3, "Riset Lama", "0011", "Budi", "PDP", "Penelitian Dosen Pemula", 2024, "1000", "DRTPM"},
		[]interface{}{4, "Riset Baru", "0011", "Budi", "PDP", "Penelitian Dosen Pemula", 2024, "1000", "DRTPM"},
	))

	_, err := fx.svc.Import(context.Background(), EntityResearch, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	require.Len(t, impErr.Failures, 3)
	assert.Equal(t, 6, impErr.Failures[0].Row)
	assert.Equal(t, "nidn", impErr.Failures[0].Attribute)
	assert.Equal(t, 7, impErr.Failures[1].Row)
	assert.Equal(t, "proposal_year", impErr.Failures[1].Attribute)
	assert.Equal(t, 8, impErr.Failures[2].Row)
	assert.Equal(t, "title", impErr.Failures[2].Attribute)
	assert.Len(t, fx.research.records, 1, "Riset Baru is rolled back")
}

func TestImportBooks_FailFastOverride(t *testing.T) {
	fx := newImportFixture(t, nil).
		withPolicies(map[string]importers.Policy{EntityBooks: importers.FailFast})
	file := upload(t, "books.xlsx", xlsxBytes(t, bookHeading,
		[]interface{}{1, "Buku Baru", "978-1", "Monograf", "Airlangga", 2022, "Budi"},
		[]interface{}{2, "Tanpa Tahun", "978-2", "Referensi", "Airlangga", "", "Ani"},
		[]interface{}{3, "Buku Lain", "978-3", "Referensi", "Airlangga", "", "Ani"},
	))

	_, err := fx.svc.Import(context.Background(), EntityBooks, file, dto.ImportRequest{})

	var impErr *apperrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Empty(t, impErr.Failures)
	assert.Equal(t, 7, impErr.Row)
	assert.Equal(t, "tahun", impErr.Attribute)
	assert.Contains(t, impErr.Message, "Row 7: ")
	assert.Empty(t, fx.books.records)
}

var scopusHeading = []interface{}{"No", "Judul", "Identifier", "Kuartil", "Nama Publikasi", "Tahun", "Penulis", "Link"}

func TestImportPublications_ScopusDashQuartile(t *testing.T) {
	fx := newImportFixture(t, nil)
	file := upload(t, "scopus.xlsx", xlsxBytes(t, scopusHeading,
		[]interface{}{1, "Deep Learning for Rice", "2-s2.0-1", "-", "Heliyon", 2023, "Budi", "https://doi.org/x"},
		[]interface{}{2, "Graph Coloring", "2-s2.0-2", "Q1", "Discrete Math", 2022, "Ani", "-"},
	))

	result, err := fx.svc.Import(context.Background(), EntityPublications, file, dto.ImportRequest{Category: " Scopus "})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	first, err := fx.pubs.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryScopus, first.Category())
	venue, ok := first.Venue.(models.ScopusVenue)
	require.True(t, ok)
	assert.Equal(t, models.DefaultAccreditation, venue.Quartile)
	assert.Equal(t, "Heliyon", venue.PublicationName)

	second, err := fx.pubs.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Q1", second.Venue.(models.ScopusVenue).Quartile)
	assert.Empty(t, second.Link)
}

func TestImportPublications_GoogleMissingColumns(t *testing.T) {
	fx := newImportFixture(t, nil)
	file := upload(t, "google.xlsx", xlsxBytes(t, scopusHeading,
		[]interface{}{1, "Judul", "id", "Q1", "Nama", 2023, "Budi", "-"},
	))

	_, err := fx.svc.Import(context.Background(), EntityPublications, file, dto.ImportRequest{Category: "google"})
	require.ErrorIs(t, err, apperrors.ErrImportFailed)
	assert.Contains(t, err.Error(), "jurnal, akreditasi")
	assert.Empty(t, fx.pubs.records)
}
