package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/lppm/research-portal/internal/app/importers"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/filestorage"
	"github.com/lppm/research-portal/internal/pkg/spreadsheet"
	"github.com/rs/zerolog"
)

// ImportRecorder receives import outcomes; *metrics.Metrics implements it.
type ImportRecorder interface {
	ImportSucceeded(entity string, rows int)
	ImportFailed(entity string)
}

// ImportService imports spreadsheets into the entity tables
type ImportService interface {
	Import(ctx context.Context, entity string, file *multipart.FileHeader, req dto.ImportRequest) (*dto.ImportResult, error)
}

// ImportDeps holds the collaborators of the import service
type ImportDeps struct {
	Tx                 db.Transactor
	Authors            AuthorStore
	StudyPrograms      StudyProgramStore
	Books              BookStore
	HKIs               HKIStore
	Publications       PublicationStore
	GooglePublications GooglePublicationStore
	Research           GrantStore
	Services           GrantStore
	Storage            filestorage.FileStorage
	Recorder           ImportRecorder
	Logger             zerolog.Logger

	// Policies overrides the row error policy per entity.
	Policies map[string]importers.Policy
}

type importServiceImpl struct {
	ImportDeps
	now func() time.Time
}

// NewImportService creates a new ImportService
func NewImportService(deps ImportDeps) ImportService {
	return &importServiceImpl{ImportDeps: deps, now: time.Now}
}

// Import reads the uploaded sheet and persists its rows in a single transaction. Nothing
// is written when the import fails.
func (s *importServiceImpl) Import(ctx context.Context, entity string, file *multipart.FileHeader, req dto.ImportRequest) (*dto.ImportResult, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("file", "The file field is required.")
	}
	if !spreadsheet.IsSupported(file.Filename) {
		return nil, apperrors.NewValidationError("file", "The file field must be a file of type: "+strings.Join(spreadsheet.Supported, ", ")+".")
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, err
	}
	rows, err := spreadsheet.Read(file.Filename, bytes.NewReader(data))
	if err != nil {
		s.Logger.Warn().Err(err).Str("entity", entity).Str("file", file.Filename).Msg("Unreadable import file")
		return nil, apperrors.NewImportError("The uploaded file could not be read.")
	}

	result := &dto.ImportResult{Archive: s.archive(ctx, entity, file, data)}

	result.Imported, err = s.dispatch(ctx, entity, rows, req)
	if err != nil {
		s.Recorder.ImportFailed(entity)
		s.Logger.Info().Err(err).Str("entity", entity).Str("file", file.Filename).Msg("Import rejected")
		return nil, err
	}

	s.Recorder.ImportSucceeded(entity, result.Imported)
	s.Logger.Info().Str("entity", entity).Int("rows", result.Imported).Bool("reset", req.ResetTable).Msg("Import completed")
	return result, nil
}

// policy returns the row error policy of entity.
func (s *importServiceImpl) policy(entity string) importers.Policy {
	if p, ok := s.Policies[entity]; ok {
		return p
	}
	switch entity {
	case EntityAuthors:
		return importers.AuthorPolicy
	case EntityResearch, EntityServices:
		return importers.GrantPolicy
	default:
		return importers.OutputPolicy
	}
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}
	return data, nil
}

// archive keeps a copy of the upload. A storage failure does not block the import.
func (s *importServiceImpl) archive(ctx context.Context, entity string, file *multipart.FileHeader, data []byte) string {
	if s.Storage == nil {
		return ""
	}
	key := filestorage.ArchiveKey(entity, file.Filename, s.now())
	location, err := s.Storage.Save(ctx, key, bytes.NewReader(data), int64(len(data)), file.Header.Get("Content-Type"))
	if err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("Failed to archive import file")
		return ""
	}
	return location
}

func (s *importServiceImpl) dispatch(ctx context.Context, entity string, rows [][]string, req dto.ImportRequest) (int, error) {
	switch entity {
	case EntityAuthors:
		return s.importAuthors(ctx, rows, req.ResetTable)
	case EntityResearch:
		return s.importGrants(ctx, EntityResearch, s.Research, rows, req.ResetTable)
	case EntityServices:
		return s.importGrants(ctx, EntityServices, s.Services, rows, req.ResetTable)
	case EntityBooks:
		return importHeaded(ctx, s.Tx, s.policy(EntityBooks), s.Books, rows, req.ResetTable, importers.BookHeadings, importers.ParseBookRow,
			func(b models.Book) string { return b.Title },
			func(ctx context.Context, b models.Book) error { return s.Books.Create(ctx, &b) })
	case EntityHKIs:
		return importHeaded(ctx, s.Tx, s.policy(EntityHKIs), s.HKIs, rows, req.ResetTable, importers.HKIHeadings, importers.ParseHKIRow,
			func(h models.HKI) string { return h.Title },
			func(ctx context.Context, h models.HKI) error { return s.HKIs.Create(ctx, &h) })
	case EntityGooglePublications:
		return importHeaded(ctx, s.Tx, s.policy(EntityGooglePublications), s.GooglePublications, rows, req.ResetTable, importers.GoogleHeadings, importers.ParseGoogleRow,
			func(p models.Publication) string { return p.Title },
			func(ctx context.Context, p models.Publication) error {
				g := importers.GooglePublicationFrom(p)
				return s.GooglePublications.Create(ctx, &g)
			})
	case EntityPublications:
		return s.importPublications(ctx, rows, req)
	default:
		return 0, apperrors.NewResourceNotFoundError(fmt.Sprintf("Unknown import target %q", entity))
	}
}

func (s *importServiceImpl) importPublications(ctx context.Context, rows [][]string, req dto.ImportRequest) (int, error) {
	category, err := models.ParsePublicationCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if err != nil {
		return 0, apperrors.NewValidationError("category", "The selected category is invalid.")
	}

	headings, parse := importers.GoogleHeadings, importers.ParseGoogleRow
	if category == models.CategoryScopus {
		headings, parse = importers.ScopusHeadings, importers.ParseScopusRow
	}
	return importHeaded(ctx, s.Tx, s.policy(EntityPublications), s.Publications, rows, req.ResetTable, headings, parse,
		func(p models.Publication) string { return p.Title },
		func(ctx context.Context, p models.Publication) error { return s.Publications.Create(ctx, &p) })
}

// importAuthors imports author rows. Under FailFast the first invalid row or known
// NIDN aborts the import; under CollectErrors every row is checked first.
func (s *importServiceImpl) importAuthors(ctx context.Context, rows [][]string, reset bool) (int, error) {
	data := importers.DataRows(rows)
	c := &importers.Collector{Policy: s.policy(EntityAuthors)}
	imported := 0

	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if reset {
			if err := s.Authors.Truncate(ctx); err != nil {
				return err
			}
		}

		seen := make(map[string]int, len(data))
		for _, row := range data {
			values := importers.ColumnValues(row, importers.AuthorColumns)
			rec, err := importers.ParseAuthorRow(row)
			if err != nil {
				if err := c.Reject(row.Number, "", values, err); err != nil {
					return err
				}
				continue
			}

			nidn := rec.Author.NIDN
			if first, dup := seen[nidn]; dup {
				err := apperrors.NewImportError("Row %d: NIDN %s is repeated from row %d", row.Number, nidn, first)
				if err := c.Reject(row.Number, "nidn", values, err); err != nil {
					return err
				}
				continue
			}
			seen[nidn] = row.Number

			exists, err := s.Authors.NIDNExists(ctx, nidn, 0)
			if err != nil {
				return err
			}
			if exists {
				err := apperrors.NewImportError("Row %d: an author with NIDN %s already exists", row.Number, nidn)
				if err := c.Reject(row.Number, "nidn", values, err); err != nil {
					return err
				}
				continue
			}

			if rec.StudyProgram != "" {
				sp, err := s.StudyPrograms.FirstOrCreate(ctx, rec.StudyProgram)
				if err != nil {
					return err
				}
				rec.Author.StudyProgramID = &sp.ID
			}

			if err := s.Authors.Create(ctx, &rec.Author); err != nil {
				return err
			}
			imported++
		}
		return c.Err()
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// importGrants imports research or service rows. Every NIDN is checked before anything
// is written. Under FailFast the first unknown one rejects the file.
func (s *importServiceImpl) importGrants(ctx context.Context, entity string, store GrantStore, rows [][]string, reset bool) (int, error) {
	data := importers.DataRows(rows)
	c := &importers.Collector{Policy: s.policy(entity)}

	lists := importers.ScanNIDNs(data)
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	known, err := s.Authors.SummariesByNIDNs(ctx, all)
	if err != nil {
		return 0, fmt.Errorf("error looking up authors: %w", err)
	}
	rejected := make(map[int]bool)
	for i, list := range lists {
		for _, nidn := range list {
			if _, ok := known[nidn]; ok {
				continue
			}
			row := data[i]
			err := &apperrors.ImportError{
				Message:   fmt.Sprintf("Author with NIDN %s on row %d was not found", nidn, row.Number),
				Row:       row.Number,
				Attribute: "nidn",
			}
			if err := c.Reject(row.Number, "nidn", importers.ColumnValues(row, importers.GrantColumns), err); err != nil {
				return 0, err
			}
			rejected[row.Number] = true
		}
	}

	imported := 0
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if reset {
			if err := store.Truncate(ctx); err != nil {
				return err
			}
		}

		for _, row := range data {
			if rejected[row.Number] {
				continue
			}
			values := importers.ColumnValues(row, importers.GrantColumns)
			rec, err := importers.ParseGrantRow(row)
			if err != nil {
				if err := c.Reject(row.Number, "", values, err); err != nil {
					return err
				}
				continue
			}

			exists, err := store.TitleExists(ctx, rec.Grant.Title, 0)
			if err != nil {
				return err
			}
			if exists {
				err := apperrors.NewImportError("Row %d: title %q already exists", row.Number, rec.Grant.Title)
				if err := c.Reject(row.Number, "title", values, err); err != nil {
					return err
				}
				continue
			}

			authors := make([]models.AuthorSummary, 0, len(rec.NIDNs))
			for _, nidn := range rec.NIDNs {
				authors = append(authors, known[nidn])
			}
			rec.Grant.Creators = models.CreatorsOf(authors)
			if rec.Grant.Creators == "" {
				rec.Grant.Creators = rec.Leader
			}

			if err := store.Create(ctx, &rec.Grant); err != nil {
				return err
			}
			if err := store.SyncAuthors(ctx, rec.Grant.ID, summaryIDs(authors)); err != nil {
				return err
			}
			imported++
		}
		return c.Err()
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// importHeaded imports a sheet addressed by heading names. Under CollectErrors every row
// is validated and all failures are reported together; under FailFast the first failing
// row is reported. Nothing is written when any row fails.
func importHeaded[T any](
	ctx context.Context,
	tx db.Transactor,
	policy importers.Policy,
	store OutputStore,
	rows [][]string,
	reset bool,
	headings []string,
	parse func(importers.Header, importers.Row, *importers.Failures) (importers.Parsed[T], bool),
	title func(T) string,
	create func(context.Context, T) error,
) (int, error) {
	header := importers.ParseHeader(rows)
	if missing := header.Missing(headings...); len(missing) > 0 {
		return 0, apperrors.NewImportError("Missing required columns: %s", strings.Join(missing, ", "))
	}

	c := &importers.Collector{Policy: policy}
	var parsed []importers.Parsed[T]
	for _, row := range importers.DataRows(rows) {
		if p, ok := parse(header, row, &c.Failures); ok {
			parsed = append(parsed, p)
		}
		if err := c.Halt(); err != nil {
			return 0, err
		}
	}

	imported := 0
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if reset {
			if err := store.Truncate(ctx); err != nil {
				return err
			}
		}

		seen := make(map[string]bool, len(parsed))
		for _, p := range parsed {
			t := title(p.Record)
			exists, err := store.TitleExists(ctx, t, 0)
			if err != nil {
				return err
			}
			if exists || seen[strings.ToLower(t)] {
				c.Failures.Add(p.Row, "judul", p.Values, "The judul has already been taken.")
				if err := c.Halt(); err != nil {
					return err
				}
			}
			seen[strings.ToLower(t)] = true
		}
		if err := c.Err(); err != nil {
			return err
		}

		for _, p := range parsed {
			if err := create(ctx, p.Record); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
