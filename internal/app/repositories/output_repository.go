package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

var (
	booksTable = outputTable{
		name: "books", link: authorLink{table: "author_book", entityKey: "book_id"},
		yearColumn: "t.year", groupColumn: "t.kategori",
	}
	hkisTable = outputTable{
		name: "hkis", link: authorLink{table: "author_hki", entityKey: "hki_id"},
		yearColumn: "EXTRACT(YEAR FROM t.tanggal_permohonan)", groupColumn: "t.kategori",
	}
	publicationsTable = outputTable{
		name: "publications", link: authorLink{table: "author_publication", entityKey: "publication_id"},
		yearColumn: "t.year", groupColumn: "COALESCE(t.accreditation, t.quartile)",
	}
	googlePublicationsTable = outputTable{
		name: "google_publications", link: authorLink{table: "author_google_publication", entityKey: "google_publication_id"},
		yearColumn: "t.year", groupColumn: "t.accreditation",
	}
	researchTable = outputTable{
		name: "research", link: authorLink{table: "author_research", entityKey: "research_id"},
		yearColumn: "t.proposal_year", groupColumn: "t.scheme_short_name",
	}
	servicesTable = outputTable{
		name: "services", link: authorLink{table: "author_service", entityKey: "service_id"},
		yearColumn: "t.proposal_year", groupColumn: "t.scheme_short_name",
	}
)

// outputRepository holds the operations shared by every author-linked output table.
type outputRepository struct {
	db       *db.PostgresDB
	sb       squirrel.StatementBuilderType
	table    outputTable
	notFound string
}

func newOutputRepository(database *db.PostgresDB, table outputTable, notFound string) outputRepository {
	return outputRepository{db: database, sb: newBuilder(), table: table, notFound: notFound}
}

// SyncAuthors replaces the author set of a record.
func (r *outputRepository) SyncAuthors(ctx context.Context, id int64, authorIDs []int64) error {
	return r.table.link.Sync(ctx, r.db.Conn(ctx), id, authorIDs)
}

// TitleExists checks title uniqueness, ignoring excludeID.
func (r *outputRepository) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), r.table.name, "title", title, excludeID)
}

// Delete hard deletes a record; its join rows cascade.
func (r *outputRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), r.table.name, id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// Truncate empties the table and its join table.
func (r *outputRepository) Truncate(ctx context.Context) error {
	return r.table.Truncate(ctx, r.db.Conn(ctx))
}

// Grouped counts records per group column value.
func (r *outputRepository) Grouped(ctx context.Context, studyProgramID int64) ([]GroupCount, error) {
	return r.table.Grouped(ctx, r.db.Conn(ctx), studyProgramID)
}

// CountByStudyProgram counts records per study program, optionally for one year.
func (r *outputRepository) CountByStudyProgram(ctx context.Context, year int) ([]ProgramCount, error) {
	return r.table.CountByStudyProgram(ctx, r.db.Conn(ctx), year)
}

// Count returns the number of records.
func (r *outputRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Conn(ctx), r.table.name)
}

func (r *outputRepository) loadAuthors(ctx context.Context, ids []int64) (map[int64][]models.AuthorSummary, error) {
	return r.table.link.Load(ctx, r.db.Conn(ctx), ids)
}

func (r *outputRepository) loadAuthorsOf(ctx context.Context, id int64) ([]models.AuthorSummary, error) {
	return r.table.link.LoadOne(ctx, r.db.Conn(ctx), id)
}
