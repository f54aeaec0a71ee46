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

var authorColumns = []string{
	"a.id", "a.sinta_id", "a.nidn", "a.name", "a.affiliation", "a.study_program_id",
	"a.last_education", "a.functional_position", "a.title_prefix", "a.title_suffix",
	"a.created_at", "a.updated_at", "sp.id", "sp.name", "sp.created_at", "sp.updated_at",
}

// AuthorRepository handles database operations for authors
type AuthorRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAuthorRepository creates a new AuthorRepository
func NewAuthorRepository(database *db.PostgresDB) *AuthorRepository {
	return &AuthorRepository{db: database, sb: newBuilder()}
}

func scanAuthor(row pgx.Row) (models.Author, error) {
	var a models.Author
	var spID *int64
	var spName *string
	var spCreated, spUpdated *time.Time
	err := row.Scan(
		&a.ID, &a.SintaID, &a.NIDN, &a.Name, &a.Affiliation, &a.StudyProgramID,
		&a.LastEducation, &a.FunctionalPosition, &a.TitlePrefix, &a.TitleSuffix,
		&a.CreatedAt, &a.UpdatedAt, &spID, &spName, &spCreated, &spUpdated,
	)
	if err != nil {
		return a, err
	}
	if spID != nil {
		a.StudyProgram = &models.StudyProgram{ID: *spID, Name: *spName, CreatedAt: *spCreated, UpdatedAt: *spUpdated}
	}
	return a, nil
}

func (r *AuthorRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select().
		From("authors a").
		LeftJoin("study_programs sp ON sp.id = a.study_program_id")
}

// Create inserts an author
func (r *AuthorRepository) Create(ctx context.Context, a *models.Author) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("authors").
		Columns("sinta_id", "nidn", "name", "affiliation", "study_program_id", "last_education",
			"functional_position", "title_prefix", "title_suffix", "created_at", "updated_at").
		Values(a.SintaID, a.NIDN, a.Name, a.Affiliation, a.StudyProgramID, a.LastEducation,
			a.FunctionalPosition, a.TitlePrefix, a.TitleSuffix, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create author query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("error creating author: %w", err)
	}
	return nil
}

// Update overwrites an author's attributes
func (r *AuthorRepository) Update(ctx context.Context, a *models.Author) error {
	sql, args, err := r.sb.Update("authors").
		SetMap(map[string]interface{}{
			"sinta_id":            a.SintaID,
			"nidn":                a.NIDN,
			"name":                a.Name,
			"affiliation":         a.Affiliation,
			"study_program_id":    a.StudyProgramID,
			"last_education":      a.LastEducation,
			"functional_position": a.FunctionalPosition,
			"title_prefix":        a.TitlePrefix,
			"title_suffix":        a.TitleSuffix,
			"updated_at":          time.Now(),
		}).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update author query: %w", err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Author not found")
	}
	return nil
}

// GetByID retrieves an author with its study program
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	sql, args, err := r.selectBase().Columns(authorColumns...).Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get author query: %w", err)
	}
	a, err := scanAuthor(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Author not found")
		}
		return nil, fmt.Errorf("error retrieving author: %w", err)
	}
	return &a, nil
}

// List returns a page of authors matching the search on name, SINTA ID and NIDN.
func (r *AuthorRepository) List(ctx context.Context, opts ListOptions) ([]models.Author, int64, error) {
	base := r.selectBase()
	if cond := searchCondition(opts.Search, "a.name", "a.sinta_id", "a.nidn"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, authorColumns, "a.name ASC, a.id ASC", opts, scanAuthor)
}

// NIDNExists checks NIDN uniqueness, ignoring excludeID.
func (r *AuthorRepository) NIDNExists(ctx context.Context, nidn string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "authors", "nidn", nidn, excludeID)
}

// SummariesByIDs returns the authors with the given ids, in the order of ids. Unknown
// ids are skipped.
func (r *AuthorRepository) SummariesByIDs(ctx context.Context, ids []int64) ([]models.AuthorSummary, error) {
	if len(ids) == 0 {
		return []models.AuthorSummary{}, nil
	}
	sql, args, err := r.sb.Select("id", "name", "nidn", "sinta_id").From("authors").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author summaries query: %w", err)
	}
	found, err := r.querySummaries(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.AuthorSummary, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	out := make([]models.AuthorSummary, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok && !seen[id] {
			out = append(out, a)
			seen[id] = true
		}
	}
	return out, nil
}

// SummariesByNIDNs returns the authors keyed by NIDN. Unknown NIDNs are absent.
func (r *AuthorRepository) SummariesByNIDNs(ctx context.Context, nidns []string) (map[string]models.AuthorSummary, error) {
	if len(nidns) == 0 {
		return map[string]models.AuthorSummary{}, nil
	}
	sql, args, err := r.sb.Select("id", "name", "nidn", "sinta_id").From("authors").Where(squirrel.Eq{"nidn": nidns}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author nidn query: %w", err)
	}
	found, err := r.querySummaries(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	byNIDN := make(map[string]models.AuthorSummary, len(found))
	for _, a := range found {
		byNIDN[a.NIDN] = a
	}
	return byNIDN, nil
}

func (r *AuthorRepository) querySummaries(ctx context.Context, sql string, args []interface{}) ([]models.AuthorSummary, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var out []models.AuthorSummary
	for rows.Next() {
		var a models.AuthorSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NIDN, &a.SintaID); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an author; join rows to outputs cascade.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "authors", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("Author not found")
	}
	return nil
}

// Truncate empties the authors table. Join rows referencing authors go with it.
func (r *AuthorRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Conn(ctx).Exec(ctx, "TRUNCATE TABLE authors RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("failed to truncate authors: %w", err)
	}
	return nil
}

// Count returns the number of authors.
func (r *AuthorRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Conn(ctx), "authors")
}
