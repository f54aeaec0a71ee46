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

var studyProgramColumns = []string{"id", "name", "created_at", "updated_at"}

// StudyProgramRepository handles database operations for study programs
type StudyProgramRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudyProgramRepository creates a new StudyProgramRepository
func NewStudyProgramRepository(database *db.PostgresDB) *StudyProgramRepository {
	return &StudyProgramRepository{db: database, sb: newBuilder()}
}

func scanStudyProgram(row pgx.Row) (models.StudyProgram, error) {
	var sp models.StudyProgram
	err := row.Scan(&sp.ID, &sp.Name, &sp.CreatedAt, &sp.UpdatedAt)
	return sp, err
}

// Create inserts a study program
func (r *StudyProgramRepository) Create(ctx context.Context, sp *models.StudyProgram) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("study_programs").
		Columns("name", "created_at", "updated_at").
		Values(sp.Name, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create study program query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return fmt.Errorf("error creating study program: %w", err)
	}
	return nil
}

// Update renames a study program
func (r *StudyProgramRepository) Update(ctx context.Context, sp *models.StudyProgram) error {
	sql, args, err := r.sb.Update("study_programs").
		Set("name", sp.Name).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": sp.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update study program query: %w", err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&sp.CreatedAt, &sp.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("Study program not found")
		}
		return fmt.Errorf("error updating study program: %w", err)
	}
	return nil
}

// GetByID retrieves a study program by ID
func (r *StudyProgramRepository) GetByID(ctx context.Context, id int64) (*models.StudyProgram, error) {
	sql, args, err := r.sb.Select(studyProgramColumns...).From("study_programs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get study program query: %w", err)
	}
	sp, err := scanStudyProgram(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Study program not found")
		}
		return nil, fmt.Errorf("error retrieving study program: %w", err)
	}
	return &sp, nil
}

// FirstOrCreate returns the study program named name, creating it when missing.
func (r *StudyProgramRepository) FirstOrCreate(ctx context.Context, name string) (*models.StudyProgram, error) {
	sql, args, err := r.sb.Select(studyProgramColumns...).From("study_programs").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find study program query: %w", err)
	}
	sp, err := scanStudyProgram(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err == nil {
		return &sp, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error finding study program: %w", err)
	}

	created := &models.StudyProgram{Name: name}
	if err := r.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// List returns a page of study programs matching the search on name.
func (r *StudyProgramRepository) List(ctx context.Context, opts ListOptions) ([]models.StudyProgram, int64, error) {
	base := r.sb.Select().From("study_programs")
	if cond := searchCondition(opts.Search, "name"); cond != nil {
		base = base.Where(cond)
	}
	return paginate(ctx, r.db.Conn(ctx), base, studyProgramColumns, "name ASC, id ASC", opts, scanStudyProgram)
}

// NameExists checks name uniqueness, ignoring excludeID.
func (r *StudyProgramRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return existsWhere(ctx, r.db.Conn(ctx), "study_programs", "name", name, excludeID)
}

// Delete removes a study program. Its authors keep existing without a program.
func (r *StudyProgramRepository) Delete(ctx context.Context, id int64) error {
	found, err := deleteByID(ctx, r.db.Conn(ctx), "study_programs", id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewResourceNotFoundError("Study program not found")
	}
	return nil
}

// Count returns the number of study programs.
func (r *StudyProgramRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Conn(ctx), "study_programs")
}
