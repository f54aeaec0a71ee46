package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
)

// StudyProgramService defines the interface for study program operations
type StudyProgramService interface {
	CreateStudyProgram(ctx context.Context, req *dto.StudyProgramRequest) (*models.StudyProgram, error)
	UpdateStudyProgram(ctx context.Context, id int64, req *dto.StudyProgramRequest) (*models.StudyProgram, error)
	GetStudyProgramByID(ctx context.Context, id int64) (*models.StudyProgram, error)
	ListStudyPrograms(ctx context.Context, params dto.ListParams) ([]models.StudyProgram, int64, error)
	DeleteStudyProgram(ctx context.Context, id int64) error
}

type studyProgramServiceImpl struct {
	studyPrograms StudyProgramStore
}

// NewStudyProgramService creates a new StudyProgramService
func NewStudyProgramService(studyPrograms StudyProgramStore) StudyProgramService {
	return &studyProgramServiceImpl{studyPrograms: studyPrograms}
}

// CreateStudyProgram creates a study program with a unique name
func (s *studyProgramServiceImpl) CreateStudyProgram(ctx context.Context, req *dto.StudyProgramRequest) (*models.StudyProgram, error) {
	sp := &models.StudyProgram{Name: strings.TrimSpace(req.Name)}

	exists, err := s.studyPrograms.NameExists(ctx, sp.Name, 0)
	if err := ensureUnique(exists, err, "name"); err != nil {
		return nil, err
	}
	if err := s.studyPrograms.Create(ctx, sp); err != nil {
		return nil, uniqueViolation(err, "study_programs_name_unique", "name")
	}
	return sp, nil
}

// UpdateStudyProgram renames a study program
func (s *studyProgramServiceImpl) UpdateStudyProgram(ctx context.Context, id int64, req *dto.StudyProgramRequest) (*models.StudyProgram, error) {
	sp, err := s.studyPrograms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sp.Name = strings.TrimSpace(req.Name)

	exists, err := s.studyPrograms.NameExists(ctx, sp.Name, id)
	if err := ensureUnique(exists, err, "name"); err != nil {
		return nil, err
	}
	if err := s.studyPrograms.Update(ctx, sp); err != nil {
		return nil, uniqueViolation(err, "study_programs_name_unique", "name")
	}
	return s.studyPrograms.GetByID(ctx, id)
}

// GetStudyProgramByID retrieves a study program
func (s *studyProgramServiceImpl) GetStudyProgramByID(ctx context.Context, id int64) (*models.StudyProgram, error) {
	return s.studyPrograms.GetByID(ctx, id)
}

// ListStudyPrograms returns a page of study programs
func (s *studyProgramServiceImpl) ListStudyPrograms(ctx context.Context, params dto.ListParams) ([]models.StudyProgram, int64, error) {
	programs, total, err := s.studyPrograms.List(ctx, listOptions(params))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing study programs: %w", err)
	}
	return programs, total, nil
}

// DeleteStudyProgram deletes a study program
func (s *studyProgramServiceImpl) DeleteStudyProgram(ctx context.Context, id int64) error {
	return s.studyPrograms.Delete(ctx, id)
}
