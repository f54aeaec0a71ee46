package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorRequest(nidn string, programID *int64) *dto.AuthorRequest {
	return &dto.AuthorRequest{
		SintaID: "1", NIDN: nidn, Name: "Jane", Affiliation: "X",
		StudyProgramID: programID, LastEducation: "S1", FunctionalPosition: "Lektor",
	}
}

func TestCreateAuthor_DuplicateNIDN(t *testing.T) {
	ctx := context.Background()
	authors := newFakeAuthorStore()
	programs := newFakeStudyProgramStore("Informatika")
	svc := NewAuthorService(&fakeTx{}, authors, programs)
	programID := int64(1)

	created, err := svc.CreateAuthor(ctx, authorRequest("999", &programID))
	require.NoError(t, err)
	assert.Equal(t, "999", created.NIDN)

	_, err = svc.CreateAuthor(ctx, authorRequest("999", &programID))
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "nidn")
}

func TestCreateAuthor_UnknownStudyProgram(t *testing.T) {
	svc := NewAuthorService(&fakeTx{}, newFakeAuthorStore(), newFakeStudyProgramStore())
	missing := int64(7)

	_, err := svc.CreateAuthor(context.Background(), authorRequest("1", &missing))
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "study_program_id")
}

func TestUpdateAuthor_KeepsOwnNIDN(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorService(&fakeTx{}, newFakeAuthorStore(), newFakeStudyProgramStore())

	created, err := svc.CreateAuthor(ctx, authorRequest("123", nil))
	require.NoError(t, err)

	req := authorRequest("123", nil)
	req.Name = "Jane Doe"
	updated, err := svc.UpdateAuthor(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.Name)
}

func TestStudyProgramService_UniqueName(t *testing.T) {
	ctx := context.Background()
	svc := NewStudyProgramService(newFakeStudyProgramStore("Informatika"))

	_, err := svc.CreateStudyProgram(ctx, &dto.StudyProgramRequest{Name: "Informatika"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	sp, err := svc.CreateStudyProgram(ctx, &dto.StudyProgramRequest{Name: " Sistem Informasi "})
	require.NoError(t, err)
	assert.Equal(t, "Sistem Informasi", sp.Name)
}
