package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/repositories"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyProgramChart(t *testing.T) {
	books := newFakeBookStore()
	books.programs = []repositories.ProgramCount{
		{StudyProgramID: 1, Name: "Informatika", Total: 3},
		{StudyProgramID: 2, Name: "Hukum", Total: 1},
		{StudyProgramID: 3, Name: "Akuntansi", Total: 0},
	}
	svc := NewAggregateService(map[string]OutputStore{EntityBooks: books}, nil)

	resp, err := svc.StudyProgramChart(context.Background(), EntityBooks, 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, books.yearArg)
	assert.Equal(t, []string{"Informatika", "Hukum", "Akuntansi"}, resp.Labels)
	assert.Equal(t, []int64{3, 1, 0}, resp.Data)
	assert.Equal(t, []float64{75, 25, 0}, resp.Percentages)
	assert.Equal(t, int64(4), resp.Total)
	require.Len(t, resp.Colors, 3)
	for _, c := range resp.Colors {
		assert.Regexp(t, regexp.MustCompile(`^#[0-9A-F]{6}$`), c)
	}
}

func TestStudyProgramChart_ZeroTotal(t *testing.T) {
	books := newFakeBookStore()
	books.programs = []repositories.ProgramCount{{Name: "A"}, {Name: "B"}}
	svc := NewAggregateService(map[string]OutputStore{EntityBooks: books}, nil)

	resp, err := svc.StudyProgramChart(context.Background(), EntityBooks, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, resp.Percentages)
}

func TestGroupedAndSummary(t *testing.T) {
	ctx := context.Background()
	books := newFakeBookStore()
	books.grouped = []repositories.GroupCount{{Name: "Monograf", Total: 2}}
	require.NoError(t, books.Create(ctx, &models.Book{Title: "Satu"}))
	svc := NewAggregateService(map[string]OutputStore{EntityBooks: books}, map[string]Counter{EntityAuthors: seededAuthors()})

	groups, err := svc.Grouped(ctx, EntityBooks, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), books.groupArg)
	require.Len(t, groups, 1)
	assert.Equal(t, "Monograf", groups[0].Name)

	_, err = svc.Grouped(ctx, "unknown", 0)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	summary, err := svc.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary[EntityBooks])
	assert.Equal(t, int64(2), summary[EntityAuthors])
}
