package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/chart"
)

// Entity names used by aggregates, imports and metrics.
const (
	EntityAuthors            = "authors"
	EntityStudyPrograms      = "study-programs"
	EntityBooks              = "books"
	EntityHKIs               = "hkis"
	EntityPublications       = "publications"
	EntityGooglePublications = "google-publications"
	EntityResearch           = "research"
	EntityServices           = "services"
	EntityPosts              = "posts"
)

// Counter is anything that can report its row count.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// AggregateService computes grouped counts, study program charts and dashboard totals
type AggregateService interface {
	Grouped(ctx context.Context, entity string, studyProgramID int64) ([]dto.GroupedCount, error)
	StudyProgramChart(ctx context.Context, entity string, year int) (*dto.ChartResponse, error)
	DashboardSummary(ctx context.Context) (dto.DashboardSummary, error)
}

type aggregateServiceImpl struct {
	outputs  map[string]OutputStore
	counters map[string]Counter
}

// NewAggregateService creates an AggregateService over the given output stores. Every
// output store is also counted on the dashboard, next to the extra counters.
func NewAggregateService(outputs map[string]OutputStore, counters map[string]Counter) AggregateService {
	all := make(map[string]Counter, len(outputs)+len(counters))
	for name, c := range counters {
		all[name] = c
	}
	for name, o := range outputs {
		all[name] = o
	}
	return &aggregateServiceImpl{outputs: outputs, counters: all}
}

func (s *aggregateServiceImpl) output(entity string) (OutputStore, error) {
	o, ok := s.outputs[entity]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Unknown entity %q", entity))
	}
	return o, nil
}

// Grouped counts the entity's records per category, optionally for one study program
func (s *aggregateServiceImpl) Grouped(ctx context.Context, entity string, studyProgramID int64) ([]dto.GroupedCount, error) {
	o, err := s.output(entity)
	if err != nil {
		return nil, err
	}
	groups, err := o.Grouped(ctx, studyProgramID)
	if err != nil {
		return nil, fmt.Errorf("error grouping %s: %w", entity, err)
	}

	out := make([]dto.GroupedCount, len(groups))
	for i, g := range groups {
		out[i] = dto.GroupedCount{Name: g.Name, Total: g.Total}
	}
	return out, nil
}

// StudyProgramChart counts the entity's records per study program. Programs without
// records are included with zero.
func (s *aggregateServiceImpl) StudyProgramChart(ctx context.Context, entity string, year int) (*dto.ChartResponse, error) {
	o, err := s.output(entity)
	if err != nil {
		return nil, err
	}
	counts, err := o.CountByStudyProgram(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("error counting %s by study program: %w", entity, err)
	}

	resp := &dto.ChartResponse{
		Labels: make([]string, len(counts)),
		Data:   make([]int64, len(counts)),
	}
	for i, c := range counts {
		resp.Labels[i] = c.Name
		resp.Data[i] = c.Total
	}
	resp.Percentages = chart.Percentages(resp.Data)
	resp.Colors = chart.RandomColors(len(counts))
	resp.Total = chart.Total(resp.Data)
	return resp, nil
}

// DashboardSummary returns the row count of every known entity
func (s *aggregateServiceImpl) DashboardSummary(ctx context.Context) (dto.DashboardSummary, error) {
	names := make([]string, 0, len(s.counters))
	for name := range s.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	summary := make(dto.DashboardSummary, len(names))
	for _, name := range names {
		n, err := s.counters[name].Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("error counting %s: %w", name, err)
		}
		summary[name] = n
	}
	return summary, nil
}
