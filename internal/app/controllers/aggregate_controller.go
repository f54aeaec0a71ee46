package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// AggregateController serves the public grouped counts, study program charts and the
// dashboard summary.
type AggregateController struct {
	aggregateService services.AggregateService
}

// NewAggregateController creates a new AggregateController
func NewAggregateController(aggregateService services.AggregateService) *AggregateController {
	return &AggregateController{aggregateService: aggregateService}
}

// optionalInt reads a non-negative integer query parameter; absent means 0.
func optionalInt(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(name, "The "+name+" field must be an integer."))
		return 0, false
	}
	return v, true
}

// Grouped returns a handler counting entity records per category. The optional
// study_program_id query parameter narrows the count to one program.
func (c *AggregateController) Grouped(entity string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		studyProgramID, ok := optionalInt(ctx, "study_program_id")
		if !ok {
			return
		}
		groups, err := c.aggregateService.Grouped(ctx.Request.Context(), entity, studyProgramID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respondOK(ctx, groups, "Grouped data retrieved successfully")
	}
}

// Chart returns a handler counting entity records per study program, optionally for
// one year.
func (c *AggregateController) Chart(entity string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		year, ok := optionalInt(ctx, "year")
		if !ok {
			return
		}
		chart, err := c.aggregateService.StudyProgramChart(ctx.Request.Context(), entity, int(year))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respondOK(ctx, chart, "Chart data retrieved successfully")
	}
}

// DashboardSummary returns record totals per entity
func (c *AggregateController) DashboardSummary(ctx *gin.Context) {
	summary, err := c.aggregateService.DashboardSummary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, summary, "Dashboard summary retrieved successfully")
}
