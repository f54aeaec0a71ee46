package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// StudyProgramController handles study programs endpoints
type StudyProgramController struct {
	studyProgramService services.StudyProgramService
}

// NewStudyProgramController creates a new StudyProgramController
func NewStudyProgramController(studyProgramService services.StudyProgramService) *StudyProgramController {
	return &StudyProgramController{studyProgramService: studyProgramService}
}

// CreateStudyProgram creates a study program
func (c *StudyProgramController) CreateStudyProgram(ctx *gin.Context) {
	var req dto.StudyProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	studyProgram, err := c.studyProgramService.CreateStudyProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, studyProgram, "Study program created successfully")
}

// UpdateStudyProgram updates a study program
func (c *StudyProgramController) UpdateStudyProgram(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.StudyProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	studyProgram, err := c.studyProgramService.UpdateStudyProgram(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, studyProgram, "Study program updated successfully")
}

// GetStudyProgramByID returns one study program
func (c *StudyProgramController) GetStudyProgramByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	studyProgram, err := c.studyProgramService.GetStudyProgramByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, studyProgram, "Study program retrieved successfully")
}

// ListStudyPrograms returns a page of study programs
func (c *StudyProgramController) ListStudyPrograms(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.studyProgramService.ListStudyPrograms(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "Study programs retrieved successfully")
}

// DeleteStudyProgram deletes a study program
func (c *StudyProgramController) DeleteStudyProgram(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.studyProgramService.DeleteStudyProgram(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Study program deleted successfully")
}
