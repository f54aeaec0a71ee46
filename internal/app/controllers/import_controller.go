package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

// ImportController accepts spreadsheet uploads for every importable entity
type ImportController struct {
	importService services.ImportService
	maxUploadSize int64
}

// NewImportController creates a new ImportController. Uploads larger than maxUploadSize
// bytes are rejected.
func NewImportController(importService services.ImportService, maxUploadSize int64) *ImportController {
	return &ImportController{importService: importService, maxUploadSize: maxUploadSize}
}

// Import returns the upload handler for entity
// @Summary Import a spreadsheet
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx, xls or csv file"
// @Param reset_table formData bool false "Empty the table first"
// @Param category formData string false "google or scopus, publications only"
// @Success 201 {object} dto.APIResponse{data=dto.ImportResult}
// @Failure 422 {object} dto.APIResponse "Invalid file or rows"
// @Router /{entity}/import [post]
func (c *ImportController) Import(entity string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.maxUploadSize > 0 {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadSize)
		}

		file, err := ctx.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				middleware.HandleAPIError(ctx, apperrors.NewValidationError("file",
					fmt.Sprintf("The file field must not be greater than %d kilobytes.", c.maxUploadSize/1024)))
				return
			}
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "The file field is required."))
			return
		}

		var req dto.ImportRequest
		if !middleware.BindForm(ctx, &req) {
			return
		}

		result, err := c.importService.Import(ctx.Request.Context(), entity, file, req)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respondCreated(ctx, result, fmt.Sprintf("%d rows imported successfully", result.Imported))
	}
}
