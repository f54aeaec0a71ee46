package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// parseID reads the :id path parameter. It writes a 400 and returns false when the id
// is not a positive integer.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid id"))
		return 0, false
	}
	return id, true
}

// listParams reads the q (or search), page and category query parameters.
func listParams(ctx *gin.Context, perPage int) dto.ListParams {
	search := strings.TrimSpace(ctx.Query("q"))
	if search == "" {
		search = strings.TrimSpace(ctx.Query("search"))
	}
	return dto.ListParams{
		Search:   search,
		Page:     helpers.ParsePage(ctx),
		PerPage:  perPage,
		Category: strings.TrimSpace(ctx.Query("category")),
	}
}

// respondList writes a page of rows with its pagination meta.
func respondList(ctx *gin.Context, rows interface{}, total int64, params dto.ListParams, message string) {
	meta := helpers.NewPaginationMeta(total, params.Page, params.PerPage, ctx.Request.URL)
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(rows, meta, message))
}

func respondOK(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func respondCreated(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}
