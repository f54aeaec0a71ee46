package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// HKIController handles HKI records endpoints
type HKIController struct {
	hkiService services.HKIService
}

// NewHKIController creates a new HKIController
func NewHKIController(hkiService services.HKIService) *HKIController {
	return &HKIController{hkiService: hkiService}
}

// CreateHKI handles HKI creation
// @Summary Create HKI
// @Tags hkis
// @Security BearerAuth
// @Param request body dto.HKIRequest true "HKI"
// @Success 201 {object} dto.APIResponse
// @Failure 422 {object} dto.APIResponse "Validation failed"
// @Router /hkis [post]
func (c *HKIController) CreateHKI(ctx *gin.Context) {
	var req dto.HKIRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	hki, err := c.hkiService.CreateHKI(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, hki, "HKI created successfully")
}

// UpdateHKI updates an existing HKI
// @Summary Update HKI
// @Tags hkis
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /hkis/{id} [patch]
func (c *HKIController) UpdateHKI(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.HKIRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	hki, err := c.hkiService.UpdateHKI(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, hki, "HKI updated successfully")
}

// GetHKIByID retrieves one HKI
// @Summary Get HKI by ID
// @Tags hkis
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /hkis/{id} [get]
func (c *HKIController) GetHKIByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	hki, err := c.hkiService.GetHKIByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, hki, "HKI retrieved successfully")
}

// ListHKIs retrieves a page of HKI records
// @Summary List HKI records
// @Tags hkis
// @Security BearerAuth
// @Param q query string false "Search"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse
// @Router /hkis [get]
func (c *HKIController) ListHKIs(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	rows, total, err := c.hkiService.ListHKIs(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, rows, total, params, "HKIs retrieved successfully")
}

// DeleteHKI deletes one HKI
// @Summary Delete HKI
// @Tags hkis
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} dto.APIResponse
// @Router /hkis/{id} [delete]
func (c *HKIController) DeleteHKI(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.hkiService.DeleteHKI(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "HKI deleted successfully")
}

// GetCategories lists the distinct HKI categories
// @Summary List HKI categories
// @Tags hkis
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /hkis/categories [get]
func (c *HKIController) GetCategories(ctx *gin.Context) {
	categories, err := c.hkiService.GetCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondOK(ctx, categories, "Categories retrieved successfully")
}
