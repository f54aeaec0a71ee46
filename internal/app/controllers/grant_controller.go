package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// GrantController serves research grants and community services. Both share one shape;
// label names the kind in response messages.
type GrantController struct {
	grantService services.GrantService
	label        string
	plural       string
}

// NewResearchController creates the controller for /research
func NewResearchController(grantService services.GrantService) *GrantController {
	return &GrantController{grantService: grantService, label: "Research", plural: "Research"}
}

// NewCommunityServiceController creates the controller for /services
func NewCommunityServiceController(grantService services.GrantService) *GrantController {
	return &GrantController{grantService: grantService, label: "Service", plural: "Services"}
}

func (c *GrantController) CreateGrant(ctx *gin.Context) {
	var req dto.GrantRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	grant, err := c.grantService.CreateGrant(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, grant, c.label+" created successfully")
}

func (c *GrantController) UpdateGrant(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.GrantRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	grant, err := c.grantService.UpdateGrant(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, grant, c.label+" updated successfully")
}

func (c *GrantController) GetGrantByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	grant, err := c.grantService.GetGrantByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, grant, c.label+" retrieved successfully")
}

func (c *GrantController) ListGrants(ctx *gin.Context) {
	params := listParams(ctx, helpers.DefaultPageSize)
	grants, total, err := c.grantService.ListGrants(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, grants, total, params, c.plural+" retrieved successfully")
}

func (c *GrantController) DeleteGrant(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.grantService.DeleteGrant(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, c.label+" deleted successfully")
}
