package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/common/logger"
	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/http/middleware"
	"graspnest.app/api-server/internal/service"
)

type DashboardHandler struct {
	dashboards service.DashboardService
	scopes     service.RoleResolver
}

func NewDashboardHandler(dashboards service.DashboardService, scopes service.RoleResolver) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, scopes: scopes}
}

// Dashboard resolves the caller's scope and answers with the aggregated
// hierarchy visible inside it.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
		return
	}

	scope, err := h.scopes.Resolve(ctx, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	switch scope.Kind {
	case service.ScopeOrganization:
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrgID: logger.Ptr(scope.OrgID)})
	case service.ScopeCommunity:
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			OrgID:       logger.Ptr(scope.OrgID),
			CommunityID: logger.Ptr(scope.CommunityID),
		})
	}

	dash, err := h.dashboards.Dashboard(ctx, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("dashboard", dash))
}

// Overview answers the global per-organization summary. Routing restricts
// it to SuperAdmin.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboards.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("overview", overview))
}
