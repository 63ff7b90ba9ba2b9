package router

import (
	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/handler"
	"graspnest.app/api-server/internal/http/middleware"
	"graspnest.app/api-server/internal/model"
)

// CommunityRouter wires the community resource. Writes are allowed for
// SuperAdmin and the owning tier above, OrgAdmin.
func CommunityRouter(rg *gin.RouterGroup, h *handler.CommunityHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	writes := rg.Group("")
	writes.Use(middleware.RequireRoles(model.RoleSuperAdmin, model.RoleOrgAdmin))
	{
		writes.POST("", h.Create)
		writes.PUT("/:id", h.Update)
		writes.DELETE("/:id", h.Remove)
	}
}
