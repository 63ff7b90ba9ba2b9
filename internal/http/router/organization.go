package router

import (
	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/handler"
	"graspnest.app/api-server/internal/http/middleware"
	"graspnest.app/api-server/internal/model"
)

// OrganizationRouter wires the organization resource. Writes are
// SuperAdmin only; reads are open to any authenticated admin.
func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	writes := rg.Group("")
	writes.Use(middleware.RequireRoles(model.RoleSuperAdmin))
	{
		writes.POST("", h.Create)
		writes.PUT("/:id", h.Update)
		writes.DELETE("/:id", h.Remove)
	}
}
