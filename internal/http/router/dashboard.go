package router

import (
	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/handler"
	"graspnest.app/api-server/internal/http/middleware"
	"graspnest.app/api-server/internal/model"
)

func DashboardRouter(rg *gin.RouterGroup, h *handler.DashboardHandler) {
	rg.GET("", h.Dashboard)
}

// AdminRouter exposes the global overview, SuperAdmin only.
func AdminRouter(rg *gin.RouterGroup, h *handler.DashboardHandler) {
	rg.Use(middleware.RequireRoles(model.RoleSuperAdmin))
	rg.GET("/dashboard", h.Overview)
}
