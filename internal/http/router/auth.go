package router

import (
	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.POST("/login", h.Login)
	rg.POST("/refresh-token", h.Refresh)
	rg.POST("/forget-password", h.ForgetPassword)
}
