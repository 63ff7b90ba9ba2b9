package router

import (
	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/core/config"
	"graspnest.app/api-server/internal/http/handler"
	"graspnest.app/api-server/internal/http/middleware"
	"graspnest.app/api-server/internal/service"
)

func SetupRoutes(engine *gin.Engine, services *service.Services, cfg config.Config) error {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	engine.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute).Handler())

	api := engine.Group("/api")

	authHandler := handler.NewAuthHandler(services.Auth())
	AuthRouter(api.Group("/auth"), authHandler)

	principal, err := middleware.Principal(cfg.Keycloak)
	if err != nil {
		return err
	}

	protected := api.Group("")
	protected.Use(principal)
	{
		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		OrganizationRouter(protected.Group("/org"), orgHandler)

		commHandler := handler.NewCommunityHandler(services.Communities())
		CommunityRouter(protected.Group("/community"), commHandler)

		dashHandler := handler.NewDashboardHandler(services.Dashboards(), services.Scopes())
		DashboardRouter(protected.Group("/dashboard"), dashHandler)
		AdminRouter(protected.Group("/admin"), dashHandler)
	}

	return nil
}
