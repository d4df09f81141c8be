package router

import (
	"salon_reports_backend/internal/handlers"
	"salon_reports_backend/internal/middleware"
	"salon_reports_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes registers the unauthenticated probes at the engine root.
func SetupHealthRoutes(engine *gin.Engine, healthHandler *handlers.HealthHandler) {
	engine.GET("/ping", healthHandler.Ping)
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET("/readyz", healthHandler.Readyz)
}

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupPublicReportRoutes exposes the usage document of the reports API.
func SetupPublicReportRoutes(group *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	group.GET("/comprehensive", reportHandler.ReportUsage)
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
	{
		reportRoutes.POST("/comprehensive", reportHandler.GenerateComprehensiveReport)
		reportRoutes.POST("/comprehensive/export", reportHandler.ExportComprehensiveReport)
	}
}
