package router

import (
	"salon_reports_backend/internal/handlers"
	"salon_reports_backend/internal/middleware"
	"salon_reports_backend/internal/repositories"
	"salon_reports_backend/internal/services"
	"salon_reports_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	ReportRepo     repositories.ReportRepository
	AuthRepo       repositories.AuthRepository
	Tokens         *utils.TokenManager
	ReportOptions  []services.ReportServiceOption
	ReadinessProbe handlers.Pinger
	DataSource     string
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	// Initialize Services
	reportService := services.NewReportService(deps.ReportRepo, deps.ReportOptions...)
	authService := services.NewAuthService(deps.AuthRepo, deps.Tokens)

	// Initialize Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(deps.ReadinessProbe, deps.DataSource)

	SetupHealthRoutes(engine, healthHandler)

	api := engine.Group("/api")
	SetupPublicAuthRoutes(api.Group("/auth"), authHandler)
	SetupPublicReportRoutes(api.Group("/reports"), reportHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
