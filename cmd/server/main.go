package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon_reports_backend/internal/config"
	"salon_reports_backend/internal/database"
	"salon_reports_backend/internal/middleware"
	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/repositories"
	"salon_reports_backend/internal/repositories/memstore"
	"salon_reports_backend/internal/router"
	"salon_reports_backend/internal/services"
	"salon_reports_backend/internal/telemetry"
	"salon_reports_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	tokens, err := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	deps := router.Dependencies{
		Tokens:     tokens,
		DataSource: cfg.DataSource,
		ReportOptions: []services.ReportServiceOption{
			services.WithLocation(cfg.ReportLocation),
		},
	}

	switch cfg.DataSource {
	case config.DataSourceMemory:
		store, err := newMemoryStore(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed in-memory store")
		}
		deps.ReportRepo, deps.AuthRepo = store, store
	default:
		db, err := database.Open(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		if cfg.Database.ApplySchema {
			if err := database.ApplySchema(ctx, db, cfg.Database.SchemaPath); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
		}
		deps.ReportRepo = repositories.NewReportRepository(db)
		deps.AuthRepo = repositories.NewAuthRepository(db)
		deps.ReadinessProbe = db
	}
	utils.LogInfo("Data source initialized", map[string]interface{}{"data_source": cfg.DataSource})

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{utils.RequestIDHeader, "Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(engine, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		utils.LogError(err, "Failed to flush traces")
	}
}

// newMemoryStore returns an empty store with a single admin account, for local
// runs without Postgres.
func newMemoryStore(cfg *config.Config) (*memstore.Store, error) {
	password := cfg.AdminPassword
	if password == "" {
		password = utils.NewRequestID()
		utils.LogWarn("ADMIN_PASSWORD not set, generated a one-time password", map[string]interface{}{
			"username": cfg.AdminUsername,
			"password": password,
		})
	}
	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	store := memstore.New()
	store.AddUser(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, models.RoleAdmin)
	return store, nil
}
