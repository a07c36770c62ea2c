package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sharecgt/config"
	"github.com/guttosm/sharecgt/internal/api"
	"github.com/guttosm/sharecgt/internal/ingestion"
	"github.com/guttosm/sharecgt/internal/service"
	"github.com/guttosm/sharecgt/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() and applies pending migrations.
//   - Initializes the run store (RunsRepository) and the calculator service.
//   - Creates the HTTP handler layer with the configured upload limits.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := migrator(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	repo := storage.NewRunsRepository(db)
	svc := service.NewCalculatorService(repo, cfg.Calculator.ParseParallel)

	handler := api.NewHandler(svc, UploadLimits(cfg))
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
	})

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// UploadLimits converts the upload settings into ingestion limits.
func UploadLimits(cfg config.Config) ingestion.UploadLimits {
	return ingestion.UploadLimits{
		MaxFiles:     cfg.Upload.MaxFiles,
		MaxFileBytes: cfg.Upload.MaxFileBytes,
	}
}
