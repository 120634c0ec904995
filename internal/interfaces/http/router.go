// Package http wires the catalog's HTTP surface: route registration,
// middleware, and construction of every handler with its dependencies.
package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog/internal/application/dataset/usecases"
	"catalog/internal/domain/dataset"
	"catalog/internal/infrastructure/config"
	"catalog/internal/infrastructure/ratelimit"
	"catalog/internal/infrastructure/repository"
	"catalog/internal/infrastructure/sam"
	"catalog/internal/infrastructure/schema"
	"catalog/internal/infrastructure/storage"
	"catalog/internal/interfaces/http/handlers"
	"catalog/internal/interfaces/http/middleware"
	"catalog/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	datasetHandler *handlers.DatasetHandler
	statusHandler  *handlers.StatusHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    gin.HandlerFunc
	allowedOrigins []string
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	repo := repository.NewDatasetRepository(db, log.Named("repository"))

	samClient := sam.NewClient(&cfg.Sam, log.Named("sam"))
	services := usecases.StorageServices{
		dataset.StorageSystemTerraDataRepo:  storage.NewDataRepoService(&cfg.DataRepo, log.Named("datarepo")),
		dataset.StorageSystemTerraWorkspace: storage.NewWorkspaceService(&cfg.Rawls, log.Named("workspace")),
		dataset.StorageSystemExternal:       storage.NewExternalSystemService(repo, log.Named("external")),
	}

	validator, err := schema.NewValidator(cfg.Schema.Path, log.Named("schema"))
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata schema: %w", err)
	}

	datasetHandler := handlers.NewDatasetHandler(
		usecases.NewListDatasetsUseCase(services, repo, samClient, log),
		usecases.NewGetDatasetUseCase(services, repo, samClient, log),
		usecases.NewCreateDatasetUseCase(services, repo, samClient, validator, log),
		usecases.NewUpdateDatasetUseCase(services, repo, samClient, validator, log),
		usecases.NewDeleteDatasetUseCase(services, repo, samClient, log),
		usecases.NewListPreviewTablesUseCase(services, repo, samClient, log),
		usecases.NewGetPreviewTableUseCase(services, repo, samClient, log),
		usecases.NewExportDatasetUseCase(services, repo, samClient, log),
		log.Named("handler"),
	)

	statusHandler := handlers.NewStatusHandler(services, samClient, log.Named("status"))

	var limitMiddleware gin.HandlerFunc
	if cfg.RateLimit.Enabled && cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := ratelimit.NewRedisRateLimiter(redisClient)
		limitMiddleware = middleware.RateLimit(limiter, ratelimit.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.BurstSize,
		})
	}

	return &Router{
		engine:         engine,
		datasetHandler: datasetHandler,
		statusHandler:  statusHandler,
		authMiddleware: middleware.NewAuthMiddleware(samClient, log.Named("auth")),
		rateLimiter:    limitMiddleware,
		allowedOrigins: cfg.Server.AllowedOrigins,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(logger.NewLogger()))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/status", r.statusHandler.GetStatus)

	api := r.engine.Group("/api/v1")
	api.Use(r.authMiddleware.RequireAuth())

	datasets := api.Group("/datasets")
	{
		datasets.GET("", r.datasetHandler.List)
		datasets.POST("", r.datasetHandler.Create)
		datasets.GET("/:id", r.datasetHandler.Get)
		datasets.PUT("/:id", r.datasetHandler.Update)
		datasets.DELETE("/:id", r.datasetHandler.Delete)
		datasets.POST("/:id/export", r.datasetHandler.Export)

		preview := datasets.Group("")
		if r.rateLimiter != nil {
			preview.Use(r.rateLimiter)
		}
		preview.GET("/:id/tables", r.datasetHandler.ListPreviewTables)
		preview.GET("/:id/tables/:table", r.datasetHandler.GetPreviewTable)
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
