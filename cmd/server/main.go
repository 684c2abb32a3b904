package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/superplace/growth-report-api/api/swagger"
	"github.com/superplace/growth-report-api/internal/aggregator"
	"github.com/superplace/growth-report-api/internal/handler"
	"github.com/superplace/growth-report-api/internal/middleware"
	"github.com/superplace/growth-report-api/internal/models"
	"github.com/superplace/growth-report-api/internal/repository"
	"github.com/superplace/growth-report-api/internal/service"
	"github.com/superplace/growth-report-api/pkg/cache"
	"github.com/superplace/growth-report-api/pkg/config"
	"github.com/superplace/growth-report-api/pkg/database"
	"github.com/superplace/growth-report-api/pkg/export"
	"github.com/superplace/growth-report-api/pkg/logger"
	corsmiddleware "github.com/superplace/growth-report-api/pkg/middleware/cors"
	reqidmiddleware "github.com/superplace/growth-report-api/pkg/middleware/requestid"
)

// @title Growth Report API
// @version 0.1.0
// @description Report template engine and public share surface
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Reports.CacheTTL, logr, true)
		}
	}

	templateRepo := repository.NewTemplateRepository(db)
	reportRepo := repository.NewPublishedReportRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	renderSvc := service.NewRenderService()
	assemblerSvc := service.NewAssemblerService(
		studentRepo,
		aggregator.NewAttendanceAggregator(db, cfg.Reports.RecentRecordLimit),
		aggregator.NewAIActivityAggregator(db),
		aggregator.NewConceptAggregator(db),
		aggregator.NewHomeworkAggregator(db, cfg.Reports.RecentRecordLimit),
		cfg.Reports.AggregatorTimeout,
		logr,
	)
	templateSvc := service.NewTemplateService(templateRepo, renderSvc, nil, logr)
	publicationSvc := service.NewPublicationService(
		reportRepo, templateRepo, studentRepo, assemblerSvc, renderSvc,
		cacheSvc, metricsSvc, nil, logr,
		service.PublicationConfig{
			CacheTTL:      cfg.Reports.CacheTTL,
			PublicBaseURL: cfg.Reports.PublicBaseURL,
		},
	)
	exportSvc := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), logr)
	tokenSvc := service.NewTokenService(cfg.JWT)

	if cfg.Templates.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := templateSvc.SeedDefaults(seedCtx); err != nil {
			logr.Warn("starter template seeding failed", zap.Error(err))
		}
		cancel()
	}

	templateHandler := handler.NewTemplateHandler(templateSvc, renderSvc)
	publicationHandler := handler.NewPublicationHandler(publicationSvc, exportSvc)
	publicHandler := handler.NewPublicReportHandler(publicationSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public share surface, no auth.
	r.GET("/r/:publicId", publicHandler.Get)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))
	{
		templates := api.Group("/templates")
		templates.GET("", templateHandler.List)
		templates.POST("", templateHandler.Create)
		templates.POST("/seed", middleware.RequireRoles(models.RoleAdmin, models.RoleDirector), templateHandler.Seed)
		templates.POST("/preview", templateHandler.Preview)
		templates.GET("/:id", templateHandler.Get)
		templates.PUT("/:id", templateHandler.Update)
		templates.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleDirector), templateHandler.Delete)
		templates.POST("/:id/duplicate", templateHandler.Duplicate)

		reports := api.Group("/reports")
		reports.GET("", publicationHandler.List)
		reports.POST("", publicationHandler.Publish)
		reports.DELETE("/:publicId", publicationHandler.Unpublish)
		reports.GET("/:publicId/export", publicationHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
