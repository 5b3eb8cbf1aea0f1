package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studentportal/portal-api/api/swagger"
	"github.com/studentportal/portal-api/internal/handler"
	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/middleware"
	"github.com/studentportal/portal-api/internal/repository"
	"github.com/studentportal/portal-api/internal/service"
	"github.com/studentportal/portal-api/pkg/cache"
	"github.com/studentportal/portal-api/pkg/config"
	"github.com/studentportal/portal-api/pkg/database"
	"github.com/studentportal/portal-api/pkg/logger"
	corsmiddleware "github.com/studentportal/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studentportal/portal-api/pkg/middleware/requestid"
)

// @title Student Portal API
// @version 1.0.0
// @description Student records, GPA and payment-request workflow
// @BasePath /api
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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("redis connection failed", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.StudentTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authSvc := service.NewAuthService(userRepo, identity.NewAllowList(), cfg.JWT.Secret, cfg.JWT.Expiration, nil, logr)
	studentSvc := service.NewStudentService(studentRepo, cacheSvc, nil, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, cacheSvc, nil, logr)
	exportSvc := service.NewExportService(studentRepo, logr)

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Students:      handler.NewStudentHandler(studentSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Exports:       handler.NewExportHandler(exportSvc),
		AuthService:   authSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
