package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kadpoly-ict/ards-api/api/swagger"
	"github.com/kadpoly-ict/ards-api/internal/handler"
	"github.com/kadpoly-ict/ards-api/internal/mailer"
	"github.com/kadpoly-ict/ards-api/internal/middleware"
	"github.com/kadpoly-ict/ards-api/internal/repository"
	"github.com/kadpoly-ict/ards-api/internal/service"
	"github.com/kadpoly-ict/ards-api/pkg/cache"
	"github.com/kadpoly-ict/ards-api/pkg/config"
	"github.com/kadpoly-ict/ards-api/pkg/database"
	"github.com/kadpoly-ict/ards-api/pkg/logger"
	corsmiddleware "github.com/kadpoly-ict/ards-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kadpoly-ict/ards-api/pkg/middleware/requestid"
)

// @title ARDS API
// @version 1.0.0
// @description Automated Result Dispatching System
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	resultRepo := repository.NewResultRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	resultMailer := mailer.NewResendMailer(cfg.Mailer.APIKey, cfg.Mailer.FromAddress, cfg.Mailer.Institution, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dispatchSvc := service.NewDispatchService(resultRepo, studentRepo, resultMailer, metricsSvc, logr, service.DispatchServiceConfig{
		UpdateRetries: cfg.Dispatch.UpdateRetries,
	})
	resultSvc := service.NewResultService(resultRepo, studentRepo, courseRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, logr)
	courseSvc := service.NewCourseService(courseRepo, logr)
	exportSvc := service.NewExportService(resultRepo, logr)
	dashboardSvc := service.NewDashboardService(resultRepo, cacheRepo, metricsSvc, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	dispatchHandler := handler.NewDispatchHandler(dispatchSvc)
	resultHandler := handler.NewResultHandler(resultSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.JWT(authSvc))
	if cfg.Dispatch.Enabled {
		protected.POST("/dispatch/send-all", dispatchHandler.SendAll)
		protected.POST("/dispatch/students/:id/send", dispatchHandler.SendOne)
	}
	protected.GET("/results", resultHandler.List)
	protected.POST("/results", resultHandler.Create)
	protected.DELETE("/results/:id", resultHandler.Delete)
	protected.POST("/results/requeue", resultHandler.Requeue)
	protected.GET("/results/export", resultHandler.Export)
	protected.GET("/students", studentHandler.List)
	protected.GET("/students/:id", studentHandler.Get)
	protected.GET("/courses", courseHandler.List)
	if cfg.Dashboard.Enabled {
		protected.GET("/dashboard/stats", dashboardHandler.Stats)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
