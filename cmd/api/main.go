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

	_ "github.com/fojia/lms/api/swagger"
	"github.com/fojia/lms/internal/handler"
	"github.com/fojia/lms/internal/middleware"
	"github.com/fojia/lms/internal/repository"
	"github.com/fojia/lms/internal/service"
	"github.com/fojia/lms/pkg/cache"
	"github.com/fojia/lms/pkg/config"
	"github.com/fojia/lms/pkg/database"
	"github.com/fojia/lms/pkg/database/migrations"
	"github.com/fojia/lms/pkg/logger"
	corsmiddleware "github.com/fojia/lms/pkg/middleware/cors"
	reqidmiddleware "github.com/fojia/lms/pkg/middleware/requestid"
)

// @title LMS Content Access API
// @version 0.1.0
// @description Course content access decisions and enrolment period management
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

	if err := migrations.Up(db.DB); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, course cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db, cacheRepo, cfg.Cache.TTL, metricsSvc)
	enrolmentRepo := repository.NewEnrolmentRepository(db)

	accessSvc := service.NewAccessService(service.NewContentAccessControl(), studentRepo, courseRepo, enrolmentRepo, metricsSvc, validate, logr)
	enrolmentSvc := service.NewEnrolmentService(enrolmentRepo, studentRepo, courseRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)

	accessHandler := handler.NewAccessHandler(accessSvc)
	enrolmentHandler := handler.NewEnrolmentHandler(enrolmentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/access/check", accessHandler.Check)

		api.POST("/enrolments", enrolmentHandler.Create)
		api.GET("/enrolments/:id", enrolmentHandler.Get)
		api.PUT("/enrolments/:id/period", enrolmentHandler.UpdatePeriod)

		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:id", courseHandler.Get)
		api.GET("/courses/:id/contents", courseHandler.ListContents)
		api.GET("/courses/:id/contents/export", courseHandler.ExportContents)
		api.POST("/courses/:id/lessons", courseHandler.AddLesson)
		api.POST("/courses/:id/homeworks", courseHandler.AddHomework)
		api.POST("/courses/:id/prep-materials", courseHandler.AddPrepMaterial)

		api.POST("/students", studentHandler.Create)
		api.GET("/students/:id", studentHandler.Get)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
