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

	_ "github.com/prism-lt/prism-api/api/swagger"
	"github.com/prism-lt/prism-api/internal/handler"
	"github.com/prism-lt/prism-api/internal/middleware"
	"github.com/prism-lt/prism-api/internal/repository"
	"github.com/prism-lt/prism-api/internal/service"
	"github.com/prism-lt/prism-api/pkg/cache"
	"github.com/prism-lt/prism-api/pkg/config"
	"github.com/prism-lt/prism-api/pkg/database"
	"github.com/prism-lt/prism-api/pkg/logger"
	corsmiddleware "github.com/prism-lt/prism-api/pkg/middleware/cors"
	reqidmiddleware "github.com/prism-lt/prism-api/pkg/middleware/requestid"
)

// @title PRISM API
// @version 1.0.0
// @description Personnel tracking for company-level military units
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, stats caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()

	soldierRepo := repository.NewSoldierRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	structuralUnitRepo := repository.NewStructuralUnitRepository(db)

	metricsService := service.NewMetricsService()

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, validate, logr)
	soldierService := service.NewSoldierService(soldierRepo, validate, logr)
	taskService := service.NewTaskService(taskRepo, validate, logr)
	attendanceService := service.NewAttendanceService(attendanceRepo, soldierRepo, cacheRepo, metricsService, validate, logr, cfg.Stats.CacheTTL)
	exerciseService := service.NewExerciseService(exerciseRepo, taskRepo, soldierRepo, validate, logr)
	evaluationService := service.NewEvaluationService(evaluationRepo, taskRepo, soldierRepo, validate, logr)
	structuralUnitService := service.NewStructuralUnitService(structuralUnitRepo, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

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
	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:            handler.NewAuthHandler(authService, userService),
		Soldiers:        handler.NewSoldierHandler(soldierService),
		Tasks:           handler.NewTaskHandler(taskService),
		Attendance:      handler.NewAttendanceHandler(attendanceService),
		Exercises:       handler.NewExerciseHandler(exerciseService),
		Evaluations:     handler.NewEvaluationHandler(evaluationService),
		StructuralUnits: handler.NewStructuralUnitHandler(structuralUnitService),
	}, authService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
