package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hamroguru/tutor-api/api/swagger"
	"github.com/hamroguru/tutor-api/internal/handler"
	"github.com/hamroguru/tutor-api/internal/middleware"
	"github.com/hamroguru/tutor-api/internal/service"
	"github.com/hamroguru/tutor-api/internal/store"
	"github.com/hamroguru/tutor-api/pkg/cache"
	"github.com/hamroguru/tutor-api/pkg/config"
	"github.com/hamroguru/tutor-api/pkg/logger"
	corsmiddleware "github.com/hamroguru/tutor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hamroguru/tutor-api/pkg/middleware/requestid"
)

// @title Tutor Marketplace API
// @version 1.0.0
// @description Registration, login and teacher directory backend
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

	// The backing store is chosen exactly once here and never swapped.
	st, err := store.Open(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "error", err)
	}

	listCache := service.NewCache(nil, cfg.Cache.TTL, logr, false)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unreachable, caching disabled")
		} else {
			listCache = service.NewCache(redisClient, cfg.Cache.TTL, logr, true)
		}
	}

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(st, listCache, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	teacherSvc := service.NewTeacherService(st, listCache, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	adminHandler := handler.NewAdminHandler(teacherSvc, cfg.Admin.Password)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "tutor-api", "store": st.Kind()})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": st.Kind()})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/list-teachers", teacherHandler.List)
		api.GET("/teacher/:id", teacherHandler.Get)
		api.GET("/teacher/profile", teacherHandler.GetProfile)
		api.POST("/teacher/profile", middleware.JWT(authSvc), teacherHandler.UpdateProfile)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/register-teacher", authHandler.RegisterTeacher)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/delete-teacher", adminHandler.DeleteTeacher)
			admin.GET("/export-teachers", adminHandler.ExportTeachers)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", st.Kind())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
