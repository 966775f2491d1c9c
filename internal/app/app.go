package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/config"
	"github.com/studyforge/core/internal/database"
	"github.com/studyforge/core/internal/middleware"
	"github.com/studyforge/core/internal/modules/study/genai"
	"github.com/studyforge/core/internal/pkg/blobstore"
	pkgcron "github.com/studyforge/core/internal/pkg/cron"
	jwtpkg "github.com/studyforge/core/internal/pkg/jwt"
	pkgredis "github.com/studyforge/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	blobs  *blobstore.Store
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	var blobs *blobstore.Store
	if cfg.S3.Bucket != "" {
		blobs, err = blobstore.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("blob storage: %w", err)
		}
	} else {
		logger.Warn("s3 storage not configured, audio persistence disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())

	gen, err := genai.NewClient(ctx, cfg.Gemini)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("generative client: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		blobs:  blobs,
		logger: logger,
		cancel: cancel,
		sched:  pkgcron.New(logger.Named("cron")),
	}

	svcs := app.registerRoutes(rc, gen)
	registerCronJobs(app.sched, db, svcs.audio, svcs.reconciler, logger)
	go app.sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
