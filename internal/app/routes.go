package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyforge/core/internal/middleware"
	"github.com/studyforge/core/internal/modules/audio"
	"github.com/studyforge/core/internal/modules/chat"
	"github.com/studyforge/core/internal/modules/crontask"
	"github.com/studyforge/core/internal/modules/marketplace"
	"github.com/studyforge/core/internal/modules/sessions"
	"github.com/studyforge/core/internal/modules/study"
	"github.com/studyforge/core/internal/modules/study/contentstore"
	"github.com/studyforge/core/internal/modules/study/genai"
	"github.com/studyforge/core/internal/modules/study/reconcile"
	"github.com/studyforge/core/internal/modules/study/speech"
	"github.com/studyforge/core/internal/modules/study/transcript"
	"github.com/studyforge/core/internal/modules/upload"
	pkgredis "github.com/studyforge/core/internal/pkg/redis"
	"github.com/studyforge/core/internal/pkg/response"
)

// services collects the long-lived services cron jobs also depend on.
type services struct {
	audio      *audio.Service
	reconciler *reconcile.Service
}

func (a *App) registerRoutes(rc *pkgredis.Client, gen *genai.Client) services {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "studyforge-core",
			"version": "1.0.0",
		})
	})

	// Versioned API
	api := r.Group("/api/v2")
	api.Use(middleware.OptionalAuth())

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	synth := speech.NewSynthesizer(a.cfg.Deepgram, a.blobs, a.logger.Named("speech"))
	contents := contentstore.NewStore(db, a.logger.Named("contentstore"))

	studySvc := study.NewService(
		db,
		gen,
		transcript.NewFetcher(),
		synth,
		contents,
		a.cfg.Gemini.VideoModel,
		a.logger.Named("study"),
	)
	study.NewHandler(studySvc).RegisterRoutes(api, authMW)

	chat.NewHandler(chat.NewService(db, gen, a.logger.Named("chat"))).RegisterRoutes(api, authMW)

	reconciler := reconcile.NewService(db, nil, a.logger.Named("reconcile"))
	if a.blobs != nil {
		reconciler = reconcile.NewService(db, a.blobs, a.logger.Named("reconcile"))
	}
	sessions.NewHandler(sessions.NewService(db, reconciler)).RegisterRoutes(api, authMW)

	marketplace.NewHandler(marketplace.NewService(db)).RegisterRoutes(api, authMW)

	crontask.NewHandler(a.sched).RegisterRoutes(api, authMW)

	var audioSvc *audio.Service
	if a.blobs != nil {
		audioSvc = audio.NewService(a.blobs, synth, a.logger.Named("audio"))
		audio.NewHandler(audioSvc).RegisterRoutes(api, authMW)

		uploadSvc := upload.NewService(a.blobs, a.logger.Named("upload"))
		upload.NewHandler(uploadSvc).RegisterRoutes(api, authMW)
	}

	return services{audio: audioSvc, reconciler: reconciler}
}
