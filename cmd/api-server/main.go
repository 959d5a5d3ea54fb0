package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"accesshub/database"
	"accesshub/internal/cache"
	"accesshub/internal/config"
	"accesshub/internal/http-api/handler"
	"accesshub/internal/http-api/middleware"
	"accesshub/internal/http-api/repository"
	"accesshub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	cacheClient, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		// The catalogue works without redis, just slower on the popular
		// listings.
		logger.Warn("redis unavailable, caching disabled", "error", err)
		cacheClient = nil
	}
	defer cacheClient.Close()

	// Repositories
	entryRepo := repository.NewEntryRepo(db)
	tagRepo := repository.NewTagRepo(db)
	featureRepo := repository.NewFeatureRepo(db)
	assocRepo := repository.NewAssociationRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// Services
	browseSvc := service.NewBrowseService(entryRepo)
	entrySvc := service.NewEntryService(entryRepo)
	tagSvc := service.NewTagService(tagRepo, assocRepo, cacheClient)
	featureSvc := service.NewFeatureService(featureRepo, assocRepo, cacheClient)
	assocSvc := service.NewAssociationService(assocRepo, entryRepo, tagRepo, featureRepo)
	commentSvc := service.NewCommentService(commentRepo, entryRepo)
	reviewSvc := service.NewReviewService(reviewRepo, entryRepo)

	// Handlers
	entryHandler := handler.NewEntryHandler(browseSvc, entrySvc)
	tagHandler := handler.NewTagHandler(tagSvc)
	featureHandler := handler.NewFeatureHandler(featureSvc)
	assocHandler := handler.NewAssociationHandler(assocSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	writeLimit := middleware.NewRateLimiter(cfg.WriteRatePerSecond, cfg.WriteRateBurst).Middleware()

	api := r.Group("/api")

	// Cross-category browse
	entryHandler.RegisterBrowseRoutes(api.Group("/entries"))

	// Vocabulary
	tagHandler.RegisterRoutes(api.Group("/tags"), api.Group("/tags", auth, writeLimit))
	featureHandler.RegisterRoutes(api.Group("/features"), api.Group("/features", auth, writeLimit))

	// Per-category entry routes and everything nested under an entry
	category := api.Group("/:category")
	categoryProtected := api.Group("/:category", auth, writeLimit)
	entryHandler.RegisterCategoryRoutes(category, categoryProtected)
	assocHandler.RegisterRoutes(category, categoryProtected)
	commentHandler.RegisterEntryRoutes(category, categoryProtected)
	reviewHandler.RegisterEntryRoutes(category, categoryProtected)

	// Edits addressed by comment/review id alone
	commentHandler.RegisterRoutes(api.Group("/comments", auth, writeLimit))
	reviewHandler.RegisterRoutes(api.Group("/reviews", auth, writeLimit))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
