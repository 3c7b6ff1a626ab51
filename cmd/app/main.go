package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Mustafaygt66/EMKO/docs"
	"github.com/Mustafaygt66/EMKO/internal/common/cache"
	"github.com/Mustafaygt66/EMKO/internal/common/config"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	authHTTP "github.com/Mustafaygt66/EMKO/internal/features/auth/delivery/http"
	authPostgres "github.com/Mustafaygt66/EMKO/internal/features/auth/repository/postgres"
	authRedis "github.com/Mustafaygt66/EMKO/internal/features/auth/repository/redis"
	authService "github.com/Mustafaygt66/EMKO/internal/features/auth/service"
	"github.com/Mustafaygt66/EMKO/internal/features/contact"
	favoriteHTTP "github.com/Mustafaygt66/EMKO/internal/features/favorite/delivery/http"
	favoritePostgres "github.com/Mustafaygt66/EMKO/internal/features/favorite/repository/postgres"
	favoriteService "github.com/Mustafaygt66/EMKO/internal/features/favorite/service"
	listingHTTP "github.com/Mustafaygt66/EMKO/internal/features/listing/delivery/http"
	listingPostgres "github.com/Mustafaygt66/EMKO/internal/features/listing/repository/postgres"
	listingService "github.com/Mustafaygt66/EMKO/internal/features/listing/service"
	moderationHTTP "github.com/Mustafaygt66/EMKO/internal/features/moderation/delivery/http"
	moderationPostgres "github.com/Mustafaygt66/EMKO/internal/features/moderation/repository/postgres"
	moderationRedis "github.com/Mustafaygt66/EMKO/internal/features/moderation/repository/redis"
	moderationService "github.com/Mustafaygt66/EMKO/internal/features/moderation/service"
	sessionHTTP "github.com/Mustafaygt66/EMKO/internal/features/session/delivery/http"
	sessionService "github.com/Mustafaygt66/EMKO/internal/features/session/service"
	"github.com/Mustafaygt66/EMKO/internal/platform/mail"
	"github.com/Mustafaygt66/EMKO/internal/platform/postgres"
	"github.com/Mustafaygt66/EMKO/internal/platform/redis"
	"github.com/Mustafaygt66/EMKO/internal/workers"
)

// @title           EMKO API
// @version         1.0
// @description     Neighborhood classifieds board: listings, promotions, favorites and moderation.

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer <session token>" issued by /auth/verify

// @tag.name listings
// @tag.description Browsing, posting and deleting listings

// @tag.name promotion
// @tag.description Featured placement requests

// @tag.name favorites
// @tag.description Per-user bookmarks

// @tag.name auth
// @tag.description Passwordless email sign-in

// @tag.name admin
// @tag.description Promotion approval, rejection and bans

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("emko", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting EMKO backend")

	ctx := context.Background()

	postgresClient, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresClient.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	redisClient, err := redis.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	// Repositories
	db := postgresClient.GetDB()
	listingRepository := listingPostgres.NewPostgresRepository(db)
	favoriteRepository := favoritePostgres.NewPostgresRepository(db)
	banRepository := moderationPostgres.NewPostgresRepository(db)
	userRepository := authPostgres.NewUserRepository(db)
	tokenStore := authRedis.NewTokenStore(redisClient)
	banCache := moderationRedis.NewBanCache(redisClient, cfg.Moderation.BanCacheTTL)

	// Services
	links := contact.NewBuilder(cfg.Contact.OperatorPhone, cfg.Contact.ChatBaseURL)
	listingSvc := listingService.NewListingService(listingRepository, favoriteRepository, cacheService, cfg.Listings.CacheTTL, links)
	favoriteSvc := favoriteService.NewFavoriteService(favoriteRepository, listingRepository)
	moderationSvc := moderationService.NewModerationService(banRepository, banCache, favoriteRepository, listingSvc)
	sessionSvc := sessionService.NewSessionService(moderationSvc, favoriteRepository)
	authSvc := authService.NewAuthService(
		userRepository,
		tokenStore,
		authService.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		mail.New(cfg),
		authService.Options{
			MagicLinkTTL:     cfg.Auth.MagicLinkTTL,
			MagicLinkBaseURL: cfg.Auth.MagicLinkBaseURL,
			IsAdmin:          cfg.IsAdminEmail,
		},
	)

	expiryWorker := workers.NewPromotionExpiryWorker(listingRepository, cfg.Listings.ExpirySweepInterval, func(ctx context.Context) {
		if err := cacheService.InvalidateListings(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to invalidate listings snapshot")
		}
	})
	expiryWorker.Start()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(authSvc))

	linkLimiter := middleware.NewIPRateLimiter(cfg.Auth.LinkRate, cfg.Auth.LinkBurst)
	authHTTP.NewAuthHandler(authSvc, linkLimiter).RegisterRoutes(v1)
	sessionHTTP.NewStateHandler(sessionSvc).RegisterRoutes(v1)
	listingHTTP.NewListingHandler(listingSvc).RegisterRoutes(v1, moderationSvc)
	favoriteHTTP.NewFavoriteHandler(favoriteSvc).RegisterRoutes(v1, moderationSvc)
	moderationHTTP.NewModerationHandler(moderationSvc).RegisterRoutes(v1)

	setupProbes(router, postgresClient, redisClient)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	expiryWorker.Stop()

	logger.Info().Msg("Server exited")
}

func setupProbes(router *gin.Engine, postgresClient *postgres.Client, redisClient *goredis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "emko",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "postgres unavailable",
				"details": err.Error(),
			})
			return
		}

		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "emko",
		})
	})
}
