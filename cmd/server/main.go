package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/jeroginaca/threads/internal/cache"
	"github.com/jeroginaca/threads/internal/database"
	"github.com/jeroginaca/threads/internal/handlers"
	"github.com/jeroginaca/threads/internal/logger"
	"github.com/jeroginaca/threads/internal/middleware"
	"github.com/jeroginaca/threads/internal/revalidate"
	"github.com/jeroginaca/threads/internal/service"
	"github.com/jeroginaca/threads/internal/store"
	"github.com/jeroginaca/threads/internal/telemetry"
	"github.com/jeroginaca/threads/internal/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), getEnvOrDefault("LOG_FILE", "server.log")); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("threads server starting")

	db, err := database.Connect()
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it the server runs with caching and
	// invalidation disabled.
	var redisClient *cache.Client
	var invalidator revalidate.Invalidator = revalidate.Noop{}
	redisClient, err = cache.NewClient(
		os.Getenv("REDIS_HOST"),
		os.Getenv("REDIS_PORT"),
		os.Getenv("REDIS_PASSWORD"),
	)
	if err != nil {
		logger.Log.Warn("redis unavailable, response caching and invalidation disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		invalidator = revalidate.NewRedisInvalidator(redisClient)
	}

	tracerProvider, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  "threads-api",
		Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		OTLPEndpoint: getEnvOrDefault("OTLP_ENDPOINT", "localhost:4318"),
		Enabled:      os.Getenv("OTEL_ENABLED") == "true",
		SamplingRate: 1.0,
	})
	if err != nil {
		logger.Log.Warn("tracing disabled", zap.Error(err))
	}
	if tracerProvider != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(ctx); err != nil {
				logger.Log.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	users := store.NewUserDirectory(db)
	threads := store.NewThreadStore(db, users)
	if secs := util.ParseInt(os.Getenv("DB_QUERY_TIMEOUT"), 0); secs > 0 {
		users.WithTimeout(time.Duration(secs) * time.Second)
		threads.WithTimeout(time.Duration(secs) * time.Second)
	}
	feed := service.NewFeedService(threads)
	activity := service.NewActivityService(users, threads)
	h := handlers.New(users, threads, feed, activity, invalidator)

	if os.Getenv("ENVIRONMENT") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{getEnvOrDefault("CORS_ORIGIN", "*")}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-User-ID", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(otelgin.Middleware("threads-api"))

	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "threads-api",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cacheTTL := time.Duration(util.ParseInt(os.Getenv("RESPONSE_CACHE_TTL_SECONDS"), 60)) * time.Second

	api := r.Group("/api/v1")
	api.Use(middleware.RequireIdentity())
	{
		usersGroup := api.Group("/users")
		{
			usersGroup.PUT("", h.UpsertUser)
			usersGroup.GET("/me", h.GetMe)
			usersGroup.GET("/me/activity", h.GetActivity)
			usersGroup.GET("/search", h.SearchUsers)
			usersGroup.GET("/:id", h.GetUser)
			usersGroup.GET("/:id/threads", h.GetUserThreads)
		}

		threadsGroup := api.Group("/threads")
		{
			threadsGroup.POST("", h.CreateThread)
			threadsGroup.GET("/:id", middleware.ResponseCacheMiddleware(redisClient, cacheTTL), h.GetThread)
			threadsGroup.POST("/:id/comments", h.AddComment)
		}

		api.GET("/feed", middleware.ResponseCacheMiddleware(redisClient, cacheTTL), h.GetFeed)
	}

	port := getEnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Log.Info("listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("server exited")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
