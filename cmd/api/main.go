package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/api/handlers"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/Sonder9999/Daily-Web/internal/api/routes"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/events"
	"github.com/Sonder9999/Daily-Web/internal/domain/statistics"
	"github.com/Sonder9999/Daily-Web/internal/domain/template"
	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
	"github.com/Sonder9999/Daily-Web/internal/infrastructure/cache"
	"github.com/Sonder9999/Daily-Web/internal/infrastructure/persistence/postgres/connection"
	"github.com/Sonder9999/Daily-Web/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Sonder9999/Daily-Web/internal/infrastructure/scheduler"
	"github.com/Sonder9999/Daily-Web/pkg/broker"
	"github.com/Sonder9999/Daily-Web/pkg/config"
	"github.com/Sonder9999/Daily-Web/pkg/logger"
	"github.com/Sonder9999/Daily-Web/pkg/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

const brokerRetention = 100

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLoggerWithLevel(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info("Configuration loaded successfully",
		zap.String("mode", cfg.Server.Mode),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("redis", cfg.Redis.Enabled()),
		zap.Bool("backup", cfg.Backup.Enabled),
	)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DisableBindValidation()
	gin.DefaultWriter = os.Stdout

	// Background components log through logrus
	bgLogger := logrus.New()
	bgLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		bgLogger.SetLevel(logrus.InfoLevel)
	} else {
		bgLogger.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowAllOrigins:  len(cfg.CORS.AllowedOrigins) == 0,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     append(cfg.CORS.AllowedHeaders, "Accept-Encoding", "Content-Type", middleware.RequestIDHeader),
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Content-Encoding", middleware.RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	breaker := middleware.NewCircuitBreaker(middleware.DefaultCircuitBreakerConfig(), log.Logger)

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	if history, err := migrations.GetMigrationHistory(db); err == nil {
		log.Info("Schema is up to date", zap.Int("migrations", len(history)))
	}

	// Redis is optional; without it statistics and responses are not cached
	// and changes are not fanned out to other instances.
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
		if err != nil {
			log.Error("Redis unavailable, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	msgBroker := broker.NewInMemoryBroker(bgLogger, brokerRetention)
	defer msgBroker.Close()
	publisher := events.NewPublisher(msgBroker, redisClient, log.Logger)

	var (
		statsCache    statistics.Cache
		responseCache *middleware.CacheMiddleware
		importLimiter ratelimit.Limiter
	)
	if redisClient != nil {
		statsCache = redisClient
		responseCache = middleware.NewCacheMiddleware(redisClient, "http", cfg.Redis.TTL)
		if cfg.Import.RateLimit > 0 {
			importLimiter = ratelimit.NewRedisLimiter(redisClient.GetClient(), "ratelimit", cfg.Import.RateWindow, cfg.Import.RateLimit)
		}

		go func() {
			err := redisClient.Listen(ctx, cache.EventsChannel, func(data []byte) error {
				return publisher.Relay(ctx, data)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Change listener stopped", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	eventRepo := event.NewRepository(db.DB)
	templateRepo := template.NewRepository(db.DB)
	importRepo := transfer.NewRepository(db.DB)

	// Initialize services
	eventService := event.NewService(eventRepo, publisher, log.Logger)
	templateService := template.NewService(templateRepo, log.Logger)
	statisticsService := statistics.NewService(eventRepo, statsCache, cfg.Redis.TTL, log.Logger)
	transferService := transfer.NewService(eventRepo, importRepo, templateService, publisher, log.Logger)

	// Derived caches follow the change broker
	statsSub, err := statisticsService.WatchChanges(ctx, msgBroker)
	if err != nil {
		log.Fatal("Failed to subscribe statistics cache", zap.Error(err))
	}
	defer statsSub.Unsubscribe()

	if responseCache != nil {
		sub, err := msgBroker.Subscribe(ctx, events.TopicEventsChanged, func(ctx context.Context, _ *broker.Message) error {
			responseCache.Invalidate(ctx, routes.ChangeCachePatterns...)
			return nil
		})
		if err != nil {
			log.Fatal("Failed to subscribe response cache", zap.Error(err))
		}
		defer sub.Unsubscribe()
	}

	var backups *scheduler.Scheduler
	if cfg.Backup.Enabled {
		backups = scheduler.NewScheduler(transferService, cfg.Backup.Dir, cfg.Backup.Schedule, bgLogger)
		if err := backups.Start(); err != nil {
			log.Fatal("Failed to start backup scheduler", zap.Error(err))
		}
	}

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService, log.Logger)
	templateHandler := handlers.NewTemplateHandler(templateService, log.Logger)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, log.Logger)
	transferHandler := handlers.NewTransferHandler(transferService, cfg.Import.MaxUploadBytes, log.Logger)

	log.Info("Registering routes...")

	checks := map[string]routes.HealthCheck{"database": db.Ping}
	if redisClient != nil {
		checks["cache"] = redisClient.HealthCheck

		router.GET("/health/cache", func(c *gin.Context) {
			if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"component": "cache",
					"error":     err.Error(),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"component": "cache",
				"metrics":   redisClient.GetMetrics(),
			})
		})
	}
	routes.SetupHealthRoutes(router, checks)

	// Registered after the health routes so probes are never shed.
	router.Use(breaker.CircuitBreakerMiddleware())

	routes.NewEventRoutes(eventHandler).RegisterRoutes(router, responseCache)
	routes.NewTemplateRoutes(templateHandler).RegisterRoutes(router, responseCache)
	routes.NewStatisticsRoutes(statisticsHandler).RegisterRoutes(router)
	routes.NewTransferRoutes(transferHandler, importLimiter).RegisterRoutes(router, responseCache)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if backups != nil {
		backups.Stop(shutdownCtx)
	}
	cancel()
	msgBroker.Drain()

	log.Info("Server exited properly")
}
