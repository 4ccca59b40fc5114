// Package main provides the main entry point for the Basalam vendor campaign portal
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/vendor-campaigns/app/handlers"
	"github.com/amirphl/vendor-campaigns/app/middleware"
	"github.com/amirphl/vendor-campaigns/app/router"
	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/app/views"
	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/amirphl/vendor-campaigns/config"
	"github.com/amirphl/vendor-campaigns/migrations"
	"github.com/amirphl/vendor-campaigns/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting vendor campaigns application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logOutput := setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg, logOutput)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	log.Println("Server stopped")
}

// setupLogging points the standard logger at stdout, a rotating file, or both
func setupLogging(cfg config.LoggingConfig) io.Writer {
	var out io.Writer = os.Stdout
	if cfg.Output == "file" || cfg.Output == "both" {
		file := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		if cfg.Output == "file" {
			out = file
		} else {
			out = io.MultiWriter(os.Stdout, file)
		}
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.LUTC)
	return out
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, logLevel string, out io.Writer) (*gorm.DB, error) {
	gormLog := gormlogger.New(log.New(out, "", log.LstdFlags|log.LUTC), gormlogger.Config{
		SlowThreshold:             cfg.SlowQueryTime,
		LogLevel:                  gormLogLevel(logLevel),
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

func initializeApplication(cfg *config.ProductionConfig, logOutput io.Writer) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database, cfg.Logging.Level, logOutput)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		stopFuncs = append(stopFuncs, func() { _ = sqlDB.Close() })
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(cfg.Database.URL()); err != nil {
			return nil, err
		}
	}

	redisClient, err := initializeCache(cfg.Cache)
	if err != nil {
		// The catalog cache is optional
		log.Printf("Cache disabled: %v", err)
		redisClient = nil
	}
	if redisClient != nil {
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), redisClient, cfg.Cache.CleanupInterval))
		stopFuncs = append(stopFuncs, func() { _ = redisClient.Close() })
	}

	// Services
	sessionService, err := services.NewSessionService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session service: %w", err)
	}
	basalamClient := services.NewBasalamClient(cfg.OAuth, cfg.Catalog, &http.Client{})
	catalogCache := services.NewCatalogCache(redisClient, cfg.Cache.RedisPrefix, cfg.Catalog.CacheTTL)

	// Repositories
	campaignRepo := repository.NewCampaignRepository(db)
	itemRepo := repository.NewCampaignItemRepository(db)

	// Business flows
	authFlow := businessflow.NewAuthFlow(basalamClient, cfg.Admin)
	campaignFlow := businessflow.NewCampaignFlow(campaignRepo, itemRepo)
	adminCampaignFlow := businessflow.NewAdminCampaignFlow(campaignRepo, itemRepo)
	selectionFlow := businessflow.NewSelectionFlow(campaignRepo, itemRepo)
	catalogFlow := businessflow.NewCatalogFlow(basalamClient, catalogCache, cfg.Catalog)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionService, cfg.Session)

	// Handlers
	h := router.Handlers{
		Auth:          handlers.NewAuthHandler(authFlow, sessionMiddleware),
		Pages:         handlers.NewPageHandler(campaignFlow, sessionMiddleware),
		Campaigns:     handlers.NewCampaignHandler(campaignFlow),
		Selections:    handlers.NewSelectionHandler(selectionFlow),
		Catalog:       handlers.NewCatalogHandler(catalogFlow),
		CampaignAdmin: handlers.NewCampaignAdminHandler(campaignFlow, adminCampaignFlow, sessionMiddleware),
	}

	engine := views.New()
	if err := engine.Load(); err != nil {
		return nil, err
	}

	fiberRouter := router.NewFiberRouter(cfg, h, sessionMiddleware, engine, logOutput)

	return &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
