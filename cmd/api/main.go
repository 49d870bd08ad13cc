package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/joshua-takyi/nearnow/internal/config"
	"github.com/joshua-takyi/nearnow/internal/connect"
	"github.com/joshua-takyi/nearnow/internal/container"
	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting NearNow API server", "environment", cfg.Environment)

	loc, _ := cfg.Location() // validated by LoadConfig

	today := time.Now().In(loc)
	seed, err := models.LoadSeed(cfg.SeedFile, today)
	if err != nil {
		logger.Error("Failed to load seed events", "error", err)
		os.Exit(1)
	}
	content, err := models.LoadContent(cfg.ContentFile)
	if err != nil {
		logger.Error("Failed to load site content", "error", err)
		os.Exit(1)
	}

	provider, err := geo.NewProvider(cfg.MapProvider, connect.GeocodingClient(cfg))
	if err != nil {
		logger.Error("Failed to create map provider", "error", err)
		os.Exit(1)
	}
	if cfg.MapAPIKey != "" {
		if err := provider.Initialize(cfg.MapAPIKey); err != nil {
			logger.Error("Failed to initialize map provider", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("MAP_API_KEY not set, location search stays disabled until a key is provided", "provider", provider.Name())
	}

	// Geocoding cache: Redis when configured, memory otherwise
	var redisClient *redis.Client
	var cache geo.Cache = geo.NewMemoryCache()
	if cfg.UsesRedis() {
		redisClient, err = connect.RedisConnect(cfg)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		cache = geo.NewRedisCache(redisClient)
		logger.Info("Connected to Redis successfully")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(container.Options{
		Logger:          logger,
		Location:        loc,
		AllowedOrigins:  cfg.AllowedOrigins,
		Seed:            seed,
		Content:         content,
		Provider:        provider,
		GeocodeCache:    cache,
		GeocodeCacheTTL: cfg.GeocodeCacheTTL,
	})
	logger.Info("Event store ready", "events", appContainer.EventStore.Len(), "timezone", loc.String())

	// Setup routes
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.RedisDisconnect(redisClient); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelInfo),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelDebug),
		})
	}

	return slog.New(handler)
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return level
}
