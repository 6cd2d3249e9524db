// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/api"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/cache"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/config"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/notify"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/service"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/zone"
	"github.com/andresuchdata/sellerpulse/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	metricsRepo := postgres.NewMetricsRepository(db.DB)
	zoneStore := postgres.NewZoneStore(db.DB)
	jobRepo := postgres.NewJobRepository(db.DB)

	// Initialize cache
	zoneCache, err := cache.NewZoneCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Zone cache unavailable, continuing without it")
		zoneCache = cache.NewNoopZoneCache()
	}

	// Initialize services
	orchestrator := zone.NewOrchestrator(metricsRepo, zoneStore, jobRepo, notify.NewLogNotifier())
	zoneService := service.NewZoneService(zoneStore, jobRepo, zoneCache, orchestrator)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{ZoneService: zoneService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
