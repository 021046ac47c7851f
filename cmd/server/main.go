package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-content-api/internal/api"
	"github.com/blog-content-api/internal/bootstrap"
	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	// Initialize logger
	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "blog-content-api")
	log.Info().Msg("Starting Blog Content API server...")
	if envErr == nil {
		log.Debug().Msg("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize sources, preference store and services
	app, err := bootstrap.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Close()

	var store api.HealthChecker
	if app.DB != nil {
		store = app.DB
	}

	// Initialize router
	router := api.NewRouter(app.Services, cfg, store, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("default_source", string(app.Services.Content.DefaultSource())).
			Str("preferences", cfg.Preferences.Driver).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
