package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jsongrid/backend/internal/config"
	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/routes"
	"github.com/jsongrid/backend/internal/services"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if !envLoaded {
		logger.Warn("No .env file found, using environment variables", nil)
	}
	if cfg.AuthEnabled() && cfg.AccessPasswordHash == "" {
		logger.Warn("JWT_SECRET is set but ACCESS_PASSWORD_HASH is empty; no tokens can be issued", nil)
	}

	// Set Gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionStore := services.NewSessionStore(
		services.NewParserService(),
		cfg.DefaultMode,
		cfg.SessionTTL,
		cfg.SessionCleanupInterval,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.NewRouter(cfg, sessionStore),
	}

	logger.Info("Starting JSON grid backend server", map[string]interface{}{
		"port":         cfg.Port,
		"gin_mode":     gin.Mode(),
		"default_mode": cfg.DefaultMode,
		"auth":         cfg.AuthEnabled(),
	})

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.Info("Shutting down server gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("Server exited gracefully", nil)
	}
}
