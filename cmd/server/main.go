package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/socialchef/sous/internal/api"
	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/httpclient"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/sentry"
	"github.com/socialchef/sous/internal/services/recipe"
	"github.com/socialchef/sous/internal/telemetry"
	"github.com/socialchef/sous/internal/web"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer shutdown(ctx)
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	gateway, err := recipe.NewGeminiGateway(ctx, recipe.GeminiOptions{
		APIKey:     cfg.GoogleAPIKey,
		Model:      cfg.Generation.Model,
		HTTPClient: httpclient.New(),
	})
	if err != nil {
		slog.Error("Error loading the specified model: " + err.Error())
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.RecoverySuggestion() != "" {
			slog.Error(appErr.RecoverySuggestion())
		}
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	apiServer := api.NewServer(cfg, gateway, renderer)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// A suggestion waits on the model for up to the client timeout.
		WriteTimeout: httpclient.DefaultTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "model", gateway.Model())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}
