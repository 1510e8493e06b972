package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/config"
	"github.com/miguelbonilla1/ai-automation/internal/database"
	"github.com/miguelbonilla1/ai-automation/internal/handlers"
	"github.com/miguelbonilla1/ai-automation/internal/repository"
	"github.com/miguelbonilla1/ai-automation/internal/webhook"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.EnsureSchema(ctx, db, cfg.DatabaseDriver); err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	if cfg.EnhanceSecret == "" {
		logger.Warn("TASK_ENHANCE_SECRET is not set; /api/enhance will reject every request")
	}

	notifier := webhook.New(cfg.WebhookURL,
		webhook.WithBearerToken(cfg.WebhookToken),
		webhook.WithTimeout(cfg.WebhookTimeout),
		webhook.WithLogger(logger))
	if !notifier.Enabled() {
		logger.Info("WEBHOOK_URL is not set; task webhooks are disabled")
	}

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.New(repository.NewTasks(db), notifier, logger)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(h, cfg.EnhanceSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr, "driver", cfg.DatabaseDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			// no new webhooks start once the server has stopped accepting requests
			"http-server": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				return notifier.Wait(ctx)
			},
		},
	)

	exitCode := <-wait
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	logger.Info("Application exited", "code", exitCode)
	os.Exit(exitCode)
}
