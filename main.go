package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/lmercier/tir-tracker/internal/config"
	"github.com/lmercier/tir-tracker/internal/database"
	server "github.com/lmercier/tir-tracker/internal/http"
	"github.com/lmercier/tir-tracker/internal/metrics"
	"github.com/lmercier/tir-tracker/internal/notifier"
	"github.com/lmercier/tir-tracker/internal/notifier/slack"
	"github.com/lmercier/tir-tracker/internal/pubsub"
	"github.com/lmercier/tir-tracker/internal/shooting"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := shooting.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	authSvc := auth.New(cfg.Auth.Username, cfg.Auth.Password)

	var rangeNotifier notifier.Notifier
	if cfg.Slack.Token != "" {
		rangeNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("No Slack token configured, notifications disabled")
		rangeNotifier = notifier.NewMock()
	}

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		events = pubsub.New(cfg.ProjectID)
	} else {
		log.Warn("No GCP project configured, event publishing disabled")
		events = pubsub.NewMock("")
	}

	s := server.NewServer(
		store,
		metricsSvc,
		metricsHandler,
		cfg,
		authSvc,
		rangeNotifier,
		events,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
