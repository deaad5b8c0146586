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

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/analysis"
	"github.com/kinopulse/kinopulse/internal/cache"
	"github.com/kinopulse/kinopulse/internal/charts"
	"github.com/kinopulse/kinopulse/internal/corpus"
	"github.com/kinopulse/kinopulse/internal/events"
	"github.com/kinopulse/kinopulse/internal/logging"
	"github.com/kinopulse/kinopulse/internal/sentiment"
	"github.com/kinopulse/kinopulse/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.FromEnv()
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	loader := corpus.NewLoader(cfg)
	classifier := sentiment.NewClassifier()
	aggregator := analysis.NewAggregator(loader, classifier, cfg)

	renderer, err := charts.NewRenderer(cfg)
	if err != nil {
		slog.Error("[Main] Failed to initialize chart renderer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	chartCache, err := cache.NewChartCache(cfg)
	if err != nil {
		slog.Warn("[Main] Chart cache unavailable, continuing without it",
			slog.String("error", err.Error()))
		chartCache = nil
	}
	defer chartCache.Close()

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		slog.Warn("[Main] Aggregate events unavailable, continuing without them",
			slog.String("error", err.Error()))
		publisher = nil
	}
	defer publisher.Close()

	// Warm the corpus cache up front so the first request does not pay for
	// the load; a missing corpus is fine, lookups will report no data.
	if !loader.Load() {
		slog.Warn("[Main] Starting without a corpus, all lookups will be empty")
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: server.New(aggregator, renderer, chartCache, publisher).Router(),
	}

	go func() {
		slog.Info("[Main] Listening", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("[Main] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}
