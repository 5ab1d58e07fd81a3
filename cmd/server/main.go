package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/parksafe-la/internal/adapter/http"
	"github.com/couchcryptid/parksafe-la/internal/adapter/mapbox"
	"github.com/couchcryptid/parksafe-la/internal/config"
	"github.com/couchcryptid/parksafe-la/internal/geonames"
	"github.com/couchcryptid/parksafe-la/internal/model"
	"github.com/couchcryptid/parksafe-la/internal/observability"
	"github.com/couchcryptid/parksafe-la/internal/predict"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	classifier, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	logger.Info("model loaded", "path", cfg.ModelPath, "version", classifier.Version())

	opts := []predict.Option{predict.WithModelVersion(classifier.Version())}

	if cfg.CentroidsPath != "" {
		idx, err := geonames.LoadCentroidIndex(cfg.CentroidsPath)
		if err != nil {
			logger.Warn("centroid table unavailable, continuing without locations", "path", cfg.CentroidsPath, "error", err)
		} else {
			opts = append(opts, predict.WithCentroids(idx))
			logger.Info("centroid table loaded", "path", cfg.CentroidsPath, "zips", idx.Len())
		}
	}

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		opts = append(opts, predict.WithGeocoder(mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)))
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	svc := predict.NewService(classifier, logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
