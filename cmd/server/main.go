// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package main is the entry point for the StyleMatch server.
//
// StyleMatch recommends rentable garments from a catalog based on a user
// style profile (gender, occasion, color palette, and optional inferred
// attributes). The server initializes components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Logging: structured zerolog output
//  3. Catalog: JSON catalog loaded, normalized, and periodically refreshed
//  4. Engine: weighted scoring and ranking
//  5. Analysis client (optional): external image-to-profile service
//  6. HTTP server: REST API under /api/v1 plus /healthz and /metrics
//
// The catalog refresher and the HTTP server run under a suture supervision
// tree and restart independently on failure.
//
// # Configuration
//
// Settings load via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (STYLEMATCH_SERVER_PORT, ...)
//   - Config file (config.yaml, or STYLEMATCH_CONFIG)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops accepting
// connections and waits for in-flight requests up to the configured
// shutdown timeout.
//
// # Example Usage
//
//	export STYLEMATCH_CATALOG_PATH=/data/catalog.json
//	export STYLEMATCH_SERVER_PORT=8470
//	./stylematch
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rentwear/stylematch/internal/analysis"
	"github.com/rentwear/stylematch/internal/api"
	"github.com/rentwear/stylematch/internal/catalog"
	"github.com/rentwear/stylematch/internal/config"
	"github.com/rentwear/stylematch/internal/logging"
	"github.com/rentwear/stylematch/internal/stylematch"
	"github.com/rentwear/stylematch/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.Path).
		Msg("Starting StyleMatch server")

	// === CATALOG ===

	store := catalog.NewStore(catalog.NewFileSource(cfg.Catalog.Path), logger)

	// === RECOMMENDATION ENGINE ===

	engineCfg := stylematch.DefaultConfig()
	engineCfg.ConfidenceThreshold = cfg.Recommend.ConfidenceThreshold
	engineCfg.MaxRecommendations = cfg.Recommend.MaxRecommendations
	engineCfg.ItemsPerPage = cfg.Recommend.ItemsPerPage
	engineCfg.Seed = cfg.Recommend.Seed
	engineCfg.Cache.Enabled = cfg.Recommend.CacheEnabled
	engineCfg.Cache.TTL = cfg.Recommend.CacheTTL

	engine, err := stylematch.NewEngine(engineCfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Cached candidate lists are stale once the snapshot changes.
	store.OnReload(engine.InvalidateCache)

	// Initial load. A failure is not fatal: the refresher retries and the
	// API serves 503 until a snapshot exists.
	if err := store.Reload(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Initial catalog load failed (will retry)")
	}

	// === ANALYSIS CLIENT (optional) ===

	var analysisSvc analysis.Service
	if cfg.Analysis.URL != "" {
		analysisSvc = analysis.NewClient(analysis.Config{
			URL:                cfg.Analysis.URL,
			Timeout:            cfg.Analysis.Timeout,
			RequestsPerSecond:  cfg.Analysis.RequestsPerSecond,
			BreakerMaxFailures: cfg.Analysis.BreakerMaxFailures,
			BreakerCooldown:    cfg.Analysis.BreakerCooldown,
		}, logger)
		logging.Info().Str("url", cfg.Analysis.URL).Msg("Analysis service enabled")
	} else {
		logging.Info().Msg("Analysis service disabled - requests must include a profile")
	}

	// === HTTP SERVER ===

	handler := api.NewHandler(engine, store, analysisSvc, logger)
	router := api.NewRouter(handler, api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	}))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// === SUPERVISION TREE ===

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddDataService(catalog.NewRefresher(store, cfg.Catalog.RefreshInterval, logger))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
