// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package config loads the application configuration via Koanf v2 with
// layered sources (highest priority wins):
//
//  1. Environment variables (STYLEMATCH_SERVER_PORT, ...)
//  2. Config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	// Server configures the HTTP server.
	Server ServerConfig `koanf:"server" json:"server"`

	// Logging configures structured logging.
	Logging LoggingConfig `koanf:"logging" json:"logging"`

	// Catalog configures the catalog source and refresh schedule.
	Catalog CatalogConfig `koanf:"catalog" json:"catalog"`

	// Analysis configures the external profile-analysis client.
	Analysis AnalysisConfig `koanf:"analysis" json:"analysis"`

	// Recommend configures the recommendation engine.
	Recommend RecommendConfig `koanf:"recommend" json:"recommend"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0.
	Host string `koanf:"host" json:"host"`

	// Port is the listen port. Default: 8470.
	Port int `koanf:"port" json:"port"`

	// Timeout is the per-request read/write timeout. Default: 30s.
	Timeout time.Duration `koanf:"timeout" json:"timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins. Default: ["*"].
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins"`

	// RateLimitReqs is the allowed requests per window per client IP.
	// Default: 100.
	RateLimitReqs int `koanf:"rate_limit_reqs" json:"rate_limit_reqs"`

	// RateLimitWindow is the rate-limit window. Default: 1m.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" json:"rate_limit_window"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info.
	Level string `koanf:"level" json:"level"`

	// Format is json or console. Default: json.
	Format string `koanf:"format" json:"format"`

	// Caller includes caller file/line in log output. Default: false.
	Caller bool `koanf:"caller" json:"caller"`
}

// CatalogConfig configures the catalog source.
type CatalogConfig struct {
	// Path is the JSON catalog file to load.
	Path string `koanf:"path" json:"path"`

	// RefreshInterval is how often the snapshot is reloaded.
	// Default: 1h.
	RefreshInterval time.Duration `koanf:"refresh_interval" json:"refresh_interval"`
}

// AnalysisConfig configures the external profile-analysis client.
type AnalysisConfig struct {
	// URL is the analysis service endpoint. Empty disables the client;
	// callers must then supply profiles directly.
	URL string `koanf:"url" json:"url"`

	// Timeout bounds one analysis call. Default: 15s.
	Timeout time.Duration `koanf:"timeout" json:"timeout"`

	// RequestsPerSecond throttles outbound calls. Default: 5.
	RequestsPerSecond float64 `koanf:"requests_per_second" json:"requests_per_second"`

	// BreakerMaxFailures is the consecutive-failure count that opens the
	// circuit breaker. Default: 5.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures" json:"breaker_max_failures"`

	// BreakerCooldown is how long the breaker stays open. Default: 30s.
	BreakerCooldown time.Duration `koanf:"breaker_cooldown" json:"breaker_cooldown"`
}

// RecommendConfig configures engine knobs exposed through app config.
// The full weight table lives in the engine config and can be overridden
// here field by field.
type RecommendConfig struct {
	// ConfidenceThreshold gates item eligibility. Default: 0.6.
	ConfidenceThreshold float64 `koanf:"confidence_threshold" json:"confidence_threshold"`

	// MaxRecommendations is the candidate list size. Default: 15.
	MaxRecommendations int `koanf:"max_recommendations" json:"max_recommendations"`

	// ItemsPerPage is the default page size. Default: 6.
	ItemsPerPage int `koanf:"items_per_page" json:"items_per_page"`

	// Seed fixes the RNG backing the "popular" sort. Zero selects the
	// built-in default seed.
	Seed int64 `koanf:"seed" json:"seed"`

	// CacheTTL is the response cache time-to-live. Default: 5m.
	CacheTTL time.Duration `koanf:"cache_ttl" json:"cache_ttl"`

	// CacheEnabled toggles the response cache. Default: true.
	CacheEnabled bool `koanf:"cache_enabled" json:"cache_enabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8470,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Path:            "catalog.json",
			RefreshInterval: time.Hour,
		},
		Analysis: AnalysisConfig{
			Timeout:            15 * time.Second,
			RequestsPerSecond:  5,
			BreakerMaxFailures: 5,
			BreakerCooldown:    30 * time.Second,
		},
		Recommend: RecommendConfig{
			ConfidenceThreshold: 0.6,
			MaxRecommendations:  15,
			ItemsPerPage:        6,
			CacheTTL:            5 * time.Minute,
			CacheEnabled:        true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Catalog.RefreshInterval <= 0 {
		return fmt.Errorf("catalog.refresh_interval must be positive, got %v", c.Catalog.RefreshInterval)
	}
	if c.Recommend.ConfidenceThreshold < 0 || c.Recommend.ConfidenceThreshold > 1 {
		return fmt.Errorf("recommend.confidence_threshold must be in [0, 1], got %v", c.Recommend.ConfidenceThreshold)
	}
	if c.Recommend.MaxRecommendations <= 0 {
		return fmt.Errorf("recommend.max_recommendations must be positive, got %d", c.Recommend.MaxRecommendations)
	}
	if c.Recommend.ItemsPerPage <= 0 {
		return fmt.Errorf("recommend.items_per_page must be positive, got %d", c.Recommend.ItemsPerPage)
	}
	return nil
}
