// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package analysis wraps the external vision/classification service that
// turns a user image into a UserProfile. The service is best-effort: any
// subset of optional profile fields may come back populated, and callers
// apply safe defaults downstream. Outbound calls go through a circuit
// breaker and a rate limiter since the API is external and metered.
package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/rentwear/stylematch/internal/metrics"
	"github.com/rentwear/stylematch/internal/stylematch"
)

// Service analyzes a user image and produces a profile.
type Service interface {
	// Analyze classifies the referenced image. The returned profile may
	// have any subset of optional fields populated.
	Analyze(ctx context.Context, imageRef string) (stylematch.UserProfile, error)
}

// ErrUnavailable is returned when the analysis service cannot be reached,
// including while the circuit breaker is open.
var ErrUnavailable = errors.New("analysis service unavailable")

// Config holds client configuration.
type Config struct {
	// URL is the analysis service endpoint.
	URL string

	// Timeout bounds one call. Default: 15s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Default: 5.
	RequestsPerSecond float64

	// BreakerMaxFailures is the consecutive-failure count that opens the
	// breaker. Default: 5.
	BreakerMaxFailures uint32

	// BreakerCooldown is how long the breaker stays open. Default: 30s.
	BreakerCooldown time.Duration
}

// Client calls the analysis service over HTTP.
type Client struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[stylematch.UserProfile]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates an analysis client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[stylematch.UserProfile](gobreaker.Settings{
		Name:    "analysis",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
	})

	return &Client{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger.With().Str("component", "analysis").Logger(),
	}
}

// analyzeRequest is the wire request body.
type analyzeRequest struct {
	Image string `json:"image"`
}

// Analyze classifies the referenced image into a profile.
func (c *Client) Analyze(ctx context.Context, imageRef string) (stylematch.UserProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return stylematch.UserProfile{}, fmt.Errorf("analysis rate limit: %w", err)
	}

	profile, err := c.breaker.Execute(func() (stylematch.UserProfile, error) {
		return c.doAnalyze(ctx, imageRef)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.AnalysisCallsTotal.WithLabelValues("breaker_open").Inc()
		c.logger.Warn().Msg("analysis circuit breaker open")
		return stylematch.UserProfile{}, ErrUnavailable
	case err != nil:
		metrics.AnalysisCallsTotal.WithLabelValues("failure").Inc()
		return stylematch.UserProfile{}, err
	}

	metrics.AnalysisCallsTotal.WithLabelValues("success").Inc()
	return profile, nil
}

func (c *Client) doAnalyze(ctx context.Context, imageRef string) (stylematch.UserProfile, error) {
	body, err := json.Marshal(analyzeRequest{Image: imageRef})
	if err != nil {
		return stylematch.UserProfile{}, fmt.Errorf("encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return stylematch.UserProfile{}, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return stylematch.UserProfile{}, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stylematch.UserProfile{}, fmt.Errorf("analysis service returned %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var profile stylematch.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return stylematch.UserProfile{}, fmt.Errorf("decode analysis response: %w", err)
	}

	return profile, nil
}
