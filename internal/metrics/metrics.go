// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package metrics exposes Prometheus instrumentation for the service:
// API latency and throughput, recommendation pipeline timing, and catalog
// snapshot health.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylematch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "status"},
	)

	// Recommendation metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylematch_recommend_duration_seconds",
			Help:    "Duration of one full scoring and ranking pass",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylematch_recommend_candidates",
			Help:    "Accepted candidate count per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 25, 50, 100},
		},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_recommend_errors_total",
			Help: "Total recommendation failures by error kind",
		},
		[]string{"kind"}, // "invalid_profile", "catalog_unavailable", "internal"
	)

	// Catalog metrics
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_catalog_items",
			Help: "Items in the current catalog snapshot",
		},
	)

	CatalogDroppedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylematch_catalog_dropped_records",
			Help: "Records dropped during the last normalization pass",
		},
	)

	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_catalog_reloads_total",
			Help: "Catalog reload attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	// Analysis client metrics
	AnalysisCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylematch_analysis_calls_total",
			Help: "Calls to the external profile-analysis service by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "breaker_open"
	)
)

// ObserveAPIRequest records one API request.
func ObserveAPIRequest(endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestDuration.WithLabelValues(endpoint, code).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(endpoint, code).Inc()
}
