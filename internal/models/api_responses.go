// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package models holds wire-level types shared by HTTP handlers.
package models

import "time"

// APIResponse is the standardized response wrapper for all HTTP endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "INVALID_PROFILE", "message": "gender is required"},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is server time when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the processing time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms"`

	// RequestID is the request identifier for tracing.
	RequestID string `json:"request_id,omitempty"`

	// Cached is whether the response was served from cache.
	Cached bool `json:"cached,omitempty"`
}

// APIError carries machine-readable error details.
type APIError struct {
	// Code is a machine-readable error code (e.g. "INVALID_PROFILE").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details contains additional error context.
	Details interface{} `json:"details,omitempty"`
}

// Error codes used across the API.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidProfile     = "INVALID_PROFILE"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
)
