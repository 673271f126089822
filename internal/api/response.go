// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/rentwear/stylematch/internal/logging"
	"github.com/rentwear/stylematch/internal/models"
	"github.com/rentwear/stylematch/internal/validation"
)

// ResponseWriter writes responses in the standard envelope. One instance is
// created per request so query timing and request IDs are attached
// automatically.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a response writer for one request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, startTime: time.Now()}
}

// Success writes a 200 response with data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.SuccessCached(data, false)
}

// SuccessCached writes a 200 response with data, marking whether it was
// served from cache.
func (rw *ResponseWriter) SuccessCached(data interface{}, cached bool) {
	rw.writeJSON(http.StatusOK, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rw.metadata(cached),
	})
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.ErrorWithDetails(statusCode, code, message, nil)
}

// ErrorWithDetails writes an error response with additional details.
func (rw *ResponseWriter) ErrorWithDetails(statusCode int, code, message string, details interface{}) {
	rw.writeJSON(statusCode, models.APIResponse{
		Status:   "error",
		Metadata: rw.metadata(false),
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest writes a 400 Bad Request error.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, models.ErrCodeBadRequest, message)
}

// ValidationError writes a 400 error carrying the per-field failures.
func (rw *ResponseWriter) ValidationError(ve *validation.RequestValidationError) {
	apiErr := ve.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// InvalidProfile writes a 400 error for a profile scoring cannot use.
func (rw *ResponseWriter) InvalidProfile(message string) {
	rw.Error(http.StatusBadRequest, models.ErrCodeInvalidProfile, message)
}

// CatalogUnavailable writes a 503 error when no catalog snapshot exists.
func (rw *ResponseWriter) CatalogUnavailable() {
	rw.Error(http.StatusServiceUnavailable, models.ErrCodeCatalogUnavailable, "catalog is not available")
}

// NotFound writes a 404 Not Found error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, models.ErrCodeNotFound, message)
}

// InternalError writes a 500 Internal Server Error.
func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, models.ErrCodeInternalError, message)
}

func (rw *ResponseWriter) metadata(cached bool) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(rw.startTime).Milliseconds(),
		RequestID:   logging.RequestIDFromContext(rw.r.Context()),
		Cached:      cached,
	}
}

func (rw *ResponseWriter) writeJSON(statusCode int, resp models.APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
