// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rentwear/stylematch/internal/analysis"
	"github.com/rentwear/stylematch/internal/catalog"
	"github.com/rentwear/stylematch/internal/logging"
	"github.com/rentwear/stylematch/internal/metrics"
	"github.com/rentwear/stylematch/internal/models"
	"github.com/rentwear/stylematch/internal/stylematch"
	"github.com/rentwear/stylematch/internal/validation"
)

// Handler serves the recommendation and catalog endpoints.
type Handler struct {
	engine   *stylematch.Engine
	store    *catalog.Store
	analysis analysis.Service // nil when no analysis service is configured
	logger   zerolog.Logger
}

// NewHandler creates the API handler. The analysis service may be nil; in
// that case requests must carry an explicit profile.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *stylematch.Engine, store *catalog.Store, analysisSvc analysis.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		store:    store,
		analysis: analysisSvc,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// recommendRequest is the body of POST /api/v1/recommendations. Either an
// explicit profile or an image reference must be present; the image path
// requires a configured analysis service.
type recommendRequest struct {
	// Profile is the user profile to score against.
	Profile *stylematch.UserProfile `json:"profile" validate:"required_without=Image"`

	// Image is an image reference for the analysis service to classify.
	Image string `json:"image,omitempty" validate:"required_without=Profile"`
}

// recommendResponse is the payload of a successful recommendation call.
type recommendResponse struct {
	Recommendations []stylematch.ScoredItem `json:"recommendations"`
	Count           int                     `json:"count"`
	Profile         stylematch.UserProfile  `json:"profile"`
}

// pageRequest is the body of POST /api/v1/recommendations/page.
type pageRequest struct {
	// Profile is the user profile to score against.
	Profile *stylematch.UserProfile `json:"profile" validate:"required_without=Image"`

	// Image is an image reference for the analysis service to classify.
	Image string `json:"image,omitempty"`

	// Filter restricts the candidate list before pagination.
	Filter stylematch.FilterState `json:"filter"`

	// Sort selects the result ordering. Default: match.
	Sort string `json:"sort" validate:"omitempty,oneof=match price-low price-high popular"`

	// Page is the 1-based page number. Out-of-range values are clamped.
	Page int `json:"page" validate:"omitempty,min=1"`

	// ItemsPerPage overrides the configured page size.
	ItemsPerPage int `json:"items_per_page" validate:"omitempty,min=1,max=100"`
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	profile, ok := h.resolveProfile(rw, r, req.Profile, req.Image)
	if !ok {
		return
	}

	ranked, ok := h.recommend(rw, r, profile)
	if !ok {
		return
	}

	rw.Success(recommendResponse{
		Recommendations: ranked,
		Count:           len(ranked),
		Profile:         profile,
	})
}

// RecommendationsPage handles POST /api/v1/recommendations/page. It runs
// the same scoring pass as Recommendations (the engine caches it), then
// filters, sorts, and paginates the candidate list.
func (h *Handler) RecommendationsPage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req pageRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	profile, ok := h.resolveProfile(rw, r, req.Profile, req.Image)
	if !ok {
		return
	}

	ranked, ok := h.recommend(rw, r, profile)
	if !ok {
		return
	}

	sort := stylematch.SortKey(req.Sort)
	if req.Sort == "" {
		sort = stylematch.SortMatch
	}

	page := h.engine.Paginate(ranked, req.Filter, sort, req.Page, req.ItemsPerPage)
	rw.Success(page)
}

// CatalogStatus handles GET /api/v1/catalog/status.
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.store.Status())
}

// Health handles GET /healthz. It reports liveness plus whether a catalog
// snapshot is loaded, so orchestrators can distinguish "up" from "ready".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.store.Status()
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":         "ok",
		"catalog_items":  status.Items,
		"catalog_loaded": !status.LoadedAt.IsZero(),
	})
}

// recommend runs the scoring pipeline and maps engine errors onto HTTP
// responses. It reports false when a response has already been written.
func (h *Handler) recommend(rw *ResponseWriter, r *http.Request, profile stylematch.UserProfile) ([]stylematch.ScoredItem, bool) {
	snapshot := h.store.Snapshot()

	start := time.Now()
	ranked, err := h.engine.Recommend(r.Context(), profile, snapshot)
	if err != nil {
		switch {
		case errors.Is(err, stylematch.ErrInvalidProfile):
			metrics.RecommendErrors.WithLabelValues("invalid_profile").Inc()
			rw.InvalidProfile("profile gender must be male, female, or unisex")
		case errors.Is(err, stylematch.ErrCatalogUnavailable):
			metrics.RecommendErrors.WithLabelValues("catalog_unavailable").Inc()
			rw.CatalogUnavailable()
		default:
			metrics.RecommendErrors.WithLabelValues("internal").Inc()
			logger := logging.Ctx(r.Context())
			logger.Error().Err(err).Msg("recommendation failed")
			rw.InternalError("recommendation failed")
		}
		return nil, false
	}

	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendCandidates.Observe(float64(len(ranked)))

	return ranked, true
}

// resolveProfile returns the explicit profile, or runs the analysis
// service when only an image reference was supplied. It reports false when
// a response has already been written.
func (h *Handler) resolveProfile(rw *ResponseWriter, r *http.Request, profile *stylematch.UserProfile, image string) (stylematch.UserProfile, bool) {
	if profile != nil {
		return *profile, true
	}

	if h.analysis == nil {
		rw.BadRequest("no analysis service configured; request must include a profile")
		return stylematch.UserProfile{}, false
	}

	analyzed, err := h.analysis.Analyze(r.Context(), image)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("profile analysis failed")
		rw.Error(http.StatusBadGateway, models.ErrCodeInternalError, "profile analysis failed")
		return stylematch.UserProfile{}, false
	}

	return analyzed, true
}

// decodeAndValidate decodes the request body into dst and validates it.
// It reports false when a response has already been written.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return false
	}

	if ve := validation.ValidateStruct(dst); ve != nil {
		rw.ValidationError(ve)
		return false
	}

	return true
}
