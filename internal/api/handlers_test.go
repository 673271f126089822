// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rentwear/stylematch/internal/analysis"
	"github.com/rentwear/stylematch/internal/catalog"
	"github.com/rentwear/stylematch/internal/stylematch"
)

// mockAnalysis returns a fixed profile or error.
type mockAnalysis struct {
	profile stylematch.UserProfile
	err     error
	calls   int
}

func (m *mockAnalysis) Analyze(_ context.Context, _ string) (stylematch.UserProfile, error) {
	m.calls++
	if m.err != nil {
		return stylematch.UserProfile{}, m.err
	}
	return m.profile, nil
}

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Timestamp   string `json:"timestamp"`
		QueryTimeMS int64  `json:"query_time_ms"`
		RequestID   string `json:"request_id"`
	} `json:"metadata"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testCatalogRecords() []catalog.RawRecord {
	return []catalog.RawRecord{
		{ID: 1, Name: "Royal Blue Sherwani", Gender: "male", Category: "Sherwani", Price: 4000, Available: true},
		{ID: 2, Name: "Blue Tuxedo", Gender: "male", Category: "Tuxedo", Price: 3500, Available: true},
		{ID: 3, Name: "White Kurta", Gender: "male", Category: "Kurta", Price: 900, Available: true},
		{ID: 4, Name: "Red Lehnga", Gender: "female", Category: "Lehnga", Price: 5200, Available: true},
	}
}

// newTestServer builds a full router over a loaded store and real engine.
func newTestServer(t *testing.T, analysisSvc *mockAnalysis, loadCatalog bool) http.Handler {
	t.Helper()

	store := catalog.NewStore(&catalog.StaticSource{Records: testCatalogRecords()}, zerolog.Nop())
	if loadCatalog {
		if err := store.Reload(context.Background()); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
	}

	engine, err := stylematch.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	var svc analysis.Service
	if analysisSvc != nil {
		svc = analysisSvc
	}
	handler := NewHandler(engine, store, svc, zerolog.Nop())

	mw := NewMiddleware(&MiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	return NewRouter(handler, mw).Setup()
}

func postJSON(t *testing.T, srv http.Handler, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func weddingRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"profile": map[string]interface{}{
			"gender":        "male",
			"occasion":      "Wedding",
			"skin_tone":     "Wheatish",
			"body_type":     "Athletic",
			"style":         "Traditional",
			"color_palette": []string{"Blue", "White"},
			"age_group":     "26-35",
		},
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)
	rec, env := postJSON(t, srv, "/api/v1/recommendations", weddingRequestBody())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q, want success", env.Status)
	}
	if env.Metadata.RequestID == "" {
		t.Error("metadata request_id is empty")
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Error("X-Request-ID response header is empty")
	}

	var payload struct {
		Recommendations []stylematch.ScoredItem `json:"recommendations"`
		Count           int                     `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.Count == 0 || payload.Count != len(payload.Recommendations) {
		t.Fatalf("count = %d with %d items", payload.Count, len(payload.Recommendations))
	}
	if payload.Recommendations[0].Item.ID != 1 {
		t.Errorf("top item = %d, want the sherwani", payload.Recommendations[0].Item.ID)
	}
	for _, it := range payload.Recommendations {
		if it.Item.Gender == stylematch.GenderFemale {
			t.Errorf("womenswear item %d returned for a male profile", it.Item.ID)
		}
	}
}

func TestRecommendations_ValidationFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	// Neither profile nor image.
	rec, env := postJSON(t, srv, "/api/v1/recommendations", map[string]interface{}{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("error = %+v, want VALIDATION_FAILED", env.Error)
	}
}

func TestRecommendations_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendations_InvalidProfile(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)
	rec, env := postJSON(t, srv, "/api/v1/recommendations", map[string]interface{}{
		"profile": map[string]interface{}{"gender": "robot"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_PROFILE" {
		t.Errorf("error = %+v, want INVALID_PROFILE", env.Error)
	}
}

func TestRecommendations_CatalogUnavailable(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, false)
	rec, env := postJSON(t, srv, "/api/v1/recommendations", weddingRequestBody())

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "CATALOG_UNAVAILABLE" {
		t.Errorf("error = %+v, want CATALOG_UNAVAILABLE", env.Error)
	}
}

func TestRecommendations_ImagePath(t *testing.T) {
	t.Parallel()

	svc := &mockAnalysis{profile: stylematch.UserProfile{
		Gender:   stylematch.GenderMale,
		Occasion: "wedding",
	}}
	srv := newTestServer(t, svc, true)

	rec, env := postJSON(t, srv, "/api/v1/recommendations", map[string]interface{}{
		"image": "upload-ref-123",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}
	if svc.calls != 1 {
		t.Errorf("analysis calls = %d, want 1", svc.calls)
	}
}

func TestRecommendations_ImageWithoutService(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)
	rec, env := postJSON(t, srv, "/api/v1/recommendations", map[string]interface{}{
		"image": "upload-ref-123",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "BAD_REQUEST" {
		t.Errorf("error = %+v, want BAD_REQUEST", env.Error)
	}
}

func TestRecommendations_AnalysisFailure(t *testing.T) {
	t.Parallel()

	svc := &mockAnalysis{err: errors.New("analysis service down")}
	srv := newTestServer(t, svc, true)

	rec, _ := postJSON(t, srv, "/api/v1/recommendations", map[string]interface{}{
		"image": "upload-ref-123",
	})

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestRecommendationsPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	body := weddingRequestBody()
	body["page"] = 1
	body["items_per_page"] = 2
	rec, env := postJSON(t, srv, "/api/v1/recommendations/page", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var page stylematch.RecommendationPage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Page != 1 {
		t.Errorf("page = %d, want 1", page.Page)
	}
	if page.ItemsPerPage != 2 {
		t.Errorf("items_per_page = %d, want 2", page.ItemsPerPage)
	}
	if len(page.Items) > 2 {
		t.Errorf("len(items) = %d, want at most 2", len(page.Items))
	}
}

func TestRecommendationsPage_BadSort(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	body := weddingRequestBody()
	body["sort"] = "newest"
	rec, env := postJSON(t, srv, "/api/v1/recommendations/page", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("error = %+v, want VALIDATION_FAILED", env.Error)
	}
}

func TestCatalogStatus(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/status", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	var status catalog.Status
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatal(err)
	}
	if status.Items != 4 {
		t.Errorf("items = %d, want 4", status.Items)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		loadCatalog bool
		wantLoaded  bool
	}{
		{name: "catalog loaded", loadCatalog: true, wantLoaded: true},
		{name: "catalog not loaded", loadCatalog: false, wantLoaded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, nil, tt.loadCatalog)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			var health struct {
				Status        string `json:"status"`
				CatalogLoaded bool   `json:"catalog_loaded"`
			}
			if err := json.Unmarshal(env.Data, &health); err != nil {
				t.Fatal(err)
			}
			if health.Status != "ok" {
				t.Errorf("health status = %q, want ok", health.Status)
			}
			if health.CatalogLoaded != tt.wantLoaded {
				t.Errorf("catalog_loaded = %v, want %v", health.CatalogLoaded, tt.wantLoaded)
			}
		})
	}
}

func TestRequestID_EchoesClientHeader(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Errorf("X-Request-ID = %q, want client-supplied-id", got)
	}
}
