// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rentwear/stylematch/internal/stylematch"
)

// newTestClient wires a client to the given server with a high rate limit
// so tests never sleep on the limiter.
func newTestClient(url string, maxFailures uint32) *Client {
	return NewClient(Config{
		URL:                url,
		Timeout:            5 * time.Second,
		RequestsPerSecond:  1000,
		BreakerMaxFailures: maxFailures,
		BreakerCooldown:    time.Minute,
	}, zerolog.Nop())
}

func TestClient_Analyze(t *testing.T) {
	t.Parallel()

	want := stylematch.UserProfile{
		Gender:       stylematch.GenderMale,
		Occasion:     "wedding",
		SkinTone:     "Wheatish",
		ColorPalette: []string{"Blue", "White"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Image != "upload-ref-7" {
			t.Errorf("image = %q, want upload-ref-7", req.Image)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL, 5).Analyze(context.Background(), "upload-ref-7")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Gender != want.Gender || got.Occasion != want.Occasion {
		t.Errorf("Analyze() = %+v, want %+v", got, want)
	}
	if len(got.ColorPalette) != 2 {
		t.Errorf("ColorPalette = %v, want 2 colors", got.ColorPalette)
	}
}

func TestClient_Analyze_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Analyze(context.Background(), "ref")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Analyze() error = %v, want ErrUnavailable", err)
	}
}

func TestClient_Analyze_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, 5).Analyze(context.Background(), "ref"); err == nil {
		t.Error("Analyze() expected decode error")
	}
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	const maxFailures = 3
	client := newTestClient(srv.URL, maxFailures)

	for i := 0; i < maxFailures; i++ {
		if _, err := client.Analyze(context.Background(), "ref"); err == nil {
			t.Fatalf("call %d: expected failure", i+1)
		}
	}

	// Breaker is open now: no request reaches the server.
	_, err := client.Analyze(context.Background(), "ref")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Analyze() error = %v, want ErrUnavailable with open breaker", err)
	}
	if got := calls.Load(); got != maxFailures {
		t.Errorf("server calls = %d, want %d (breaker must short-circuit)", got, maxFailures)
	}
}

func TestClient_Analyze_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestClient(srv.URL, 5).Analyze(ctx, "ref"); err == nil {
		t.Error("Analyze() expected error with canceled context")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{URL: "http://localhost:1"}, zerolog.Nop())
	if client.client.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default 15s", client.client.Timeout)
	}
}
