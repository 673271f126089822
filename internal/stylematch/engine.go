// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"context"
	"fmt"
	"hash/fnv"
	"runtime"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Note: this package has no dependencies on other internal packages so the
// engine can be embedded in any transport without import cycles. Catalog
// loading, HTTP, and metrics all live outside.

// Engine scores a garment catalog against user profiles and produces ranked
// candidate lists. It is safe for concurrent use. The catalog passed to
// Recommend is treated as an immutable snapshot for the duration of the
// call and is never mutated.
type Engine struct {
	config *Config
	logger zerolog.Logger

	paginator *Paginator

	// Response cache
	cache   map[uint64]cacheEntry
	cacheMu sync.RWMutex

	// Counters
	requestCount uint64
	cacheHits    uint64
	cacheMisses  uint64
	countersMu   sync.Mutex
}

// cacheEntry holds one cached candidate list.
type cacheEntry struct {
	items     []ScoredItem
	expiresAt time.Time
}

// NewEngine creates a recommendation engine. A nil config selects the
// production defaults; nil tables inside a config fall back to the built-in
// heuristic tables.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg = cfg.withDefaults()

	return &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "stylematch").Logger(),
		paginator: NewPaginator(cfg.Seed),
		cache:     make(map[uint64]cacheEntry),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend scores every catalog item against the profile and returns the
// ranked candidate list, at most MaxRecommendations long, with reasons
// attached. An empty return with a nil error means nothing cleared the
// confidence threshold; that is an expected outcome, not a failure.
func (e *Engine) Recommend(ctx context.Context, profile UserProfile, catalog []GarmentItem) ([]ScoredItem, error) {
	start := time.Now()
	e.countersMu.Lock()
	e.requestCount++
	e.countersMu.Unlock()

	profile = profile.Normalized()
	if !profile.Gender.Valid() {
		return nil, ErrInvalidProfile
	}
	if len(catalog) == 0 {
		return nil, ErrCatalogUnavailable
	}

	logger := e.logger.With().
		Str("gender", string(profile.Gender)).
		Str("occasion", profile.Occasion).
		Int("catalog_size", len(catalog)).
		Logger()

	key := e.cacheKey(profile, catalog)
	if items, ok := e.checkCache(key); ok {
		logger.Debug().Msg("cache hit")
		return items, nil
	}

	sc := newScorer(profile, e.config)

	accepted, err := e.scoreCatalog(ctx, sc, catalog)
	if err != nil {
		return nil, err
	}

	ranked := rankCandidates(accepted, e.config.MaxRecommendations)
	for i := range ranked {
		ranked[i].Reason = sc.buildReason(ranked[i])
	}

	e.storeCache(key, ranked)

	logger.Debug().
		Int("accepted", len(accepted)).
		Int("returned", len(ranked)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("recommendation complete")

	return ranked, nil
}

// Paginate applies filters, sorting, and pagination to a candidate list.
// A non-positive itemsPerPage falls back to the configured default.
func (e *Engine) Paginate(items []ScoredItem, filter FilterState, key SortKey, page, itemsPerPage int) RecommendationPage {
	if itemsPerPage <= 0 {
		itemsPerPage = e.config.ItemsPerPage
	}
	return e.paginator.Apply(items, filter, key, page, itemsPerPage)
}

// scoreCatalog scores items in parallel with a bounded worker pool.
// Scoring is embarrassingly parallel per item; no ordering is imposed here,
// ranking sorts deterministically afterward.
func (e *Engine) scoreCatalog(ctx context.Context, sc *scorer, catalog []GarmentItem) ([]ScoredItem, error) {
	workers := e.config.ScoringWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(catalog) {
		workers = len(catalog)
	}

	perWorker := make([][]ScoredItem, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var out []ScoredItem
			for i := w; i < len(catalog); i += workers {
				if ctx.Err() != nil {
					return
				}
				if scored, ok := sc.score(catalog[i]); ok {
					out = append(out, scored)
				}
			}
			perWorker[w] = out
		}(w)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var accepted []ScoredItem
	for _, out := range perWorker {
		accepted = append(accepted, out...)
	}
	return accepted, nil
}

// InvalidateCache drops all cached candidate lists. Called when the catalog
// snapshot is replaced.
func (e *Engine) InvalidateCache() {
	e.cacheMu.Lock()
	e.cache = make(map[uint64]cacheEntry)
	e.cacheMu.Unlock()
}

// CacheStats returns request and cache hit/miss counts.
func (e *Engine) CacheStats() (requests, hits, misses uint64) {
	e.countersMu.Lock()
	defer e.countersMu.Unlock()
	return e.requestCount, e.cacheHits, e.cacheMisses
}

// cacheKey hashes the normalized profile together with a cheap catalog
// fingerprint. The store invalidates the cache on snapshot reload, so the
// fingerprint only guards against callers swapping catalogs themselves.
func (e *Engine) cacheKey(profile UserProfile, catalog []GarmentItem) uint64 {
	h := fnv.New64a()
	if b, err := json.Marshal(profile); err == nil {
		_, _ = h.Write(b)
	}
	fp := [3]int{len(catalog), catalog[0].ID, catalog[len(catalog)-1].ID}
	_, _ = fmt.Fprintf(h, "%d/%d/%d", fp[0], fp[1], fp[2])
	return h.Sum64()
}

func (e *Engine) checkCache(key uint64) ([]ScoredItem, bool) {
	if !e.config.Cache.Enabled {
		return nil, false
	}

	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		e.countersMu.Lock()
		e.cacheMisses++
		e.countersMu.Unlock()
		return nil, false
	}

	e.countersMu.Lock()
	e.cacheHits++
	e.countersMu.Unlock()

	return append([]ScoredItem(nil), entry.items...), true
}

func (e *Engine) storeCache(key uint64, items []ScoredItem) {
	if !e.config.Cache.Enabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	// Full reset when the cap is hit; recommendation caches are cheap to
	// rebuild and an LRU here would not earn its complexity.
	if len(e.cache) >= e.config.Cache.MaxEntries {
		e.cache = make(map[uint64]cacheEntry)
	}

	e.cache[key] = cacheEntry{
		items:     append([]ScoredItem(nil), items...),
		expiresAt: time.Now().Add(e.config.Cache.TTL),
	}
}
