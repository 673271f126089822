// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentwear/stylematch/internal/metrics"
	"github.com/rentwear/stylematch/internal/stylematch"
)

// Store holds the current normalized catalog snapshot. Each recommendation
// request reads exactly one immutable snapshot; a reload swaps the snapshot
// atomically and never mutates one already handed out.
type Store struct {
	source Source
	logger zerolog.Logger

	mu       sync.RWMutex
	items    []stylematch.GarmentItem
	report   Report
	loadedAt time.Time
	onReload []func()
}

// NewStore creates a catalog store backed by the given source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(source Source, logger zerolog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// OnReload registers a callback invoked after every successful reload.
// Used to invalidate downstream caches. Not safe to call after the
// refresher starts.
func (s *Store) OnReload(fn func()) {
	s.onReload = append(s.onReload, fn)
}

// Reload loads records from the source, normalizes them, and swaps the
// snapshot. On source failure the previous snapshot is kept untouched and
// the error is returned; the store never silently serves partial data from
// a failed load.
func (s *Store) Reload(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("load catalog: %w", err)
	}

	items, report := Normalize(records)
	metrics.CatalogReloadsTotal.WithLabelValues("success").Inc()
	metrics.CatalogItems.Set(float64(len(items)))
	metrics.CatalogDroppedRecords.Set(float64(report.Dropped))

	s.mu.Lock()
	s.items = items
	s.report = report
	s.loadedAt = time.Now()
	s.mu.Unlock()

	for _, fn := range s.onReload {
		fn()
	}

	s.logger.Info().
		Int("items", len(items)).
		Int("dropped", report.Dropped).
		Msg("catalog snapshot reloaded")

	return nil
}

// Snapshot returns the current snapshot. The returned slice must be treated
// as read-only; it is shared between requests. A nil slice means no
// snapshot has been loaded yet.
func (s *Store) Snapshot() []stylematch.GarmentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Status describes the current snapshot for diagnostics.
type Status struct {
	// Items is the snapshot size.
	Items int `json:"items"`

	// Report is the normalization report for the snapshot.
	Report Report `json:"report"`

	// LoadedAt is when the snapshot was loaded.
	LoadedAt time.Time `json:"loaded_at"`
}

// Status returns snapshot diagnostics.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Items:    len(s.items),
		Report:   s.report,
		LoadedAt: s.loadedAt,
	}
}

// Refresher periodically reloads the catalog store. It implements
// suture.Service so the supervisor restarts it on failure.
type Refresher struct {
	store    *Store
	interval time.Duration
	logger   zerolog.Logger
}

// NewRefresher creates a refresher. A non-positive interval defaults to one
// hour.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefresher(store *Store, interval time.Duration, logger zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Refresher{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "catalog-refresher").Logger(),
	}
}

// Serve implements suture.Service. It reloads on the configured interval
// until the context is canceled. A failed reload is logged and retried on
// the next tick; the previous snapshot stays in service.
func (r *Refresher) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.store.Reload(ctx); err != nil {
				r.logger.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (r *Refresher) String() string {
	return "catalog-refresher"
}
