// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
)

// popularJitter bounds the random perturbation applied by the "popular"
// sort, in match-score points.
const popularJitter = 5.0

// Paginator applies user-adjustable filters, re-sorts by the chosen
// criterion, and slices the result into pages. The random source backing
// the "popular" sort is injected via seed so tests can assert determinism.
// Safe for concurrent use.
type Paginator struct {
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewPaginator creates a paginator. A zero seed selects a fixed default so
// behavior is reproducible unless explicitly randomized.
func NewPaginator(seed int64) *Paginator {
	if seed == 0 {
		seed = 42
	}
	return &Paginator{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for display jitter
	}
}

// Apply filters items, sorts them by the given key, and returns the
// requested page. Filter predicates are conjunctive. The page number is
// clamped to [1, TotalPages] (to 1 with an empty item slice when nothing
// passes the filter). Callers changing the filter should request page 1;
// Apply itself is stateless.
func (p *Paginator) Apply(items []ScoredItem, filter FilterState, key SortKey, page, itemsPerPage int) RecommendationPage {
	if itemsPerPage <= 0 {
		itemsPerPage = 1
	}

	filtered := filterItems(items, filter)
	p.sortItems(filtered, key)

	totalItems := len(filtered)
	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage

	switch {
	case page < 1:
		page = 1
	case totalPages > 0 && page > totalPages:
		page = totalPages
	case totalPages == 0:
		page = 1
	}

	start := (page - 1) * itemsPerPage
	end := start + itemsPerPage
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return RecommendationPage{
		Items:        append([]ScoredItem(nil), filtered[start:end]...),
		Page:         page,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
	}
}

// filterItems keeps items passing every filter predicate. A zero PriceMax
// means no upper bound, since a literal zero ceiling would exclude every
// priced item.
func filterItems(items []ScoredItem, filter FilterState) []ScoredItem {
	out := make([]ScoredItem, 0, len(items))
	for _, it := range items {
		if it.Item.Price < filter.PriceMin {
			continue
		}
		if filter.PriceMax > 0 && it.Item.Price > filter.PriceMax {
			continue
		}
		if !styleAllowed(it.Item.Style, filter.Styles) {
			continue
		}
		if !colorAllowed(it.Item.Colors, filter.Colors) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func styleAllowed(style string, styles []string) bool {
	if len(styles) == 0 {
		return true
	}
	for _, s := range styles {
		if strings.EqualFold(s, style) {
			return true
		}
	}
	return false
}

func colorAllowed(colors, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, c := range colors {
			if strings.Contains(strings.ToLower(c), w) {
				return true
			}
		}
	}
	return false
}

func (p *Paginator) sortItems(items []ScoredItem, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Item.Price != items[j].Item.Price {
				return items[i].Item.Price < items[j].Item.Price
			}
			return items[i].Item.ID < items[j].Item.ID
		})
	case SortPriceHigh:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Item.Price != items[j].Item.Price {
				return items[i].Item.Price > items[j].Item.Price
			}
			return items[i].Item.ID < items[j].Item.ID
		})
	case SortPopular:
		keys := make(map[int]float64, len(items))
		p.rngMu.Lock()
		for _, it := range items {
			keys[it.Item.ID] = float64(it.MatchScore) + p.rng.Float64()*2*popularJitter - popularJitter
		}
		p.rngMu.Unlock()
		sort.Slice(items, func(i, j int) bool {
			ki, kj := keys[items[i].Item.ID], keys[items[j].Item.ID]
			if ki != kj {
				return ki > kj
			}
			return items[i].Item.ID < items[j].Item.ID
		})
	case SortMatch:
		fallthrough
	default:
		sortByScore(items)
	}
}
