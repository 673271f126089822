// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"reflect"
	"testing"
)

// scored fabricates a ScoredItem for ranking tests without running the
// scorer.
func scored(id, score int, confidence float64, preferred bool) ScoredItem {
	return ScoredItem{
		Item:                GarmentItem{ID: id, Price: id * 100},
		MatchScore:          score,
		Confidence:          confidence,
		IsPreferredCategory: preferred,
	}
}

func ids(items []ScoredItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Item.ID
	}
	return out
}

func TestQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		floor  int
		share  float64
		maxRec int
		want   int
	}{
		{name: "preferred at default max", floor: 8, share: 0.6, maxRec: 15, want: 9},
		{name: "other at default max", floor: 4, share: 0.4, maxRec: 15, want: 6},
		{name: "floor dominates small max", floor: 8, share: 0.6, maxRec: 5, want: 8},
		{name: "share dominates large max", floor: 8, share: 0.6, maxRec: 100, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := quota(tt.floor, tt.share, tt.maxRec); got != tt.want {
				t.Errorf("quota(%d, %v, %d) = %d, want %d", tt.floor, tt.share, tt.maxRec, got, tt.want)
			}
		})
	}
}

func TestRankCandidates_PreferredFirst(t *testing.T) {
	t.Parallel()

	// A low-scoring preferred item still ranks ahead of a high-scoring
	// non-preferred one.
	accepted := []ScoredItem{
		scored(1, 95, 0.95, false),
		scored(2, 65, 0.65, true),
	}

	ranked := rankCandidates(accepted, 15)
	if got, want := ids(ranked), []int{2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ranked ids = %v, want %v", got, want)
	}
}

func TestRankCandidates_Quotas(t *testing.T) {
	t.Parallel()

	// 12 preferred and 8 other candidates at maxRecommendations 15:
	// preferred is capped at 9, other at 6, for exactly 15 total.
	var accepted []ScoredItem
	for i := 1; i <= 12; i++ {
		accepted = append(accepted, scored(i, 100-i, 0.9, true))
	}
	for i := 13; i <= 20; i++ {
		accepted = append(accepted, scored(i, 100-i, 0.9, false))
	}

	ranked := rankCandidates(accepted, 15)
	if len(ranked) != 15 {
		t.Fatalf("len(ranked) = %d, want 15", len(ranked))
	}

	preferred := 0
	for _, it := range ranked {
		if it.IsPreferredCategory {
			preferred++
		}
	}
	if preferred != 9 {
		t.Errorf("preferred count = %d, want 9", preferred)
	}

	// The cut keeps the best of each bucket.
	if got, want := ids(ranked[:3]), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("top preferred ids = %v, want %v", got, want)
	}
	if got, want := ids(ranked[9:12]), []int{13, 14, 15}; !reflect.DeepEqual(got, want) {
		t.Errorf("top other ids = %v, want %v", got, want)
	}
}

func TestRankCandidates_TruncatesToMax(t *testing.T) {
	t.Parallel()

	var accepted []ScoredItem
	for i := 1; i <= 30; i++ {
		accepted = append(accepted, scored(i, 90, 0.9, i%2 == 0))
	}

	ranked := rankCandidates(accepted, 10)
	if len(ranked) != 10 {
		t.Errorf("len(ranked) = %d, want 10", len(ranked))
	}
}

func TestRankCandidates_Empty(t *testing.T) {
	t.Parallel()

	if got := rankCandidates(nil, 15); len(got) != 0 {
		t.Errorf("rankCandidates(nil) = %v, want empty", got)
	}
}

func TestSortByScore_TieBreaks(t *testing.T) {
	t.Parallel()

	items := []ScoredItem{
		scored(3, 80, 0.65, false),
		scored(2, 80, 0.70, false),
		scored(5, 80, 0.70, false),
		scored(1, 90, 0.90, false),
	}

	sortByScore(items)

	// Score desc, then confidence desc, then ID asc.
	if got, want := ids(items), []int{1, 2, 5, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("sorted ids = %v, want %v", got, want)
	}
}

func TestSortByScore_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() []ScoredItem {
		return []ScoredItem{
			scored(4, 70, 0.7, false),
			scored(2, 70, 0.7, false),
			scored(9, 85, 0.85, false),
			scored(1, 70, 0.7, false),
		}
	}

	first := build()
	sortByScore(first)
	for i := 0; i < 5; i++ {
		again := build()
		sortByScore(again)
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("sort order not deterministic: %v vs %v", ids(first), ids(again))
		}
	}
}
