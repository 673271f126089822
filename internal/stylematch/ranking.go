// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"math"
	"sort"
)

// rankCandidates builds the final candidate list from accepted items.
// Preferred-category items and the rest are ranked separately and
// concatenated under a quota, so occasion-appropriate items are never
// starved by a larger pool of merely color-compatible items from unrelated
// categories, while the tail still leaves room for diversity.
func rankCandidates(accepted []ScoredItem, maxRecommendations int) []ScoredItem {
	preferred := make([]ScoredItem, 0, len(accepted))
	other := make([]ScoredItem, 0, len(accepted))
	for _, it := range accepted {
		if it.IsPreferredCategory {
			preferred = append(preferred, it)
		} else {
			other = append(other, it)
		}
	}

	sortByScore(preferred)
	sortByScore(other)

	preferredCap := quota(8, 0.6, maxRecommendations)
	otherCap := quota(4, 0.4, maxRecommendations)

	if len(preferred) > preferredCap {
		preferred = preferred[:preferredCap]
	}
	if len(other) > otherCap {
		other = other[:otherCap]
	}

	ranked := append(preferred, other...)
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	return ranked
}

// quota returns max(floor, ceil(share * maxRecommendations)).
func quota(floor int, share float64, maxRecommendations int) int {
	n := int(math.Ceil(share * float64(maxRecommendations)))
	if n < floor {
		return floor
	}
	return n
}

// sortByScore orders items by score descending, ties broken by confidence
// descending, then item ID ascending so identical inputs always produce
// identical output.
func sortByScore(items []ScoredItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].MatchScore != items[j].MatchScore {
			return items[i].MatchScore > items[j].MatchScore
		}
		if items[i].Confidence != items[j].Confidence {
			return items[i].Confidence > items[j].Confidence
		}
		return items[i].Item.ID < items[j].Item.ID
	})
}
