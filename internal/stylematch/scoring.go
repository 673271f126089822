// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"math"
	"strings"
)

// allSentinel marks an item attribute set that supports every profile value.
const allSentinel = "all"

// scorer computes match scores for one normalized profile against catalog
// items. It is immutable after construction and safe for concurrent use.
type scorer struct {
	profile UserProfile
	weights FactorWeights
	tables  Tables

	// preferred is the category set for the profile's gender and
	// occasion, nil when the occasion has no mapping.
	preferred map[string]struct{}

	confidenceThreshold float64
	minMatchScore       int
}

func newScorer(profile UserProfile, cfg *Config) *scorer {
	s := &scorer{
		profile:             profile,
		weights:             cfg.Weights.Normalize(),
		tables:              cfg.Tables,
		confidenceThreshold: cfg.ConfidenceThreshold,
		minMatchScore:       cfg.MinMatchScore,
	}

	if cats := cfg.Tables.PreferredCategories(profile.Gender, profile.Occasion); cats != nil {
		s.preferred = make(map[string]struct{}, len(cats))
		for _, c := range cats {
			s.preferred[strings.ToLower(c)] = struct{}{}
		}
	}

	return s
}

// score evaluates a single item. The second return value is false when the
// item is rejected, either by the gender gate or by failing the acceptance
// rule.
func (s *scorer) score(item GarmentItem) (ScoredItem, bool) {
	// Gender is a hard gate: a mismatch excludes the item outright, it is
	// not merely scored low.
	genderFrac, ok := s.genderFraction(item.Gender)
	if !ok {
		return ScoredItem{}, false
	}

	total := genderFrac * s.weights.Gender
	total += s.occasionFraction(item) * s.weights.Occasion
	total += s.colorFraction(item.Colors) * s.weights.Color
	total += s.styleFraction(item.Style) * s.weights.Style
	total += s.setFraction(item.BodyTypes, s.profile.BodyType) * s.weights.BodyType
	total += s.setFraction(item.SkinTones, s.profile.SkinTone) * s.weights.SkinTone
	total += s.setFraction(item.AgeGroups, s.profile.AgeGroup) * s.weights.AgeGroup

	confidence := clampFloat(total, 0, 1)
	matchScore := int(math.Round(clampFloat(total*100, 0, 100)))

	if confidence < s.confidenceThreshold || matchScore <= s.minMatchScore {
		return ScoredItem{}, false
	}

	return ScoredItem{
		Item:                item,
		MatchScore:          matchScore,
		Confidence:          confidence,
		IsPreferredCategory: s.isPreferredCategory(item.Category),
	}, true
}

// genderFraction returns the gender factor and whether the item passes the
// gate.
func (s *scorer) genderFraction(itemGender Gender) (float64, bool) {
	g := Gender(strings.ToLower(string(itemGender)))
	switch {
	case g == s.profile.Gender:
		return 1.0, true
	case g == GenderUnisex:
		return 0.7, true
	default:
		return 0, false
	}
}

// occasionFraction implements the dominant occasion-category signal.
// A category mapping, when one exists for the profile occasion, decides the
// factor with a heavy penalty for non-preferred categories; that asymmetry
// keeps unrelated categories out of top results no matter how well their
// colors harmonize. Without a mapping the item's own occasion tags are
// fuzzy-matched against the profile occasion and its related occasions.
func (s *scorer) occasionFraction(item GarmentItem) float64 {
	if s.preferred != nil {
		if _, ok := s.preferred[strings.ToLower(item.Category)]; ok {
			return 1.0
		}
		return 0.1
	}

	if s.profile.Occasion == "" {
		return 0.2
	}

	related := s.tables.RelatedOccasions[s.profile.Occasion]
	for _, occ := range item.Occasions {
		occ = strings.ToLower(occ)
		if occ == s.profile.Occasion {
			return 0.8
		}
		for _, rel := range related {
			if occ == rel {
				return 0.8
			}
		}
	}

	return 0.2
}

// colorFraction averages pairwise palette/garment color agreement:
// 100 for an exact match, 80 for a harmonized match, 20 otherwise.
// An absent palette contributes a neutral 0.5.
func (s *scorer) colorFraction(itemColors []string) float64 {
	if len(s.profile.ColorPalette) == 0 || len(itemColors) == 0 {
		return 0.5
	}

	var sum, pairs float64
	for _, pc := range s.profile.ColorPalette {
		for _, ic := range itemColors {
			ic = strings.ToLower(ic)
			switch {
			case pc == ic:
				sum += 100
			case s.tables.Harmonizes(pc, ic):
				sum += 80
			default:
				sum += 20
			}
			pairs++
		}
	}

	return sum / pairs / 100
}

// styleFraction looks up the asymmetric style matrix; unknown styles fall
// back to the neutral 50.
func (s *scorer) styleFraction(itemStyle string) float64 {
	return float64(s.tables.StyleScore(s.profile.Style, strings.ToLower(itemStyle))) / 100
}

// setFraction contributes fully when the item's attribute set contains the
// profile value or the "All" sentinel, and zero otherwise. A profile field
// the external classifier left empty is not penalized.
func (s *scorer) setFraction(set []string, value string) float64 {
	if value == "" || len(set) == 0 {
		return 1.0
	}
	for _, v := range set {
		if strings.EqualFold(v, allSentinel) || strings.EqualFold(v, value) {
			return 1.0
		}
	}
	return 0
}

func (s *scorer) isPreferredCategory(category string) bool {
	if s.preferred == nil {
		return false
	}
	_, ok := s.preferred[strings.ToLower(category)]
	return ok
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
