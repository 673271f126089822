// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each scoring factor.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights FactorWeights `json:"weights"`

	// ConfidenceThreshold is the minimum confidence an item needs to be
	// eligible for ranking. Default: 0.6.
	ConfidenceThreshold float64 `json:"confidence_threshold"`

	// MinMatchScore is the exclusive lower bound on match score.
	// Items scoring at or below it are rejected. Default: 50.
	MinMatchScore int `json:"min_match_score"`

	// MaxRecommendations is the size of the ranked candidate list.
	// Default: 15.
	MaxRecommendations int `json:"max_recommendations"`

	// ItemsPerPage is the default page size for pagination. Default: 6.
	ItemsPerPage int `json:"items_per_page"`

	// ScoringWorkers bounds the goroutines used to score a catalog.
	// Zero means one worker per CPU.
	ScoringWorkers int `json:"scoring_workers"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// Seed is the random seed for the "popular" sort jitter.
	// If zero, a fixed default seed is used for reproducibility.
	Seed int64 `json:"seed"`

	// Tables are the scoring lookup tables. Nil fields fall back to the
	// built-in defaults.
	Tables Tables `json:"-"`
}

// FactorWeights defines the relative contribution of each scoring factor.
type FactorWeights struct {
	// Occasion is the weight of the occasion-category match. This is the
	// dominant signal that keeps unrelated categories out of top results.
	Occasion float64 `json:"occasion"`

	// Gender is the weight of the gender fit. Gender is also a hard
	// gate: a mismatch rejects the item regardless of this weight.
	Gender float64 `json:"gender"`

	// Color is the weight of color-palette harmony.
	Color float64 `json:"color"`

	// Style is the weight of style compatibility.
	Style float64 `json:"style"`

	// BodyType is the weight of body-type support.
	BodyType float64 `json:"body_type"`

	// SkinTone is the weight of skin-tone support.
	SkinTone float64 `json:"skin_tone"`

	// AgeGroup is the weight of age-group targeting.
	AgeGroup float64 `json:"age_group"`
}

// Normalize returns a copy with weights scaled to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w FactorWeights) Normalize() FactorWeights {
	sum := w.Occasion + w.Gender + w.Color + w.Style +
		w.BodyType + w.SkinTone + w.AgeGroup

	if sum == 0 {
		const equalWeight = 1.0 / 7.0
		return FactorWeights{
			Occasion: equalWeight, Gender: equalWeight, Color: equalWeight,
			Style: equalWeight, BodyType: equalWeight, SkinTone: equalWeight,
			AgeGroup: equalWeight,
		}
	}

	return FactorWeights{
		Occasion: w.Occasion / sum,
		Gender:   w.Gender / sum,
		Color:    w.Color / sum,
		Style:    w.Style / sum,
		BodyType: w.BodyType / sum,
		SkinTone: w.SkinTone / sum,
		AgeGroup: w.AgeGroup / sum,
	}
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w FactorWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"occasion":  w.Occasion,
		"gender":    w.Gender,
		"color":     w.Color,
		"style":     w.Style,
		"body_type": w.BodyType,
		"skin_tone": w.SkinTone,
		"age_group": w.AgeGroup,
	}
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether the in-memory response cache is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live. Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries. Default: 1024.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: FactorWeights{
			Occasion: 0.40,
			Gender:   0.30,
			Color:    0.15,
			Style:    0.08,
			BodyType: 0.04,
			SkinTone: 0.02,
			AgeGroup: 0.01,
		},
		ConfidenceThreshold: 0.6,
		MinMatchScore:       50,
		MaxRecommendations:  15,
		ItemsPerPage:        6,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
		Tables: DefaultTables(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1], got %v", c.ConfidenceThreshold)
	}
	if c.MinMatchScore < 0 || c.MinMatchScore > 100 {
		return fmt.Errorf("min_match_score must be in [0, 100], got %d", c.MinMatchScore)
	}
	if c.MaxRecommendations <= 0 {
		return fmt.Errorf("max_recommendations must be positive, got %d", c.MaxRecommendations)
	}
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("items_per_page must be positive, got %d", c.ItemsPerPage)
	}
	if c.ScoringWorkers < 0 {
		return fmt.Errorf("scoring_workers must not be negative, got %d", c.ScoringWorkers)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative, got %d", c.Cache.MaxEntries)
	}

	w := c.Weights
	for name, v := range w.ToMap() {
		if v < 0 {
			return fmt.Errorf("weight %q must not be negative, got %v", name, v)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Tables = c.Tables.clone()
	return &out
}

func (t Tables) clone() Tables {
	out := Tables{
		OccasionCategories: make(map[string]map[string][]string, len(t.OccasionCategories)),
		ColorHarmony:       make(map[string][]string, len(t.ColorHarmony)),
		StyleCompatibility: make(map[string]map[string]int, len(t.StyleCompatibility)),
		RelatedOccasions:   make(map[string][]string, len(t.RelatedOccasions)),
	}
	for bucket, byOccasion := range t.OccasionCategories {
		m := make(map[string][]string, len(byOccasion))
		for occ, cats := range byOccasion {
			m[occ] = append([]string(nil), cats...)
		}
		out.OccasionCategories[bucket] = m
	}
	for color, harmonies := range t.ColorHarmony {
		out.ColorHarmony[color] = append([]string(nil), harmonies...)
	}
	for style, row := range t.StyleCompatibility {
		m := make(map[string]int, len(row))
		for k, v := range row {
			m[k] = v
		}
		out.StyleCompatibility[style] = m
	}
	for occ, related := range t.RelatedOccasions {
		out.RelatedOccasions[occ] = append([]string(nil), related...)
	}
	return out
}

// withDefaults fills nil tables with the built-in defaults.
func (c *Config) withDefaults() *Config {
	out := c.Clone()
	defaults := DefaultTables()
	if out.Tables.OccasionCategories == nil {
		out.Tables.OccasionCategories = defaults.OccasionCategories
	}
	if out.Tables.ColorHarmony == nil {
		out.Tables.ColorHarmony = defaults.ColorHarmony
	}
	if out.Tables.StyleCompatibility == nil {
		out.Tables.StyleCompatibility = defaults.StyleCompatibility
	}
	if out.Tables.RelatedOccasions == nil {
		out.Tables.RelatedOccasions = defaults.RelatedOccasions
	}
	return out
}
