// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import "strings"

// Gender identifies the target gender of a profile or garment.
type Gender string

const (
	// GenderMale identifies menswear.
	GenderMale Gender = "male"
	// GenderFemale identifies womenswear.
	GenderFemale Gender = "female"
	// GenderUnisex identifies garments suitable for any gender.
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is one of the recognized gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	default:
		return false
	}
}

// Bucket returns the occasion-category map bucket for this gender.
func (g Gender) Bucket() string {
	switch g {
	case GenderMale:
		return "men"
	case GenderFemale:
		return "women"
	case GenderUnisex:
		return "unisex"
	default:
		return ""
	}
}

// UserProfile describes a user as produced by the external analysis service.
// All fields except Gender are optional; the analysis service is best-effort
// and missing fields are tolerated with neutral defaults during scoring.
type UserProfile struct {
	// Gender is the target gender. Required; scoring refuses to guess.
	Gender Gender `json:"gender"`

	// Occasion is the event the user is dressing for (free-form, matched
	// case-insensitively, e.g. "wedding").
	Occasion string `json:"occasion,omitempty"`

	// SkinTone is the inferred skin tone (e.g. "Wheatish").
	SkinTone string `json:"skin_tone,omitempty"`

	// BodyType is the inferred body type (e.g. "Athletic").
	BodyType string `json:"body_type,omitempty"`

	// Style is the inferred style preference (e.g. "Traditional").
	Style string `json:"style,omitempty"`

	// ColorPalette is the set of colors that suit the user.
	// Order carries no meaning.
	ColorPalette []string `json:"color_palette,omitempty"`

	// AgeGroup is the bucketed age range (e.g. "26-35").
	AgeGroup string `json:"age_group,omitempty"`
}

// Normalized returns a copy with all string fields canonicalized for
// matching: lowercased and trimmed. Case-insensitive comparisons are done
// once here, at the boundary, not at each comparison site.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p UserProfile) Normalized() UserProfile {
	out := p
	out.Gender = Gender(strings.ToLower(strings.TrimSpace(string(p.Gender))))
	out.Occasion = strings.ToLower(strings.TrimSpace(p.Occasion))
	out.SkinTone = strings.ToLower(strings.TrimSpace(p.SkinTone))
	out.BodyType = strings.ToLower(strings.TrimSpace(p.BodyType))
	out.Style = strings.ToLower(strings.TrimSpace(p.Style))
	out.AgeGroup = strings.TrimSpace(p.AgeGroup)
	if len(p.ColorPalette) > 0 {
		out.ColorPalette = make([]string, 0, len(p.ColorPalette))
		for _, c := range p.ColorPalette {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" {
				out.ColorPalette = append(out.ColorPalette, c)
			}
		}
	}
	return out
}

// GarmentItem is a normalized catalog entry enriched with inferred
// attributes. Items are read-only once normalized; scoring never mutates
// them.
type GarmentItem struct {
	// ID is the unique catalog identifier.
	ID int `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is the catalog description.
	Description string `json:"description,omitempty"`

	// Price is the rental price in whole currency units.
	Price int `json:"price"`

	// Image is an opaque image reference.
	Image string `json:"image,omitempty"`

	// Gender is the target gender. Never empty for a normalized item.
	Gender Gender `json:"gender"`

	// Category is the catalog taxonomy key (e.g. "Sherwani").
	Category string `json:"category"`

	// Colors is the set of color tags extracted from the name.
	// Never empty; falls back to a single "Multi-color" tag.
	Colors []string `json:"colors"`

	// Style is the single style tag inferred from the category.
	Style string `json:"style"`

	// Occasions is the set of occasions the item suits.
	Occasions []string `json:"occasions"`

	// BodyTypes is the set of supported body types, or the sentinel "All".
	BodyTypes []string `json:"body_types"`

	// SkinTones is the set of complementing skin tones, or "All".
	SkinTones []string `json:"skin_tones"`

	// AgeGroups is the set of age buckets the item targets.
	AgeGroups []string `json:"age_groups"`
}

// ScoredItem is a garment with its computed match against one profile.
// It wraps the source item rather than mutating it, so a catalog snapshot
// can be scored concurrently for many profiles.
type ScoredItem struct {
	// Item is the scored garment.
	Item GarmentItem `json:"item"`

	// MatchScore is the combined weighted score (0-100, higher is better).
	MatchScore int `json:"match_score"`

	// Confidence is the fraction of total factor weight actually
	// satisfied (0-1). Items below the confidence threshold are rejected.
	Confidence float64 `json:"confidence"`

	// IsPreferredCategory marks items whose category is conventionally
	// appropriate for the profile's gender and occasion.
	IsPreferredCategory bool `json:"is_preferred_category"`

	// Reason is a human-readable justification. Advisory only; it never
	// affects ranking.
	Reason string `json:"reason,omitempty"`
}

// SortKey selects the ordering of a filtered result set.
type SortKey string

const (
	// SortMatch orders by match score, best first.
	SortMatch SortKey = "match"
	// SortPriceLow orders by price, cheapest first.
	SortPriceLow SortKey = "price-low"
	// SortPriceHigh orders by price, most expensive first.
	SortPriceHigh SortKey = "price-high"
	// SortPopular orders by match score with a bounded random
	// perturbation. Non-deterministic across runs unless the engine RNG
	// is seeded.
	SortPopular SortKey = "popular"
)

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortMatch, SortPriceLow, SortPriceHigh, SortPopular:
		return true
	default:
		return false
	}
}

// FilterState holds the user-adjustable result filters. All predicates are
// conjunctive. Empty style/color sets impose no restriction.
type FilterState struct {
	// PriceMin is the inclusive lower price bound.
	PriceMin int `json:"price_min"`

	// PriceMax is the inclusive upper price bound.
	PriceMax int `json:"price_max"`

	// Styles restricts results to these style tags (case-insensitive).
	Styles []string `json:"styles,omitempty"`

	// Colors restricts results to items with at least one matching color
	// tag (case-insensitive substring match).
	Colors []string `json:"colors,omitempty"`
}

// RecommendationPage is one page of a filtered, sorted result set.
type RecommendationPage struct {
	// Items is the slice of results for the requested page.
	Items []ScoredItem `json:"items"`

	// Page is the 1-based page number, clamped to the valid range.
	Page int `json:"page"`

	// ItemsPerPage is the page size used.
	ItemsPerPage int `json:"items_per_page"`

	// TotalItems is the size of the filtered set across all pages.
	TotalItems int `json:"total_items"`

	// TotalPages is ceil(TotalItems / ItemsPerPage).
	TotalPages int `json:"total_pages"`
}
