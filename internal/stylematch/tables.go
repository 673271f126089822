// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

// The scoring tables are hand-authored heuristics, consolidated here as
// named values so they can be audited or swapped independently of the
// scoring algorithm. All keys are lowercase; callers normalize input at the
// boundary (see UserProfile.Normalized).

// Tables bundles the lookup tables consumed by the scoring engine.
// The zero value is unusable; use DefaultTables.
type Tables struct {
	// OccasionCategories maps gender bucket -> occasion -> preferred
	// catalog categories. Membership of an item's category in the
	// preferred set is the dominant scoring signal.
	OccasionCategories map[string]map[string][]string

	// ColorHarmony maps a palette color to the garment colors it
	// harmonizes with. The wildcard "*" harmonizes with everything.
	ColorHarmony map[string][]string

	// StyleCompatibility is an asymmetric matrix keyed by
	// (profile style, item style) with values 0-100. Missing entries
	// default to 50 during scoring.
	StyleCompatibility map[string]map[string]int

	// RelatedOccasions maps an occasion to occasions considered close
	// enough for a fallback match when no category mapping exists.
	RelatedOccasions map[string][]string
}

// DefaultTables returns the built-in heuristic tables.
func DefaultTables() Tables {
	return Tables{
		OccasionCategories: defaultOccasionCategories(),
		ColorHarmony:       defaultColorHarmony(),
		StyleCompatibility: defaultStyleCompatibility(),
		RelatedOccasions:   defaultRelatedOccasions(),
	}
}

func defaultOccasionCategories() map[string]map[string][]string {
	return map[string]map[string][]string{
		"men": {
			"wedding":  {"Sherwani", "Jodhpuri", "Indowastern", "Kurta"},
			"party":    {"Tuxedo", "Blazer", "Indowastern"},
			"formal":   {"Suit", "Tuxedo", "Blazer"},
			"business": {"Suit", "Blazer"},
			"festival": {"Kurta", "Sherwani", "Jodhpuri"},
			"casual":   {"Kurta", "Blazer"},
		},
		"women": {
			"wedding":  {"Lehnga", "Anarkali", "Sharara", "Gown"},
			"party":    {"Gown", "Anarkali", "Indowastern"},
			"formal":   {"Gown", "Suit"},
			"business": {"Suit", "Gown"},
			"festival": {"Anarkali", "Lehnga", "Sharara"},
			"casual":   {"Anarkali", "Indowastern"},
		},
		"unisex": {
			"wedding":  {"Sherwani", "Lehnga", "Indowastern"},
			"party":    {"Tuxedo", "Gown", "Blazer"},
			"festival": {"Kurta", "Anarkali"},
		},
	}
}

func defaultColorHarmony() map[string][]string {
	return map[string][]string{
		"white":  {"*"},
		"black":  {"gold", "silver", "red", "white", "grey"},
		"blue":   {"white", "silver", "gold", "navy", "cream"},
		"navy":   {"white", "gold", "silver", "blue", "cream"},
		"red":    {"gold", "black", "white", "cream"},
		"green":  {"gold", "cream", "white", "yellow"},
		"yellow": {"white", "brown", "green", "gold"},
		"purple": {"gold", "silver", "white"},
		"violet": {"gold", "silver", "white", "pink"},
		"pink":   {"white", "silver", "grey", "violet"},
		"grey":   {"black", "white", "pink", "silver"},
		"maroon": {"gold", "cream", "white", "beige"},
		"gold":   {"maroon", "red", "green", "black", "white", "navy"},
		"silver": {"blue", "black", "grey", "white", "pink"},
		"brown":  {"cream", "yellow", "white", "beige"},
		"orange": {"white", "gold", "brown", "cream"},

		// Multi-color garments pair acceptably with any palette.
		"multi-color": {"*"},
	}
}

func defaultStyleCompatibility() map[string]map[string]int {
	return map[string]map[string]int{
		"traditional": {
			"traditional": 100, "fusion": 80, "classic": 70, "formal": 60, "modern": 40,
		},
		"modern": {
			"modern": 100, "fusion": 85, "formal": 70, "classic": 60, "traditional": 40,
		},
		"formal": {
			"formal": 100, "classic": 85, "modern": 70, "fusion": 60, "traditional": 55,
		},
		"fusion": {
			"fusion": 100, "modern": 85, "traditional": 80, "formal": 65, "classic": 60,
		},
		"classic": {
			"classic": 100, "formal": 90, "traditional": 70, "modern": 60, "fusion": 55,
		},
	}
}

func defaultRelatedOccasions() map[string][]string {
	return map[string][]string{
		"wedding":  {"formal", "party", "festival"},
		"party":    {"formal", "wedding"},
		"formal":   {"business", "wedding", "party"},
		"casual":   {"festival"},
		"festival": {"traditional", "casual", "wedding"},
		"business": {"formal"},
	}
}

// PreferredCategories returns the preferred category set for a gender and
// occasion, or nil when no mapping exists. Occasion must already be
// lowercase.
func (t Tables) PreferredCategories(gender Gender, occasion string) []string {
	byOccasion, ok := t.OccasionCategories[gender.Bucket()]
	if !ok {
		return nil
	}
	return byOccasion[occasion]
}

// Harmonizes reports whether a palette color harmonizes with a garment
// color. Both arguments must already be lowercase. An exact match is not a
// harmony; callers check equality first.
func (t Tables) Harmonizes(paletteColor, garmentColor string) bool {
	if colorsHarmonize(t.ColorHarmony, paletteColor, garmentColor) {
		return true
	}
	// Harmony is symmetric even though the table is authored one-way.
	return colorsHarmonize(t.ColorHarmony, garmentColor, paletteColor)
}

func colorsHarmonize(table map[string][]string, from, to string) bool {
	for _, c := range table[from] {
		if c == "*" || c == to {
			return true
		}
	}
	return false
}

// StyleScore returns the 0-100 compatibility of an item style with a
// profile style. Missing entries, including unknown styles, default to 50.
func (t Tables) StyleScore(profileStyle, itemStyle string) int {
	row, ok := t.StyleCompatibility[profileStyle]
	if !ok {
		return 50
	}
	score, ok := row[itemStyle]
	if !ok {
		return 50
	}
	return score
}
