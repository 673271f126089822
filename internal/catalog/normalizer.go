// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package catalog

import (
	"strings"

	"github.com/rentwear/stylematch/internal/stylematch"
)

// RawRecord is a catalog entry as delivered by the catalog source, before
// attribute enrichment.
type RawRecord struct {
	// ID is the unique catalog identifier.
	ID int `json:"id"`

	// Name is the display name. Color tags are extracted from it.
	Name string `json:"name"`

	// Description is the catalog description.
	Description string `json:"description,omitempty"`

	// Price is the rental price in whole currency units.
	Price int `json:"price"`

	// Image is an opaque image reference.
	Image string `json:"image,omitempty"`

	// Gender is the target gender. Records without one are dropped.
	Gender string `json:"gender"`

	// Category is the catalog taxonomy key. Records without one are
	// dropped.
	Category string `json:"category"`

	// Size is the available size range (unused by scoring).
	Size string `json:"size,omitempty"`

	// Available marks the record as rentable.
	Available bool `json:"available"`
}

// Report summarizes a normalization pass. Records failing normalization are
// dropped and counted, never silently included with wrong semantics.
type Report struct {
	// Total is the number of raw records seen.
	Total int `json:"total"`

	// Dropped is the number of records dropped.
	Dropped int `json:"dropped"`

	// MissingGender counts records dropped for a missing gender.
	MissingGender int `json:"missing_gender"`

	// MissingCategory counts records dropped for a missing category.
	MissingCategory int `json:"missing_category"`
}

// ageThreshold is the price above which traditional and formal categories
// skew toward older age buckets.
const ageThreshold = 3000

// colorKeyword maps a name keyword to its canonical color tag. Scanned in
// order so extraction is deterministic.
type colorKeyword struct {
	keyword string
	tag     string
}

var colorKeywords = []colorKeyword{
	{"white", "White"},
	{"black", "Black"},
	{"navy", "Navy"},
	{"blue", "Blue"},
	{"red", "Red"},
	{"green", "Green"},
	{"yellow", "Yellow"},
	{"purple", "Purple"},
	{"violet", "Violet"},
	{"pink", "Pink"},
	{"grey", "Grey"},
	{"gray", "Grey"},
	{"maroon", "Maroon"},
	{"gold", "Gold"},
	{"silver", "Silver"},
	{"brown", "Brown"},
	{"orange", "Orange"},
}

// fallbackColor is assigned when no keyword matches; the Colors invariant
// is that the set is never empty.
const fallbackColor = "Multi-color"

// categoryStyles maps a catalog category to its single style tag.
var categoryStyles = map[string]string{
	"jodhpuri":    "Traditional",
	"kurta":       "Traditional",
	"sherwani":    "Traditional",
	"anarkali":    "Traditional",
	"lehnga":      "Traditional",
	"sharara":     "Traditional",
	"tuxedo":      "Formal",
	"suit":        "Formal",
	"gown":        "Formal",
	"blazer":      "Modern",
	"indowastern": "Fusion",
}

const defaultStyle = "Modern"

// categoryOccasions maps a catalog category to the occasions it suits.
var categoryOccasions = map[string][]string{
	"sherwani":    {"Wedding", "Festival"},
	"jodhpuri":    {"Wedding", "Festival"},
	"kurta":       {"Festival", "Casual", "Wedding"},
	"anarkali":    {"Festival", "Party", "Wedding"},
	"lehnga":      {"Wedding", "Festival"},
	"sharara":     {"Wedding", "Festival"},
	"tuxedo":      {"Party", "Wedding", "Formal"},
	"suit":        {"Formal", "Business", "Wedding"},
	"gown":        {"Party", "Formal", "Wedding"},
	"blazer":      {"Formal", "Party", "Business", "Casual"},
	"indowastern": {"Wedding", "Party", "Festival"},
}

var defaultOccasions = []string{"Party", "Casual"}

// structuredCategories are cuts that fit best on defined silhouettes; the
// rest drape loosely enough to suit every body type.
var structuredCategories = map[string]struct{}{
	"tuxedo":   {},
	"suit":     {},
	"blazer":   {},
	"jodhpuri": {},
}

// warmColors and coolColors drive the skin-tone inference from the color
// tags extracted out of the name.
var (
	warmColors = map[string]struct{}{
		"Gold": {}, "Maroon": {}, "Orange": {}, "Brown": {}, "Yellow": {}, "Red": {},
	}
	coolColors = map[string]struct{}{
		"White": {}, "Silver": {}, "Pink": {}, "Blue": {}, "Grey": {},
	}
)

// Normalize converts raw catalog records into enriched garment items.
// Records missing a gender or category are dropped and counted in the
// report. Derivation is pure and deterministic: the same records always
// produce the same items.
func Normalize(records []RawRecord) ([]stylematch.GarmentItem, Report) {
	items := make([]stylematch.GarmentItem, 0, len(records))
	report := Report{Total: len(records)}

	for _, rec := range records {
		gender := stylematch.Gender(strings.ToLower(strings.TrimSpace(rec.Gender)))
		category := strings.TrimSpace(rec.Category)

		switch {
		case !gender.Valid():
			report.Dropped++
			report.MissingGender++
			continue
		case category == "":
			report.Dropped++
			report.MissingCategory++
			continue
		}

		colors := extractColors(rec.Name)
		catKey := strings.ToLower(category)

		items = append(items, stylematch.GarmentItem{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Price:       rec.Price,
			Image:       rec.Image,
			Gender:      gender,
			Category:    category,
			Colors:      colors,
			Style:       styleFor(catKey),
			Occasions:   occasionsFor(catKey),
			BodyTypes:   bodyTypesFor(catKey),
			SkinTones:   skinTonesFor(colors),
			AgeGroups:   ageGroupsFor(catKey, rec.Price),
		})
	}

	return items, report
}

// extractColors scans the name for color keywords, case-insensitively.
func extractColors(name string) []string {
	lower := strings.ToLower(name)
	var colors []string
	seen := make(map[string]struct{})
	for _, kw := range colorKeywords {
		if !strings.Contains(lower, kw.keyword) {
			continue
		}
		if _, dup := seen[kw.tag]; dup {
			continue
		}
		seen[kw.tag] = struct{}{}
		colors = append(colors, kw.tag)
	}
	if len(colors) == 0 {
		colors = []string{fallbackColor}
	}
	return colors
}

func styleFor(catKey string) string {
	if s, ok := categoryStyles[catKey]; ok {
		return s
	}
	return defaultStyle
}

func occasionsFor(catKey string) []string {
	if occ, ok := categoryOccasions[catKey]; ok {
		return append([]string(nil), occ...)
	}
	return append([]string(nil), defaultOccasions...)
}

func bodyTypesFor(catKey string) []string {
	if _, ok := structuredCategories[catKey]; ok {
		return []string{"Slim", "Athletic", "Average"}
	}
	return []string{"All"}
}

func skinTonesFor(colors []string) []string {
	var warm, cool bool
	for _, c := range colors {
		if _, ok := warmColors[c]; ok {
			warm = true
		}
		if _, ok := coolColors[c]; ok {
			cool = true
		}
	}
	switch {
	case warm && !cool:
		return []string{"Wheatish", "Dusky", "Dark"}
	case cool && !warm:
		return []string{"Fair", "Wheatish"}
	default:
		return []string{"All"}
	}
}

func ageGroupsFor(catKey string, price int) []string {
	style := styleFor(catKey)
	if style == "Traditional" || style == "Formal" {
		if price > ageThreshold {
			return []string{"26-35", "36-45", "46+"}
		}
		return []string{"18-25", "26-35"}
	}
	return []string{"18-25", "26-35", "36-45"}
}
