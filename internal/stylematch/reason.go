// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import (
	"fmt"
	"strings"
)

// buildReason produces the human-readable justification for one selected
// item. The text is advisory only; it never affects ranking. Fragments are
// assembled in a fixed order so identical inputs produce identical text.
func (s *scorer) buildReason(item ScoredItem) string {
	var fragments []string

	if occ := s.profile.Occasion; occ != "" {
		if item.IsPreferredCategory {
			fragments = append(fragments, fmt.Sprintf("a perfect pick for your %s", occ))
		} else {
			fragments = append(fragments, fmt.Sprintf("a stylish alternative for your %s", occ))
		}
	}

	switch strings.ToLower(string(item.Item.Gender)) {
	case string(GenderUnisex):
		fragments = append(fragments, "versatile unisex fit")
	case string(s.profile.Gender):
		fragments = append(fragments, fmt.Sprintf("tailored for %s wear", s.profile.Gender))
	}

	if color := s.matchingPaletteColor(item.Item.Colors); color != "" {
		fragments = append(fragments, fmt.Sprintf("complements the %s in your palette", color))
	}

	if len(fragments) == 0 {
		occ := s.profile.Occasion
		if occ == "" {
			occ = "any occasion"
		}
		return fmt.Sprintf("A great choice for %s", occ)
	}

	return strings.ToUpper(fragments[0][:1]) + fragments[0][1:] + joinTail(fragments[1:])
}

func joinTail(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	return ", " + strings.Join(fragments, ", ")
}

// matchingPaletteColor returns the first palette color that exactly matches
// or harmonizes with any of the item's colors, or "" when none does.
func (s *scorer) matchingPaletteColor(itemColors []string) string {
	for _, pc := range s.profile.ColorPalette {
		for _, ic := range itemColors {
			ic = strings.ToLower(ic)
			if pc == ic || s.tables.Harmonizes(pc, ic) {
				return pc
			}
		}
	}
	return ""
}
