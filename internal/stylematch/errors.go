// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package stylematch

import "errors"

// Sentinel errors returned by the engine. An empty result set is not an
// error: a profile that matches nothing yields an empty candidate list (and
// an empty page with TotalItems == 0) without any of these conditions.
var (
	// ErrCatalogUnavailable is returned when no catalog records can be
	// obtained. The engine never silently substitutes stale data.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrInvalidProfile is returned when the profile gender is missing or
	// unrecognized. The engine does not guess a gender.
	ErrInvalidProfile = errors.New("invalid profile: gender is required")
)
