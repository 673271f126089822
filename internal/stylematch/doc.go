// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package stylematch implements the style-match recommendation engine for
// the garment catalog.
//
// # Architecture
//
// Given a user profile (gender, occasion, inferred skin tone, body type,
// color palette, and style), the engine scores an entire catalog snapshot
// with a multi-factor weighted model and produces a ranked candidate list:
//
//   - Scoring: gender hard gate, occasion-category dominance, pairwise
//     color harmony, asymmetric style compatibility, body/skin/age fit
//   - Selection: preferred-category quota interleaving
//   - Presentation: filter, sort, and pagination over the candidate list
//
// The pipeline is pure-functional over an immutable catalog snapshot:
// scoring never mutates a GarmentItem, results are derived ScoredItem
// values, and per-item scoring is parallelized without any ordering
// requirement (ordering is imposed only by ranking and sorting).
//
// # Design Principles
//
//   - Deterministic: identical inputs produce identical scores; only the
//     "popular" sort may vary, and only with an unseeded RNG
//   - Auditable: the heuristic lookup tables are named values injected via
//     config, not constants buried in the algorithm
//   - Observable: structured logging on every request path
//
// # Usage
//
//	engine, err := stylematch.NewEngine(stylematch.DefaultConfig(), logger)
//	items, err := engine.Recommend(ctx, profile, catalog)
//	page := engine.Paginate(items, filter, stylematch.SortMatch, 1, 6)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Each Recommend call scores one
// snapshot for one profile with no shared mutable state beyond the response
// cache, which is internally synchronized.
package stylematch
