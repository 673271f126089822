// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package catalog normalizes raw garment records into enriched items and
// holds the current catalog snapshot.
//
// Normalization derives scoring attributes from category and name
// heuristics: color tags from name keywords, a style tag and occasion set
// from the category, supported body types from the cut, complementing skin
// tones from the extracted colors, and age buckets from category and price.
// Records missing a gender or category are dropped and counted, never
// passed through with wrong semantics.
//
// The Store serves immutable snapshots: a reload builds a new item slice
// and swaps it in; snapshots already handed to in-flight requests are never
// touched. The Refresher runs reloads on an interval under supervision.
package catalog
