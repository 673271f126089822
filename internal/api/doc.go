// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

// Package api provides the HTTP surface of the service: a Chi router with
// CORS, rate limiting, and request-ID middleware, plus handlers for the
// recommendation and catalog endpoints. All responses use the envelope
// defined in internal/models.
package api
