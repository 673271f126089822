// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Source supplies raw catalog records. Implementations are external
// collaborators; the engine treats each Load result as a point-in-time
// snapshot.
type Source interface {
	// Load returns all raw catalog records.
	Load(ctx context.Context) ([]RawRecord, error)
}

// FileSource loads the catalog from a JSON file containing an array of raw
// records.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the catalog file.
func (s *FileSource) Load(_ context.Context) ([]RawRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}

	return records, nil
}

// StaticSource serves a fixed record set. Used in tests and for seeding.
type StaticSource struct {
	Records []RawRecord
	Err     error
}

// Load returns the fixed record set.
func (s *StaticSource) Load(_ context.Context) ([]RawRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}
