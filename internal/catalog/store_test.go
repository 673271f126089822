// StyleMatch - Garment Rental Style Recommendation Engine
// Copyright 2026 RentWear
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rentwear/stylematch

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testRecords() []RawRecord {
	return []RawRecord{
		{ID: 1, Name: "Blue Sherwani", Gender: "male", Category: "Sherwani", Price: 4000},
		{ID: 2, Name: "Red Lehnga", Gender: "female", Category: "Lehnga", Price: 5200},
		{ID: 3, Name: "Dropped", Category: "Kurta"},
	}
}

func TestStore_Reload(t *testing.T) {
	t.Parallel()

	store := NewStore(&StaticSource{Records: testRecords()}, zerolog.Nop())

	if store.Snapshot() != nil {
		t.Error("fresh store must have a nil snapshot")
	}

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := len(store.Snapshot()); got != 2 {
		t.Errorf("snapshot size = %d, want 2", got)
	}

	status := store.Status()
	if status.Items != 2 {
		t.Errorf("Status().Items = %d, want 2", status.Items)
	}
	if status.Report.Dropped != 1 {
		t.Errorf("Status().Report.Dropped = %d, want 1", status.Report.Dropped)
	}
	if status.LoadedAt.IsZero() {
		t.Error("Status().LoadedAt not set")
	}
}

func TestStore_Reload_FailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	source := &StaticSource{Records: testRecords()}
	store := NewStore(source, zerolog.Nop())

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	before := store.Snapshot()

	source.Err = errors.New("catalog service down")
	if err := store.Reload(context.Background()); err == nil {
		t.Fatal("Reload() expected error from failing source")
	}

	after := store.Snapshot()
	if len(after) != len(before) {
		t.Errorf("snapshot changed after failed reload: %d -> %d", len(before), len(after))
	}
}

func TestStore_OnReload(t *testing.T) {
	t.Parallel()

	source := &StaticSource{Records: testRecords()}
	store := NewStore(source, zerolog.Nop())

	var calls int
	store.OnReload(func() { calls++ })
	store.OnReload(func() { calls += 10 })

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if calls != 11 {
		t.Errorf("reload hooks produced %d, want 11", calls)
	}

	// Hooks do not fire on a failed reload.
	source.Err = errors.New("down")
	_ = store.Reload(context.Background())
	if calls != 11 {
		t.Errorf("hooks fired on failed reload, calls = %d", calls)
	}
}

func TestFileSource_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[
		{"id": 1, "name": "Blue Sherwani", "price": 4000, "gender": "male", "category": "Sherwani", "available": true},
		{"id": 2, "name": "Red Lehnga", "price": 5200, "gender": "female", "category": "Lehnga", "available": true}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Name != "Blue Sherwani" || records[1].Price != 5200 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestFileSource_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "missing.json")
			},
		},
		{
			name: "malformed json",
			setup: func(t *testing.T) string {
				t.Helper()
				path := filepath.Join(t.TempDir(), "bad.json")
				if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
					t.Fatal(err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewFileSource(tt.setup(t)).Load(context.Background()); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}
